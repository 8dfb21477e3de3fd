package crm

import (
	"context"
	"log/slog"

	"github.com/ParikhVedant/pare/internal/domain"
)

// LogDelivery is the delivery used when CRM credentials are not configured:
// the lead is written to the log instead of being dropped.
type LogDelivery struct {
	logger *slog.Logger
}

func NewLogDelivery(logger *slog.Logger) *LogDelivery {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDelivery{logger: logger}
}

func (d *LogDelivery) SendLead(ctx context.Context, sessionID string, lead *domain.LeadRecord) error {
	attrs := []any{"session_id", sessionID}
	for field, value := range lead.Values() {
		attrs = append(attrs, field, value)
	}
	d.logger.Info("crm not configured, lead stored in log", attrs...)
	return nil
}
