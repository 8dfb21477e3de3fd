package usecase

import (
	"context"

	"github.com/ParikhVedant/pare/internal/domain"
)

// LeadDelivery is the external channel a completed lead is handed to
// (CRM, webhooks, etc.). Best effort: a failure is logged, never fatal.
type LeadDelivery interface {
	SendLead(ctx context.Context, sessionID string, lead *domain.LeadRecord) error
}
