package usecase

import "github.com/ParikhVedant/pare/internal/domain"

// CaptureResult is what one lead-capture step reports back to the dispatcher.
type CaptureResult struct {
	Message   string
	NextField string
	NextTopic string
	Complete  bool
}

// LeadCapture walks a lead record through an ordered list of required fields.
// It is pure with respect to everything except the record passed in.
type LeadCapture struct {
	fields []domain.FieldDescriptor
}

func NewLeadCapture(fields []domain.FieldDescriptor) *LeadCapture {
	if len(fields) == 0 {
		fields = domain.RequiredFields
	}
	return &LeadCapture{fields: fields}
}

func (c *LeadCapture) Fields() []domain.FieldDescriptor { return c.fields }

// NextField returns the first required field not yet set in the record, or nil
// when every required field is filled. Slots outside the required list are
// ignored for completion.
func (c *LeadCapture) NextField(lead *domain.LeadRecord) *domain.FieldDescriptor {
	for i := range c.fields {
		if !lead.IsSet(c.fields[i].Name) {
			return &c.fields[i]
		}
	}
	return nil
}

// Capture applies an optional (field, value) update and determines the next
// step. An unknown field is dropped silently; sequencing always rescans from
// the start of the list, so out-of-order captures are fine.
func (c *LeadCapture) Capture(lead *domain.LeadRecord, field, value string) CaptureResult {
	if field != "" && value != "" {
		lead.Set(field, value)
	}

	if next := c.NextField(lead); next != nil {
		return CaptureResult{
			Message:   next.Prompt,
			NextField: next.Name,
			NextTopic: TopicLeadCapture,
		}
	}

	return CaptureResult{
		Message:   captureCompleteMessage,
		NextTopic: TopicSupport,
		Complete:  true,
	}
}
