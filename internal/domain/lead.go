package domain

// FieldDescriptor binds a lead slot name to the question asked to fill it.
// The ordered list of descriptors defines capture priority.
type FieldDescriptor struct {
	Name   string
	Prompt string
}

// RequiredFields are the slots a lead must have before it is considered complete.
var RequiredFields = []FieldDescriptor{
	{Name: "location", Prompt: "Which location and city are you from?"},
	{Name: "requirement_type", Prompt: "What type of requirement do you have? (Residential / Commercial)"},
	{Name: "quantity", Prompt: "What quantity (in sq.ft.) are you looking for our panels?"},
}

// ContactFields are optional slots a lead record also carries. They do not
// gate completion but may be filled along the way (e.g. for quotations).
var ContactFields = []FieldDescriptor{
	{Name: "name", Prompt: "May I have your name?"},
	{Name: "phone", Prompt: "Could you share a phone number our team can reach you on?"},
	{Name: "email", Prompt: "What email address should we send details to?"},
	{Name: "city", Prompt: "Which city is the project in?"},
	{Name: "company_name", Prompt: "What is your company name?"},
}

// LeadRecord holds the per-conversation lead slots. Slots are fixed at
// creation; an update to an unknown slot is dropped and an empty value never
// clears a slot that is already set.
type LeadRecord struct {
	slots  []string
	values map[string]string
}

func NewLeadRecord(descriptors ...[]FieldDescriptor) *LeadRecord {
	r := &LeadRecord{values: make(map[string]string)}
	for _, list := range descriptors {
		for _, d := range list {
			if !r.Has(d.Name) {
				r.slots = append(r.slots, d.Name)
			}
		}
	}
	return r
}

// Set writes value into the named slot. Returns false when the slot does not
// exist or the value is empty; the record is unchanged in that case.
func (r *LeadRecord) Set(field, value string) bool {
	if value == "" || !r.Has(field) {
		return false
	}
	r.values[field] = value
	return true
}

func (r *LeadRecord) Get(field string) string { return r.values[field] }

func (r *LeadRecord) IsSet(field string) bool { return r.values[field] != "" }

// Has reports whether the named slot exists in this record.
func (r *LeadRecord) Has(field string) bool {
	for _, s := range r.slots {
		if s == field {
			return true
		}
	}
	return false
}

// Fields returns the slot names in capture order.
func (r *LeadRecord) Fields() []string {
	out := make([]string, len(r.slots))
	copy(out, r.slots)
	return out
}

// Values returns only the slots that are set, keyed by name. Unset slots are
// dropped, which is the shape the CRM expects.
func (r *LeadRecord) Values() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// LeadRepository persists completed leads.
type LeadRepository interface {
	SaveLead(sessionID string, lead *LeadRecord) error
}
