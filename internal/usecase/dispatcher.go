package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ParikhVedant/pare/internal/domain"
)

// Capability names exposed to the planner.
const (
	CapCompanyInfo    = "company_info"
	CapProductInfo    = "product_info"
	CapLeadCapture    = "lead_capture"
	CapPricingInfo    = "pricing_info"
	CapSupportRequest = "support_request"
	CapSendBrochure   = "send_brochure"
)

const fallbackReply = "Could you tell me a bit more about what you're looking for? I'm happy to help with our products, pricing, or support."

// CapabilityResult is the normalized outcome of one capability call.
type CapabilityResult struct {
	Message   string
	Artifact  string
	NextTopic string
	Complete  bool
}

// TurnResponse is the shape every front end consumes.
type TurnResponse struct {
	Response string `json:"response"`
	Artifact string `json:"artifact,omitempty"`
}

// Assistant orchestrates one conversation turn: it hands the capability
// surface to the planner, executes whatever the planner selected against the
// session, and normalizes the result. A message produced by a capability
// always wins over the planner's own phrasing.
type Assistant struct {
	planner  Planner
	capture  *LeadCapture
	delivery LeadDelivery
	leadRepo domain.LeadRepository
	funnel   *Funnel
	logger   *slog.Logger

	// Extra directive appended to the system prompt (e.g. language matching).
	instruction string
}

type AssistantOption func(*Assistant)

// WithFields replaces the required capture fields.
func WithFields(fields []domain.FieldDescriptor) AssistantOption {
	return func(a *Assistant) { a.capture = NewLeadCapture(fields) }
}

func WithLeadDelivery(d LeadDelivery) AssistantOption {
	return func(a *Assistant) { a.delivery = d }
}

func WithLeadRepository(r domain.LeadRepository) AssistantOption {
	return func(a *Assistant) { a.leadRepo = r }
}

func WithFunnel(f *Funnel) AssistantOption {
	return func(a *Assistant) { a.funnel = f }
}

func WithLogger(l *slog.Logger) AssistantOption {
	return func(a *Assistant) { a.logger = l }
}

// WithInstruction appends an extra directive to the planner's system prompt.
func WithInstruction(instruction string) AssistantOption {
	return func(a *Assistant) { a.instruction = instruction }
}

func NewAssistant(planner Planner, opts ...AssistantOption) (*Assistant, error) {
	if planner == nil {
		return nil, fmt.Errorf("assistant: planner is required")
	}
	a := &Assistant{
		planner: planner,
		capture: NewLeadCapture(nil),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// NewSession creates a fresh conversation with a lead record covering the
// configured required fields plus the optional contact slots.
func (a *Assistant) NewSession() *Session {
	return NewSession(a.capture.Fields(), domain.ContactFields)
}

// Respond processes one user turn to completion. Turns on the same session
// are serialized: a second call blocks until the in-flight turn finishes. On
// planner failure neither the lead record nor the transcript is mutated.
func (a *Assistant) Respond(ctx context.Context, s *Session, userText string) (TurnResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetScratch()

	transcript := append(s.History(), Message{Role: RoleUser, Content: userText})
	plan, err := a.planner.Plan(ctx, a.systemPrompt(), transcript, a.Tools())
	if err != nil {
		return TurnResponse{}, fmt.Errorf("planner: %w", err)
	}

	for _, call := range plan.Calls {
		a.execute(ctx, s, call)
	}

	resp := TurnResponse{Response: plan.Text, Artifact: s.lastArtifact}
	if s.lastMessage != "" {
		resp.Response = s.lastMessage
	}
	if strings.TrimSpace(resp.Response) == "" {
		resp.Response = fallbackReply
	}

	s.Append(RoleUser, userText)
	s.Append(RoleAssistant, resp.Response)
	a.trackFunnel(s)
	return resp, nil
}

func (a *Assistant) execute(ctx context.Context, s *Session, call ToolCall) {
	switch call.Name {
	case CapCompanyInfo:
		a.CompanyInfo(s)
	case CapProductInfo:
		a.ProductInfo(s, call.Args["product_category"], call.Args["specific_product"])
	case CapLeadCapture:
		a.LeadCapture(ctx, s, call.Args["field"], call.Args["value"])
	case CapPricingInfo:
		a.PricingInfo(s)
	case CapSupportRequest:
		a.SupportRequest(s, call.Args["request_type"])
	case CapSendBrochure:
		a.SendBrochure(s, call.Args["brochure_type"])
	default:
		a.logger.Warn("unknown capability requested", "name", call.Name)
	}
}

// CompanyInfo returns the company blurb and steers towards lead capture.
func (a *Assistant) CompanyInfo(s *Session) CapabilityResult {
	msg := CompanyInfo() + "\n\nPlease share details about your current requirement?"
	s.setMessage(msg)
	return CapabilityResult{Message: msg, NextTopic: TopicLeadCapture}
}

// ProductInfo answers a product question. A known specific product wins over
// a category; with neither, a general overview asks for the area of interest.
func (a *Assistant) ProductInfo(s *Session, category, specific string) CapabilityResult {
	if specific != "" {
		if desc := SpecificProductInfo(specific); desc != "" {
			s.setMessage(desc)
			return CapabilityResult{Message: desc, NextTopic: TopicLeadCapture}
		}
	}
	if category != "" {
		msg, brochure := CategoryInfo(category)
		s.setMessage(msg)
		s.setArtifact(brochure)
		topic := TopicLeadCapture
		if brochure == "" {
			// Unrecognized category: stay on product info and re-ask.
			topic = TopicProductInfo
		}
		return CapabilityResult{Message: msg, Artifact: brochure, NextTopic: topic}
	}
	msg := ProductOverview() + "\n\nKindly mention the area you're interested in - Wall, ceilings or Facades or all/none?"
	s.setMessage(msg)
	return CapabilityResult{Message: msg, NextTopic: TopicProductInfo}
}

// LeadCapture applies one capture step and submits the lead exactly once when
// it completes.
func (a *Assistant) LeadCapture(ctx context.Context, s *Session, field, value string) CapabilityResult {
	res := a.capture.Capture(s.Lead, field, value)
	s.setMessage(res.Message)
	if res.Complete && !s.submitted {
		s.submitted = true
		a.submit(ctx, s)
	}
	return CapabilityResult{
		Message:   res.Message,
		NextTopic: res.NextTopic,
		Complete:  res.Complete,
	}
}

// PricingInfo shares pricing and nudges for missing contact details,
// name before phone.
func (a *Assistant) PricingInfo(s *Session) CapabilityResult {
	msg := PricingInfo()
	missing := ""
	switch {
	case !s.Lead.IsSet("name"):
		missing = "name"
	case !s.Lead.IsSet("phone"):
		missing = "phone"
	}
	if missing != "" {
		msg += fmt.Sprintf("\n\nTo provide a more personalized quote, could you please share your %s?", missing)
	}
	s.setMessage(msg)
	return CapabilityResult{Message: msg, NextTopic: TopicLeadCapture}
}

// SupportRequest handles callback, whatsapp and site_visit requests; whatsapp
// closes the conversation.
func (a *Assistant) SupportRequest(s *Session, requestType string) CapabilityResult {
	var msg string
	topic := TopicSupport
	switch requestType {
	case "callback":
		msg = callbackRequest
	case "whatsapp":
		msg = whatsappConfirm + "\n\n" + ClosingMessage()
		topic = TopicClosing
	case "site_visit":
		msg = siteVisitRequest
	default:
		msg = unknownSupportMessage
	}
	s.setMessage(msg)
	return CapabilityResult{Message: msg, NextTopic: topic}
}

// SendBrochure records the artifact to surface. The type is passed through
// unvalidated; the front end owns the vocabulary.
func (a *Assistant) SendBrochure(s *Session, brochureType string) CapabilityResult {
	msg := fmt.Sprintf("Here's our %s brochure for your reference.", brochureType)
	s.setMessage(msg)
	s.setArtifact(brochureType)
	return CapabilityResult{Message: msg, Artifact: brochureType}
}

// submit hands the finished lead to storage and delivery. Both are best
// effort: failures are logged and the turn still succeeds.
func (a *Assistant) submit(ctx context.Context, s *Session) {
	if a.leadRepo != nil {
		if err := a.leadRepo.SaveLead(s.ID, s.Lead); err != nil {
			a.logger.Error("lead save failed", "session_id", s.ID, "error", err)
		} else {
			a.logger.Info("lead saved", "session_id", s.ID)
		}
	}
	if a.delivery != nil {
		if err := a.delivery.SendLead(ctx, s.ID, s.Lead); err != nil {
			a.logger.Error("lead delivery failed", "session_id", s.ID, "error", err)
		} else {
			a.logger.Info("lead delivered", "session_id", s.ID)
		}
	}
}

func (a *Assistant) trackFunnel(s *Session) {
	if a.funnel == nil {
		return
	}
	a.funnel.Reach(s.ID, StageIntro)
	for _, f := range a.capture.Fields() {
		if s.Lead.IsSet(f.Name) {
			a.funnel.Reach(s.ID, Stage(f.Name))
		}
	}
	if s.submitted {
		a.funnel.Reach(s.ID, StageLeadSaved)
	}
}

func (a *Assistant) systemPrompt() string {
	names := make([]string, 0, len(a.capture.Fields()))
	for _, f := range a.capture.Fields() {
		names = append(names, f.Name)
	}
	prompt := fmt.Sprintf(`You are a helpful assistant for PARE India, a leading manufacturer of decorative surfaces for walls, ceilings, and facades.

Follow these guidelines:
1. When customers ask about the company, provide information and ask about their requirements.
2. When customers ask about products, explain the options based on their interests (walls, ceilings, facades).
3. Capture lead information (%s) in a conversational way.
4. Provide pricing information when asked.
5. Offer support options (callbacks, site visits) when appropriate.
6. Once the customer has narrowed down the requirement, capture the lead information, set a callback and close the conversation.
7. Always be professional, helpful and enthusiastic.

Remember to use the appropriate tools based on the customer's query.`, strings.Join(names, ", "))
	if a.instruction != "" {
		prompt += "\n" + a.instruction
	}
	return prompt
}

// Tools describes the capability surface handed to the planner.
func (a *Assistant) Tools() []ToolSpec {
	fieldNames := make([]string, 0, len(a.capture.Fields())+len(domain.ContactFields))
	for _, f := range a.capture.Fields() {
		fieldNames = append(fieldNames, f.Name)
	}
	for _, f := range domain.ContactFields {
		fieldNames = append(fieldNames, f.Name)
	}

	return []ToolSpec{
		{
			Name:        CapCompanyInfo,
			Description: "Provide information about PARE India company.",
			Parameters:  objectSchema(nil, nil),
		},
		{
			Name:        CapProductInfo,
			Description: "Provide information about PARE products.",
			Parameters: objectSchema(map[string]any{
				"product_category": map[string]any{
					"type":        "string",
					"description": "Category of interest",
					"enum":        []string{"wall", "ceiling", "facade", "unsure", "all", "none"},
				},
				"specific_product": map[string]any{
					"type":        "string",
					"description": "Specific product of interest",
				},
			}, nil),
		},
		{
			Name:        CapLeadCapture,
			Description: "Capture customer lead information, one field at a time.",
			Parameters: objectSchema(map[string]any{
				"field": map[string]any{
					"type":        "string",
					"description": "Lead data field to capture",
					"enum":        fieldNames,
				},
				"value": map[string]any{
					"type":        "string",
					"description": "Value provided by the customer",
				},
			}, nil),
		},
		{
			Name:        CapPricingInfo,
			Description: "Provide pricing information for PARE products.",
			Parameters:  objectSchema(nil, nil),
		},
		{
			Name:        CapSupportRequest,
			Description: "Handle customer support or callback requests.",
			Parameters: objectSchema(map[string]any{
				"request_type": map[string]any{
					"type":        "string",
					"description": "Type of support request",
					"enum":        []string{"callback", "whatsapp", "site_visit"},
				},
			}, []string{"request_type"}),
		},
		{
			Name:        CapSendBrochure,
			Description: "Send a product brochure to the customer.",
			Parameters: objectSchema(map[string]any{
				"brochure_type": map[string]any{
					"type":        "string",
					"description": "Type of brochure to send (easy+, innov+, dura+, company)",
				},
			}, []string{"brochure_type"}),
		},
	}
}

func objectSchema(props map[string]any, required []string) map[string]any {
	if props == nil {
		props = map[string]any{}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
