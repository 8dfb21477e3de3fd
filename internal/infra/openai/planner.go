package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/ParikhVedant/pare/internal/usecase"
)

// Planner is the decision component backed by an OpenAI chat model through
// langchaingo. It hands the model the capability surface as function tools
// and translates whatever comes back into a usecase.Plan.
type Planner struct {
	model llms.Model
}

func NewPlanner(token, model string) (*Planner, error) {
	llm, err := openai.New(openai.WithToken(token), openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return &Planner{model: llm}, nil
}

// NewPlannerWithModel wraps an existing model, mainly for tests.
func NewPlannerWithModel(m llms.Model) *Planner {
	return &Planner{model: m}
}

func (p *Planner) Plan(ctx context.Context, system string, transcript []usecase.Message, tools []usecase.ToolSpec) (usecase.Plan, error) {
	msgs := make([]llms.MessageContent, 0, len(transcript)+1)
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeSystem, system))
	for _, m := range transcript {
		role := llms.ChatMessageTypeHuman
		if m.Role == usecase.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		msgs = append(msgs, llms.TextParts(role, m.Content))
	}

	llmTools := make([]llms.Tool, 0, len(tools))
	for _, t := range tools {
		llmTools = append(llmTools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	resp, err := p.model.GenerateContent(ctx, msgs, llms.WithTools(llmTools))
	if err != nil {
		return usecase.Plan{}, fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Choices) == 0 {
		return usecase.Plan{}, fmt.Errorf("empty model response")
	}

	choice := resp.Choices[0]
	plan := usecase.Plan{Text: choice.Content}
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		plan.Calls = append(plan.Calls, usecase.ToolCall{
			Name: tc.FunctionCall.Name,
			Args: decodeArgs(tc.FunctionCall.Arguments),
		})
	}
	return plan, nil
}

// decodeArgs flattens the model's JSON arguments into strings. Malformed
// arguments yield an empty map rather than an error; the dispatcher treats
// missing parameters as "not supplied".
func decodeArgs(raw string) map[string]string {
	args := map[string]string{}
	if raw == "" {
		return args
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return args
	}
	for k, v := range parsed {
		switch val := v.(type) {
		case string:
			args[k] = val
		case nil:
			// skip
		default:
			args[k] = fmt.Sprint(val)
		}
	}
	return args
}
