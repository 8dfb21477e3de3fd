package usecase

import "context"

// ToolSpec describes one capability exposed to the decision component,
// with parameters as a JSON schema.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolCall is one capability invocation the decision component asked for.
type ToolCall struct {
	Name string
	Args map[string]string
}

// Plan is the decision component's answer for one turn: free-form text,
// capability calls, or both. The dispatcher must tolerate either.
type Plan struct {
	Text  string
	Calls []ToolCall
}

// Planner is the opaque decision component (an LLM in production). It sees
// the system directive, the transcript including the current user message,
// and the capability surface, and is free to be nondeterministic.
type Planner interface {
	Plan(ctx context.Context, system string, transcript []Message, tools []ToolSpec) (Plan, error)
}
