package usecase

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ParikhVedant/pare/internal/domain"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one transcript entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is the state of a single conversation: one lead record, the
// transcript, and per-turn scratch slots the capabilities write into.
// A session processes one turn at a time; overlapping turns (e.g. a client
// double-submit over HTTP) queue up on mu.
type Session struct {
	ID   string
	Lead *domain.LeadRecord

	mu      sync.Mutex
	history []Message

	// Scratch, reset at the start of every turn.
	lastMessage  string
	lastArtifact string

	submitted bool
}

func NewSession(descriptors ...[]domain.FieldDescriptor) *Session {
	if len(descriptors) == 0 {
		descriptors = [][]domain.FieldDescriptor{domain.RequiredFields, domain.ContactFields}
	}
	return &Session{
		ID:   uuid.NewString(),
		Lead: domain.NewLeadRecord(descriptors...),
	}
}

// Append adds one turn to the transcript. The transcript is append-only.
func (s *Session) Append(role, content string) {
	s.history = append(s.history, Message{Role: role, Content: content})
}

// History returns a copy of the transcript in chronological order.
func (s *Session) History() []Message {
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) resetScratch() {
	s.lastMessage = ""
	s.lastArtifact = ""
}

func (s *Session) setMessage(msg string) {
	if msg != "" {
		s.lastMessage = msg
	}
}

func (s *Session) setArtifact(artifact string) {
	if artifact != "" {
		s.lastArtifact = artifact
	}
}
