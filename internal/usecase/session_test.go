package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession()
	require.NotEmpty(t, s.ID)
	assert.True(t, s.Lead.Has("location"))
	assert.True(t, s.Lead.Has("phone"))
	assert.Empty(t, s.History())

	other := NewSession()
	assert.NotEqual(t, s.ID, other.ID)
}

func TestSessionHistoryIsACopy(t *testing.T) {
	s := NewSession()
	s.Append(RoleUser, "hello")

	h := s.History()
	h[0].Content = "tampered"
	assert.Equal(t, "hello", s.History()[0].Content)
}

func TestSessionScratch(t *testing.T) {
	s := NewSession()
	s.setMessage("a message")
	s.setArtifact("easy+")

	// empty writes keep the last non-empty value within a turn
	s.setMessage("")
	s.setArtifact("")
	assert.Equal(t, "a message", s.lastMessage)
	assert.Equal(t, "easy+", s.lastArtifact)

	s.resetScratch()
	assert.Empty(t, s.lastMessage)
	assert.Empty(t, s.lastArtifact)
}
