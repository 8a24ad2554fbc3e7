package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/internal/llm"
)

// Session owns the ordered message history of one conversation. It is an
// explicit per-request object handed between the transport layer and the
// orchestrator; there is no process-wide conversation state.
type Session struct {
	ID        string
	CreatedAt time.Time
	Messages  []llm.Message
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// NewSessionFromHistory creates a session pre-seeded with prior turns, as
// sent by a client that keeps its transcript locally.
func NewSessionFromHistory(history []llm.Message) *Session {
	s := NewSession()
	s.Messages = append(s.Messages, history...)
	return s
}

// Append adds a message to the end of the history.
func (s *Session) Append(m llm.Message) {
	s.Messages = append(s.Messages, m)
}
