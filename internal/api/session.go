package api

import (
	"context"

	"github.com/dkoulouris/orthochat/internal/models"
)

// ChatSession keeps per-model conversation context across turns. A failed
// turn leaves the transcript unchanged, so the user can retry without the
// model seeing a dangling question.
type ChatSession struct {
	client  ClientInterface
	modelID string
	history []models.Message
}

// NewChatSession creates a session bound to one model
func NewChatSession(client ClientInterface, modelID string) *ChatSession {
	return &ChatSession{
		client:  client,
		modelID: modelID,
	}
}

// ModelID returns the OpenRouter model this session talks to
func (s *ChatSession) ModelID() string {
	return s.modelID
}

// SetModelID switches the session to another model, keeping context
func (s *ChatSession) SetModelID(modelID string) {
	s.modelID = modelID
}

// SendMessage appends the prompt as a user turn, requests a completion,
// and appends the assistant's reply. On error neither turn is recorded.
func (s *ChatSession) SendMessage(ctx context.Context, prompt string) (string, error) {
	attempt := make([]models.Message, len(s.history), len(s.history)+1)
	copy(attempt, s.history)
	attempt = append(attempt, models.UserMessage(prompt))

	reply, err := s.client.Generate(ctx, s.modelID, attempt)
	if err != nil {
		return "", err
	}

	s.history = append(attempt, models.AssistantMessage(reply))
	return reply, nil
}

// History returns a copy of the session transcript
func (s *ChatSession) History() []models.Message {
	out := make([]models.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Clear discards the conversation context
func (s *ChatSession) Clear() {
	s.history = nil
}
