package api

import (
	"context"

	"github.com/dkoulouris/orthochat/internal/models"
)

// ClientInterface defines the OpenRouter operations the rest of the
// program depends on. The TUI and commands take this interface so tests
// can substitute MockClient.
type ClientInterface interface {
	// Generate sends one chat completion request and returns the
	// assistant's text.
	Generate(ctx context.Context, modelID string, messages []models.Message) (string, error)
	// Ping sends a trivial request to verify the key and connectivity.
	Ping(ctx context.Context, modelID string) error
}
