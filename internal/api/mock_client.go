package api

import (
	"context"
	"sync"

	"github.com/dkoulouris/orthochat/internal/models"
)

// MockClient is a canned implementation of ClientInterface for tests.
// Safe for concurrent use so arena dispatch tests can share one mock.
type MockClient struct {
	// GenerateVal is returned for any model unless ResponsesByModel has
	// an entry for it.
	GenerateVal      string
	GenerateErr      error
	ResponsesByModel map[string]string
	ErrsByModel      map[string]error
	PingErr          error

	// Call recorders
	mu            sync.Mutex
	GenerateCalls int
	LastModelID   string
	LastMessages  []models.Message
}

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

func (m *MockClient) Generate(_ context.Context, modelID string, messages []models.Message) (string, error) {
	m.mu.Lock()
	m.GenerateCalls++
	m.LastModelID = modelID
	m.LastMessages = append([]models.Message(nil), messages...)
	m.mu.Unlock()

	if err, ok := m.ErrsByModel[modelID]; ok && err != nil {
		return "", err
	}
	if m.GenerateErr != nil {
		return "", m.GenerateErr
	}
	if text, ok := m.ResponsesByModel[modelID]; ok {
		return text, nil
	}
	return m.GenerateVal, nil
}

func (m *MockClient) Ping(context.Context, string) error {
	return m.PingErr
}
