// Package models contains data types and constants for the OpenRouter API.
package models

// Endpoints for the OpenRouter API
const (
	BaseURL            = "https://openrouter.ai/api/v1"
	EndpointChat       = "/chat/completions"
	KeysURL            = "https://openrouter.ai/keys"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000
)

// Attribution headers sent with every request, as OpenRouter recommends
// for app ranking. Neither affects the completion itself.
const (
	RefererHeader = "https://github.com/dkoulouris/orthochat"
	TitleHeader   = "Orthodox Translation Assistant"
)

// Model represents a selectable OpenRouter model
type Model struct {
	Name string // Display name shown in settings
	ID   string // OpenRouter model identifier
}

// Available models
var (
	ModelQwen8B = Model{
		Name: "Qwen3 8B (Free)",
		ID:   "qwen/qwen3-8b:free",
	}

	ModelQwen32B = Model{
		Name: "Qwen3 32B (Free)",
		ID:   "qwen/qwen3-32b:free",
	}

	ModelLlama70B = Model{
		Name: "Llama 3.3 70B (Free)",
		ID:   "meta-llama/llama-3.3-70b-instruct:free",
	}

	// DefaultModel is used when nothing is configured
	DefaultModel = ModelQwen8B

	// DefaultArenaB is the default second model for side-by-side comparison
	DefaultArenaB = ModelQwen32B
)

// AllModels returns the built-in model catalog
func AllModels() []Model {
	return []Model{ModelQwen8B, ModelQwen32B, ModelLlama70B}
}

// ModelFromID returns the catalog entry for an OpenRouter model ID.
// Unknown IDs are passed through so users can pick any model OpenRouter
// serves, not just the catalog.
func ModelFromID(id string) Model {
	for _, m := range AllModels() {
		if m.ID == id {
			return m
		}
	}
	return Model{Name: id, ID: id}
}
