// Package config handles configuration and API key storage for orthochat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dkoulouris/orthochat/internal/models"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`             // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`      // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"` // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`        // Enable word wrap in table cells
}

// Config represents the user configuration
type Config struct {
	// DefaultModel is the OpenRouter model ID used outside arena mode.
	DefaultModel string `json:"default_model"`
	// ModelA and ModelB are the OpenRouter model IDs compared in arena mode.
	ModelA string `json:"model_a"`
	ModelB string `json:"model_b"`
	// Orthodox enables the Orthodox Christian theological register for
	// translate commands.
	Orthodox bool `json:"orthodox"`
	// OrthodoxA/OrthodoxB are the per-side flags in arena mode. B defaults
	// to off so arena mode compares the two registers out of the box.
	OrthodoxA bool `json:"orthodox_a"`
	OrthodoxB bool `json:"orthodox_b"`
	// Arena enables side-by-side comparison of ModelA and ModelB.
	Arena bool `json:"arena"`
	// Debug shows the exact prompt sent to the model when a command
	// rewrites the user's input.
	Debug bool `json:"debug"`
	// Verbose enables detailed stderr logging during operations.
	Verbose bool `json:"verbose"`
	// CopyToClipboard copies one-shot responses to the system clipboard.
	CopyToClipboard bool `json:"copy_to_clipboard"`
	// GlossaryDir holds the Orthodox terminology JSONL dictionaries.
	GlossaryDir string `json:"glossary_dir,omitempty"`
	// GlossaryMinScore is the fuzzy-match threshold (0-100).
	GlossaryMinScore int `json:"glossary_min_score"`
	// Footnotes enables scripture footnote lookups on annotate output.
	Footnotes bool           `json:"footnotes"`
	Markdown  MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		DefaultModel:     models.DefaultModel.ID,
		ModelA:           models.DefaultModel.ID,
		ModelB:           models.DefaultArenaB.ID,
		Orthodox:         true,
		OrthodoxA:        true,
		OrthodoxB:        false,
		Arena:            false,
		Debug:            false,
		Verbose:          false,
		CopyToClipboard:  false,
		GlossaryDir:      filepath.Join(homeDir, ".orthochat", "dict"),
		GlossaryMinScore: 75,
		Footnotes:        false,
		Markdown:         DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".orthochat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the directory holds the API key
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
