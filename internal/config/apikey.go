package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvAPIKey is the environment variable checked before the key file.
const EnvAPIKey = "OPENROUTER_API_KEY"

const keyFileName = "api_key"

// GetAPIKeyPath returns the path to the stored API key file
func GetAPIKeyPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, keyFileName), nil
}

// LoadAPIKey resolves the OpenRouter API key. Precedence: environment
// variable (with .env support), then the key file. Returns "" when no key
// is configured anywhere; callers decide whether that blocks dispatch.
func LoadAPIKey() string {
	// Best effort: a missing .env is not an error
	_ = godotenv.Load()

	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key
	}

	path, err := GetAPIKeyPath()
	if err != nil {
		return ""
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(data))
}

// SaveAPIKey persists the API key to the key file with owner-only
// permissions. An empty key is rejected.
func SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("refusing to save empty API key")
	}

	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	path := filepath.Join(configDir, keyFileName)
	if err := os.WriteFile(path, []byte(key+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write API key file: %w", err)
	}

	return nil
}

// ClearAPIKey removes the stored key file. Clearing a key that was never
// saved is not an error.
func ClearAPIKey() error {
	path, err := GetAPIKeyPath()
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove API key file: %w", err)
	}

	return nil
}
