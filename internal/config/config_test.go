package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DefaultModel != "qwen/qwen3-8b:free" {
		t.Errorf("Expected default model to be 'qwen/qwen3-8b:free', got '%s'", cfg.DefaultModel)
	}
	if cfg.ModelA == cfg.ModelB {
		t.Error("arena defaults should name two different models")
	}
	if !cfg.Orthodox {
		t.Error("Orthodox mode should default to on")
	}
	if !cfg.OrthodoxA || cfg.OrthodoxB {
		t.Error("arena defaults should compare orthodox (A) against standard (B)")
	}
	if cfg.Debug {
		t.Error("Debug should default to off")
	}
	if cfg.Arena {
		t.Error("Arena should default to off")
	}
	if cfg.GlossaryMinScore != 75 {
		t.Errorf("Expected glossary min score 75, got %d", cfg.GlossaryMinScore)
	}
}

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("GetConfigDir() returned relative path: %s", dir)
	}
	if filepath.Base(dir) != ".orthochat" {
		t.Errorf("unexpected config dir name: %s", dir)
	}
}

func TestSaveLoadConfig_RoundTrip(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	cfg := DefaultConfig()
	cfg.DefaultModel = "meta-llama/llama-3.3-70b-instruct:free"
	cfg.Arena = true
	cfg.Debug = true
	cfg.OrthodoxB = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}

	if loaded.DefaultModel != cfg.DefaultModel {
		t.Errorf("DefaultModel = %q, want %q", loaded.DefaultModel, cfg.DefaultModel)
	}
	if !loaded.Arena || !loaded.Debug || !loaded.OrthodoxB {
		t.Errorf("flags not preserved: %+v", loaded)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.DefaultModel != DefaultConfig().DefaultModel {
		t.Error("missing config file should fall back to defaults")
	}
}

func TestLoadConfig_CorruptFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	dir := filepath.Join(tmp, ".orthochat")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("expected error for corrupt config file")
	}
	if cfg.DefaultModel != DefaultConfig().DefaultModel {
		t.Error("corrupt config should fall back to defaults")
	}
}

func TestConfigFilePermissions(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	if err := SaveConfig(DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	info, err := os.Stat(filepath.Join(tmp, ".orthochat", "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file permissions = %o, want 600", perm)
	}
}

func TestConfigJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}

	for _, field := range []string{"default_model", "model_a", "model_b", "orthodox", "arena", "debug"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("serialized config missing field %q", field)
		}
	}
}

func TestAPIKey_SaveLoadClear(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv(EnvAPIKey, "")

	if got := LoadAPIKey(); got != "" {
		t.Errorf("expected empty key before save, got %q", got)
	}

	if err := SaveAPIKey("sk-or-v1-test123"); err != nil {
		t.Fatalf("SaveAPIKey() returned error: %v", err)
	}

	if got := LoadAPIKey(); got != "sk-or-v1-test123" {
		t.Errorf("LoadAPIKey() = %q, want saved key", got)
	}

	info, err := os.Stat(filepath.Join(tmp, ".orthochat", "api_key"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("key file permissions = %o, want 600", perm)
	}

	if err := ClearAPIKey(); err != nil {
		t.Fatalf("ClearAPIKey() returned error: %v", err)
	}
	if got := LoadAPIKey(); got != "" {
		t.Errorf("expected empty key after clear, got %q", got)
	}

	// Clearing twice is fine
	if err := ClearAPIKey(); err != nil {
		t.Errorf("second ClearAPIKey() returned error: %v", err)
	}
}

func TestAPIKey_EnvPrecedence(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	if err := SaveAPIKey("sk-or-v1-from-file"); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAPIKey, "sk-or-v1-from-env")

	if got := LoadAPIKey(); got != "sk-or-v1-from-env" {
		t.Errorf("environment should win over key file, got %q", got)
	}
}

func TestSaveAPIKey_RejectsEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := SaveAPIKey("   "); err == nil {
		t.Error("expected error when saving blank key")
	}
}
