package commands

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/dkoulouris/orthochat/internal/api"
	"github.com/dkoulouris/orthochat/internal/command"
	"github.com/dkoulouris/orthochat/internal/config"
	apierrors "github.com/dkoulouris/orthochat/internal/errors"
	"github.com/dkoulouris/orthochat/internal/glossary"
)

func TestApplyConfigValue(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
		check   func(config.Config) bool
	}{
		{
			name:  "default model",
			key:   "default_model",
			value: "qwen/qwen3-32b:free",
			check: func(c config.Config) bool { return c.DefaultModel == "qwen/qwen3-32b:free" },
		},
		{
			name:  "model b",
			key:   "model_b",
			value: "meta-llama/llama-3.3-70b-instruct:free",
			check: func(c config.Config) bool { return c.ModelB == "meta-llama/llama-3.3-70b-instruct:free" },
		},
		{
			name:  "orthodox off",
			key:   "orthodox",
			value: "false",
			check: func(c config.Config) bool { return !c.Orthodox },
		},
		{
			name:  "arena on",
			key:   "arena",
			value: "true",
			check: func(c config.Config) bool { return c.Arena },
		},
		{
			name:  "footnotes on",
			key:   "footnotes",
			value: "true",
			check: func(c config.Config) bool { return c.Footnotes },
		},
		{
			name:  "min score",
			key:   "glossary_min_score",
			value: "80",
			check: func(c config.Config) bool { return c.GlossaryMinScore == 80 },
		},
		{
			name:  "markdown style",
			key:   "markdown.style",
			value: "light",
			check: func(c config.Config) bool { return c.Markdown.Style == "light" },
		},
		{
			name:    "bad bool",
			key:     "orthodox",
			value:   "maybe",
			wantErr: true,
		},
		{
			name:    "min score out of range",
			key:     "glossary_min_score",
			value:   "150",
			wantErr: true,
		},
		{
			name:    "min score not a number",
			key:     "glossary_min_score",
			value:   "high",
			wantErr: true,
		},
		{
			name:    "unknown key",
			key:     "no_such_key",
			value:   "x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			err := applyConfigValue(&cfg, tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("applyConfigValue(%q, %q) should fail", tt.key, tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("applyConfigValue(%q, %q) returned error: %v", tt.key, tt.value, err)
			}
			if !tt.check(cfg) {
				t.Errorf("value not applied for %q", tt.key)
			}
		})
	}
}

func TestEffectiveConfig_ModelFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	modelFlag = "custom/model"
	defer func() { modelFlag = "" }()

	cfg := effectiveConfig(rootCmd)
	if cfg.DefaultModel != "custom/model" {
		t.Errorf("DefaultModel = %q", cfg.DefaultModel)
	}
	if cfg.ModelA != "custom/model" {
		t.Errorf("ModelA = %q", cfg.ModelA)
	}
}

func TestEffectiveConfig_ArenaFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	arenaFlag = true
	modelBFlag = "other/model"
	defer func() {
		arenaFlag = false
		modelBFlag = ""
	}()

	cfg := effectiveConfig(rootCmd)
	if !cfg.Arena {
		t.Error("arena flag should enable arena mode")
	}
	if cfg.ModelB != "other/model" {
		t.Errorf("ModelB = %q", cfg.ModelB)
	}
}

func TestEffectiveConfig_OrthodoxFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// ParseFlags merges the persistent set into Flags(), which is the
	// set effectiveConfig consults for Changed.
	if err := rootCmd.ParseFlags([]string{"--orthodox=false"}); err != nil {
		t.Fatal(err)
	}
	defer func() {
		f := rootCmd.Flags().Lookup("orthodox")
		f.Changed = false
		_ = f.Value.Set("true")
	}()

	cfg := effectiveConfig(rootCmd)
	if cfg.Orthodox {
		t.Error("--orthodox=false should disable the Orthodox context")
	}
	if cfg.OrthodoxA {
		t.Error("--orthodox=false should apply to arena side A too")
	}
}

func TestEffectiveConfig_OrthodoxFlagUntouched(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := effectiveConfig(rootCmd)
	if !cfg.Orthodox {
		t.Error("without --orthodox the stored default stays on")
	}
}

func TestFormatErrorMessage(t *testing.T) {
	err := apierrors.NewAPIError(500, "/chat/completions", "upstream exploded")
	out := formatErrorMessage(err, "Request failed")

	if !strings.Contains(out, "Request failed") {
		t.Error("missing context label")
	}
	if !strings.Contains(out, "500") {
		t.Error("missing HTTP status")
	}
	if !strings.Contains(out, "/chat/completions") {
		t.Error("missing endpoint")
	}
}

func TestFormatErrorMessage_AuthHint(t *testing.T) {
	out := formatErrorMessage(apierrors.NewAuthError("invalid key"), "Request failed")
	if !strings.Contains(out, "orthochat key set") {
		t.Errorf("auth errors should hint at key setup:\n%s", out)
	}
}

func TestFormatErrorMessage_Nil(t *testing.T) {
	if formatErrorMessage(nil, "ctx") != "" {
		t.Error("nil error should format to empty string")
	}
}

func TestSpinner_StopOnceIsIdempotent(t *testing.T) {
	s := newSpinner("working")
	s.start()
	s.stopOnce()
	s.stopOnce() // Second stop must not panic
	<-s.done
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := []string{"chat", "config", "key", "models"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRunQuery_EmptyInput(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	err := runQuery(config.DefaultConfig(), "   ", true)
	if err == nil {
		t.Error("empty input should fail")
	}
}

// captureStderr runs fn with os.Stderr redirected to a pipe and returns
// everything written to it.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = old
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// discardStdout runs fn with os.Stdout drained so rendered bubbles do
// not interleave with test output.
func discardStdout(t *testing.T, fn func()) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	drained := make(chan struct{})
	go func() {
		_, _ = io.Copy(io.Discard, r)
		close(drained)
	}()

	fn()

	w.Close()
	os.Stdout = old
	<-drained
}

func section(s, start, end string) string {
	i := strings.Index(s, start)
	j := strings.Index(s, end)
	if i < 0 || j < 0 || j < i {
		return ""
	}
	return s[i+len(start) : j]
}

func TestRunArenaQuery_DebugDumpsPerSidePrompts(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := config.DefaultConfig()
	cfg.Arena = true
	cfg.Debug = true
	cfg.OrthodoxA = true
	cfg.OrthodoxB = false

	input := "translate peace be with you"
	parsed := command.Parse(input)
	matches := []glossary.Match{{Term: "peace", Translation: "平安", Score: 100}}
	mock := &api.MockClient{GenerateVal: "ok"}

	stderr := captureStderr(t, func() {
		discardStdout(t, func() {
			if err := runArenaQuery(cfg, mock, parsed, input, matches, false); err != nil {
				t.Errorf("runArenaQuery returned error: %v", err)
			}
		})
	})

	sideA := section(stderr, "--- prompt A ---", "--- end prompt A ---")
	sideB := section(stderr, "--- prompt B ---", "--- end prompt B ---")
	if sideA == "" || sideB == "" {
		t.Fatalf("debug view should dump both side prompts:\n%s", stderr)
	}
	if !strings.Contains(sideA, "Orthodox Christian translator") {
		t.Error("side A dump should show the Orthodox prompt that was sent")
	}
	if strings.Contains(sideB, "Orthodox Christian translator") {
		t.Error("side B dump should show the standard prompt, not side A's")
	}
}

func TestRunQuery_MissingKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvAPIKey, "")

	err := runQuery(config.DefaultConfig(), "translate hello", true)
	if err == nil {
		t.Fatal("missing key should fail before any network call")
	}
	if !strings.Contains(err.Error(), "key") {
		t.Errorf("error should mention the key: %v", err)
	}
}
