package prompt

import (
	"strings"
	"testing"

	"github.com/dkoulouris/orthochat/internal/command"
	"github.com/dkoulouris/orthochat/internal/glossary"
)

func parse(t *testing.T, input string) command.Command {
	t.Helper()
	return command.Parse(input)
}

func TestBuild_AnnotateWrapsPayload(t *testing.T) {
	raw := "annotate For God so loved the world"
	cmd := parse(t, raw)

	got, mode := Build(cmd, raw, true, nil)
	if mode != ModeAnnotate {
		t.Errorf("mode = %q, want annotate", mode)
	}
	if !strings.HasPrefix(got, AnnotationContext) {
		t.Error("annotate prompt should start with the annotation context")
	}
	if !strings.HasSuffix(got, "For God so loved the world") {
		t.Errorf("annotate prompt should end with the payload, got:\n%s", got)
	}
}

func TestBuild_AnnotateEmptyPayloadAsksForText(t *testing.T) {
	cmd := parse(t, "annotate")
	got, _ := Build(cmd, "annotate", true, nil)
	if !strings.Contains(got, "Please provide the text") {
		t.Errorf("empty annotate should ask for text, got:\n%s", got)
	}
}

func TestBuild_OrthodoxTranslate(t *testing.T) {
	raw := "translate In the beginning was the Word"
	cmd := parse(t, raw)

	got, mode := Build(cmd, raw, true, nil)
	if mode != ModeTranslateOrthodox {
		t.Errorf("mode = %q, want translate_orthodox", mode)
	}
	if !strings.HasPrefix(got, OrthodoxContext) {
		t.Error("orthodox prompt should start with the Orthodox context")
	}
	if !strings.Contains(got, "Please translate the following text:") {
		t.Error("orthodox prompt missing translate instruction")
	}
	if !strings.HasSuffix(got, "In the beginning was the Word") {
		t.Error("orthodox prompt should end with the payload")
	}
}

func TestBuild_OrthodoxFlagChangesPrompt(t *testing.T) {
	raw := "translate In the beginning"
	cmd := parse(t, raw)

	withOrthodox, _ := Build(cmd, raw, true, nil)
	without, _ := Build(cmd, raw, false, nil)

	if withOrthodox == without {
		t.Error("enabling Orthodox mode must change the translate prompt")
	}
	if !strings.Contains(withOrthodox, "Orthodox Christian") {
		t.Error("orthodox prompt should reference the theological register")
	}
}

func TestBuild_StandardTranslateNoMatchesPassthrough(t *testing.T) {
	raw := "translate good morning"
	cmd := parse(t, raw)

	got, mode := Build(cmd, raw, false, nil)
	if mode != ModeTranslateStandard {
		t.Errorf("mode = %q, want translate_standard", mode)
	}
	if got != raw {
		t.Errorf("standard translate without glossary matches should pass the input through, got:\n%s", got)
	}
}

func TestBuild_StandardTranslateWithGlossary(t *testing.T) {
	raw := "translate the Divine Liturgy"
	cmd := parse(t, raw)
	matches := []glossary.Match{{Term: "Divine Liturgy", Translation: "事奉聖禮", Score: 100}}

	got, _ := Build(cmd, raw, false, matches)
	if !strings.Contains(got, "English to Traditional Chinese") {
		t.Error("standard translate with matches should carry the translate instruction")
	}
	if !strings.Contains(got, "事奉聖禮") {
		t.Error("glossary translation missing from prompt")
	}
	if strings.Contains(got, "Orthodox Christian translator") {
		t.Error("standard translate must not include the Orthodox context")
	}
}

func TestBuild_PlainPreservedVerbatim(t *testing.T) {
	raw := "  what books do you recommend?  "
	cmd := parse(t, raw)

	got, mode := Build(cmd, raw, true, nil)
	if mode != ModePlain {
		t.Errorf("mode = %q, want plain", mode)
	}
	if got != raw {
		t.Errorf("plain input must be preserved verbatim, got %q", got)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	raw := "translate the Theotokos hymn"
	cmd := parse(t, raw)
	matches := []glossary.Match{{Term: "Theotokos", Translation: "誕神女", Score: 100}}

	first, _ := Build(cmd, raw, true, matches)
	second, _ := Build(cmd, raw, true, matches)
	if first != second {
		t.Error("identical inputs must produce byte-identical prompts")
	}
}

func TestBuild_EmptyTranslatePayload(t *testing.T) {
	cmd := parse(t, "translate")

	orthodox, _ := Build(cmd, "translate", true, nil)
	if !strings.Contains(orthodox, "Please provide the English text") {
		t.Errorf("empty orthodox translate should ask for text, got:\n%s", orthodox)
	}

	standard, _ := Build(cmd, "translate", false, nil)
	if standard != "translate" {
		t.Errorf("empty standard translate should forward the raw input, got %q", standard)
	}
}

func TestModeIndicator(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeAnnotate, "Bible Annotation Mode"},
		{ModeTranslateOrthodox, "Orthodox Translation Mode"},
		{ModeTranslateStandard, "Standard Translation"},
		{ModePlain, ""},
	}

	for _, tt := range tests {
		got := tt.mode.Indicator()
		if tt.want == "" && got != "" {
			t.Errorf("Mode(%q).Indicator() = %q, want empty", tt.mode, got)
		}
		if tt.want != "" && !strings.Contains(got, tt.want) {
			t.Errorf("Mode(%q).Indicator() = %q, want substring %q", tt.mode, got, tt.want)
		}
	}
}
