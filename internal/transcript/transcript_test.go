package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dkoulouris/orthochat/internal/models"
)

func TestTranscript_Record(t *testing.T) {
	tr := New()
	tr.AddUser("translate In the beginning")
	tr.AddAssistant("qwen/qwen3-8b:free", "太初")

	if tr.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", tr.Len())
	}

	entries := tr.Entries()
	if entries[0].Role != models.RoleUser {
		t.Errorf("first entry role = %q", entries[0].Role)
	}
	if entries[1].ModelID != "qwen/qwen3-8b:free" {
		t.Errorf("assistant entry lost its model: %q", entries[1].ModelID)
	}
}

func TestTranscript_EntriesIsCopy(t *testing.T) {
	tr := New()
	tr.AddUser("hello")

	entries := tr.Entries()
	entries[0].Content = "mutated"

	if tr.Entries()[0].Content != "hello" {
		t.Error("Entries() must return a copy")
	}
}

func TestTranscript_Clear(t *testing.T) {
	tr := New()
	tr.AddUser("hello")
	tr.Clear()

	if tr.Len() != 0 {
		t.Error("Clear() should empty the transcript")
	}
}

func TestExportMarkdown(t *testing.T) {
	tr := New()
	tr.AddUser("translate peace be with you")
	tr.AddAssistant("qwen/qwen3-8b:free", "願你們平安")
	tr.AddAssistant("qwen/qwen3-32b:free", "平安與你們同在")

	md := tr.ExportMarkdown()

	if !strings.HasPrefix(md, "# Orthodox Translation Assistant Session") {
		t.Errorf("missing header:\n%s", md)
	}
	if !strings.Contains(md, "**Messages:** 3") {
		t.Errorf("missing message count:\n%s", md)
	}
	if !strings.Contains(md, "## User") {
		t.Errorf("missing user section:\n%s", md)
	}
	if !strings.Contains(md, "Assistant (qwen/qwen3-8b:free)") {
		t.Errorf("assistant sections must name the model:\n%s", md)
	}
	if !strings.Contains(md, "Assistant (qwen/qwen3-32b:free)") {
		t.Errorf("arena sides must stay distinguishable:\n%s", md)
	}
	if !strings.Contains(md, "願你們平安") {
		t.Errorf("missing reply content:\n%s", md)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()

	tr := New()
	tr.AddUser("hello")
	tr.AddAssistant("m", "world")

	path, err := tr.Save(dir)
	if err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("saved outside target dir: %s", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "orthochat-") || !strings.HasSuffix(path, ".md") {
		t.Errorf("unexpected filename: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "world") {
		t.Error("saved file missing transcript content")
	}
}
