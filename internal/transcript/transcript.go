// Package transcript keeps the in-memory record of a chat session and
// exports it to Markdown on request. Nothing is written to disk unless
// the user asks for a save.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dkoulouris/orthochat/internal/models"
)

// Entry is one recorded message. ModelID is set on assistant entries so
// arena transcripts keep the two sides distinguishable.
type Entry struct {
	Role      string
	Content   string
	ModelID   string
	Timestamp time.Time
}

// Transcript is the in-memory session record.
type Transcript struct {
	entries   []Entry
	startedAt time.Time
}

// New creates an empty transcript.
func New() *Transcript {
	return &Transcript{startedAt: time.Now()}
}

// AddUser records a user message.
func (t *Transcript) AddUser(content string) {
	t.entries = append(t.entries, Entry{
		Role:      models.RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// AddAssistant records a model reply attributed to modelID.
func (t *Transcript) AddAssistant(modelID, content string) {
	t.entries = append(t.entries, Entry{
		Role:      models.RoleAssistant,
		Content:   content,
		ModelID:   modelID,
		Timestamp: time.Now(),
	})
}

// Len returns the number of recorded entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the recorded entries.
func (t *Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Clear discards all entries and resets the session start time.
func (t *Transcript) Clear() {
	t.entries = nil
	t.startedAt = time.Now()
}

// ExportMarkdown renders the transcript as a Markdown document.
func (t *Transcript) ExportMarkdown() string {
	var sb strings.Builder

	sb.WriteString("# Orthodox Translation Assistant Session\n\n")
	sb.WriteString("**Started:** ")
	sb.WriteString(t.startedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString("**Messages:** ")
	sb.WriteString(fmt.Sprintf("%d", len(t.entries)))
	sb.WriteString("\n\n---\n\n")

	for i, entry := range t.entries {
		role := "User"
		if entry.Role == models.RoleAssistant {
			role = "Assistant"
			if entry.ModelID != "" {
				role = fmt.Sprintf("Assistant (%s)", entry.ModelID)
			}
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		if !entry.Timestamp.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(entry.Timestamp.Format("15:04:05"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")
		sb.WriteString(entry.Content)
		sb.WriteString("\n")

		if i < len(t.entries)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

// DefaultFilename returns a timestamped save name like
// "orthochat-20260831-142530.md".
func (t *Transcript) DefaultFilename() string {
	return fmt.Sprintf("orthochat-%s.md", t.startedAt.Format("20060102-150405"))
}

// Save writes the Markdown export to dir using the default filename and
// returns the full path. An empty dir saves to the current directory.
func (t *Transcript) Save(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}

	path := filepath.Join(dir, t.DefaultFilename())
	if err := os.WriteFile(path, []byte(t.ExportMarkdown()), 0o644); err != nil {
		return "", fmt.Errorf("failed to save transcript: %w", err)
	}

	return path, nil
}
