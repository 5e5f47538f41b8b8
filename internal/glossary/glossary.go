// Package glossary loads the Orthodox terminology dictionaries and finds
// the terms relevant to a text being translated. Matched terms are injected
// into the translation prompt as an authoritative glossary so the model
// keeps specialized vocabulary consistent.
package glossary

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Scores assigned by the non-fuzzy matching passes.
const (
	scoreDirect    = 100.0
	scoreWordLevel = 90.0
)

// Match is a dictionary term found in the input text
type Match struct {
	Term        string  // English term
	Translation string  // Traditional Chinese rendering
	Score       float64 // 0-100, higher is a stronger match
}

// Glossary holds the loaded terminology and matching configuration
type Glossary struct {
	terms    map[string]string // English term -> Traditional Chinese
	minScore float64
}

// New creates an empty glossary with the given fuzzy-match threshold
func New(minScore int) *Glossary {
	return &Glossary{
		terms:    make(map[string]string),
		minScore: float64(minScore),
	}
}

// LoadDir loads every .jsonl file in dir. Each line is a single
// {"English term": "translation"} object; malformed lines are skipped.
// A missing directory yields an empty glossary, not an error.
func LoadDir(dir string, minScore int) (*Glossary, error) {
	g := New(minScore)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return g, nil
		}
		return nil, fmt.Errorf("failed to read glossary directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".jsonl" {
			continue
		}
		if err := g.loadFile(filepath.Join(dir, entry.Name())); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (g *Glossary) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open glossary file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry map[string]string
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue // Skip invalid lines
		}
		for term, translation := range entry {
			term = strings.TrimSpace(term)
			translation = strings.TrimSpace(translation)
			if term != "" && translation != "" {
				g.terms[term] = translation
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read glossary file %s: %w", path, err)
	}
	return nil
}

// Add inserts a single term. Mostly useful in tests.
func (g *Glossary) Add(term, translation string) {
	g.terms[term] = translation
}

// Len returns the number of loaded terms
func (g *Glossary) Len() int {
	return len(g.terms)
}

var wordRe = regexp.MustCompile(`\w+`)

// FindMatches locates glossary terms in text using three passes: direct
// case-insensitive substring, word-level presence for multiword terms, and
// fuzzy similarity above the configured threshold. Duplicates keep the
// highest score; results are sorted by score descending, then by term for
// a stable order.
func (g *Glossary) FindMatches(text string) []Match {
	if len(g.terms) == 0 || strings.TrimSpace(text) == "" {
		return nil
	}

	lowerText := strings.ToLower(text)
	textWords := make(map[string]bool)
	for _, w := range wordRe.FindAllString(lowerText, -1) {
		textWords[w] = true
	}

	best := make(map[string]float64)

	for term := range g.terms {
		lowerTerm := strings.ToLower(term)

		if strings.Contains(lowerText, lowerTerm) {
			best[term] = scoreDirect
			continue
		}

		termWords := wordRe.FindAllString(lowerTerm, -1)
		if len(termWords) > 1 && allWordsPresent(termWords, textWords) {
			best[term] = scoreWordLevel
			continue
		}

		if score := fuzzyScore(lowerTerm, lowerText); score >= g.minScore {
			best[term] = score
		}
	}

	matches := make([]Match, 0, len(best))
	for term, score := range best {
		matches = append(matches, Match{
			Term:        term,
			Translation: g.terms[term],
			Score:       score,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Term < matches[j].Term
	})

	return matches
}

func allWordsPresent(termWords []string, textWords map[string]bool) bool {
	for _, w := range termWords {
		if !textWords[w] {
			return false
		}
	}
	return true
}

// PromptBlock formats matches into the glossary section of a translation
// prompt. Returns "" when there are no matches.
func PromptBlock(matches []Match) string {
	if len(matches) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\nWhen translating the text, you MUST use the following dictionary of special Orthodox Christian terms:\n\n")
	for _, m := range matches {
		fmt.Fprintf(&sb, "- %q: %q\n", m.Term, m.Translation)
	}
	sb.WriteString("\nThese translations for specialized Orthodox terms are authoritative and must be used exactly as provided.\n")

	return sb.String()
}
