// Package scripture resolves Bible references found in annotated model
// output and decorates the text with verse footnotes fetched from the
// pericope service.
package scripture

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Reference is a parsed scripture location
type Reference struct {
	Book       string // Canonical API book name, e.g. "1cor"
	Chapter    int
	VerseStart int
	VerseEnd   int // Equal to VerseStart for single-verse references
	Raw        string
}

// WhereExpr returns the verse selection clause the pericope API expects
func (r Reference) WhereExpr() string {
	return fmt.Sprintf("chapter=%d AND verse>=%d AND verse<=%d", r.Chapter, r.VerseStart, r.VerseEnd)
}

// bookAliases maps the names and abbreviations models emit to the
// pericope API's book identifiers.
var bookAliases = map[string]string{
	"1 corinthians": "1cor", "1 cor": "1cor", "i cor": "1cor", "i corinthians": "1cor",
	"2 corinthians": "2cor", "2 cor": "2cor", "ii cor": "2cor", "ii corinthians": "2cor",
	"1 thessalonians": "1thess", "1 thess": "1thess", "i thess": "1thess", "i thessalonians": "1thess",
	"2 thessalonians": "2thess", "2 thess": "2thess", "ii thess": "2thess", "ii thessalonians": "2thess",
	"1 timothy": "1tim", "1 tim": "1tim", "i tim": "1tim", "i timothy": "1tim",
	"2 timothy": "2tim", "2 tim": "2tim", "ii tim": "2tim", "ii timothy": "2tim",
	"1 peter": "1pet", "1 pet": "1pet", "i pet": "1pet", "i peter": "1pet",
	"2 peter": "2pet", "2 pet": "2pet", "ii pet": "2pet", "ii peter": "2pet",
	"1 john": "1john", "1 jn": "1john", "i jn": "1john", "i john": "1john",
	"2 john": "2john", "2 jn": "2john", "ii jn": "2john", "ii john": "2john",
	"3 john": "3john", "3 jn": "3john", "iii jn": "3john", "iii john": "3john",
	"1 kings": "1kings", "1 kgs": "1kings", "i kgs": "1kings", "i kings": "1kings",
	"2 kings": "2kings", "2 kgs": "2kings", "ii kgs": "2kings", "ii kings": "2kings",
	"1 samuel": "1sam", "1 sam": "1sam", "i sam": "1sam", "i samuel": "1sam",
	"2 samuel": "2sam", "2 sam": "2sam", "ii sam": "2sam", "ii samuel": "2sam",
	"1 chronicles": "1chron", "1 chron": "1chron", "i chron": "1chron", "i chronicles": "1chron",
	"2 chronicles": "2chron", "2 chron": "2chron", "ii chron": "2chron", "ii chronicles": "2chron",
	"matthew": "matthew", "mark": "mark", "luke": "luke", "john": "john",
	"acts": "acts", "romans": "rom", "galatians": "gal", "ephesians": "eph",
	"philippians": "phil", "colossians": "col", "titus": "titus", "philemon": "philem",
	"hebrews": "heb", "james": "james", "jude": "jude", "revelation": "rev",
	"genesis": "gen", "exodus": "exod", "leviticus": "lev", "numbers": "num",
	"deuteronomy": "deut", "joshua": "josh", "judges": "judg", "ruth": "ruth",
	"ezra": "ezra", "nehemiah": "neh", "esther": "esth", "job": "job",
	"psalms": "ps", "psalm": "ps", "proverbs": "prov", "ecclesiastes": "eccl",
	"song of solomon": "song", "isaiah": "isa", "jeremiah": "jer", "lamentations": "lam",
	"ezekiel": "ezek", "daniel": "dan", "hosea": "hos", "joel": "joel",
	"amos": "amos", "obadiah": "obad", "jonah": "jonah", "micah": "mic",
	"nahum": "nah", "habakkuk": "hab", "zephaniah": "zeph", "haggai": "hag",
	"zechariah": "zech", "malachi": "mal",
}

// referenceRe matches "Book 3:16" or "Book 3:16-18" with flexible spacing
var referenceRe = regexp.MustCompile(`^([\w\s]+?)\s+(\d+)\s*:\s*(\d+)(?:\s*-\s*(\d+))?$`)

// annotationRe finds parenthesized references inside annotated text
var annotationRe = regexp.MustCompile(`\(([\w\s]+?\s+\d+\s*:\s*\d+(?:\s*-\s*\d+)?)\)`)

// ParseReference parses a reference like "John 3:16" or "(1 Cor 13:4-7)".
// Returns false when the text is not a recognizable reference.
func ParseReference(raw string) (Reference, bool) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	m := referenceRe.FindStringSubmatch(s)
	if m == nil {
		return Reference{}, false
	}

	book := strings.ToLower(strings.TrimSpace(m[1]))
	apiBook, ok := bookAliases[book]
	if !ok {
		apiBook = strings.ReplaceAll(book, " ", "")
	}

	chapter, _ := strconv.Atoi(m[2])
	start, _ := strconv.Atoi(m[3])
	end := start
	if m[4] != "" {
		end, _ = strconv.Atoi(m[4])
	}

	return Reference{
		Book:       apiBook,
		Chapter:    chapter,
		VerseStart: start,
		VerseEnd:   end,
		Raw:        s,
	}, true
}

// Annotation is one parenthesized reference found in annotated text
type Annotation struct {
	Reference string // e.g. "John 3:16"
	FullMatch string // e.g. "(John 3:16)"
}

// ExtractAnnotations finds every parenthesized reference in order of
// appearance.
func ExtractAnnotations(text string) []Annotation {
	matches := annotationRe.FindAllStringSubmatch(text, -1)
	out := make([]Annotation, 0, len(matches))
	for _, m := range matches {
		out = append(out, Annotation{
			Reference: m[1],
			FullMatch: m[0],
		})
	}
	return out
}
