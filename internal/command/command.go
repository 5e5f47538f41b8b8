// Package command parses chat input into assistant commands.
//
// Input beginning with "translate" or "annotate" (case-insensitive, the
// keyword followed by whitespace or end of input) selects that command;
// everything else is a plain passthrough message.
package command

import (
	"strings"
	"unicode"
)

// Kind identifies how a message should be dispatched
type Kind string

const (
	// KindTranslate renders English into Traditional Chinese
	KindTranslate Kind = "translate"
	// KindAnnotate detects Bible quotations and appends references
	KindAnnotate Kind = "annotate"
	// KindPlain forwards the input with no special instruction
	KindPlain Kind = "plain"
)

// Command is a parsed chat input
type Command struct {
	Kind    Kind
	Payload string
}

// Parse classifies raw input. For translate/annotate the payload is the
// text after the keyword with surrounding whitespace trimmed; for plain
// the original input is preserved verbatim.
func Parse(input string) Command {
	if payload, ok := matchKeyword(input, "translate"); ok {
		return Command{Kind: KindTranslate, Payload: payload}
	}
	if payload, ok := matchKeyword(input, "annotate"); ok {
		return Command{Kind: KindAnnotate, Payload: payload}
	}
	return Command{Kind: KindPlain, Payload: input}
}

// matchKeyword checks for a leading keyword. The keyword only counts when
// the rest of the input is empty or starts with whitespace, so "translated
// works" stays a plain message.
func matchKeyword(input, keyword string) (string, bool) {
	trimmed := strings.TrimLeftFunc(input, unicode.IsSpace)
	if len(trimmed) < len(keyword) {
		return "", false
	}
	if !strings.EqualFold(trimmed[:len(keyword)], keyword) {
		return "", false
	}

	rest := trimmed[len(keyword):]
	if rest != "" && !unicode.IsSpace(rune(rest[0])) {
		return "", false
	}

	return strings.TrimSpace(rest), true
}
