// Package prompt builds the exact text sent to the remote model for each
// parsed command. Building is pure: identical inputs always produce a
// byte-identical prompt, which the debug view relies on.
package prompt

import (
	"strings"

	"github.com/dkoulouris/orthochat/internal/command"
	"github.com/dkoulouris/orthochat/internal/glossary"
)

// OrthodoxContext is the translation instruction used when Orthodox mode
// is enabled.
const OrthodoxContext = `You are an Orthodox Christian translator from English to Chinese that uses traditional Chinese characters. You have deep knowledge of Orthodox Christian theology, liturgy, and terminology. When translating Orthodox Christian texts, please:

1. Use traditional Chinese characters (繁體中文)
2. Maintain the theological accuracy and reverence of Orthodox Christian concepts
3. Use appropriate Chinese Orthodox Christian terminology when available
4. Preserve the liturgical and spiritual tone of the original text

`

// AnnotationContext is the instruction for Bible quote detection.
const AnnotationContext = `You are an Orthodox Christian expert in theology and Bible studies.
Identify and annotate any possible quotes from the Bible in the text below.
Modify the original text so that after each identified quote, there will be a reference (in parenthesis) to the corresponding location of Bible from which the quote was taken in the standard form. e.g. John 1:2-5 refers to Gospel of John, chapter 1, verses 2-5.
After processing text return the text with Bible references (if found any). IMPORTANT: If no quotes were found in the entire text, just return the original text.
Text to analyze:`

const standardTranslateInstruction = "Please translate the following text from English to Traditional Chinese."

// Mode names the prompt-engineering path a message took
type Mode string

const (
	ModeAnnotate          Mode = "annotate"
	ModeTranslateOrthodox Mode = "translate_orthodox"
	ModeTranslateStandard Mode = "translate_standard"
	ModePlain             Mode = "plain"
)

// Indicator returns the banner shown above the transcript for a mode,
// or "" when no banner applies.
func (m Mode) Indicator() string {
	switch m {
	case ModeAnnotate:
		return "Bible Annotation Mode: identifying and referencing Bible quotes in the text"
	case ModeTranslateOrthodox:
		return "Orthodox Translation Mode: using specialized Orthodox Christian translation context"
	case ModeTranslateStandard:
		return "Standard Translation: Orthodox Christian context is disabled"
	default:
		return ""
	}
}

// Build produces the text sent to the model for a parsed command. raw is
// the user's original input, used verbatim on the plain path and when a
// standard translate has no glossary matches to inject.
func Build(cmd command.Command, raw string, orthodox bool, matches []glossary.Match) (string, Mode) {
	switch cmd.Kind {
	case command.KindAnnotate:
		return buildAnnotate(cmd.Payload), ModeAnnotate
	case command.KindTranslate:
		if orthodox {
			return buildOrthodoxTranslate(cmd.Payload, matches), ModeTranslateOrthodox
		}
		return buildStandardTranslate(cmd.Payload, raw, matches), ModeTranslateStandard
	default:
		return raw, ModePlain
	}
}

func buildAnnotate(payload string) string {
	if payload == "" {
		return AnnotationContext + "\n\n(Please provide the text you would like me to analyze for Bible quotes.)"
	}
	return AnnotationContext + "\n\n" + payload
}

func buildOrthodoxTranslate(payload string, matches []glossary.Match) string {
	if payload == "" {
		return OrthodoxContext + "\n\n(Please provide the English text you would like me to translate to traditional Chinese.)"
	}

	var sb strings.Builder
	sb.WriteString(OrthodoxContext)
	sb.WriteString(glossary.PromptBlock(matches))
	sb.WriteString("\n\nPlease translate the following text:\n\n")
	sb.WriteString(payload)
	return sb.String()
}

func buildStandardTranslate(payload, raw string, matches []glossary.Match) string {
	if payload == "" {
		return raw
	}

	// Even without the Orthodox context the glossary keeps terminology
	// consistent; with no matches the input goes through untouched.
	block := glossary.PromptBlock(matches)
	if block == "" {
		return raw
	}

	var sb strings.Builder
	sb.WriteString(standardTranslateInstruction)
	sb.WriteString(block)
	sb.WriteString("\n\n")
	sb.WriteString(payload)
	return sb.String()
}
