package glossary

import (
	"regexp"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Weights for the composite similarity score. Edit distance carries most of
// the weight; Jaro-Winkler rewards shared prefixes, which suits liturgical
// vocabulary where endings vary ("Theotokos"/"Theotokon").
const (
	levenshteinWeight = 0.6
	jaroWinklerWeight = 0.4
)

// Common theological abbreviations expanded before matching
var theologicalNormalizations = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\bSt\.`), "Saint"},
	{regexp.MustCompile(`(?i)\bBl\.`), "Blessed"},
	{regexp.MustCompile(`(?i)\bVen\.`), "Venerable"},
	{regexp.MustCompile(`(?i)\bFr\.`), "Father"},
	{regexp.MustCompile(`(?i)\bMt\.`), "Mount"},
}

var (
	levMetric = metrics.NewLevenshtein()
	jwMetric  = metrics.NewJaroWinkler()
)

// preprocess normalizes text for fuzzy comparison
func preprocess(s string) string {
	for _, n := range theologicalNormalizations {
		s = n.pattern.ReplaceAllString(s, n.replacement)
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// fuzzyScore returns a 0-100 similarity between a glossary term and the
// best-matching token window of the text. Both inputs are expected in
// lowercase; preprocessing handles abbreviations.
func fuzzyScore(term, text string) float64 {
	term = preprocess(term)
	text = preprocess(text)
	if term == "" || text == "" {
		return 0
	}

	termTokens := wordRe.FindAllString(term, -1)
	textTokens := wordRe.FindAllString(text, -1)
	if len(termTokens) == 0 || len(textTokens) == 0 {
		return 0
	}
	if len(termTokens) > len(textTokens) {
		return compositeSimilarity(strings.Join(termTokens, " "), strings.Join(textTokens, " "))
	}

	// Slide a window of the term's token length across the text and keep
	// the best window score.
	window := len(termTokens)
	joined := strings.Join(termTokens, " ")
	best := 0.0
	for i := 0; i+window <= len(textTokens); i++ {
		candidate := strings.Join(textTokens[i:i+window], " ")
		if score := compositeSimilarity(joined, candidate); score > best {
			best = score
		}
	}

	return best
}

func compositeSimilarity(a, b string) float64 {
	lev := strutil.Similarity(a, b, levMetric)
	jw := strutil.Similarity(a, b, jwMetric)
	return (lev*levenshteinWeight + jw*jaroWinklerWeight) * 100
}
