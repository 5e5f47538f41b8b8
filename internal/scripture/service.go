package scripture

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	apierrors "github.com/dkoulouris/orthochat/internal/errors"
)

// DefaultBaseURL is the pericope service endpoint
const DefaultBaseURL = "https://ponomarserver-production.up.railway.app"

// Footnote pairs a reference with its fetched verse text
type Footnote struct {
	Reference string
	Text      string
}

// Service fetches scripture passages from the pericope API
type Service struct {
	client *resty.Client
	lang   string
}

// ServiceOption configures the Service
type ServiceOption func(*Service)

// WithBaseURL overrides the pericope endpoint (used in tests)
func WithBaseURL(url string) ServiceOption {
	return func(s *Service) {
		s.client.SetBaseURL(url)
	}
}

// WithLanguage sets the verse text language (default "en")
func WithLanguage(lang string) ServiceOption {
	return func(s *Service) {
		s.lang = lang
	}
}

// NewService creates a pericope client
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		client: resty.New().
			SetBaseURL(DefaultBaseURL).
			SetTimeout(15 * time.Second).
			SetHeader("Content-Type", "application/json"),
		lang: "en",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FetchPassage retrieves the verse text for a parsed reference.
func (s *Service) FetchPassage(ctx context.Context, ref Reference) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"bookName":  ref.Book,
			"lang":      s.lang,
			"whereExpr": ref.WhereExpr(),
		}).
		Post("/pericope")
	if err != nil {
		return "", apierrors.NewNetworkError(err.Error())
	}

	if resp.StatusCode() != 200 {
		return "", apierrors.NewAPIError(resp.StatusCode(), "/pericope", strings.TrimSpace(resp.String()))
	}

	verses := gjson.ParseBytes(resp.Body())
	if !verses.IsArray() {
		return "", apierrors.NewParseError("pericope response is not an array")
	}

	var sb strings.Builder
	for _, verse := range verses.Array() {
		text := strings.TrimSpace(verse.Get("text").String())
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
	}

	if sb.Len() == 0 {
		return "", apierrors.ErrNoContent
	}

	return sb.String(), nil
}

// AppendFootnotes scans annotated text for parenthesized references,
// fetches each passage, and returns the text with numbered footnote
// markers plus the footnotes themselves. References that fail to parse
// or fetch are left untouched; the annotated text itself is never
// corrupted.
func (s *Service) AppendFootnotes(ctx context.Context, text string) (string, []Footnote) {
	annotations := ExtractAnnotations(text)
	if len(annotations) == 0 {
		return text, nil
	}

	processed := text
	var footnotes []Footnote

	for _, ann := range annotations {
		ref, ok := ParseReference(ann.Reference)
		if !ok {
			continue
		}

		passage, err := s.FetchPassage(ctx, ref)
		if err != nil {
			continue
		}

		marker := fmt.Sprintf("[%d]", len(footnotes)+1)
		processed = strings.Replace(processed, ann.FullMatch, ann.FullMatch+marker, 1)
		footnotes = append(footnotes, Footnote{
			Reference: ann.Reference,
			Text:      passage,
		})
	}

	return processed, footnotes
}

// FormatFootnotes renders the footnote block appended under annotated
// output. Returns "" for an empty list.
func FormatFootnotes(footnotes []Footnote) string {
	if len(footnotes) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n\n---\n")
	for i, fn := range footnotes {
		fmt.Fprintf(&sb, "\n[%d] %s: %s\n", i+1, fn.Reference, fn.Text)
	}
	return sb.String()
}
