// Package api provides the OpenRouter chat-completions client.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"

	apierrors "github.com/dkoulouris/orthochat/internal/errors"
	"github.com/dkoulouris/orthochat/internal/models"
)

// Client talks to the OpenRouter chat-completions endpoint through the
// OpenAI-compatible SDK.
type Client struct {
	inner       openai.Client
	apiKey      string
	temperature float64
	maxTokens   int64
	timeout     time.Duration
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithTemperature overrides the sampling temperature
func WithTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.temperature = t
	}
}

// WithMaxTokens overrides the completion token limit
func WithMaxTokens(n int64) ClientOption {
	return func(c *Client) {
		c.maxTokens = n
	}
}

// WithTimeout overrides the per-request timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates an OpenRouter client. The key may be empty; Generate
// then fails fast with ErrMissingAPIKey before any network I/O.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	client := &Client{
		apiKey:      apiKey,
		temperature: models.DefaultTemperature,
		maxTokens:   models.DefaultMaxTokens,
		timeout:     60 * time.Second,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.inner = openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(models.BaseURL),
		option.WithHeader("HTTP-Referer", models.RefererHeader),
		option.WithHeader("X-Title", models.TitleHeader),
		option.WithRequestTimeout(client.timeout),
		option.WithMaxRetries(0), // Failures are surfaced per turn, never retried
	)

	return client
}

// Generate sends the transcript to the given model and returns the
// assistant's reply text.
func (c *Client) Generate(ctx context.Context, modelID string, messages []models.Message) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", apierrors.ErrMissingAPIKey
	}
	if len(messages) == 0 {
		return "", apierrors.ErrEmptyPrompt
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(modelID),
		Messages:    toParams(messages),
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(c.maxTokens),
	}

	completion, err := c.inner.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", mapError(err)
	}

	if len(completion.Choices) == 0 {
		return "", apierrors.ErrNoContent
	}

	text := completion.Choices[0].Message.Content
	if text == "" {
		return "", apierrors.ErrNoContent
	}

	return text, nil
}

// Ping verifies the key and connectivity with a minimal request.
func (c *Client) Ping(ctx context.Context, modelID string) error {
	_, err := c.Generate(ctx, modelID, []models.Message{
		models.UserMessage("Hello, please respond with just 'API test successful'"),
	})
	return err
}

func toParams(messages []models.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case models.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

// mapError translates SDK and transport failures into the typed errors
// the UI knows how to explain.
func mapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		message := apiErr.Error()
		body := apiErr.RawJSON()
		if m := gjson.Get(body, "error.message"); m.Exists() {
			message = m.String()
		}

		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apierrors.NewAuthError(message)
		case http.StatusTooManyRequests:
			return apierrors.NewRateLimitError(message)
		default:
			return &apierrors.APIError{
				StatusCode: apiErr.StatusCode,
				Endpoint:   models.EndpointChat,
				Message:    message,
				Body:       body,
			}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(err.Error())
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apierrors.NewTimeoutError(netErr.Error())
	}

	return apierrors.NewNetworkError(err.Error())
}
