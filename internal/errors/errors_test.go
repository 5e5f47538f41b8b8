package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAuthError(t *testing.T) {
	err := NewAuthError("key rejected by provider")
	if err.Error() != "authentication failed: key rejected by provider" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	empty := NewAuthError("")
	if empty.Error() != "authentication failed: API key was rejected" {
		t.Errorf("unexpected default message: %s", empty.Error())
	}
}

func TestAuthError_IsMissingKeySentinel(t *testing.T) {
	err := fmt.Errorf("dispatch failed: %w", NewAuthError("bad key"))

	if !errors.Is(err, ErrMissingAPIKey) {
		t.Error("wrapped AuthError should match ErrMissingAPIKey")
	}
	if !IsAuthError(err) {
		t.Error("IsAuthError should be true for wrapped AuthError")
	}
}

func TestAPIError(t *testing.T) {
	err := NewAPIError(500, "/chat/completions", "internal error")
	want := "API error [500] at /chat/completions: internal error"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}

	noStatus := NewAPIError(0, "/chat/completions", "connection reset")
	if noStatus.Error() != "API error at /chat/completions: connection reset" {
		t.Errorf("unexpected message: %s", noStatus.Error())
	}
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"api error", NewAPIError(429, "/chat/completions", "slow down"), 429},
		{"wrapped api error", fmt.Errorf("turn failed: %w", NewAPIError(502, "/x", "bad gateway")), 502},
		{"plain error", errors.New("boom"), 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetHTTPStatus(tt.err); got != tt.want {
				t.Errorf("GetHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetResponseBody(t *testing.T) {
	apiErr := &APIError{StatusCode: 400, Endpoint: "/chat/completions", Message: "bad request", Body: `{"error":"model not found"}`}
	if got := GetResponseBody(apiErr); got != `{"error":"model not found"}` {
		t.Errorf("unexpected body: %s", got)
	}
	if GetResponseBody(errors.New("plain")) != "" {
		t.Error("plain error should have no body")
	}
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		auth      bool
		rateLimit bool
		timeout   bool
		network   bool
	}{
		{"auth", NewAuthError("nope"), true, false, false, false},
		{"missing key sentinel", ErrMissingAPIKey, true, false, false, false},
		{"rate limit", NewRateLimitError("free tier exhausted"), false, true, false, false},
		{"timeout", NewTimeoutError(""), false, false, true, false},
		{"network", NewNetworkError("dial tcp: no route"), false, false, false, true},
		{"plain", errors.New("other"), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAuthError(tt.err); got != tt.auth {
				t.Errorf("IsAuthError() = %v, want %v", got, tt.auth)
			}
			if got := IsRateLimitError(tt.err); got != tt.rateLimit {
				t.Errorf("IsRateLimitError() = %v, want %v", got, tt.rateLimit)
			}
			if got := IsTimeoutError(tt.err); got != tt.timeout {
				t.Errorf("IsTimeoutError() = %v, want %v", got, tt.timeout)
			}
			if got := IsNetworkError(tt.err); got != tt.network {
				t.Errorf("IsNetworkError() = %v, want %v", got, tt.network)
			}
		})
	}
}

func TestParseError_IsSentinel(t *testing.T) {
	err := fmt.Errorf("decoding: %w", NewParseError("missing choices array"))
	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("wrapped ParseError should match ErrInvalidResponse")
	}
}
