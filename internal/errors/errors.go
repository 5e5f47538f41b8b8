// Package errors provides custom error types for the OpenRouter API client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrMissingAPIKey   = errors.New("no API key configured")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrNoContent       = errors.New("no content in response")
	ErrEmptyPrompt     = errors.New("prompt cannot be empty")
)

// AuthError represents a rejected or missing credential
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed: API key was rejected"
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// Is allows comparison with the missing-key sentinel
func (e *AuthError) Is(target error) bool {
	if target == ErrMissingAPIKey {
		return true
	}
	_, ok := target.(*AuthError)
	return ok
}

// NewAuthError creates a new AuthError
func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message}
}

// APIError represents a non-success response from the remote API
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// RateLimitError represents an HTTP 429 from the remote API
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	if e.Message == "" {
		return "rate limit exceeded"
	}
	return fmt.Sprintf("rate limit exceeded: %s", e.Message)
}

// NewRateLimitError creates a new RateLimitError
func NewRateLimitError(message string) *RateLimitError {
	return &RateLimitError{Message: message}
}

// TimeoutError represents a request timeout
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Message)
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(message string) *TimeoutError {
	return &TimeoutError{Message: message}
}

// NetworkError represents a connectivity failure before any response arrived
type NetworkError struct {
	Message string
}

func (e *NetworkError) Error() string {
	if e.Message == "" {
		return "network error"
	}
	return fmt.Sprintf("network error: %s", e.Message)
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(message string) *NetworkError {
	return &NetworkError{Message: message}
}

// ParseError represents a response parsing error
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with the invalid-response sentinel
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message string) *ParseError {
	return &ParseError{Message: message}
}

// GetHTTPStatus extracts the HTTP status code from an error chain, or 0
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetEndpoint extracts the endpoint from an error chain, or ""
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	return ""
}

// GetResponseBody extracts the raw response body from an error chain, or ""
func GetResponseBody(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	return ""
}

// IsAuthError reports whether the error is credential-related
func IsAuthError(err error) bool {
	if errors.Is(err, ErrMissingAPIKey) {
		return true
	}
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsRateLimitError reports whether the error is a usage-limit rejection
func IsRateLimitError(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}

// IsTimeoutError reports whether the error is a timeout
func IsTimeoutError(err error) bool {
	var toErr *TimeoutError
	return errors.As(err, &toErr)
}

// IsNetworkError reports whether the error is a connectivity failure
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
