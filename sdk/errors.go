package sdk

import (
	"errors"
	"fmt"
	"net/http"
)

// Common SDK errors that clients can check for specific error handling.
var (
	// ErrInvalidConfig indicates the client configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrMissingAuth indicates required authentication credentials were not provided.
	ErrMissingAuth = errors.New("missing authentication credentials")

	// ErrUnauthorized indicates the provided credentials are invalid.
	ErrUnauthorized = errors.New("unauthorized: invalid credentials")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimited indicates the request was rate limited by the provider.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServerError indicates an internal provider error occurred.
	ErrServerError = errors.New("internal server error")

	// ErrBadRequest indicates the request was malformed or rejected.
	ErrBadRequest = errors.New("bad request")
)

// APIError is a non-2xx response from the provider. It unwraps to the
// sentinel matching its status code, so errors.Is(err, ErrNotFound) works.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int `json:"-"`

	// Operation is the service method that failed (e.g., "SoftLayer_Account/getHardware").
	Operation string `json:"-"`

	// Message is the provider's error text.
	Message string `json:"error"`

	// Code is the provider's exception class (e.g., "SoftLayer_Exception_ObjectNotFound").
	Code string `json:"code"`
}

// Error implements error.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%s, status %d)", e.Operation, msg, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Operation, msg, e.StatusCode)
}

// Unwrap maps the status code to a sentinel error.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.StatusCode >= 500:
		return ErrServerError
	case e.StatusCode >= 400:
		return ErrBadRequest
	default:
		return nil
	}
}
