package hub01

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the API failure classes. Every *APIError unwraps to
// one of these, so callers can match narrowly with errors.Is or broadly
// with errors.As.
var (
	// ErrUnauthenticated indicates an authentication failure (401)
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrPermissionDenied indicates the token lacks access (403)
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotFound indicates the resource does not exist (404)
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates the server rejected the submitted fields (422)
	ErrValidation = errors.New("validation failed")
)

// APIError represents a Hub01 Shop API failure. StatusCode is zero when the
// request never produced an HTTP response (DNS, connection, timeout).
type APIError struct {
	StatusCode int
	Message    string
	// Errors carries the field-level detail from 422 responses, verbatim.
	Errors map[string][]string
	// Err is the underlying transport error, if any.
	Err error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("hub01: request failed: %s", e.Message)
	}
	return fmt.Sprintf("hub01: API error %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status code onto the matching sentinel error so that
// errors.Is(err, hub01.ErrNotFound) and friends work.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrPermissionDenied
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnprocessableEntity:
		return ErrValidation
	}
	return e.Err
}

// IsUnauthenticated checks if the error indicates an authentication failure
func (e *APIError) IsUnauthenticated() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsPermissionDenied checks if the error indicates a permission failure
func (e *APIError) IsPermissionDenied() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsValidation checks if the error indicates a validation failure
func (e *APIError) IsValidation() bool {
	return e.StatusCode == http.StatusUnprocessableEntity
}
