package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors for the API error taxonomy. Callers match with errors.Is
// on the cause chain.
var (
	// ErrUnavailable indicates a transport-level failure: the backend could
	// not be reached or did not produce a response.
	ErrUnavailable = errors.New("service unavailable")

	// ErrUnauthorized indicates the backend rejected the call for
	// authorization reasons (missing, invalid or expired token).
	ErrUnauthorized = errors.New("not authorized")

	ErrNotFound = errors.New("not found")
)

// APIError carries a non-2xx backend response: its status code and the
// server-provided message when one was decoded.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// FieldError is used to indicate an error with a specific form field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}
