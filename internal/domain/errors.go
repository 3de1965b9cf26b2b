package domain

import (
	"errors"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrMovieNotFound indicates the requested movie does not exist
	ErrMovieNotFound = errors.New("movie not found")

	// ErrServerOffline indicates a remote service is unreachable
	ErrServerOffline = errors.New("remote service is unreachable")

	// ErrAuthFailed indicates the catalog API key was rejected
	ErrAuthFailed = errors.New("catalog API key is invalid")

	// ErrMalformedResponse indicates a remote response did not have the expected shape
	ErrMalformedResponse = errors.New("malformed response")

	// ErrReviewsUnavailable indicates no review store is configured
	ErrReviewsUnavailable = errors.New("review store is not configured")

	// ErrInvalidTheme indicates a theme value other than light or dark
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrValidation is matched by every *ValidationError
	ErrValidation = errors.New("validation failed")
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects field-level failures for a rejected input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrValidation) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Message returns the message for a field, or "" if the field passed.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}
