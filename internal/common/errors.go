// Package common defines shared constants and sentinel errors used across
// client and server layers of Credo. Callers should use errors.Is to match
// the sentinel values and errors.As for the structured error types.
package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors. Expired, tampered and malformed tokens all collapse to
	// ErrInvalidToken before leaving the auth package, so callers can only
	// observe "unauthorized".
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidCredentials covers both unknown identifier and wrong
	// password. The message is deliberately identical for both cases.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries field-level messages for user-fixable input
// problems.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, msg))
	}
	sort.Strings(parts)
	return "validation error: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// DuplicateIdentityError reports a uniqueness collision during registration.
// Field names which identifier collided ("email" or "username").
type DuplicateIdentityError struct {
	Field string
}

func (e *DuplicateIdentityError) Error() string {
	switch e.Field {
	case "email":
		return "email already in use"
	case "username":
		return "username already taken"
	default:
		return e.Field + " already in use"
	}
}
