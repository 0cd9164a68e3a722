package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Message(t *testing.T) {
	err := NewValidationError("email", "invalid email format")
	assert.Equal(t, "validation error: email: invalid email format", err.Error())
}

func TestValidationError_MultipleFieldsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"password": "too short",
		"email":    "is required",
	}}
	assert.Equal(t, "validation error: email: is required; password: too short", err.Error())
}

func TestValidationError_MatchableWithAs(t *testing.T) {
	var target *ValidationError
	wrapped := fmt.Errorf("register: %w", NewValidationError("password", "too short"))
	if !errors.As(wrapped, &target) {
		t.Fatalf("expected errors.As to match ValidationError")
	}
	assert.Equal(t, "too short", target.Fields["password"])
}

func TestDuplicateIdentityError_Messages(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"email", "email already in use"},
		{"username", "username already taken"},
		{"phone", "phone already in use"},
	}
	for _, tc := range tests {
		err := &DuplicateIdentityError{Field: tc.field}
		assert.Equal(t, tc.want, err.Error())
	}
}
