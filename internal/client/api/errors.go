package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized means the server rejected the request for lack of a
// valid session. The transport has already cleared the stored token by
// the time callers see this.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUnavailable means the server could not be reached at all.
var ErrUnavailable = errors.New("server unavailable")

// APIError is a non-2xx response other than 401: the server's message
// plus per-field validation details when present.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}
