package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vkarpenko/credo/internal/common"
)

// errorResponse is the failure envelope: a single message, plus per-field
// messages when validation failed.
type errorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "unauthorized"})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Internal detail never reaches the client; services already logged it.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *common.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "validation error", Fields: verr.Fields})
		return
	}

	var dup *common.DuplicateIdentityError
	if errors.As(err, &dup) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: dup.Error()})
		return
	}

	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeUnauthorized(w)
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal error"})
	}
}
