package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/vkarpenko/credo/internal/common"
	"github.com/vkarpenko/credo/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// userIDFromContext extracts the authenticated user's ID, as injected by
// requireAuth.
func userIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// extractToken pulls the bearer token from the Authorization header
// (preferred) or the X-Auth-Token compatibility header. A stored value that
// already carries the scheme prefix is tolerated on both.
func extractToken(r *http.Request) string {
	raw := r.Header.Get(common.AuthorizationHeaderName)
	if raw == "" {
		raw = r.Header.Get(common.AuthTokenHeaderName)
	}
	return strings.TrimSpace(strings.TrimPrefix(raw, common.BearerPrefix))
}

// requireAuth verifies the session token and injects the subject user ID
// into the request context. Missing, expired, tampered and malformed tokens
// all produce the same generic 401.
func (s *HTTPServer) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			writeUnauthorized(w)
			return
		}

		userID, err := auth.SubjectFromToken(token, s.jwtSecret)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
