package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/vkarpenko/credo/internal/common"
	"github.com/vkarpenko/credo/internal/server/models"
	"github.com/vkarpenko/credo/internal/server/services"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the canonical success shape for register and login.
type authResponse struct {
	Token string                `json:"token"`
	User  *models.SanitizedUser `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return false
	}
	return true
}

// writeAuthResponse echoes the token in the X-Auth-Token header as well as
// the body, so clients can pick it up from either.
func writeAuthResponse(w http.ResponseWriter, status int, resp *services.AuthResponse) {
	w.Header().Set(common.AuthTokenHeaderName, resp.Token)
	writeJSON(w, status, authResponse{Token: resp.Token, User: resp.User})
}

func (s *HTTPServer) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "pong"})
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.auth.Register(r.Context(), &services.RegisterRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeAuthResponse(w, http.StatusCreated, resp)
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeAuthResponse(w, http.StatusOK, resp)
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; the acknowledgement is for client symmetry.
	_ = s.auth.Logout(r.Context())
	writeJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.auth.Profile(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		User *models.SanitizedUser `json:"user"`
	}{User: user})
}

type avatarUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type avatarAttachRequest struct {
	Key string `json:"key"`
}

type avatarURLResponse struct {
	URL string `json:"url"`
}

func (s *HTTPServer) handleAvatarUploadURL(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.avatars.UploadURL(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, avatarUploadResponse{Key: key, URL: url})
}

func (s *HTTPServer) handleAvatarAttach(w http.ResponseWriter, r *http.Request) {
	var req avatarAttachRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.avatars.Attach(r.Context(), userIDFromContext(r.Context()), req.Key)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		User *models.SanitizedUser `json:"user"`
	}{User: user})
}

func (s *HTTPServer) handleAvatarURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.avatars.DownloadURL(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, avatarURLResponse{URL: url})
}
