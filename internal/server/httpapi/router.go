package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *HTTPServer) newRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/ping", s.handlePing).Methods(http.MethodGet)

	authR := r.PathPrefix("/api/auth").Subrouter()
	authR.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	authR.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	authR.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	protR := r.PathPrefix("/api/protected").Subrouter()
	protR.Use(s.requireAuth)
	protR.HandleFunc("/me", s.handleMe).Methods(http.MethodGet)
	protR.HandleFunc("/avatar/upload-url", s.handleAvatarUploadURL).Methods(http.MethodGet)
	protR.HandleFunc("/avatar", s.handleAvatarAttach).Methods(http.MethodPut)
	protR.HandleFunc("/avatar", s.handleAvatarURL).Methods(http.MethodGet)

	return r
}
