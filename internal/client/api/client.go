// Package api is the typed HTTP client for the Credo server. Every
// request goes through a session-aware transport that attaches the
// stored bearer token, captures freshly issued tokens from responses,
// and drops the local session when the server rejects the token.
package api

import (
	"context"
	"io"
	"time"
)

// User mirrors the server's outward user projection.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username,omitempty"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Bio         string     `json:"bio,omitempty"`
	AvatarKey   string     `json:"avatarKey,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// RegisterParams carries the fields of a registration request.
type RegisterParams struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username,omitempty"`
}

// AuthResult is what register and login return.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Client is the operations the CLI needs from the server.
type Client interface {
	Register(ctx context.Context, params *RegisterParams) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*User, error)
	Ping(ctx context.Context) error

	AvatarUploadURL(ctx context.Context) (key, url string, err error)
	UploadAvatar(ctx context.Context, url string, body io.Reader, size int64) error
	AttachAvatar(ctx context.Context, key string) (*User, error)
	AvatarURL(ctx context.Context) (string, error)

	Close() error
}
