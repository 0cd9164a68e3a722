// Package models holds the server-side domain records.
package models

import "time"

// User is the identity record. Email is stored lower-cased and is unique;
// Username is optional ("" when unset) and unique when present.
// PasswordHash never leaves the server: all outward projections go through
// Sanitized.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Bio          string
	AvatarKey    string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// SanitizedUser is the outward user projection: no password hash, no
// internal-only fields.
type SanitizedUser struct {
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

// Sanitized returns the projection of u that is safe to serialize to
// clients.
func (u *User) Sanitized() *SanitizedUser {
	return &SanitizedUser{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Bio:         u.Bio,
		AvatarKey:   u.AvatarKey,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}
