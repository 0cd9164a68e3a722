// Package session persists the client-side authentication state: the
// bearer token issued by the server and the profile of the signed-in
// user. Both live in the configured state directory and survive client
// restarts.
package session

// Profile is the locally cached view of the signed-in user, as last
// returned by the server.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarKey string `json:"avatar_key,omitempty"`
}

// Store holds the session token and cached profile.
//
// Token returns the empty string when no token is stored; that is the
// signed-out state and is not an error.
type Store interface {
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error

	Profile() (*Profile, error)
	SetProfile(p *Profile) error
	ClearProfile() error

	// Clear drops both the token and the profile.
	Clear() error
}
