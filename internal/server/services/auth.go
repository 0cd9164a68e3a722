// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, login and issuing session JWTs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vkarpenko/credo/internal/common"
	"github.com/vkarpenko/credo/internal/dbx"
	"github.com/vkarpenko/credo/internal/logging"
	"github.com/vkarpenko/credo/internal/server/auth"
	"github.com/vkarpenko/credo/internal/server/config"
	"github.com/vkarpenko/credo/internal/server/hashing"
	"github.com/vkarpenko/credo/internal/server/models"
	"github.com/vkarpenko/credo/internal/server/repositories/repomanager"
)

// emailPattern accepts "something@domain.tld" shapes; anything with spaces
// or a missing dot in the domain is rejected.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterRequest carries the registration input. Username is optional;
// when present it must be unique.
type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Username  string
}

// AuthResponse is the canonical success shape for register and login:
// a session token plus the sanitized user projection.
type AuthResponse struct {
	Token string
	User  *models.SanitizedUser
}

// AuthService provides authentication operations:
//   - Register: validate input, create the user, mint a token
//   - Login: verify credentials and mint a token
//   - Logout: stateless acknowledgement
//   - Profile: sanitized projection for the protected surface
type AuthService struct {
	db                *sql.DB
	repomanager       repomanager.RepositoryManager
	hasher            hashing.Hasher
	logger            logging.Logger
	jwtSecret         []byte
	tokenTTL          time.Duration
	passwordMinLength int
}

// NewAuthService constructs an AuthService from repositories, the password
// hasher and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, h hashing.Hasher, l logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                db,
		repomanager:       m,
		hasher:            h,
		logger:            l.With("module", "auth_service"),
		jwtSecret:         []byte(cfg.SecretKey),
		tokenTTL:          cfg.TokenValidityDuration,
		passwordMinLength: cfg.PasswordMinLength,
	}
}

// NormalizeEmail lower-cases and trims an email identifier. All store
// lookups and writes go through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) validateRegister(req *RegisterRequest) error {
	fields := map[string]string{}

	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "is required"
	} else if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		fields["email"] = "invalid email format"
	}
	if req.Password == "" {
		fields["password"] = "is required"
	} else if len(req.Password) < s.passwordMinLength {
		fields["password"] = "must be at least " + strconv.Itoa(s.passwordMinLength) + " characters long"
	}
	if strings.TrimSpace(req.FirstName) == "" {
		fields["firstName"] = "is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		fields["lastName"] = "is required"
	}

	if len(fields) > 0 {
		return &common.ValidationError{Fields: fields}
	}
	return nil
}

// Register validates input, refuses duplicate identities naming the
// colliding field, persists the new user and returns a freshly issued token
// with the sanitized projection.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := s.validateRegister(req); err != nil {
		return nil, err
	}

	email := NormalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	digest, err := s.hasher.Hash(ctx, []byte(req.Password))
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: digest,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}

	// Pre-check and insert share one transaction so the duplicate answer is
	// computed against a consistent snapshot. The insert can still lose a
	// race against a concurrent commit; the repository maps that unique
	// violation to the same DuplicateIdentityError as the pre-check.
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.GetByEmail(ctx, email); err == nil {
			return &common.DuplicateIdentityError{Field: "email"}
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}
		if username != "" {
			if _, err := repo.GetByUsername(ctx, username); err == nil {
				return &common.DuplicateIdentityError{Field: "username"}
			} else if !errors.Is(err, common.ErrorNotFound) {
				return err
			}
		}

		created, err := repo.Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		return nil
	})
	if err != nil {
		var dup *common.DuplicateIdentityError
		if errors.As(err, &dup) {
			return nil, dup
		}
		s.logger.Error(ctx, "registration store error", "error", err)
		return nil, common.ErrorInternal
	}

	token, err := auth.IssueToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.logger.Error(ctx, "token issuance failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &AuthResponse{Token: token, User: user.Sanitized()}, nil
}

// Login verifies the (email, password) pair. An unknown email and a wrong
// password produce the same ErrInvalidCredentials so callers cannot probe
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, common.NewValidationError("credentials", "email and password are required")
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "login store error", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify([]byte(password), user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	// Best-effort: a failed last-login write never blocks the login.
	now := time.Now()
	if err := repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn(ctx, "last-login update failed", "user_id", user.ID, "error", err)
	} else {
		user.LastLoginAt = &now
	}

	token, err := auth.IssueToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.logger.Error(ctx, "token issuance failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &AuthResponse{Token: token, User: user.Sanitized()}, nil
}

// Logout acknowledges a logout. Tokens are not tracked server-side, so this
// is a stateless no-op: the real effect is the client deleting its stored
// credentials. Idempotent by construction.
func (s *AuthService) Logout(ctx context.Context) error {
	return nil
}

// Profile returns the sanitized projection for an authenticated user ID.
// A valid token whose subject no longer exists yields ErrorUnauthorized.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.SanitizedUser, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "profile store error", "error", err)
		return nil, common.ErrorInternal
	}
	return user.Sanitized(), nil
}
