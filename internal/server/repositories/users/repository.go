package users

import (
	"context"
	"time"

	"github.com/vkarpenko/credo/internal/server/models"
)

// Repository persists user records. Lookup methods return
// common.ErrorNotFound when no row matches; Create returns
// *common.DuplicateIdentityError when a uniqueness constraint is violated,
// so a race between a pre-check and the insert surfaces the same way as the
// pre-check itself.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdateAvatarKey(ctx context.Context, id string, key string) (*models.User, error)
}
