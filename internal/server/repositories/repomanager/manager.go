package repomanager

import (
	"context"
	"database/sql"

	"github.com/vkarpenko/credo/internal/dbx"
	"github.com/vkarpenko/credo/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DB handle (connection or
// transaction) and exposes a schema migration hook.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
