// Package repomanager hands out repositories bound to a DB handle and runs
// schema migrations. Services ask the manager for a repository per call,
// passing either the shared *sql.DB or a transaction handle, so the same
// repository code runs inside and outside transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/vaultkeep/internal/dbx"
	"github.com/dmitrijs2005/vaultkeep/internal/server/repositories/secrets"
	"github.com/dmitrijs2005/vaultkeep/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Secrets(db dbx.DBTX) secrets.Repository
}
