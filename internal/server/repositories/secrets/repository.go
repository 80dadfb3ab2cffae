// Package secrets provides PostgreSQL-backed storage for encrypted secret
// records. Every read, update, and delete takes the owner id as a required
// parameter, so ownership scoping cannot be skipped by a caller.
package secrets

import (
	"context"

	"github.com/dmitrijs2005/vaultkeep/internal/server/models"
)

// Repository is the secret slice of the persistence contract. A secret that
// does not exist and a secret owned by someone else are both
// common.ErrorNotFound: the two cases must stay indistinguishable.
type Repository interface {
	// ListByOwner returns the owner's secrets ordered newest-first.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Secret, error)
	Get(ctx context.Context, id, ownerID string) (*models.Secret, error)
	Create(ctx context.Context, secret *models.Secret) (*models.Secret, error)
	Update(ctx context.Context, secret *models.Secret) (*models.Secret, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id, ownerID string) (bool, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
}
