package users

import (
	"context"

	"github.com/dmitrijs2005/vaultkeep/internal/server/models"
)

// Repository is the user slice of the persistence contract. Implementations
// must return common.ErrorNotFound for absent users and
// common.ErrorAlreadyExists for username/email uniqueness violations.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Exists(ctx context.Context, username, email string) (bool, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
}
