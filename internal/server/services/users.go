// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, password changes, and the
// profile summary.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaultkeep/internal/common"
	"github.com/dmitrijs2005/vaultkeep/internal/cryptox"
	"github.com/dmitrijs2005/vaultkeep/internal/dbx"
	"github.com/dmitrijs2005/vaultkeep/internal/server/auth"
	"github.com/dmitrijs2005/vaultkeep/internal/server/models"
	"github.com/dmitrijs2005/vaultkeep/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Session bundles a freshly issued token with its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Profile is the authenticated user's account summary.
type Profile struct {
	Username     string
	Email        string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	TotalSecrets int64
}

// UserService provides authentication-related operations:
//   - Register: create a user and issue a first session
//   - Login: verify credentials and issue a session
//   - ChangePassword / GetProfile for the authenticated account
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *cryptox.PasswordHasher
	tokens      *auth.TokenService
}

// NewUserService constructs a UserService using repositories and the
// security services.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *cryptox.PasswordHasher, tokens *auth.TokenService) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
	}
}

// Register creates a new user and returns it together with an initial
// session, so a fresh registration behaves like a login. A username or email
// already in use yields ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, *Session, error) {

	if username == "" || email == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: username, email and password are required", common.ErrorInvalidInput)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	// The existence check and insert run in one transaction; the unique
	// constraints still backstop a concurrent registration.
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.Exists(ctx, username, email)
		if err != nil {
			return fmt.Errorf("error checking user existence: %w", err)
		}
		if exists {
			return common.ErrorAlreadyExists
		}

		if _, err := repo.Create(ctx, user); err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, nil, common.ErrorAlreadyExists
		}
		return nil, nil, err
	}

	session, err := s.newSession(user)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Login verifies the credentials and, on success, stamps last_login_at and
// returns a new session. A missing user and a wrong password are both
// ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, *Session, error) {

	if username == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: username and password are required", common.ErrorInvalidInput)
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}
	if !ok {
		return nil, nil, common.ErrorUnauthorized
	}

	now := time.Now()
	user.LastLoginAt = &now
	if _, err := repo.Update(ctx, user); err != nil {
		return nil, nil, common.ErrorInternal
	}

	session, err := s.newSession(user)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// ChangePassword re-hashes the account password after verifying the current
// one. A wrong current password is ErrorInvalidInput, not ErrorUnauthorized:
// the caller is already authenticated.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {

	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: current and new passwords are required", common.ErrorInvalidInput)
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(currentPassword, user.PasswordHash)
	if err != nil {
		return common.ErrorInternal
	}
	if !ok {
		return fmt.Errorf("%w: current password is incorrect", common.ErrorInvalidInput)
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = passwordHash
	if _, err := repo.Update(ctx, user); err != nil {
		return err
	}

	return nil
}

// GetProfile returns the account summary including the owned secret count.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.repomanager.Secrets(s.db).CountByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Username:     user.Username,
		Email:        user.Email,
		CreatedAt:    user.CreatedAt,
		LastLoginAt:  user.LastLoginAt,
		TotalSecrets: count,
	}, nil
}

func (s *UserService) newSession(user *models.User) (*Session, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Session{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokens.Validity()),
	}, nil
}
