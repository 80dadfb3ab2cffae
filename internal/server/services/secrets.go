package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaultkeep/internal/common"
	"github.com/dmitrijs2005/vaultkeep/internal/cryptox"
	"github.com/dmitrijs2005/vaultkeep/internal/server/models"
	"github.com/dmitrijs2005/vaultkeep/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const maxTitleLength = 255

// SecretService implements the owner-bound secret operations. Content is
// encrypted before it reaches the repository and decrypted after it comes
// back; the repository only ever sees ciphertext. Every operation takes the
// caller's user id as the owner scope, so a secret belonging to someone else
// is indistinguishable from a missing one.
type SecretService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cipher      *cryptox.Cipher
}

func NewSecretService(db *sql.DB, m repomanager.RepositoryManager, cipher *cryptox.Cipher) *SecretService {
	return &SecretService{
		db:          db,
		repomanager: m,
		cipher:      cipher,
	}
}

// List returns the caller's secrets, newest first. Content stays encrypted;
// listing never exposes plaintext.
func (s *SecretService) List(ctx context.Context, ownerID string) ([]*models.Secret, error) {
	repo := s.repomanager.Secrets(s.db)

	result, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing secrets: %w", err)
	}

	return result, nil
}

// Get fetches one secret within the owner scope and returns it together with
// the decrypted content. A decryption failure is surfaced, never swallowed:
// it means data corruption or a key mismatch.
func (s *SecretService) Get(ctx context.Context, id, ownerID string) (*models.Secret, string, error) {
	repo := s.repomanager.Secrets(s.db)

	secret, err := repo.Get(ctx, id, ownerID)
	if err != nil {
		return nil, "", err
	}

	plaintext, err := s.cipher.Decrypt(secret.Content, secret.Nonce)
	if err != nil {
		if errors.Is(err, common.ErrDecryptionFailed) {
			return nil, "", common.ErrDecryptionFailed
		}
		return nil, "", common.ErrorInternal
	}

	return secret, plaintext, nil
}

// Create encrypts the content and stores a new secret owned by ownerID.
// Ownership always comes from the authenticated caller, never from a payload.
func (s *SecretService) Create(ctx context.Context, ownerID, title, content string) (*models.Secret, error) {
	if err := validateSecretInput(title, content); err != nil {
		return nil, err
	}

	ciphertext, nonce, err := s.cipher.Encrypt(content)
	if err != nil {
		return nil, err
	}

	secret := &models.Secret{
		ID:      uuid.NewString(),
		UserID:  ownerID,
		Title:   title,
		Content: ciphertext,
		Nonce:   nonce,
	}

	created, err := s.repomanager.Secrets(s.db).Create(ctx, secret)
	if err != nil {
		return nil, fmt.Errorf("error creating secret: %w", err)
	}

	return created, nil
}

// Update re-encrypts the content and rewrites title, ciphertext, and nonce
// together within the owner scope.
func (s *SecretService) Update(ctx context.Context, id, ownerID, title, content string) (*models.Secret, error) {
	if err := validateSecretInput(title, content); err != nil {
		return nil, err
	}

	ciphertext, nonce, err := s.cipher.Encrypt(content)
	if err != nil {
		return nil, err
	}

	secret := &models.Secret{
		ID:      id,
		UserID:  ownerID,
		Title:   title,
		Content: ciphertext,
		Nonce:   nonce,
	}

	updated, err := s.repomanager.Secrets(s.db).Update(ctx, secret)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the secret within the owner scope; a miss is ErrorNotFound.
func (s *SecretService) Delete(ctx context.Context, id, ownerID string) error {
	deleted, err := s.repomanager.Secrets(s.db).Delete(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("error deleting secret: %w", err)
	}
	if !deleted {
		return common.ErrorNotFound
	}

	return nil
}

func validateSecretInput(title, content string) error {
	if title == "" || content == "" {
		return fmt.Errorf("%w: title and content are required", common.ErrorInvalidInput)
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", common.ErrorInvalidInput, maxTitleLength)
	}
	return nil
}
