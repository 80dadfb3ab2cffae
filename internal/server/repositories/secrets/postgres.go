package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaultkeep/internal/common"
	"github.com/dmitrijs2005/vaultkeep/internal/dbx"
	"github.com/dmitrijs2005/vaultkeep/internal/server/models"
)

// PostgresRepository implements secret storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Secret, error) {
	query :=
		`SELECT id, user_id, title, content, nonce, created_at, updated_at FROM secrets
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Secret
	for rows.Next() {
		item, err := scanSecret(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, ownerID string) (*models.Secret, error) {
	query :=
		`SELECT id, user_id, title, content, nonce, created_at, updated_at FROM secrets
		 WHERE id = $1 AND user_id = $2
		 `

	row := r.db.QueryRowContext(ctx, query, id, ownerID)
	secret, err := scanSecret(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}

	return secret, nil
}

func (r *PostgresRepository) Create(ctx context.Context, secret *models.Secret) (*models.Secret, error) {
	query :=
		`INSERT INTO secrets (id, user_id, title, content, nonce)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		secret.ID, secret.UserID, secret.Title, secret.Content, secret.Nonce).Scan(&secret.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return secret, nil
}

// Update rewrites title, content, and nonce in one statement; content and
// nonce can never go stale independently. A miss on id+owner is ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, secret *models.Secret) (*models.Secret, error) {
	query :=
		`UPDATE secrets SET title = $3, content = $4, nonce = $5, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING updated_at
		 `

	var updated sql.NullTime
	err := r.db.QueryRowContext(ctx, query,
		secret.ID, secret.UserID, secret.Title, secret.Content, secret.Nonce).Scan(&updated)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if updated.Valid {
		secret.UpdatedAt = &updated.Time
	}

	return secret, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	query :=
		`DELETE FROM secrets
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}

	return n > 0, nil
}

func (r *PostgresRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	query :=
		`SELECT COUNT(*) FROM secrets
		 WHERE user_id = $1
		 `

	var count int64
	if err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}

func scanSecret(scan func(dest ...any) error) (*models.Secret, error) {
	secret := &models.Secret{}
	var updated sql.NullTime

	err := scan(&secret.ID, &secret.UserID, &secret.Title, &secret.Content, &secret.Nonce,
		&secret.CreatedAt, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if updated.Valid {
		secret.UpdatedAt = &updated.Time
	}

	return secret, nil
}
