package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const credentialColumns = `id, api_key, oauth_token, refresh_token, token_expiry, created_at, updated_at`

type CredentialStore struct {
	db *pgxpool.Pool
}

func NewCredentialStore(pool *ConnectionPool) *CredentialStore {
	return &CredentialStore{db: pool.conn}
}

// GetGoogleCredential returns the oldest credential row.
func (s *CredentialStore) GetGoogleCredential(ctx context.Context) (*domain.GoogleCredential, error) {
	row := s.db.QueryRow(ctx, `SELECT `+credentialColumns+` FROM google_credentials ORDER BY id LIMIT 1`)
	c, err := scanCredential(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get google credential: %w", err)
	}
	return c, nil
}

func (s *CredentialStore) SaveGoogleCredential(ctx context.Context, c domain.GoogleCredential) (*domain.GoogleCredential, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var id int64
	err = tx.QueryRow(ctx, `SELECT id FROM google_credentials ORDER BY id LIMIT 1 FOR UPDATE`).Scan(&id)
	var row pgx.Row
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		row = tx.QueryRow(ctx, `
			INSERT INTO google_credentials (api_key, oauth_token, refresh_token, token_expiry)
			VALUES ($1, $2, $3, $4)
			RETURNING `+credentialColumns,
			c.APIKey, c.OAuthToken, c.RefreshToken, c.TokenExpiry)
	case err != nil:
		return nil, fmt.Errorf("failed to lock google credential: %w", err)
	default:
		row = tx.QueryRow(ctx, `
			UPDATE google_credentials
			SET api_key = $2, oauth_token = $3, refresh_token = $4, token_expiry = $5, updated_at = now()
			WHERE id = $1
			RETURNING `+credentialColumns,
			id, c.APIKey, c.OAuthToken, c.RefreshToken, c.TokenExpiry)
	}

	saved, err := scanCredential(row)
	if err != nil {
		return nil, fmt.Errorf("failed to save google credential: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit google credential: %w", err)
	}
	return saved, nil
}

func scanCredential(row pgx.Row) (*domain.GoogleCredential, error) {
	var c domain.GoogleCredential
	if err := row.Scan(
		&c.ID,
		&c.APIKey,
		&c.OAuthToken,
		&c.RefreshToken,
		&c.TokenExpiry,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
