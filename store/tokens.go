package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// StoreToken persists an issued token pair for later refresh validation.
func (s *Store) StoreToken(ctx context.Context, username, tokenID, refreshTokenID string, expiration time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO token (username, token_id, refresh_token_id, expiration)
		VALUES (?, ?, ?, ?)`,
		username, tokenID, refreshTokenID, expiration,
	)
	return errors.Wrap(err, "insert token")
}

// ConsumeToken removes a stored token pair and reports whether it was still
// valid. Each refresh token is single use.
func (s *Store) ConsumeToken(ctx context.Context, username, tokenID, refreshTokenID string) (bool, error) {
	var expiration time.Time
	err := s.db.QueryRowContext(ctx, `
		DELETE FROM token
		WHERE username = ?
			AND token_id = ?
			AND refresh_token_id = ?
		RETURNING expiration`,
		username, tokenID, refreshTokenID,
	).Scan(&expiration)
	if isNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "consume token")
	}
	return expiration.After(time.Now()), nil
}
