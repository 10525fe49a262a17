package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRefresh covers unknown, revoked and expired refresh tokens.
var ErrInvalidRefresh = errors.New("invalid refresh token")

// TokenRepo stores refresh tokens by their SHA-256 hash only.
type TokenRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewTokenRepo(db *sql.DB) *TokenRepo {
	return &TokenRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// StoreRefresh records a freshly issued token.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)",
		userID, tokenHash, exp.UTC()); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// ValidateRefresh returns the owner of a live token.  Revoked and expired
// tokens are filtered in SQL so they look exactly like unknown ones.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var userID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM refresh_tokens
		  WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > ?
		  LIMIT 1`,
		tokenHash, r.now()).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrInvalidRefresh
	}
	if err != nil {
		return 0, fmt.Errorf("validate refresh token: %w", err)
	}
	return userID, nil
}

// RevokeByHash revokes one live token.  The conditional UPDATE is the
// claim: of two concurrent calls with the same hash only one affects a row,
// the other gets ErrInvalidRefresh, as do unknown, revoked and expired tokens.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	n, err := r.revoke(ctx, "token_hash = ? AND expires_at > ?", tokenHash, r.now())
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidRefresh
	}
	return nil
}

// RevokeAllForUser revokes every live token of a user.  A user without live
// tokens is not an error.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.revoke(ctx, "user_id = ?", userID)
	return err
}

func (r *TokenRepo) revoke(ctx context.Context, where string, args ...any) (int64, error) {
	q := "UPDATE refresh_tokens SET revoked_at = ? WHERE " + where + " AND revoked_at IS NULL"
	res, err := r.db.ExecContext(ctx, q, append([]any{r.now()}, args...)...)
	if err != nil {
		return 0, fmt.Errorf("revoke refresh token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("revoke refresh token: %w", err)
	}
	return n, nil
}
