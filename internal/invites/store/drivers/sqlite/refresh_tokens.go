package sqlite

import (
	"context"
	"time"

	"github.com/mindtrackhq/mindtrack/internal/invites/domain"
)

type refreshTokensRepo struct {
	db dbtx
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (id, identity_id, token_hash, session_id, expires_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.IdentityID, t.TokenHash, t.SessionID, t.ExpiresAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *refreshTokensRepo) GetRefreshTokenByHash(
	ctx context.Context,
	hash string,
) (domain.RefreshToken, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, identity_id, token_hash, session_id, expires_at, revoked, created_at, updated_at
		FROM refresh_tokens
		WHERE token_hash = ?`,
		hash,
	)

	var t domain.RefreshToken
	err := row.Scan(
		&t.ID, &t.IdentityID, &t.TokenHash, &t.SessionID,
		&t.ExpiresAt, &t.Revoked, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM refresh_tokens
		WHERE expires_at <= ?`,
		time.Now().UTC(),
	)
	return err
}
