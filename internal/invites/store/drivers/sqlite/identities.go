package sqlite

import (
	"context"

	"github.com/mindtrackhq/mindtrack/internal/invites/domain"
)

type identitiesRepo struct {
	db dbtx
}

func (r *identitiesRepo) CreateIdentity(ctx context.Context, id domain.Identity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO identities (id, email, password_hash, role)
		VALUES (?, ?, ?, ?)`,
		id.ID, id.Email, id.PasswordHash, id.Role,
	)
	return mapConstraint(err)
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	return r.scanIdentity(ctx, `
		SELECT id, email, password_hash, role, created_at, updated_at
		FROM identities
		WHERE id = ?`, id)
}

func (r *identitiesRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	return r.scanIdentity(ctx, `
		SELECT id, email, password_hash, role, created_at, updated_at
		FROM identities
		WHERE email = ?`, email)
}

func (r *identitiesRepo) scanIdentity(ctx context.Context, query string, arg any) (domain.Identity, error) {
	var id domain.Identity
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&id.ID, &id.Email, &id.PasswordHash, &id.Role, &id.CreatedAt, &id.UpdatedAt,
	)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return id, nil
}
