package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/mindtrackhq/mindtrack/internal/invites/domain"
	"github.com/mindtrackhq/mindtrack/internal/invites/store"
)

type invitesRepo struct {
	db dbtx
}

func (r *invitesRepo) CreateInvite(ctx context.Context, l domain.InviteLink) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invite_links (id, token_hash, psychologist_id, expires_at)
		VALUES (?, ?, ?, ?)`,
		l.ID, l.TokenHash, l.PsychologistID, l.ExpiresAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByTokenHash(
	ctx context.Context,
	hash string,
) (domain.InviteLink, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, token_hash, psychologist_id, expires_at, used, used_by, created_at, updated_at
		FROM invite_links
		WHERE token_hash = ?`,
		hash,
	)

	var l domain.InviteLink
	var usedBy sql.NullString
	err := row.Scan(
		&l.ID, &l.TokenHash, &l.PsychologistID, &l.ExpiresAt,
		&l.Used, &usedBy, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return domain.InviteLink{}, mapNotFound(err)
	}
	l.UsedBy = mapNullString(usedBy)
	return l, nil
}

// ClaimInvite flips used=0 to used=1 in one conditional UPDATE. RowsAffected
// decides the winner under concurrent redemption; there is deliberately no
// separate read-check-write sequence here.
func (r *invitesRepo) ClaimInvite(
	ctx context.Context,
	hash string,
	usedBy string,
	now time.Time,
) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invite_links
		SET used = 1, used_by = ?, updated_at = ?
		WHERE token_hash = ? AND used = 0 AND expires_at > ?`,
		mapStringNull(usedBy), now.UTC(), hash, now.UTC(),
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotClaimable
	}
	return nil
}
