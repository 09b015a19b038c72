package sqlite

import (
	"context"

	"github.com/mindtrackhq/mindtrack/internal/invites/domain"
)

type profilesRepo struct {
	db dbtx
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.PatientProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patient_profiles (id, identity_id, display_name, email, role, psychologist_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.IdentityID, p.DisplayName, p.Email, p.Role, p.PsychologistID,
	)
	return mapConstraint(err)
}

func (r *profilesRepo) GetProfileByIdentityID(
	ctx context.Context,
	identityID string,
) (domain.PatientProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, identity_id, display_name, email, role, psychologist_id, created_at, updated_at
		FROM patient_profiles
		WHERE identity_id = ?`,
		identityID,
	)

	var p domain.PatientProfile
	err := row.Scan(
		&p.ID, &p.IdentityID, &p.DisplayName, &p.Email,
		&p.Role, &p.PsychologistID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.PatientProfile{}, mapNotFound(err)
	}
	return p, nil
}
