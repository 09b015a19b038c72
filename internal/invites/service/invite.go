package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mindtrackhq/mindtrack/internal/invites/domain"
	"github.com/mindtrackhq/mindtrack/internal/invites/store"
	"github.com/mindtrackhq/mindtrack/pkg/cryptox"
	"github.com/mindtrackhq/mindtrack/pkg/idx"
	"github.com/mindtrackhq/mindtrack/pkg/jwtx"
	"github.com/mindtrackhq/mindtrack/pkg/slogx"
)

var (
	ErrInvalidConsumeRequest = errors.New("invalid consume request")
	ErrInviteNotFound        = errors.New("invite not found")
	ErrInviteUsedOrExpired   = errors.New("invite already used or expired")
	ErrIdentityCreation      = errors.New("identity creation failed")
	ErrPostClaimSetup        = errors.New("post-claim setup failed")
)

type InviteService struct {
	Store    store.Store
	Sessions *SessionService

	// PublicBaseURL is the origin of the patient-facing registration
	// page; redemption URLs embed the raw token against it.
	PublicBaseURL string
}

// ConsumeResult is what a successful redemption returns: the new patient
// and a session usable immediately.
type ConsumeResult struct {
	Patient domain.PatientProfile
	Session domain.Session
}

// IssueInvite mints a new invite link bound to the given psychologist and
// returns the full redemption URL. The raw token exists only in that URL;
// the store keeps its fingerprint.
func (s *InviteService) IssueInvite(ctx context.Context, psychologistID string) (string, error) {
	log := slogx.FromContext(ctx)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invite token", slog.Any("error", err))
		return "", err
	}

	now := time.Now().UTC()
	link := domain.InviteLink{
		ID:             idx.New().String(),
		TokenHash:      cryptox.FingerprintToken(token),
		PsychologistID: psychologistID,
		ExpiresAt:      now.Add(domain.InviteTTL),
	}

	if err := s.Store.Invites().CreateInvite(ctx, link); err != nil {
		log.Error("failed to create invite",
			slog.String("invite_id", link.ID),
			slog.Any("error", err),
		)
		return "", err
	}

	log.Debug("invite created",
		slog.String("invite_id", link.ID),
		slog.String("psychologist_id", psychologistID),
		slog.Time("expires_at", link.ExpiresAt),
	)

	return s.redemptionURL(token), nil
}

// ValidateInvite is a pure read-only redeemability check. It returns the
// issuing psychologist's id for a redeemable token, ErrInviteNotFound for
// an unknown token, and ErrInviteUsedOrExpired otherwise. Safe to call any
// number of times; nothing is mutated.
func (s *InviteService) ValidateInvite(ctx context.Context, token string) (string, error) {
	log := slogx.FromContext(ctx)

	link, err := s.Store.Invites().GetInviteByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInviteNotFound
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return "", err
	}

	if !link.Redeemable(time.Now().UTC()) {
		return "", ErrInviteUsedOrExpired
	}

	return link.PsychologistID, nil
}

// ConsumeInvite redeems a token exactly once and onboards the patient.
//
// Phase 1 is the claim: a single conditional update flips the link from
// unused to used, and only the caller that wins it proceeds. Concurrent
// calls racing on the same token get ErrInviteUsedOrExpired.
//
// Phase 2 is best-effort setup against what may be separate subsystems:
// (a) create the patient identity, (b) create the profile, (c) issue the
// session. A failure after (a) leaves an orphaned identity and a spent
// token; that case is surfaced as ErrPostClaimSetup and logged at Error
// level so operators can detect and repair it. Nothing is rolled back.
func (s *InviteService) ConsumeInvite(
	ctx context.Context,
	token, name, email, password string,
) (ConsumeResult, error) {
	log := slogx.FromContext(ctx)

	if token == "" || name == "" || email == "" || password == "" {
		return ConsumeResult{}, ErrInvalidConsumeRequest
	}

	fingerprint := cryptox.FingerprintToken(token)
	link, err := s.Store.Invites().GetInviteByTokenHash(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("consume attempted with unknown token")
			return ConsumeResult{}, ErrInviteNotFound
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return ConsumeResult{}, err
	}

	// Hash before claiming so a hashing failure cannot burn the token.
	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return ConsumeResult{}, err
	}

	patientID := idx.New().String()
	now := time.Now().UTC()

	// Phase 1: the claim. The conditional update is the serialization
	// point; exactly one concurrent caller gets a row.
	if err := s.Store.Invites().ClaimInvite(ctx, fingerprint, patientID, now); err != nil {
		if errors.Is(err, store.ErrNotClaimable) {
			log.Warn("consume lost the claim or invite inert",
				slog.String("invite_id", link.ID),
			)
			return ConsumeResult{}, ErrInviteUsedOrExpired
		}
		log.Error("failed to claim invite",
			slog.String("invite_id", link.ID),
			slog.Any("error", err),
		)
		return ConsumeResult{}, err
	}

	// Phase 2a: patient identity.
	identity := domain.Identity{
		ID:           patientID,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         jwtx.RolePatient,
	}
	if err := s.Store.Identities().CreateIdentity(ctx, identity); err != nil {
		// The token is already spent; the invite must be reissued.
		log.Warn("identity creation failed after claim",
			slog.String("invite_id", link.ID),
			slog.Any("error", err),
		)
		return ConsumeResult{}, errors.Join(ErrIdentityCreation, err)
	}

	// Phase 2b: profile, linked to the issuing psychologist's caseload.
	profile := domain.PatientProfile{
		ID:             idx.New().String(),
		IdentityID:     identity.ID,
		DisplayName:    name,
		Email:          email,
		Role:           jwtx.RolePatient,
		PsychologistID: link.PsychologistID,
	}
	if err := s.Store.Profiles().CreateProfile(ctx, profile); err != nil {
		log.Error("post-claim setup failed, orphaned identity needs repair",
			slog.String("invite_id", link.ID),
			slog.String("identity_id", identity.ID),
			slog.String("step", "profile"),
			slog.Any("error", err),
		)
		return ConsumeResult{}, errors.Join(ErrPostClaimSetup, err)
	}

	// Phase 2c: session, usable without a separate login.
	session, err := s.Sessions.IssueSession(ctx, identity, name)
	if err != nil {
		log.Error("post-claim setup failed, orphaned identity needs repair",
			slog.String("invite_id", link.ID),
			slog.String("identity_id", identity.ID),
			slog.String("step", "session"),
			slog.Any("error", err),
		)
		return ConsumeResult{}, errors.Join(ErrPostClaimSetup, err)
	}

	log.Info("patient registered via invite",
		slog.String("identity_id", identity.ID),
		slog.String("invite_id", link.ID),
		slog.String("psychologist_id", link.PsychologistID),
	)

	return ConsumeResult{Patient: profile, Session: session}, nil
}

func (s *InviteService) redemptionURL(token string) string {
	return strings.TrimRight(s.PublicBaseURL, "/") + "/register?invite=" + token
}
