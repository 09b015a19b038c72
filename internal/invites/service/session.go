package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mindtrackhq/mindtrack/internal/invites/domain"
	"github.com/mindtrackhq/mindtrack/internal/invites/store"
	"github.com/mindtrackhq/mindtrack/pkg/cryptox"
	"github.com/mindtrackhq/mindtrack/pkg/idx"
	"github.com/mindtrackhq/mindtrack/pkg/jwtx"
	"github.com/mindtrackhq/mindtrack/pkg/slogx"
)

type SessionService struct {
	Store      store.Store
	Signer     jwtx.Signer
	Issuer     string
	Audience   []string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// IssueSession mints a token pair for an identity: a signed access token
// and an opaque refresh token persisted by fingerprint.
func (s *SessionService) IssueSession(
	ctx context.Context,
	identity domain.Identity,
	displayName string,
) (domain.Session, error) {
	log := slogx.FromContext(ctx)
	now := time.Now().UTC()
	sessionID := idx.New().String()

	claims := jwtx.NewSessionClaims(
		identity.ID,
		sessionID,
		identity.Role,
		displayName,
		identity.Email,
		s.AccessTTL,
		s.Issuer,
		s.Audience,
		now,
	)

	accessToken, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign access token", slog.Any("error", err))
		return domain.Session{}, err
	}

	refreshOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.Session{}, err
	}

	refresh := domain.RefreshToken{
		ID:         idx.New().String(),
		IdentityID: identity.ID,
		TokenHash:  cryptox.FingerprintToken(refreshOpaque),
		SessionID:  sessionID,
		ExpiresAt:  now.Add(s.RefreshTTL),
	}
	if err := s.Store.RefreshTokens().CreateRefreshToken(ctx, refresh); err != nil {
		log.Error("failed to store refresh token",
			slog.String("identity_id", identity.ID),
			slog.Any("error", err),
		)
		return domain.Session{}, err
	}

	log.Debug("session issued",
		slog.String("identity_id", identity.ID),
		slog.String("session_id", sessionID),
	)

	return domain.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshOpaque,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.AccessTTL.Seconds()),
	}, nil
}
