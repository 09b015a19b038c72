// Package store defines the data access interfaces the services depend
// on. Concrete drivers live under drivers/.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/mindtrackhq/mindtrack/internal/invites/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrNotClaimable is returned by ClaimInvite when the conditional
	// update matched no row: the invite is already used, expired, or gone.
	ErrNotClaimable = errors.New("store: invite not claimable")
)

// Store is the root data access interface. It exposes sub-repositories to
// keep concerns tidy and testable.
type Store interface {
	Invites() Invites
	Identities() Identities
	Profiles() Profiles
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back if fn returns
	// an error and committing otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Invites interface {
	// CreateInvite writes a new invite link (token_hash is the SHA-256
	// fingerprint of the opaque token, unique).
	CreateInvite(ctx context.Context, l domain.InviteLink) error

	// GetInviteByTokenHash returns the invite row regardless of state.
	// Callers decide redeemability; validation must not mutate.
	GetInviteByTokenHash(ctx context.Context, hash string) (domain.InviteLink, error)

	// ClaimInvite performs the single conditional transition from unused
	// to used: it flips used=1 and records used_by only where the row is
	// currently unused and unexpired. Returns ErrNotClaimable when no row
	// matched. This is the sole serialization point for concurrent
	// redemption of the same token.
	ClaimInvite(ctx context.Context, hash string, usedBy string, now time.Time) error
}

type Identities interface {
	// CreateIdentity inserts a new identity. Returns ErrAlreadyExists if
	// the email is taken.
	CreateIdentity(ctx context.Context, id domain.Identity) error

	// GetIdentityByID returns an identity by id.
	GetIdentityByID(ctx context.Context, id string) (domain.Identity, error)

	// GetIdentityByEmail returns an identity by login email.
	GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error)
}

type Profiles interface {
	// CreateProfile inserts the patient profile for an identity.
	CreateProfile(ctx context.Context, p domain.PatientProfile) error

	// GetProfileByIdentityID returns the profile linked to an identity.
	GetProfileByIdentityID(ctx context.Context, identityID string) (domain.PatientProfile, error)
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the token by its fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// DeleteExpiredRefreshTokens is housekeeping. Invite rows are never
	// deleted; expired invites stay inert.
	DeleteExpiredRefreshTokens(ctx context.Context) error
}
