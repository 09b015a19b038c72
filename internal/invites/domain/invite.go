package domain

import "time"

// InviteTTL is how long an invite link stays redeemable after issuance.
// Policy is fixed at issuance: ExpiresAt is written as CreatedAt+InviteTTL.
const InviteTTL = 24 * time.Hour

// InviteLink is one issued invitation token. The raw token never hits the
// database; rows are keyed by its SHA-256 fingerprint.
type InviteLink struct {
	ID             string
	TokenHash      string
	PsychologistID string
	ExpiresAt      time.Time
	Used           bool
	UsedBy         string // patient identity id, empty until redeemed
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Redeemable reports whether the link can still be claimed: not used and
// not past its expiry. Expiry is computed at read time; there is no
// persisted "expired" state.
func (l InviteLink) Redeemable(now time.Time) bool {
	return !l.Used && now.Before(l.ExpiresAt)
}
