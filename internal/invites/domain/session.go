package domain

import "time"

// Session is what a successful redemption hands back: a short-lived JWT
// access token plus an opaque refresh token, immediately usable without a
// separate login step.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"` // always "Bearer"
	ExpiresIn    int64  `json:"expires_in"` // seconds until the access token expires
}

// RefreshToken models the stored refresh token record. Only the SHA-256
// fingerprint of the opaque value is persisted.
type RefreshToken struct {
	ID         string
	IdentityID string
	TokenHash  string
	SessionID  string // stable across refreshes
	ExpiresAt  time.Time
	Revoked    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
