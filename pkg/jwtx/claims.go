// Package jwtx signs and verifies the EdDSA session tokens issued to
// freshly registered patients, and verifies the bearer tokens presented by
// psychologists when minting invites.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Access tokens are short-lived; the opaque refresh
// token persisted alongside them carries the session.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Role values carried in the "role" claim.
const (
	RolePsychologist = "psychologist"
	RolePatient      = "patient"
)

// Claims are the access-token claims shared across the platform's
// services. Keep changes additive.
type Claims struct {
	jwt.RegisteredClaims

	// SID is the session id, stable across refreshes.
	SID string `json:"sid,omitempty"`

	// Role is the account role ("psychologist", "patient").
	Role string `json:"role,omitempty"`

	// Name is the account's display name.
	Name string `json:"name,omitempty"`

	// Email is the account's login email.
	Email string `json:"email,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for a session access
// token.
func NewSessionClaims(
	subject, sid, role, name, email string,
	ttl time.Duration,
	issuer string,
	audience []string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SID:   sid,
		Role:  role,
		Name:  name,
		Email: email,
	}
}
