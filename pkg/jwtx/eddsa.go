package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("jwtx: invalid token")
	ErrWrongIssuer  = errors.New("jwtx: wrong issuer")
)

// Signer produces signed session tokens.
type Signer interface {
	Sign(claims Claims) (string, error)
	KID() string
	Alg() string
}

// Verifier validates a raw bearer token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// EdDSAKey is an Ed25519 signing key that implements both Signer and
// Verifier. Keys are ephemeral: generated at boot, lost on restart, which
// bounds the blast radius of a leaked key to the process lifetime.
type EdDSAKey struct {
	kid    string
	issuer string
	priv   ed25519.PrivateKey
	pub    ed25519.PublicKey
}

// NewEphemeralEdDSA generates a fresh Ed25519 keypair for the given key id
// and issuer.
func NewEphemeralEdDSA(kid, issuer string) (*EdDSAKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate ed25519 key: %w", err)
	}
	return &EdDSAKey{kid: kid, issuer: issuer, priv: priv, pub: pub}, nil
}

func (k *EdDSAKey) KID() string { return k.kid }
func (k *EdDSAKey) Alg() string { return "EdDSA" }

// Ready reports whether key material is loaded.
func (k *EdDSAKey) Ready() bool { return k != nil && len(k.priv) > 0 }

func (k *EdDSAKey) Sign(claims Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	tok.Header["kid"] = k.kid
	return tok.SignedString(k.priv)
}

// Verify parses and validates a raw token: signature, expiry, and issuer.
func (k *EdDSAKey) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return k.pub, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.Issuer != k.issuer {
		return Claims{}, ErrWrongIssuer
	}

	return *claims, nil
}
