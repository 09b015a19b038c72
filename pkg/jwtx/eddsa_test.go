package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/mindtrackhq/mindtrack/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "https://auth.example"

func TestEdDSASignAndVerify(t *testing.T) {
	key, err := jwtx.NewEphemeralEdDSA("test-key-1", exampleIssuer)
	require.NoError(t, err)
	require.True(t, key.Ready())
	require.Equal(t, "EdDSA", key.Alg())
	require.Equal(t, "test-key-1", key.KID())

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims(
		"patient-456",
		"session-1",
		jwtx.RolePatient,
		"Pat Example",
		"pat@example.com",
		5*time.Minute,
		exampleIssuer,
		[]string{"mindtrack"},
		now,
	)

	token, err := key.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := key.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "patient-456", parsed.Subject)
	require.Equal(t, "session-1", parsed.SID)
	require.Equal(t, jwtx.RolePatient, parsed.Role)
	require.Equal(t, "Pat Example", parsed.Name)
	require.Equal(t, "pat@example.com", parsed.Email)
	require.Equal(t, exampleIssuer, parsed.Issuer)
}

func TestEdDSAVerifyRejectsWrongIssuer(t *testing.T) {
	key, err := jwtx.NewEphemeralEdDSA("test-key-1", exampleIssuer)
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims(
		"patient-1", "sid", jwtx.RolePatient, "", "",
		time.Minute, "https://other.example", nil, time.Now().UTC(),
	)
	token, err := key.Sign(claims)
	require.NoError(t, err)

	_, err = key.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrWrongIssuer)
}

func TestEdDSAVerifyRejectsExpiredToken(t *testing.T) {
	key, err := jwtx.NewEphemeralEdDSA("test-key-1", exampleIssuer)
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims(
		"patient-1", "sid", jwtx.RolePatient, "", "",
		time.Minute, exampleIssuer, nil, time.Now().UTC().Add(-2*time.Minute),
	)
	token, err := key.Sign(claims)
	require.NoError(t, err)

	_, err = key.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestEdDSAVerifyRejectsForeignKey(t *testing.T) {
	key, err := jwtx.NewEphemeralEdDSA("test-key-1", exampleIssuer)
	require.NoError(t, err)
	other, err := jwtx.NewEphemeralEdDSA("test-key-2", exampleIssuer)
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims(
		"patient-1", "sid", jwtx.RolePatient, "", "",
		time.Minute, exampleIssuer, nil, time.Now().UTC(),
	)
	token, err := other.Sign(claims)
	require.NoError(t, err)

	_, err = key.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestEdDSAVerifyRejectsTamperedToken(t *testing.T) {
	key, err := jwtx.NewEphemeralEdDSA("test-key-1", exampleIssuer)
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims(
		"patient-1", "sid", jwtx.RolePatient, "", "",
		time.Minute, exampleIssuer, nil, time.Now().UTC(),
	)
	token, err := key.Sign(claims)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	_, err = key.Verify(tampered)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}
