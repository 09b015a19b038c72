package http_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	httpapi "github.com/mindtrackhq/mindtrack/internal/invites/http"
	"github.com/mindtrackhq/mindtrack/internal/invites/service"
	"github.com/mindtrackhq/mindtrack/internal/invites/store/drivers/sqlite"
	"github.com/mindtrackhq/mindtrack/pkg/cryptox"
	"github.com/mindtrackhq/mindtrack/pkg/invitesdk"
	"github.com/mindtrackhq/mindtrack/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://invites.test"

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "http-test")
	if err != nil {
		os.Exit(1)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// newTestServer wires a full stack (sqlite store, services, router) behind
// an httptest server, mirroring app.New.
func newTestServer(t *testing.T) (*httptest.Server, *jwtx.EdDSAKey) {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		filepath.Join(t.TempDir(), "test.db"),
	)
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	key, err := jwtx.NewEphemeralEdDSA("test-1", testIssuer)
	require.NoError(t, err)

	sessions := &service.SessionService{
		Store:      st,
		Signer:     key,
		Issuer:     testIssuer,
		Audience:   []string{"mindtrack"},
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := httpapi.NewRouter(key, key, "test", st, logger)
	router.InviteService = &service.InviteService{
		Store:         st,
		Sessions:      sessions,
		PublicBaseURL: "https://app.test",
	}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, key
}

func psychologistBearer(t *testing.T, key *jwtx.EdDSAKey) string {
	t.Helper()

	claims := jwtx.NewSessionClaims(
		"psy-1", "sid-1", jwtx.RolePsychologist, "Dr Example", "dr@example.com",
		time.Minute, testIssuer, []string{"mindtrack"}, time.Now().UTC(),
	)
	token, err := key.Sign(claims)
	require.NoError(t, err)
	return token
}

func TestInviteLifecycleOverHTTP(t *testing.T) {
	srv, key := newTestServer(t)
	client := invitesdk.NewClient(srv.URL)
	ctx := context.Background()

	issued, err := client.IssueInvite(ctx, psychologistBearer(t, key))
	require.NoError(t, err)
	require.Contains(t, issued.URL, "https://app.test/register?invite=")

	token := issued.URL[len("https://app.test/register?invite="):]
	require.NotEmpty(t, token)

	t.Run("validate reports redeemable", func(t *testing.T) {
		resp, status, err := client.ValidateInvite(ctx, token)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, status)
		require.True(t, resp.Valid)
		require.Equal(t, "psy-1", resp.PsychologistID)
		require.Empty(t, resp.Reason)
	})

	t.Run("consume registers the patient", func(t *testing.T) {
		resp, status, err := client.ConsumeInvite(ctx, invitesdk.ConsumeInviteRequest{
			Token:    token,
			Name:     "Pat Example",
			Email:    "pat@example.com",
			Password: "s3cret!pw",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, status)
		require.True(t, resp.Success)

		require.NotNil(t, resp.Patient)
		require.Equal(t, "Pat Example", resp.Patient.Name)
		require.Equal(t, "pat@example.com", resp.Patient.Email)

		require.NotNil(t, resp.Session)
		require.Equal(t, "Bearer", resp.Session.TokenType)
		require.NotEmpty(t, resp.Session.RefreshToken)

		claims, err := key.Verify(resp.Session.AccessToken)
		require.NoError(t, err)
		require.Equal(t, resp.Patient.ID, claims.Subject)
		require.Equal(t, jwtx.RolePatient, claims.Role)
	})

	t.Run("second consume rejected", func(t *testing.T) {
		resp, status, err := client.ConsumeInvite(ctx, invitesdk.ConsumeInviteRequest{
			Token:    token,
			Name:     "Other",
			Email:    "other@example.com",
			Password: "pw123456",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, status)
		require.False(t, resp.Success)
		require.Equal(t, invitesdk.ReasonAlreadyUsedOrExpired, resp.Reason)
		require.Nil(t, resp.Session)
	})
}

func TestIssueRequiresPsychologist(t *testing.T) {
	srv, key := newTestServer(t)
	ctx := context.Background()

	t.Run("no bearer", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/v1/invites", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("patient bearer", func(t *testing.T) {
		claims := jwtx.NewSessionClaims(
			"patient-1", "sid", jwtx.RolePatient, "", "",
			time.Minute, testIssuer, nil, time.Now().UTC(),
		)
		token, err := key.Sign(claims)
		require.NoError(t, err)

		client := invitesdk.NewClient(srv.URL)
		_, err = client.IssueInvite(ctx, token)
		require.ErrorContains(t, err, "401")
	})
}

func TestValidateUnknownToken(t *testing.T) {
	srv, _ := newTestServer(t)
	client := invitesdk.NewClient(srv.URL)

	resp, status, err := client.ValidateInvite(context.Background(), "definitely-not-issued")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, status)
	require.False(t, resp.Valid)
	require.Equal(t, invitesdk.ReasonNotFound, resp.Reason)
}

func TestConsumeRejectsMissingFields(t *testing.T) {
	srv, _ := newTestServer(t)
	client := invitesdk.NewClient(srv.URL)

	resp, status, err := client.ConsumeInvite(context.Background(), invitesdk.ConsumeInviteRequest{
		Token: "some-token",
		Name:  "Pat",
		// email and password missing
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, resp.Success)
	require.Equal(t, invitesdk.ReasonInvalidInput, resp.Reason)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/v1/invites/consume", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/livez", "/readyz"} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + path)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}
