package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mindtrackhq/mindtrack/pkg/httpx"
	"github.com/mindtrackhq/mindtrack/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	key, err := jwtx.NewEphemeralEdDSA("k1", "https://auth.example")
	require.NoError(t, err)

	var gotUserID, gotRole string
	handler := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = httpx.UserIDFromContext(r.Context())
		claims, _ := httpx.ClaimsFromContext(r.Context())
		gotRole = claims.Role
		w.WriteHeader(http.StatusOK)
	}), httpx.AuthnMiddleware(key))

	sign := func(role string) string {
		claims := jwtx.NewSessionClaims(
			"psy-1", "sid-1", role, "Dr Example", "dr@example.com",
			time.Minute, "https://auth.example", nil, time.Now().UTC(),
		)
		token, err := key.Sign(claims)
		require.NoError(t, err)
		return token
	}

	t.Run("rejects missing bearer", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/invites", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/invites", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("injects identity on valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/invites", nil)
		req.Header.Set("Authorization", "Bearer "+sign(jwtx.RolePsychologist))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "psy-1", gotUserID)
		require.Equal(t, jwtx.RolePsychologist, gotRole)
	})
}

func TestRequireRole(t *testing.T) {
	key, err := jwtx.NewEphemeralEdDSA("k1", "https://auth.example")
	require.NoError(t, err)

	handler := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), httpx.AuthnMiddleware(key), httpx.RequireRole(jwtx.RolePsychologist))

	do := func(role string) int {
		claims := jwtx.NewSessionClaims(
			"someone", "sid", role, "", "",
			time.Minute, "https://auth.example", nil, time.Now().UTC(),
		)
		token, err := key.Sign(claims)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/v1/invites", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, do(jwtx.RolePsychologist))

	// A patient token is valid but not permitted here; that reads as
	// unauthenticated, not forbidden.
	require.Equal(t, http.StatusUnauthorized, do(jwtx.RolePatient))
}

func TestCORSMiddleware(t *testing.T) {
	handler := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), httpx.CORSMiddleware())

	t.Run("answers preflight without reaching handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/invites/consume", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("adds headers to normal responses", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/invites/consume", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
