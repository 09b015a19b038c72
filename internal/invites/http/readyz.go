package http

import (
	"net/http"
	"time"

	"github.com/mindtrackhq/mindtrack/internal/invites/store"
	"github.com/mindtrackhq/mindtrack/pkg/httpx"
	"github.com/mindtrackhq/mindtrack/pkg/invitesdk"
	"github.com/mindtrackhq/mindtrack/pkg/jwtx"
)

// ReadyzHandler is the readiness probe: checks the store connection and
// that session signing key material is loaded.
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	key *jwtx.EdDSAKey,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &invitesdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if !key.Ready() {
			checks.Signer = "error: no key loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, invitesdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
