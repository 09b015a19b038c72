package http

import (
	"net/http"
	"time"

	"github.com/mindtrackhq/mindtrack/pkg/httpx"
	"github.com/mindtrackhq/mindtrack/pkg/invitesdk"
)

// LivezHandler is the liveness probe: 200 whenever the process is up.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, invitesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
