package http

import (
	"net/http"

	"github.com/mindtrackhq/mindtrack/internal/invites/service"
	"github.com/mindtrackhq/mindtrack/pkg/httpx"
	"github.com/mindtrackhq/mindtrack/pkg/invitesdk"
	"github.com/mindtrackhq/mindtrack/pkg/slogx"
)

type InviteIssueHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP mints a new invite link for the authenticated psychologist
// and returns the redemption URL. Authentication and the role check run
// in middleware before any record is touched.
func (h *InviteIssueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	psychologistID := httpx.UserIDFromContext(ctx)
	if psychologistID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, invitesdk.ErrorResponse{
			Error:            "unauthenticated",
			ErrorDescription: "Authentication required",
		})
		return
	}

	url, err := h.InviteService.IssueInvite(ctx, psychologistID)
	if err != nil {
		log.Error("failed to issue invite", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, invitesdk.ErrorResponse{
			Error:            invitesdk.ReasonStoreError,
			ErrorDescription: "Failed to create invite",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.IssueInviteResponse{URL: url})
}
