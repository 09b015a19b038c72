package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mindtrackhq/mindtrack/internal/invites/service"
	"github.com/mindtrackhq/mindtrack/pkg/httpx"
	"github.com/mindtrackhq/mindtrack/pkg/invitesdk"
	"github.com/mindtrackhq/mindtrack/pkg/slogx"
)

type InviteValidateHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP is the client-side pre-check before redemption: a read-only
// redeemability report for any token string, mutating nothing. Repeated
// calls on an unchanged record return identical results.
func (h *InviteValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req invitesdk.ValidateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ValidateInviteResponse{
			Valid:  false,
			Reason: invitesdk.ReasonInvalidInput,
		})
		return
	}

	psychologistID, err := h.InviteService.ValidateInvite(ctx, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, invitesdk.ValidateInviteResponse{
				Valid:  false,
				Reason: invitesdk.ReasonNotFound,
			})
		case errors.Is(err, service.ErrInviteUsedOrExpired):
			httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ValidateInviteResponse{
				Valid:  false,
				Reason: invitesdk.ReasonUsedOrExpired,
			})
		default:
			log.Error("failed to validate invite", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, invitesdk.ValidateInviteResponse{
				Valid:  false,
				Reason: invitesdk.ReasonStoreError,
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.ValidateInviteResponse{
		Valid:          true,
		PsychologistID: psychologistID,
	})
}
