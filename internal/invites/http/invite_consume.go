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

type InviteConsumeHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP redeems an invite token exactly once, registering the patient
// and returning a session usable immediately.
//
// The request body carries a plaintext password; neither the raw body nor
// the decoded struct may ever reach a log line. Only the error itself is
// logged on failure.
func (h *InviteConsumeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req invitesdk.ConsumeInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ConsumeInviteResponse{
			Success: false,
			Reason:  invitesdk.ReasonInvalidInput,
		})
		return
	}

	if req.Token == "" || req.Name == "" || req.Email == "" || req.Password == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ConsumeInviteResponse{
			Success: false,
			Reason:  invitesdk.ReasonInvalidInput,
		})
		return
	}

	result, err := h.InviteService.ConsumeInvite(ctx, req.Token, req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidConsumeRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ConsumeInviteResponse{
				Success: false,
				Reason:  invitesdk.ReasonInvalidInput,
			})
		case errors.Is(err, service.ErrInviteNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, invitesdk.ConsumeInviteResponse{
				Success: false,
				Reason:  invitesdk.ReasonNotFound,
			})
		case errors.Is(err, service.ErrInviteUsedOrExpired):
			httpx.WriteJSON(w, http.StatusBadRequest, invitesdk.ConsumeInviteResponse{
				Success: false,
				Reason:  invitesdk.ReasonAlreadyUsedOrExpired,
			})
		case errors.Is(err, service.ErrIdentityCreation):
			httpx.WriteJSON(w, http.StatusInternalServerError, invitesdk.ConsumeInviteResponse{
				Success: false,
				Reason:  invitesdk.ReasonIdentityCreationError,
			})
		case errors.Is(err, service.ErrPostClaimSetup):
			// Already logged at Error level by the service with the
			// orphaned identity id.
			httpx.WriteJSON(w, http.StatusInternalServerError, invitesdk.ConsumeInviteResponse{
				Success: false,
				Reason:  invitesdk.ReasonPostClaimSetupError,
			})
		default:
			log.Error("failed to consume invite", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, invitesdk.ConsumeInviteResponse{
				Success: false,
				Reason:  invitesdk.ReasonStoreError,
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, invitesdk.ConsumeInviteResponse{
		Success: true,
		Patient: &invitesdk.Patient{
			ID:    result.Patient.IdentityID,
			Name:  result.Patient.DisplayName,
			Email: result.Patient.Email,
		},
		Session: &invitesdk.Session{
			AccessToken:  result.Session.AccessToken,
			RefreshToken: result.Session.RefreshToken,
			TokenType:    result.Session.TokenType,
			ExpiresIn:    result.Session.ExpiresIn,
		},
	})
}
