package http

import (
	"net/http"

	"github.com/MKhiriev/go-membership/internal/utils"
	"github.com/MKhiriev/go-membership/models"
)

func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.PasswordService.RequestReset(r.Context(), req); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DetailResponse{Detail: detailResetSent}, http.StatusOK)
}

// confirmPasswordReset reports a weak or mismatching password as a single
// {"error": message} body.
func (h *Handler) confirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetConfirm
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.PasswordService.ConfirmReset(r.Context(), req); err != nil {
		h.writeFirstMessage(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DetailResponse{Detail: detailPasswordReset}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req models.PasswordChange
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.PasswordService.ChangePassword(r.Context(), userID, req); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DetailResponse{Detail: detailPasswordChanged}, http.StatusOK)
}
