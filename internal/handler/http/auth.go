package http

import (
	"net/http"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/utils"
	"github.com/MKhiriev/go-membership/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := decodeBody(r, &reg); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.RegistrationService.Register(r.Context(), reg); err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Msg("user registered")
	utils.WriteJSON(w, models.DetailResponse{Detail: detailVerificationSent}, http.StatusCreated)
}

func (h *Handler) resendEmail(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.EmailService.ResendConfirmation(r.Context(), req); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DetailResponse{Detail: detailOK}, http.StatusOK)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var req models.EmailKey
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.EmailService.ConfirmEmail(r.Context(), req.Key); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DetailResponse{Detail: detailOK}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeBody(r, &creds); err != nil {
		h.writeError(w, r, err)
		return
	}

	pair, err := h.services.AuthService.Login(r.Context(), creds)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := models.NewLoginResponse(pair)
	logger.FromRequest(r).Debug().Int64("id", resp.User.ID).Msg("user successfully logged in")

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.Logout(r.Context(), req.Refresh); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DetailResponse{Detail: detailLoggedOut}, http.StatusOK)
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	access, err := h.services.AuthService.Refresh(r.Context(), req.Refresh)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AccessResponse{Access: access, Token: access}, http.StatusOK)
}

func (h *Handler) verifyToken(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyTokenRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.VerifyToken(r.Context(), req.Token); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, struct{}{}, http.StatusOK)
}
