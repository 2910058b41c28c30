package http

import (
	"net/http"

	"github.com/MKhiriev/go-membership/internal/utils"
	"github.com/MKhiriev/go-membership/models"
)

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	details, err := h.services.UserService.GetUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, details, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var update models.UserUpdate
	if err := decodeBody(r, &update); err != nil {
		h.writeError(w, r, err)
		return
	}

	details, err := h.services.UserService.UpdateUser(r.Context(), userID, update)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, details, http.StatusOK)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	profile, err := h.services.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var input models.Input
	if err := decodeBody(r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	profile, err := h.services.ProfileService.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) adminGetProfile(w http.ResponseWriter, r *http.Request) {
	callerID, _ := utils.GetUserIDFromContext(r.Context())

	profile, err := h.services.ProfileService.AdminGetProfile(r.Context(), callerID, r.URL.Query().Get("email"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) adminUpdateProfile(w http.ResponseWriter, r *http.Request) {
	callerID, _ := utils.GetUserIDFromContext(r.Context())

	var input models.Input
	if err := decodeBody(r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	profile, err := h.services.ProfileService.AdminUpdateProfile(r.Context(), callerID, r.URL.Query().Get("email"), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}
