package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/service"
	"github.com/MKhiriev/go-membership/internal/templates"
	"github.com/MKhiriev/go-membership/models"
	"github.com/go-chi/chi/v5"
)

const passwordResetCompletePath = "/auth/password/reset/complete/"

// passwordResetPage renders the new password form, or the invalid link page
// when uid and token do not match a current account state.
func (h *Handler) passwordResetPage(w http.ResponseWriter, r *http.Request) {
	uid, token := chi.URLParam(r, "uidb36"), chi.URLParam(r, "token")

	err := h.services.PasswordService.ValidateResetLink(r.Context(), uid, token)
	switch {
	case err == nil:
		h.renderPage(w, r, templates.PasswordResetConfirmPage, templates.Data{"validlink": true})
	case errors.Is(err, service.ErrInvalidResetToken):
		h.renderPage(w, r, templates.PasswordResetConfirmPage, templates.Data{"validlink": false})
	default:
		h.pageError(w, r, err)
	}
}

// passwordResetSubmit handles the form post. Success redirects to the
// completion page, validation problems re-render the form.
func (h *Handler) passwordResetSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("invalid form was passed")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	req := models.PasswordResetConfirm{
		UID:          chi.URLParam(r, "uidb36"),
		Token:        chi.URLParam(r, "token"),
		NewPassword1: r.PostFormValue("new_password1"),
		NewPassword2: r.PostFormValue("new_password2"),
	}

	err := h.services.PasswordService.ConfirmReset(r.Context(), req)
	if err == nil {
		http.Redirect(w, r, passwordResetCompletePath, http.StatusFound)
		return
	}

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		h.renderPage(w, r, templates.PasswordResetConfirmPage, templates.Data{
			"validlink":        true,
			"errors":           verr.Fields,
			"non_field_errors": verr.NonField,
		})
	case errors.Is(err, service.ErrInvalidResetToken):
		h.renderPage(w, r, templates.PasswordResetConfirmPage, templates.Data{"validlink": false})
	default:
		h.pageError(w, r, err)
	}
}

func (h *Handler) passwordResetCompletePage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, templates.PasswordResetCompletePage, templates.Data{})
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, name string, data templates.Data) {
	body, err := h.templates.Render(name, data)
	if err != nil {
		h.pageError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

func (h *Handler) pageError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Err(err).Str("path", r.URL.Path).Msg("rendering page failed")
	h.reporter.CaptureException(r.Context(), err, map[string]string{"path": r.URL.Path})
	http.Error(w, msgInternal, http.StatusInternalServerError)
}
