package http

import (
	"net/http"

	"github.com/MKhiriev/go-membership/internal/utils"
	"github.com/MKhiriev/go-membership/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(h.reporter.Middleware)
	router.Use(withGZip)
	router.Use(h.authenticate)

	router.NotFound(notFound)
	router.MethodNotAllowed(writeMethodNotAllowed)

	router.Get("/healthz", h.healthz)
	router.Get("/api/version/", h.getServerVersion)

	router.Route("/auth", func(r chi.Router) {
		// public routes, a bearer token is accepted but not required
		r.Post("/registration/", h.register)
		r.Post("/registration/resend-email/", h.resendEmail)
		r.Post("/verify-email/", h.verifyEmail)
		r.Post("/login/", h.login)
		r.Post("/logout/", h.logout)
		r.Post("/token/refresh", h.refreshToken)
		r.Post("/token/verify", h.verifyToken)

		r.Post("/password/reset/", h.requestPasswordReset)
		r.Post("/password/reset/confirm/", h.confirmPasswordReset)
		r.Get("/password/reset/confirm/{uidb36}/{token}/", h.passwordResetPage)
		r.Post("/password/reset/confirm/{uidb36}/{token}/", h.passwordResetSubmit)
		r.Get("/password/reset/complete/", h.passwordResetCompletePage)

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)

			r.Post("/password/change/", h.changePassword)

			r.Get("/user/", h.getUser)
			r.Patch("/user/", h.updateUser)
			r.Put("/user/", h.updateUser)

			r.Get("/profile/", h.getProfile)
			r.Patch("/profile/", h.updateProfile)

			r.Get("/profile/admin/", h.adminGetProfile)
			r.Put("/profile/admin/", h.adminUpdateProfile)
			r.Patch("/profile/admin/", h.adminUpdateProfile)
		})
	})

	router.Route("/api/v1/{resource}", func(r chi.Router) {
		r.Get("/", h.listRecords)
		r.Post("/", h.createRecord)
		r.Get("/{id}/", h.getRecord)
		r.Put("/{id}/", h.updateRecord)
		r.Patch("/{id}/", h.updateRecord)
		r.Delete("/{id}/", h.deleteRecord)
	})

	return router
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{Error: msgNotFound}, http.StatusNotFound)
}
