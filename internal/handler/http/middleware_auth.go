package http

import (
	"net/http"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/service"
	"github.com/MKhiriev/go-membership/internal/utils"
)

// authenticate resolves an optional bearer access token.
//
// Requests without an "Authorization" header pass through anonymously. A
// header that is malformed, or carries an expired, tampered or non-access
// token, is rejected with 401 even on public routes. On success the claims
// are stored in the request context via [utils.WithClaims].
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		token, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Warn().Err(err).Msg("rejecting malformed authorization header")
			h.writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
			return
		}

		claims, err := h.services.AuthService.Authenticate(r.Context(), token)
		if err != nil {
			log.Warn().Err(err).Msg("rejecting bearer token")
			h.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithClaims(r.Context(), claims)))
	})
}

// requireAuth rejects anonymous requests with 401.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetClaimsFromContext(r.Context()); !ok {
			h.writeError(w, r, service.ErrNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}
