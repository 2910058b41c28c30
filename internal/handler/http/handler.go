package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/service"
	"github.com/MKhiriev/go-membership/internal/templates"
	"github.com/MKhiriev/go-membership/internal/utils"
)

// Reporter forwards unexpected errors and panics to error tracking.
// *reporter.Reporter implements it.
type Reporter interface {
	CaptureException(ctx context.Context, err error, tags map[string]string)
	Middleware(next http.Handler) http.Handler
}

type Handler struct {
	services  *service.Services
	templates *templates.Renderer
	reporter  Reporter

	logger *logger.Logger
}

func NewHandler(services *service.Services, renderer *templates.Renderer, reporter Reporter, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		templates: renderer,
		reporter:  reporter,
		logger:    logger,
	}
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched so
// the service reports missing fields.
func decodeBody(r *http.Request, v any) error {
	err := utils.DecodeJSON(r, v)
	if err == nil || errors.Is(err, utils.ErrEmptyBody) {
		return nil
	}

	logger.FromRequest(r).Warn().Err(err).Msg("invalid JSON was passed")
	return ErrMalformedBody
}
