package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/service"
	"github.com/MKhiriev/go-membership/internal/utils"
	"github.com/MKhiriev/go-membership/models"
)

type errorResponse struct {
	status  int
	message string
}

var errorStatusMap = map[error]errorResponse{
	ErrMalformedBody: {http.StatusBadRequest, msgMalformedBody},

	service.ErrInvalidCredentials:      {http.StatusUnauthorized, msgInvalidCredentials},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, msgTokenInvalid},
	service.ErrNotAuthenticated:        {http.StatusUnauthorized, msgNotAuthenticated},
	service.ErrForbidden:               {http.StatusForbidden, msgForbidden},
	service.ErrNotFound:                {http.StatusNotFound, msgNotFound},
	service.ErrMissingEmailParam:       {http.StatusBadRequest, msgMissingEmail},
	service.ErrInvalidResetToken:       {http.StatusBadRequest, msgInvalidResetToken},
	service.ErrInvalidValue:            {http.StatusBadRequest, msgInvalidValue},
	service.ErrInvalidReference:        {http.StatusBadRequest, msgInvalidReference},
}

// writeError renders err as a JSON error body.
//
// A validation error with field messages is rendered as a map of field
// names to messages. Non-field messages always end up under "error".
// Unknown errors are logged, reported and hidden behind a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		utils.WriteJSON(w, validationBody(verr), http.StatusBadRequest)
		return
	}

	if errors.Is(err, service.ErrMethodNotAllowed) {
		writeMethodNotAllowed(w, r)
		return
	}

	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			utils.WriteJSON(w, models.ErrorResponse{Error: resp.message}, resp.status)
			return
		}
	}

	logger.FromRequest(r).Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	h.reporter.CaptureException(r.Context(), err, map[string]string{"path": r.URL.Path})
	utils.WriteJSON(w, models.ErrorResponse{Error: msgInternal}, http.StatusInternalServerError)
}

// writeFirstMessage renders a validation error as {"error": <first message>}.
// Other errors go through writeError.
func (h *Handler) writeFirstMessage(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		utils.WriteJSON(w, models.ErrorResponse{Error: verr.FirstMessage()}, http.StatusBadRequest)
		return
	}
	h.writeError(w, r, err)
}

func validationBody(verr *service.ValidationError) any {
	if len(verr.Fields) == 0 {
		return models.ErrorResponse{Error: verr.FirstMessage()}
	}

	body := make(map[string]any, len(verr.Fields)+1)
	for field, msgs := range verr.Fields {
		body[field] = msgs
	}
	if len(verr.NonField) > 0 {
		body["error"] = verr.NonField[0]
	}
	return body
}

func writeMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{Error: fmt.Sprintf(msgMethodNotAllowed, r.Method)}, http.StatusMethodNotAllowed)
}
