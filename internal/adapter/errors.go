package adapter

import "errors"

// Errors returned by the outbound clients. Response bodies are appended to
// the wrapped message.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrRateLimited         = errors.New("rate limited")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrRejected is returned when the email provider accepted the request
	// but refused to deliver the message.
	ErrRejected = errors.New("message rejected")

	ErrInvalidAPIKey = errors.New("invalid api key")
)
