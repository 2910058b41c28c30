package service

import (
	"errors"

	"github.com/MKhiriev/go-membership/internal/adapter"
	"github.com/MKhiriev/go-membership/internal/validators"
)

// ValidationError carries field and non-field messages for a rejected
// request.
type ValidationError = validators.ValidationError

var (
	// ErrInvalidCredentials is returned for unknown emails, inactive users
	// and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrNotAuthenticated = errors.New("authentication credentials were not provided")
	ErrForbidden        = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrMethodNotAllowed = errors.New("method not allowed")

	ErrMissingEmailParam = errors.New("missing email query param")

	// ErrInvalidResetToken covers malformed uids, unknown users and stale
	// or tampered reset tokens.
	ErrInvalidResetToken = errors.New("reset token expired or invalid")

	// ErrInvalidValue and ErrInvalidReference are rejected writes that
	// passed field decoding but not the database constraints.
	ErrInvalidValue     = errors.New("invalid value")
	ErrInvalidReference = errors.New("invalid reference")

	ErrUnknownTaskKind    = errors.New("unknown task kind")
	ErrInvalidTaskPayload = errors.New("invalid task payload")
)

// IsPermanent reports whether a task error will never go away by retrying.
// Bad requests and rejections by the remote services count as permanent.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrUnknownTaskKind) ||
		errors.Is(err, ErrInvalidTaskPayload) ||
		adapter.IsPermanent(err)
}
