// Package utils provides helpers shared across the application: typed
// context keys, JSON responses, the outbound HTTP client, JWT signing,
// password hashing and token fingerprints.
package utils

import (
	"context"

	"github.com/MKhiriev/go-membership/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey stores the authenticated user's id as int64.
	UserIDCtxKey = contextKey("userID")

	// ClaimsCtxKey stores the verified access token claims as *models.Claims.
	ClaimsCtxKey = contextKey("claims")
)

// GetUserIDFromContext retrieves the authenticated user id. ok is false
// when the value is missing or has an unexpected type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// WithClaims returns a copy of ctx carrying claims and their user id.
func WithClaims(ctx context.Context, claims *models.Claims) context.Context {
	ctx = context.WithValue(ctx, ClaimsCtxKey, claims)
	return context.WithValue(ctx, UserIDCtxKey, claims.UserID)
}

// GetClaimsFromContext retrieves the access token claims stored by
// [WithClaims].
func GetClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(*models.Claims)
	return claims, ok && claims != nil
}
