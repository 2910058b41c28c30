package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType distinguishes access credentials from refresh credentials.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// TokenPurpose binds a single-use action token to the flow that issued it.
type TokenPurpose string

const (
	PurposeEmailConfirmation TokenPurpose = "email_confirmation"
	PurposePasswordReset     TokenPurpose = "password_reset"
)

// Claims is the claim set carried by access and refresh tokens.
//
// Identity claims are always present. Profile claims are embedded through a
// pointer so they disappear from the payload entirely when the user has no
// profile, instead of being rendered as nulls.
type Claims struct {
	jwt.RegisteredClaims

	TokenType TokenType `json:"token_type"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username,omitempty"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`

	*ProfileClaims
}

// ProfileClaims are the claims sourced from the user's profile.
type ProfileClaims struct {
	Zipcode  *string `json:"zipcode"`
	IsMentor *bool   `json:"isMentor"`
}

// GetUserID extracts the user identifier from the token's "sub" (subject) claim,
// parses it as a base-10 int64, and returns the result.
func (c *Claims) GetUserID() (int64, error) {
	userIDString, err := c.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// ActionClaims is the claim set of email confirmation keys and password
// reset tokens. Fingerprint ties a reset token to the account state it was
// issued for.
type ActionClaims struct {
	jwt.RegisteredClaims

	Purpose     TokenPurpose `json:"purpose"`
	Email       string       `json:"email,omitempty"`
	Fingerprint string       `json:"fp,omitempty"`
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	Access  string
	Refresh string

	// Claims are the access token claims, kept so callers can build a
	// response without decoding the token they just signed.
	Claims *Claims
}
