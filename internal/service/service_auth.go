// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/store"
	"github.com/MKhiriev/go-membership/internal/utils"
	"github.com/MKhiriev/go-membership/internal/validators"
	"github.com/MKhiriev/go-membership/models"
)

// dummyPasswordHash is compared against when the email is unknown, so the
// response time does not reveal whether an account exists.
const dummyPasswordHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOa5hH7z5QeI8Gq0nDp1Nq6XhQwDq8m5a"

// authService is the concrete implementation of AuthService.
// It verifies credentials against bcrypt hashes, records logins and
// delegates token work to TokenService.
type authService struct {
	// userRepository is the data-access layer used to look up users.
	userRepository store.UserRepository

	tokens    TokenService
	validator validators.Validator

	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, tokens TokenService, validator validators.Validator, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokens:         tokens,
		validator:      validator,
		now:            time.Now,
		logger:         logger,
	}
}

// Login authenticates a member by email and password.
//
// Returns the issued token pair or:
//   - a *ValidationError if email or password is empty.
//   - ErrInvalidCredentials for an unknown email, an inactive account or a
//     wrong password, so callers cannot tell these cases apart.
//
// A successful login sets last_login and increments the sign-in counter
// before the tokens are issued.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	creds.Email = strings.TrimSpace(creds.Email)
	if err := a.validator.Validate(ctx, creds); err != nil {
		return models.TokenPair{}, err
	}

	user, err := a.userRepository.FindUserByEmail(ctx, creds.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		utils.CheckPassword(dummyPasswordHash, creds.Password)
		log.Info().Str("email", creds.Email).Msg("login attempt for unknown email")
		return models.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("email", creds.Email).Msg("user search by email failed")
		return models.TokenPair{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, creds.Password) || !user.IsActive {
		log.Info().Int64("id", user.ID).Msg("wrong password or inactive account")
		return models.TokenPair{}, ErrInvalidCredentials
	}

	lastLogin, err := a.userRepository.RecordLogin(ctx, user.ID, a.now())
	if err != nil {
		log.Err(err).Int64("id", user.ID).Msg("recording login failed")
		return models.TokenPair{}, fmt.Errorf("recording login failed: %w", err)
	}
	user.LastLogin = &lastLogin

	pair, err := a.tokens.IssuePair(ctx, user)
	if err != nil {
		log.Err(err).Int64("id", user.ID).Msg("token issuance failed")
		return models.TokenPair{}, err
	}

	return pair, nil
}

// Logout revokes the refresh token. An empty token revokes nothing and is
// not an error.
func (a *authService) Logout(ctx context.Context, refresh string) error {
	if strings.TrimSpace(refresh) == "" {
		return nil
	}
	return a.tokens.Revoke(ctx, refresh)
}

func (a *authService) Refresh(ctx context.Context, refresh string) (string, error) {
	if strings.TrimSpace(refresh) == "" {
		return "", validators.FieldError("refresh", validators.MsgRequired)
	}
	return a.tokens.RefreshAccess(ctx, refresh)
}

func (a *authService) VerifyToken(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return validators.FieldError("token", validators.MsgRequired)
	}
	return a.tokens.Verify(ctx, token)
}

// Authenticate validates an access token. Signature, expiry and type
// failures are all reported as ErrTokenIsExpiredOrInvalid.
func (a *authService) Authenticate(ctx context.Context, token string) (*models.Claims, error) {
	claims, err := a.tokens.ParseAccess(ctx, token)
	if err != nil && !errors.Is(err, ErrTokenIsExpiredOrInvalid) {
		logger.FromContext(ctx).Err(err).Msg("access token check failed")
	}

	return claims, err
}
