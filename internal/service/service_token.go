package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-membership/internal/config"
	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/store"
	"github.com/MKhiriev/go-membership/internal/utils"
	"github.com/MKhiriev/go-membership/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenService is the concrete implementation of TokenService.
//
// Access and refresh tokens are signed by session, which is HS256 or RS256
// depending on configuration. Confirmation keys and reset tokens are always
// HS256 with the shared secret.
type tokenService struct {
	session *utils.JWTSigner
	action  *utils.JWTSigner
	hasher  *utils.Hasher
	ids     *utils.UUIDGenerator

	userRepository    store.UserRepository
	profileRepository store.ProfileRepository
	tokenRepository   store.TokenRepository

	accessTTL       time.Duration
	refreshTTL      time.Duration
	confirmationTTL time.Duration
	resetTTL        time.Duration

	now func() time.Time

	logger *logger.Logger
}

// NewTokenService builds the signers described by cfg. RS256 is used for
// session tokens when both key paths are set.
func NewTokenService(repos *store.Repositories, cfg config.App, logger *logger.Logger) (TokenService, error) {
	action, err := utils.NewHMACSigner(cfg.TokenSignKey, cfg.TokenIssuer)
	if err != nil {
		return nil, err
	}

	session := action
	if cfg.TokenPrivateKeyPath != "" && cfg.TokenPublicKeyPath != "" {
		session, err = utils.NewRSASignerFromFiles(cfg.TokenPrivateKeyPath, cfg.TokenPublicKeyPath, cfg.TokenIssuer)
		if err != nil {
			return nil, err
		}
	}

	return &tokenService{
		session:           session,
		action:            action,
		hasher:            utils.NewHasher(cfg.TokenSignKey),
		ids:               utils.NewUUIDGenerator(),
		userRepository:    repos.UserRepository,
		profileRepository: repos.ProfileRepository,
		tokenRepository:   repos.TokenRepository,
		accessTTL:         cfg.AccessTokenTTL,
		refreshTTL:        cfg.RefreshTokenTTL,
		confirmationTTL:   cfg.EmailConfirmationTTL,
		resetTTL:          cfg.PasswordResetTTL,
		now:               time.Now,
		logger:            logger,
	}, nil
}

// IssuePair signs an access and a refresh token carrying the same identity
// and profile claims, differing only in token type, id and expiry.
func (s *tokenService) IssuePair(ctx context.Context, user models.User) (models.TokenPair, error) {
	profileClaims, err := s.profileClaims(ctx, user.ID)
	if err != nil {
		return models.TokenPair{}, err
	}

	access := s.sessionClaims(user, profileClaims, models.AccessToken, s.accessTTL)
	accessToken, err := s.session.Sign(access)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refresh := s.sessionClaims(user, profileClaims, models.RefreshToken, s.refreshTTL)
	refreshToken, err := s.session.Sign(refresh)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{Access: accessToken, Refresh: refreshToken, Claims: access}, nil
}

func (s *tokenService) RefreshAccess(ctx context.Context, refresh string) (string, error) {
	claims, err := s.parseSession(ctx, refresh, models.RefreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.userRepository.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", ErrTokenIsExpiredOrInvalid
		}
		return "", fmt.Errorf("error loading token owner: %w", err)
	}
	if !user.IsActive {
		return "", ErrTokenIsExpiredOrInvalid
	}

	profileClaims, err := s.profileClaims(ctx, user.ID)
	if err != nil {
		return "", err
	}

	access, err := s.session.Sign(s.sessionClaims(user, profileClaims, models.AccessToken, s.accessTTL))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return access, nil
}

func (s *tokenService) ParseAccess(ctx context.Context, token string) (*models.Claims, error) {
	return s.parseSession(ctx, token, models.AccessToken)
}

func (s *tokenService) Verify(ctx context.Context, token string) error {
	_, err := s.parseSession(ctx, token, "")
	return err
}

func (s *tokenService) Revoke(ctx context.Context, refresh string) error {
	claims, err := s.parseSession(ctx, refresh, models.RefreshToken)
	if err != nil {
		return err
	}

	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return ErrTokenIsExpiredOrInvalid
	}

	if err = s.tokenRepository.Deny(ctx, jti, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}

	return nil
}

// parseSession validates token and checks its type. An empty want accepts
// both access and refresh tokens. Refresh tokens are also checked against
// the denylist.
func (s *tokenService) parseSession(ctx context.Context, token string, want models.TokenType) (*models.Claims, error) {
	claims := new(models.Claims)
	if err := s.session.Parse(token, claims); err != nil {
		return nil, ErrTokenIsExpiredOrInvalid
	}

	switch claims.TokenType {
	case models.AccessToken, models.RefreshToken:
	default:
		return nil, ErrTokenIsExpiredOrInvalid
	}
	if want != "" && claims.TokenType != want {
		return nil, ErrTokenIsExpiredOrInvalid
	}

	userID, err := claims.GetUserID()
	if err != nil || userID != claims.UserID {
		return nil, ErrTokenIsExpiredOrInvalid
	}

	if claims.TokenType == models.RefreshToken {
		jti, err := uuid.Parse(claims.ID)
		if err != nil {
			return nil, ErrTokenIsExpiredOrInvalid
		}
		denied, err := s.tokenRepository.IsDenied(ctx, jti)
		if err != nil {
			return nil, fmt.Errorf("error checking token denylist: %w", err)
		}
		if denied {
			return nil, ErrTokenIsExpiredOrInvalid
		}
	}

	return claims, nil
}

func (s *tokenService) sessionClaims(user models.User, profile *models.ProfileClaims, typ models.TokenType, ttl time.Duration) *models.Claims {
	now := s.now()

	return &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.session.Issuer(),
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        s.ids.Generate(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType:     typ,
		UserID:        user.ID,
		Email:         user.Email,
		Username:      user.Username,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		ProfileClaims: profile,
	}
}

func (s *tokenService) profileClaims(ctx context.Context, userID int64) (*models.ProfileClaims, error) {
	profile, err := s.profileRepository.GetProfile(ctx, userID)
	if errors.Is(err, store.ErrProfileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading profile claims: %w", err)
	}

	return &models.ProfileClaims{Zipcode: profile.Zipcode, IsMentor: profile.IsMentor}, nil
}

func (s *tokenService) ConfirmationKey(address models.EmailAddress) (string, error) {
	now := s.now()

	key, err := s.action.Sign(&models.ActionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.action.Issuer(),
			Subject:   strconv.FormatInt(address.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.confirmationTTL)),
		},
		Purpose: models.PurposeEmailConfirmation,
		Email:   address.Email,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return key, nil
}

func (s *tokenService) ParseConfirmationKey(key string) (int64, string, error) {
	claims, err := s.parseAction(key, models.PurposeEmailConfirmation)
	if err != nil {
		return 0, "", err
	}

	return claims.subjectID, claims.Email, nil
}

func (s *tokenService) ResetToken(user models.User) (string, error) {
	now := s.now()

	token, err := s.action.Sign(&models.ActionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.action.Issuer(),
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.resetTTL)),
		},
		Purpose:     models.PurposePasswordReset,
		Fingerprint: s.resetFingerprint(user),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func (s *tokenService) CheckResetToken(user models.User, token string) error {
	claims, err := s.parseAction(token, models.PurposePasswordReset)
	if err != nil {
		return ErrInvalidResetToken
	}

	if claims.subjectID != user.ID || !s.hasher.Equal(claims.Fingerprint, s.resetFingerprint(user)) {
		return ErrInvalidResetToken
	}

	return nil
}

// resetFingerprint binds a reset token to the state a successful reset or
// login changes.
func (s *tokenService) resetFingerprint(user models.User) string {
	lastLogin := ""
	if user.LastLogin != nil {
		lastLogin = user.LastLogin.UTC().Format(time.RFC3339Nano)
	}

	return s.hasher.Fingerprint(
		strconv.FormatInt(user.ID, 10),
		user.PasswordHash,
		lastLogin,
		strings.ToLower(user.Email),
	)
}

type parsedAction struct {
	*models.ActionClaims
	subjectID int64
}

func (s *tokenService) parseAction(token string, purpose models.TokenPurpose) (parsedAction, error) {
	claims := new(models.ActionClaims)
	if err := s.action.Parse(token, claims); err != nil {
		return parsedAction{}, ErrTokenIsExpiredOrInvalid
	}
	if claims.Purpose != purpose {
		return parsedAction{}, ErrTokenIsExpiredOrInvalid
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return parsedAction{}, ErrTokenIsExpiredOrInvalid
	}

	return parsedAction{ActionClaims: claims, subjectID: id}, nil
}
