package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/store"
	"github.com/MKhiriev/go-membership/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestTokenService(t *testing.T, m *repoMocks) *tokenService {
	t.Helper()

	svc, err := NewTokenService(m.repositories(), testAppConfig(), logger.Nop())
	require.NoError(t, err)

	return svc.(*tokenService)
}

func testUser() models.User {
	lastLogin := fixedAt.Add(-time.Hour)
	return models.User{
		ID:           42,
		Email:        "grace@example.org",
		Username:     "grace@example.org",
		PasswordHash: "$2a$10$H1H1H1H1H1H1H1H1H1H1H.H1H1H1H1H1H1H1H1H1H1H1H1H1H1H1",
		FirstName:    "Grace",
		LastName:     "Hopper",
		IsActive:     true,
		LastLogin:    &lastLogin,
	}
}

// ─────────────────────────────────────────────
// IssuePair / ParseAccess
// ─────────────────────────────────────────────

func TestTokenService_IssuePair_ClaimsRoundTrip(t *testing.T) {
	m := newRepoMocks(t)
	svc := newTestTokenService(t, m)
	user := testUser()

	m.profiles.EXPECT().GetProfile(gomock.Any(), user.ID).Return(models.Profile{
		UserID:   user.ID,
		Zipcode:  ptr("97201"),
		IsMentor: ptr(true),
	}, nil)

	pair, err := svc.IssuePair(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := svc.ParseAccess(context.Background(), pair.Access)
	require.NoError(t, err)

	assert.Equal(t, models.AccessToken, claims.TokenType)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, "Grace", claims.FirstName)
	assert.Equal(t, "Hopper", claims.LastName)
	require.NotNil(t, claims.ProfileClaims)
	assert.Equal(t, "97201", *claims.Zipcode)
	assert.True(t, *claims.IsMentor)
	assert.Equal(t, "go-membership-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	assert.Equal(t, pair.Claims.ID, claims.ID)
}

func TestTokenService_IssuePair_MissingProfileOmitsClaims(t *testing.T) {
	m := newRepoMocks(t)
	svc := newTestTokenService(t, m)
	user := testUser()

	m.profiles.EXPECT().GetProfile(gomock.Any(), user.ID).Return(models.Profile{}, store.ErrProfileNotFound)

	pair, err := svc.IssuePair(context.Background(), user)
	require.NoError(t, err)

	claims, err := svc.ParseAccess(context.Background(), pair.Access)
	require.NoError(t, err)
	assert.Nil(t, claims.ProfileClaims)
}

func TestTokenService_IssuePair_ProfileError(t *testing.T) {
	m := newRepoMocks(t)
	svc := newTestTokenService(t, m)

	m.profiles.EXPECT().GetProfile(gomock.Any(), gomock.Any()).Return(models.Profile{}, errDB)

	_, err := svc.IssuePair(context.Background(), testUser())
	assert.ErrorIs(t, err, errDB)
}

func TestTokenService_ParseAccess_Rejects(t *testing.T) {
	m := newRepoMocks(t)
	svc := newTestTokenService(t, m)
	user := testUser()

	m.profiles.EXPECT().GetProfile(gomock.Any(), user.ID).Return(models.Profile{}, store.ErrProfileNotFound)
	pair, err := svc.IssuePair(context.Background(), user)
	require.NoError(t, err)

	expired := svc.sessionClaims(user, nil, models.AccessToken, -time.Minute)
	expiredToken, err := svc.session.Sign(expired)
	require.NoError(t, err)

	mismatched := svc.sessionClaims(user, nil, models.AccessToken, time.Hour)
	mismatched.UserID = 7
	mismatchedToken, err := svc.session.Sign(mismatched)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "refresh token", token: pair.Refresh},
		{name: "garbage", token: "not-a-jwt"},
		{name: "tampered", token: pair.Access + "x"},
		{name: "expired", token: expiredToken},
		{name: "subject mismatch", token: mismatchedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseAccess(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}

// ─────────────────────────────────────────────
// RefreshAccess / Verify / Revoke
// ─────────────────────────────────────────────

func issueRefresh(t *testing.T, svc *tokenService, m *repoMocks, user models.User) (string, *models.Claims) {
	t.Helper()

	m.profiles.EXPECT().GetProfile(gomock.Any(), user.ID).Return(models.Profile{}, store.ErrProfileNotFound)
	pair, err := svc.IssuePair(context.Background(), user)
	require.NoError(t, err)

	claims := new(models.Claims)
	require.NoError(t, svc.session.Parse(pair.Refresh, claims))

	return pair.Refresh, claims
}

func TestTokenService_RefreshAccess_RereadsClaims(t *testing.T) {
	m := newRepoMocks(t)
	svc := newTestTokenService(t, m)
	user := testUser()
	refresh, _ := issueRefresh(t, svc, m, user)

	renamed := user
	renamed.FirstName = "Amazing Grace"

	m.tokens.EXPECT().IsDenied(gomock.Any(), gomock.Any()).Return(false, nil)
	m.users.EXPECT().FindUserByID(gomock.Any(), user.ID).Return(renamed, nil)
	m.profiles.EXPECT().GetProfile(gomock.Any(), user.ID).Return(models.Profile{Zipcode: ptr("10001")}, nil)

	access, err := svc.RefreshAccess(context.Background(), refresh)
	require.NoError(t, err)

	claims, err := svc.ParseAccess(context.Background(), access)
	require.NoError(t, err)
	assert.Equal(t, "Amazing Grace", claims.FirstName)
	require.NotNil(t, claims.ProfileClaims)
	assert.Equal(t, "10001", *claims.Zipcode)
}

func TestTokenService_RefreshAccess_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *repoMocks, user models.User)
	}{
		{
			name: "denied",
			setup: func(m *repoMocks, _ models.User) {
				m.tokens.EXPECT().IsDenied(gomock.Any(), gomock.Any()).Return(true, nil)
			},
		},
		{
			name: "owner deleted",
			setup: func(m *repoMocks, user models.User) {
				m.tokens.EXPECT().IsDenied(gomock.Any(), gomock.Any()).Return(false, nil)
				m.users.EXPECT().FindUserByID(gomock.Any(), user.ID).Return(models.User{}, store.ErrUserNotFound)
			},
		},
		{
			name: "owner inactive",
			setup: func(m *repoMocks, user models.User) {
				inactive := user
				inactive.IsActive = false
				m.tokens.EXPECT().IsDenied(gomock.Any(), gomock.Any()).Return(false, nil)
				m.users.EXPECT().FindUserByID(gomock.Any(), user.ID).Return(inactive, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newRepoMocks(t)
			svc := newTestTokenService(t, m)
			user := testUser()
			refresh, _ := issueRefresh(t, svc, m, user)
			tt.setup(m, user)

			_, err := svc.RefreshAccess(context.Background(), refresh)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}

func TestTokenService_RefreshAccess_RejectsAccessToken(t *testing.T) {
	m := newRepoMocks(t)
	svc := newTestTokenService(t, m)
	user := testUser()

	m.profiles.EXPECT().GetProfile(gomock.Any(), user.ID).Return(models.Profile{}, store.ErrProfileNotFound)
	pair, err := svc.IssuePair(context.Background(), user)
	require.NoError(t, err)

	_, err = svc.RefreshAccess(context.Background(), pair.Access)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestTokenService_Verify_AcceptsBothTypes(t *testing.T) {
	m := newRepoMocks(t)
	svc := newTestTokenService(t, m)
	user := testUser()

	m.profiles.EXPECT().GetProfile(gomock.Any(), user.ID).Return(models.Profile{}, store.ErrProfileNotFound)
	pair, err := svc.IssuePair(context.Background(), user)
	require.NoError(t, err)

	m.tokens.EXPECT().IsDenied(gomock.Any(), gomock.Any()).Return(false, nil)

	assert.NoError(t, svc.Verify(context.Background(), pair.Access))
	assert.NoError(t, svc.Verify(context.Background(), pair.Refresh))
	assert.ErrorIs(t, svc.Verify(context.Background(), "garbage"), ErrTokenIsExpiredOrInvalid)
}

func TestTokenService_Revoke_DeniesJTIUntilExpiry(t *testing.T) {
	m := newRepoMocks(t)
	svc := newTestTokenService(t, m)
	user := testUser()
	refresh, claims := issueRefresh(t, svc, m, user)

	m.tokens.EXPECT().IsDenied(gomock.Any(), gomock.Any()).Return(false, nil)
	m.tokens.EXPECT().Deny(gomock.Any(), uuid.MustParse(claims.ID), claims.ExpiresAt.Time).Return(nil)

	require.NoError(t, svc.Revoke(context.Background(), refresh))
}

func TestTokenService_Revoke_DenylistError(t *testing.T) {
	m := newRepoMocks(t)
	svc := newTestTokenService(t, m)
	refresh, _ := issueRefresh(t, svc, m, testUser())

	m.tokens.EXPECT().IsDenied(gomock.Any(), gomock.Any()).Return(false, errDB)

	assert.ErrorIs(t, svc.Revoke(context.Background(), refresh), errDB)
}

// ─────────────────────────────────────────────
// Confirmation keys
// ─────────────────────────────────────────────

func TestTokenService_ConfirmationKey_RoundTrip(t *testing.T) {
	svc := newTestTokenService(t, newRepoMocks(t))
	address := models.EmailAddress{ID: 9, UserID: 42, Email: "grace@example.org"}

	key, err := svc.ConfirmationKey(address)
	require.NoError(t, err)

	id, email, err := svc.ParseConfirmationKey(key)
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.Equal(t, "grace@example.org", email)
}

func TestTokenService_ParseConfirmationKey_Rejects(t *testing.T) {
	svc := newTestTokenService(t, newRepoMocks(t))
	user := testUser()

	resetToken, err := svc.ResetToken(user)
	require.NoError(t, err)

	expired, err := svc.action.Sign(&models.ActionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    svc.action.Issuer(),
			Subject:   "9",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		Purpose: models.PurposeEmailConfirmation,
	})
	require.NoError(t, err)

	zeroSubject, err := svc.action.Sign(&models.ActionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    svc.action.Issuer(),
			Subject:   "0",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Purpose: models.PurposeEmailConfirmation,
	})
	require.NoError(t, err)

	for name, key := range map[string]string{
		"garbled":      "%%%",
		"reset token":  resetToken,
		"expired":      expired,
		"zero subject": zeroSubject,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := svc.ParseConfirmationKey(key)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}

// ─────────────────────────────────────────────
// Reset tokens
// ─────────────────────────────────────────────

func TestTokenService_ResetToken_BoundToAccountState(t *testing.T) {
	svc := newTestTokenService(t, newRepoMocks(t))
	user := testUser()

	token, err := svc.ResetToken(user)
	require.NoError(t, err)
	require.NoError(t, svc.CheckResetToken(user, token))

	newHash := user
	newHash.PasswordHash = "$2a$10$H2H2H2H2H2H2H2H2H2H2H.H2H2H2H2H2H2H2H2H2H2H2H2H2H2H2"

	newLogin := user
	newLogin.LastLogin = ptr(fixedAt)

	other := user
	other.ID = 43

	otherEmail := user
	otherEmail.Email = "hopper@example.org"

	for name, changed := range map[string]models.User{
		"password changed": newHash,
		"logged in since":  newLogin,
		"other user":       other,
		"email changed":    otherEmail,
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, svc.CheckResetToken(changed, token), ErrInvalidResetToken)
		})
	}
}

func TestTokenService_CheckResetToken_RejectsConfirmationKey(t *testing.T) {
	svc := newTestTokenService(t, newRepoMocks(t))
	user := testUser()

	key, err := svc.ConfirmationKey(models.EmailAddress{ID: user.ID, Email: user.Email})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.CheckResetToken(user, key), ErrInvalidResetToken)
}

func TestTokenService_ResetToken_EmailCaseInsensitive(t *testing.T) {
	svc := newTestTokenService(t, newRepoMocks(t))
	user := testUser()

	token, err := svc.ResetToken(user)
	require.NoError(t, err)

	upper := user
	upper.Email = "Grace@Example.org"
	assert.NoError(t, svc.CheckResetToken(upper, token))
}

func TestNewTokenService_MissingSecret(t *testing.T) {
	cfg := testAppConfig()
	cfg.TokenSignKey = ""

	_, err := NewTokenService(newRepoMocks(t).repositories(), cfg, logger.Nop())
	assert.Error(t, err)
}
