//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

package service

import (
	"context"

	"github.com/MKhiriev/go-membership/models"
)

// TokenService issues and checks every signed token: access and refresh
// credentials as well as single-use email confirmation keys and password
// reset tokens.
type TokenService interface {
	// IssuePair mints access and refresh tokens for an authenticated user.
	// A missing profile omits the profile claims instead of failing.
	IssuePair(ctx context.Context, user models.User) (models.TokenPair, error)

	// RefreshAccess exchanges a valid, non-revoked refresh token for a new
	// access token whose claims are re-read from storage.
	RefreshAccess(ctx context.Context, refresh string) (string, error)

	// ParseAccess validates an access token and returns its claims.
	ParseAccess(ctx context.Context, token string) (*models.Claims, error)

	// Verify accepts any valid access or refresh token.
	Verify(ctx context.Context, token string) error

	// Revoke adds the refresh token id to the denylist until it expires.
	Revoke(ctx context.Context, refresh string) error

	ConfirmationKey(address models.EmailAddress) (string, error)
	// ParseConfirmationKey returns the email address id and email bound to key.
	ParseConfirmationKey(key string) (int64, string, error)

	ResetToken(user models.User) (string, error)
	// CheckResetToken fails when token was issued for another user or for
	// an older password hash or last login of user.
	CheckResetToken(user models.User, token string) error
}

type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (models.TokenPair, error)
	Logout(ctx context.Context, refresh string) error
	Refresh(ctx context.Context, refresh string) (string, error)
	VerifyToken(ctx context.Context, token string) error

	// Authenticate resolves a bearer access token into its claims.
	Authenticate(ctx context.Context, token string) (*models.Claims, error)
}

type RegistrationService interface {
	// Register creates identity, profile, email address and signup tasks
	// atomically.
	Register(ctx context.Context, reg models.Registration) error
}

type EmailService interface {
	ConfirmEmail(ctx context.Context, key string) error
	ResendConfirmation(ctx context.Context, req models.EmailRequest) error
}

type PasswordService interface {
	RequestReset(ctx context.Context, req models.EmailRequest) error
	ValidateResetLink(ctx context.Context, uid, token string) error
	ConfirmReset(ctx context.Context, req models.PasswordResetConfirm) error
	ChangePassword(ctx context.Context, userID int64, req models.PasswordChange) error
}

type UserService interface {
	GetUser(ctx context.Context, userID int64) (models.UserDetails, error)
	UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.UserDetails, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, input models.Input) (models.Profile, error)

	// AdminGetProfile and AdminUpdateProfile act on the profile of the
	// user owning email. The caller must be staff or a profile admin.
	AdminGetProfile(ctx context.Context, callerID int64, email string) (models.Profile, error)
	AdminUpdateProfile(ctx context.Context, callerID int64, email string, input models.Input) (models.Profile, error)
}

// CatalogService serves the reference data resources. A nil caller is an
// anonymous request.
type CatalogService interface {
	List(ctx context.Context, caller *models.Claims, resource string) ([]models.Record, error)
	Get(ctx context.Context, caller *models.Claims, resource string, id int64) (models.Record, error)
	Create(ctx context.Context, caller *models.Claims, resource string, input models.Input) (models.Record, error)
	Update(ctx context.Context, caller *models.Claims, resource string, id int64, input models.Input) (models.Record, error)
	Delete(ctx context.Context, caller *models.Claims, resource string, id int64) error
}

// TaskService runs one background task.
type TaskService interface {
	Execute(ctx context.Context, task models.Task) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
	Health(ctx context.Context) error
}
