//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-membership/models"
	"github.com/google/uuid"
)

// Transactor runs a function inside one database transaction. Repository
// calls made with the ctx handed to fn share that transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository persists identities together with their profiles.
type UserRepository interface {
	// CreateUser inserts the identity and an empty profile in one statement
	// and returns the stored user.
	CreateUser(ctx context.Context, user models.User, zipcode *string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	SetPassword(ctx context.Context, id int64, passwordHash string) error
	// RecordLogin sets last_login and increments the profile sign-in counter.
	RecordLogin(ctx context.Context, id int64, at time.Time) (time.Time, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	IsInGroup(ctx context.Context, id int64, group string) (bool, error)
}

// ProfileRepository reads and patches profile rows.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (models.Profile, error)
	// GetProfileByEmail resolves the owner by email, case-insensitively.
	GetProfileByEmail(ctx context.Context, email string) (models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, changes models.Changes) (models.Profile, error)
}

// EmailAddressRepository tracks verification state of member addresses.
type EmailAddressRepository interface {
	CreateEmailAddress(ctx context.Context, address models.EmailAddress) (models.EmailAddress, error)
	GetEmailAddress(ctx context.Context, id int64) (models.EmailAddress, error)
	FindEmailAddress(ctx context.Context, email string) (models.EmailAddress, error)
	// MarkVerified flips an unverified address to verified and mirrors the
	// flag onto the profile. It reports false when the address was already
	// verified or does not exist.
	MarkVerified(ctx context.Context, id int64) (bool, error)
}

// TaskRepository is the durable background task queue.
type TaskRepository interface {
	Enqueue(ctx context.Context, tasks ...models.Task) error
	// Claim leases up to limit due tasks for lease, skipping rows locked by
	// concurrent claimers. Each claimed task carries a fresh claim token.
	Claim(ctx context.Context, limit int, lease time.Duration) ([]ClaimedTask, error)
	Complete(ctx context.Context, claim uuid.UUID) error
	Reschedule(ctx context.Context, claim uuid.UUID, runAt time.Time, lastErr string) error
	DeadLetter(ctx context.Context, claim uuid.UUID, lastErr string) error
}

// ClaimedTask is a task leased to one worker.
type ClaimedTask struct {
	models.Task
	ClaimToken uuid.UUID
}

// TokenRepository stores revoked refresh token ids.
type TokenRepository interface {
	Deny(ctx context.Context, jti uuid.UUID, expiresAt time.Time) error
	IsDenied(ctx context.Context, jti uuid.UUID) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// CatalogRepository serves table-driven reference data resources.
type CatalogRepository interface {
	List(ctx context.Context, res models.CatalogResource) ([]models.Record, error)
	Get(ctx context.Context, res models.CatalogResource, id int64) (models.Record, error)
	Create(ctx context.Context, res models.CatalogResource, changes models.Changes) (models.Record, error)
	// Update applies changes to row id. A non-nil owner restricts the update
	// to rows whose owner column equals it.
	Update(ctx context.Context, res models.CatalogResource, id int64, changes models.Changes, owner *int64) (models.Record, error)
	Delete(ctx context.Context, res models.CatalogResource, id int64, owner *int64) error
}
