package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-membership/internal/config"
	"github.com/MKhiriev/go-membership/internal/mock"
	"github.com/MKhiriev/go-membership/internal/store"
	"github.com/MKhiriev/go-membership/models"
	"go.uber.org/mock/gomock"
)

var (
	errDB   = errors.New("db is down")
	fixedAt = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
)

const strongPassword = "Tr0ub4dor&3-horse"

// repoMocks bundles a gomock mock per repository.
type repoMocks struct {
	tx       *mock.MockTransactor
	users    *mock.MockUserRepository
	profiles *mock.MockProfileRepository
	emails   *mock.MockEmailAddressRepository
	tasks    *mock.MockTaskRepository
	tokens   *mock.MockTokenRepository
	catalog  *mock.MockCatalogRepository
}

func newRepoMocks(t *testing.T) *repoMocks {
	ctrl := gomock.NewController(t)
	return &repoMocks{
		tx:       mock.NewMockTransactor(ctrl),
		users:    mock.NewMockUserRepository(ctrl),
		profiles: mock.NewMockProfileRepository(ctrl),
		emails:   mock.NewMockEmailAddressRepository(ctrl),
		tasks:    mock.NewMockTaskRepository(ctrl),
		tokens:   mock.NewMockTokenRepository(ctrl),
		catalog:  mock.NewMockCatalogRepository(ctrl),
	}
}

func (m *repoMocks) repositories() *store.Repositories {
	return &store.Repositories{
		Transactor:             m.tx,
		UserRepository:         m.users,
		ProfileRepository:      m.profiles,
		EmailAddressRepository: m.emails,
		TaskRepository:         m.tasks,
		TokenRepository:        m.tokens,
		CatalogRepository:      m.catalog,
	}
}

// runInTx makes the transactor call fn with the same context.
func (m *repoMocks) runInTx() {
	m.tx.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:         "test-secret-key-for-signing-tokens",
		TokenIssuer:          "go-membership-test",
		AccessTokenTTL:       time.Hour,
		RefreshTokenTTL:      24 * time.Hour,
		EmailConfirmationTTL: 72 * time.Hour,
		PasswordResetTTL:     72 * time.Hour,
		SiteURL:              "https://api.example.org/",
		FrontendURL:          "https://example.org",
		Version:              "test",
	}
}

func defaultPolicy() taskPolicy {
	return taskPolicy{slackInviteOn: config.SlackInviteOnSignup}
}

// taskKinds extracts the kinds of tasks in order.
func taskKinds(tasks []models.Task) []models.TaskKind {
	kinds := make([]models.TaskKind, len(tasks))
	for i, task := range tasks {
		kinds[i] = task.Kind
	}
	return kinds
}

// captureTasks records every Enqueue call into dst.
func captureTasks(dst *[]models.Task) func(context.Context, ...models.Task) error {
	return func(_ context.Context, tasks ...models.Task) error {
		*dst = append(*dst, tasks...)
		return nil
	}
}

func ptr[T any](v T) *T {
	return &v
}
