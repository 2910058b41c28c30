package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/mock"
	"github.com/MKhiriev/go-membership/internal/reporter"
	"github.com/MKhiriev/go-membership/internal/service"
	"github.com/MKhiriev/go-membership/internal/templates"
	"github.com/MKhiriev/go-membership/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	loginFn        func(ctx context.Context, creds models.Credentials) (models.TokenPair, error)
	logoutFn       func(ctx context.Context, refresh string) error
	refreshFn      func(ctx context.Context, refresh string) (string, error)
	verifyTokenFn  func(ctx context.Context, token string) error
	authenticateFn func(ctx context.Context, token string) (*models.Claims, error)
}

func (m *mockAuthService) Login(ctx context.Context, creds models.Credentials) (models.TokenPair, error) {
	return m.loginFn(ctx, creds)
}

func (m *mockAuthService) Logout(ctx context.Context, refresh string) error {
	return m.logoutFn(ctx, refresh)
}

func (m *mockAuthService) Refresh(ctx context.Context, refresh string) (string, error) {
	return m.refreshFn(ctx, refresh)
}

func (m *mockAuthService) VerifyToken(ctx context.Context, token string) error {
	return m.verifyTokenFn(ctx, token)
}

// Authenticate accepts "member-token" as user 7 and "staff-token" as user 1
// unless authenticateFn is set.
func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*models.Claims, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, token)
	}
	switch token {
	case "member-token":
		return &models.Claims{UserID: 7, Email: "ada@example.org"}, nil
	case "staff-token":
		return &models.Claims{UserID: 1, Email: "staff@example.org"}, nil
	}
	return nil, service.ErrTokenIsExpiredOrInvalid
}

// ─────────────────────────────────────────────
// Mock AppInfoService
// ─────────────────────────────────────────────

type mockAppInfoService struct {
	build     models.AppBuildInfo
	healthErr error
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string {
	return m.build.Version
}

func (m *mockAppInfoService) GetBuildInfo(context.Context) models.AppBuildInfo {
	return m.build
}

func (m *mockAppInfoService) Health(context.Context) error {
	return m.healthErr
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// testServices holds the gomock doubles behind a test handler.
type testServices struct {
	auth         *mockAuthService
	appInfo      *mockAppInfoService
	registration *mock.MockRegistrationService
	email        *mock.MockEmailService
	password     *mock.MockPasswordService
	user         *mock.MockUserService
	profile      *mock.MockProfileService
	catalog      *mock.MockCatalogService
}

func newTestHandler(t *testing.T) (*Handler, *testServices) {
	t.Helper()

	ctrl := gomock.NewController(t)
	s := &testServices{
		auth:         &mockAuthService{},
		appInfo:      &mockAppInfoService{build: models.NewAppBuildInfo("1.4.0", "2026-10-01", "abc123")},
		registration: mock.NewMockRegistrationService(ctrl),
		email:        mock.NewMockEmailService(ctrl),
		password:     mock.NewMockPasswordService(ctrl),
		user:         mock.NewMockUserService(ctrl),
		profile:      mock.NewMockProfileService(ctrl),
		catalog:      mock.NewMockCatalogService(ctrl),
	}

	renderer, err := templates.New()
	require.NoError(t, err)

	svcs := &service.Services{
		AuthService:         s.auth,
		AppInfoService:      s.appInfo,
		RegistrationService: s.registration,
		EmailService:        s.email,
		PasswordService:     s.password,
		UserService:         s.user,
		ProfileService:      s.profile,
		CatalogService:      s.catalog,
	}

	return NewHandler(svcs, renderer, reporter.Nop(), logger.Nop()), s
}

// serve sends a request through the full router. An authorization header
// is set when token is not empty.
func serve(t *testing.T, h *Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

// decode unmarshals the recorded JSON body into a generic map.
func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "body: %s", rr.Body.String())
	return body
}

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	return r.WithContext(nop.Logger.WithContext(r.Context()))
}
