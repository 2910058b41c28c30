package http

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/reporter"
	"github.com/MKhiriev/go-membership/models"
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newReportingHandler wires an enabled reporter into the test handler, with
// its log hook attached the way the application does it. Every Sentry event
// is counted and dropped.
func newReportingHandler(t *testing.T) (*Handler, *testServices, *atomic.Int32) {
	t.Helper()

	var sent atomic.Int32
	rep, err := reporter.New(reporter.Options{
		DSN: "https://public@example.com/1",
		BeforeSend: func(*sentry.Event, *sentry.EventHint) *sentry.Event {
			sent.Add(1)
			return nil
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { sentry.CurrentHub().BindClient(nil) })

	h, s := newTestHandler(t)
	h.reporter = rep
	h.logger = (&logger.Logger{Logger: zerolog.New(io.Discard)}).WithHook(rep.Hook())

	return h, s, &sent
}

// ─────────────────────────────────────────────
// Sentry event counts
// ─────────────────────────────────────────────

func TestHandler_SentryEventsPerFailure(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(s *testServices)
		request    func() *http.Request
		wantStatus int
		wantEvents int32
	}{
		{
			name: "malformed authorization header",
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/api/version/", nil)
				req.Header.Set("Authorization", "Token abc")
				return req
			},
			wantStatus: http.StatusUnauthorized,
			wantEvents: 0,
		},
		{
			name: "rejected bearer token",
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/auth/user/", nil)
				req.Header.Set("Authorization", "Bearer forged-token")
				return req
			},
			wantStatus: http.StatusUnauthorized,
			wantEvents: 0,
		},
		{
			name: "malformed JSON body",
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/auth/login/", strings.NewReader("{not json"))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			wantStatus: http.StatusBadRequest,
			wantEvents: 0,
		},
		{
			name: "internal failure",
			setup: func(s *testServices) {
				s.user.EXPECT().GetUser(gomock.Any(), int64(7)).
					Return(models.UserDetails{}, errors.New("connection refused"))
			},
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/auth/user/", nil)
				req.Header.Set("Authorization", "Bearer member-token")
				return req
			},
			wantStatus: http.StatusInternalServerError,
			wantEvents: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, sent := newReportingHandler(t)
			if tt.setup != nil {
				tt.setup(s)
			}

			rr := httptest.NewRecorder()
			h.Init().ServeHTTP(rr, tt.request())

			assert.Equal(t, tt.wantStatus, rr.Code, "body: %s", rr.Body.String())
			assert.Equal(t, tt.wantEvents, sent.Load())
		})
	}
}
