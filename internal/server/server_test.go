package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-membership/internal/config"
	"github.com/MKhiriev/go-membership/internal/handler"
	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/reporter"
	"github.com/MKhiriev/go-membership/internal/service"
	"github.com/MKhiriev/go-membership/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Fake servers
// ─────────────────────────────────────────────

type fakeServer struct {
	runErr      error
	shutdownErr error
	shutdowns   atomic.Int32
}

func (f *fakeServer) RunServer(ctx context.Context) error {
	if f.runErr != nil {
		return f.runErr
	}
	<-ctx.Done()
	return nil
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	return f.shutdownErr
}

func runAsync(ctx context.Context, s Server) <-chan error {
	done := make(chan error, 1)
	go func() { done <- s.RunServer(ctx) }()
	return done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("RunServer did not return")
		return nil
	}
}

func TestRunServer_StopsOnCancel(t *testing.T) {
	a, b := &fakeServer{}, &fakeServer{}
	s := &server{servers: []Server{a, b}, logger: logger.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, s)
	cancel()

	require.NoError(t, wait(t, done))
	assert.EqualValues(t, 1, a.shutdowns.Load())
	assert.EqualValues(t, 1, b.shutdowns.Load())
}

func TestRunServer_OneFailureStopsAll(t *testing.T) {
	failure := errors.New("address already in use")
	a, b := &fakeServer{runErr: failure}, &fakeServer{}
	s := &server{servers: []Server{a, b}, logger: logger.Nop()}

	err := wait(t, runAsync(context.Background(), s))

	require.ErrorIs(t, err, failure)
	assert.EqualValues(t, 1, b.shutdowns.Load())
}

func TestRunServer_ShutdownErrorIsReturned(t *testing.T) {
	failure := errors.New("deadline exceeded")
	s := &server{servers: []Server{&fakeServer{shutdownErr: failure}}, logger: logger.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, s)
	cancel()

	assert.ErrorIs(t, wait(t, done), failure)
}

// ─────────────────────────────────────────────
// NewServer with real transports
// ─────────────────────────────────────────────

type healthyAppInfo struct{}

func (healthyAppInfo) GetAppVersion(context.Context) string { return "test" }
func (healthyAppInfo) GetBuildInfo(context.Context) models.AppBuildInfo {
	return models.NewAppBuildInfo("test", "", "")
}
func (healthyAppInfo) Health(context.Context) error { return nil }

func TestNewServer(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", GRPCAddress: "127.0.0.1:0", RequestTimeout: time.Second}
	services := &service.Services{AppInfoService: healthyAppInfo{}}

	handlers, err := handler.NewHandlers(services, nil, reporter.Nop(), cfg, logger.Nop())
	require.NoError(t, err)

	s, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)
	require.Len(t, s.(*server).servers, 2)

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, s)
	time.Sleep(50 * time.Millisecond)
	cancel()

	assert.NoError(t, wait(t, done))
}

func TestNewServer_NoServers(t *testing.T) {
	s, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}
