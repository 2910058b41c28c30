package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-membership/internal/config"
	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/models"
)

// ErrVersionIsNotSpecified is returned when neither the configuration nor
// the build carries a version.
var ErrVersionIsNotSpecified = errors.New("app version is not specified")

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type appInfoService struct {
	appVersion string
	build      models.AppBuildInfo

	db Pinger

	logger *logger.Logger
}

// NewAppInfoService prefers the configured version over the one linked into
// the binary.
func NewAppInfoService(cfg config.App, build models.AppBuildInfo, db Pinger, logger *logger.Logger) (AppInfoService, error) {
	version := cfg.Version
	if version == "" && build.Version != "N/A" {
		version = build.Version
	}
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}
	build.Version = version

	return &appInfoService{
		appVersion: version,
		build:      build,
		db:         db,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.build
}

// Health pings the database. A nil pinger is always healthy.
func (s *appInfoService) Health(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Ping(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Msg("database ping failed")
		return fmt.Errorf("database is unreachable: %w", err)
	}
	return nil
}
