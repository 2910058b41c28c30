// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles the components shared by the server and the worker
// processes: logger, error reporter, database, repositories, adapters and
// services.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-membership/internal/adapter"
	"github.com/MKhiriev/go-membership/internal/config"
	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/reporter"
	"github.com/MKhiriev/go-membership/internal/service"
	"github.com/MKhiriev/go-membership/internal/store"
	"github.com/MKhiriev/go-membership/internal/templates"
	"github.com/MKhiriev/go-membership/internal/workers"
	"github.com/MKhiriev/go-membership/models"
)

const reporterFlushTimeout = 2 * time.Second

// Core is the wired application.
type Core struct {
	Config       *config.StructuredConfig
	Logger       *logger.Logger
	Reporter     *reporter.Reporter
	DB           *store.DB
	Repositories *store.Repositories
	Templates    *templates.Renderer
	Services     *service.Services
}

// NewCore connects to the database, applies migrations and builds every
// service. log receives a hook that forwards errors to the reporter.
func NewCore(ctx context.Context, cfg *config.StructuredConfig, build models.AppBuildInfo, log *logger.Logger) (*Core, error) {
	rep, err := reporter.New(reporter.Options{
		DSN:         cfg.Adapter.SentryDSN,
		Environment: cfg.App.Environment,
		Release:     build.Version,
	})
	if err != nil {
		log.Warn().Err(err).Msg("error reporting is disabled")
	}
	log = log.WithHook(rep.Hook())

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting database: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	repos := store.NewRepositories(db, log)

	adapters, err := adapter.NewAdapters(cfg.Adapter, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error creating adapters: %w", err)
	}

	renderer, err := templates.New()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error loading templates: %w", err)
	}

	services, err := service.NewServices(service.Dependencies{
		Repositories: repos,
		Adapters:     adapters,
		Templates:    renderer,
		DB:           db,
		Build:        build,
	}, *cfg, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error creating services: %w", err)
	}

	return &Core{
		Config:       cfg,
		Logger:       log,
		Reporter:     rep,
		DB:           db,
		Repositories: repos,
		Templates:    renderer,
		Services:     services,
	}, nil
}

// NewWorkers returns the task queue worker and the denylist purger.
func (c *Core) NewWorkers() *workers.Workers {
	return workers.NewWorkers(
		workers.NewTaskWorker(c.Repositories.TaskRepository, c.Services.TaskService, c.Reporter, c.Config.Workers, c.Logger),
		workers.NewDenylistWorker(c.Repositories.TokenRepository, workers.DefaultPurgeInterval, c.Logger),
	)
}

// Close flushes pending error reports and closes the database.
func (c *Core) Close() {
	c.Reporter.Flush(reporterFlushTimeout)
	if err := c.DB.Close(); err != nil {
		c.Logger.Err(err).Msg("error closing database")
	}
}
