// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// applyDefaults fills fields that no source has set.
func (cfg *StructuredConfig) applyDefaults() {
	app := &cfg.App
	if app.TokenIssuer == "" {
		app.TokenIssuer = "go-membership"
	}
	if app.AccessTokenTTL == 0 {
		app.AccessTokenTTL = time.Hour
	}
	if app.RefreshTokenTTL == 0 {
		app.RefreshTokenTTL = 24 * time.Hour
	}
	if app.EmailConfirmationTTL == 0 {
		app.EmailConfirmationTTL = 72 * time.Hour
	}
	if app.PasswordResetTTL == 0 {
		app.PasswordResetTTL = 72 * time.Hour
	}
	if app.Environment == "" {
		app.Environment = "development"
	}

	if cfg.Storage.DB.ConnectAttempts == 0 {
		cfg.Storage.DB.ConnectAttempts = 5
	}

	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}

	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = 10 * time.Second
	}
	if cfg.Adapter.MailFrom == "" {
		cfg.Adapter.MailFrom = "noreply@operationcode.org"
	}

	w := &cfg.Workers
	if w.PollInterval == 0 {
		w.PollInterval = 2 * time.Second
	}
	if w.BatchSize == 0 {
		w.BatchSize = 10
	}
	if w.Concurrency == 0 {
		w.Concurrency = 4
	}
	if w.MaxAttempts == 0 {
		w.MaxAttempts = 8
	}
	if w.BaseBackoff == 0 {
		w.BaseBackoff = 5 * time.Second
	}
	if w.MaxBackoff == 0 {
		w.MaxBackoff = 30 * time.Minute
	}
	if w.ClaimTimeout == 0 {
		w.ClaimTimeout = 2 * time.Minute
	}
	if w.SlackInviteOn == "" {
		w.SlackInviteOn = SlackInviteOnSignup
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	app := cfg.App
	rsa := app.TokenPrivateKeyPath != "" || app.TokenPublicKeyPath != ""
	if app.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if rsa && (app.TokenPrivateKeyPath == "" || app.TokenPublicKeyPath == "") {
		return fmt.Errorf("%w: both RSA key paths must be set", ErrInvalidAppConfigs)
	}
	if app.AccessTokenTTL < 0 || app.RefreshTokenTTL < 0 ||
		app.EmailConfirmationTTL < 0 || app.PasswordResetTTL < 0 {
		return fmt.Errorf("%w: token lifetimes must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	if err := cfg.Workers.validate(); err != nil {
		return err
	}

	return nil
}

// validateWorker checks only the settings the standalone worker needs, so
// the worker process can run without listener addresses.
func (cfg *StructuredConfig) validateWorker() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	return cfg.Workers.validate()
}

func (w Workers) validate() error {
	if w.Concurrency < 1 || w.BatchSize < 1 || w.MaxAttempts < 1 {
		return ErrInvalidWorkerConfigs
	}
	if w.PollInterval <= 0 || w.BaseBackoff <= 0 || w.ClaimTimeout <= 0 {
		return fmt.Errorf("%w: poll interval, base backoff and claim timeout must be positive", ErrInvalidWorkerConfigs)
	}
	if w.MaxBackoff < w.BaseBackoff {
		return fmt.Errorf("%w: max backoff is lower than base backoff", ErrInvalidWorkerConfigs)
	}
	if w.TaskDelay < 0 {
		return fmt.Errorf("%w: task delay is negative", ErrInvalidWorkerConfigs)
	}
	switch w.SlackInviteOn {
	case SlackInviteOnSignup, SlackInviteOnConfirm, SlackInviteNever:
	default:
		return fmt.Errorf("%w: unknown slack invite policy %q", ErrInvalidWorkerConfigs, w.SlackInviteOn)
	}
	return nil
}
