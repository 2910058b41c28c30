// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package reporter sends unexpected errors to Sentry.
//
// A [Reporter] built without a DSN is a no-op, so callers never need to
// check whether error tracking is configured.
package reporter

import (
	"context"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/rs/zerolog"
)

// Options configures the Sentry client.
type Options struct {
	DSN         string
	Environment string
	Release     string

	// BeforeSend, when set, sees every event before it leaves the process.
	// Returning nil drops the event.
	BeforeSend func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event
}

// Reporter captures errors with contextual tags.
type Reporter struct {
	enabled bool
}

// New initializes the global Sentry client. An empty DSN yields a disabled
// reporter.
func New(opts Options) (*Reporter, error) {
	if opts.DSN == "" {
		return &Reporter{}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         opts.DSN,
		Environment: opts.Environment,
		Release:     opts.Release,
		BeforeSend:  opts.BeforeSend,
	})
	if err != nil {
		return &Reporter{}, err
	}

	return &Reporter{enabled: true}, nil
}

// Nop returns a disabled reporter.
func Nop() *Reporter {
	return &Reporter{}
}

// Enabled reports whether events are sent anywhere.
func (r *Reporter) Enabled() bool {
	return r != nil && r.enabled
}

// CaptureException sends err to Sentry tagged with tags. The hub attached
// to ctx by the HTTP middleware is used when present, so request data is
// included.
func (r *Reporter) CaptureException(ctx context.Context, err error, tags map[string]string) {
	if !r.Enabled() || err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		hub.CaptureException(err)
	})
}

// Flush waits until buffered events are sent or timeout passes.
func (r *Reporter) Flush(timeout time.Duration) bool {
	if !r.Enabled() {
		return true
	}
	return sentry.Flush(timeout)
}

// Middleware attaches a per-request hub and reports panics before
// re-raising them to the recoverer.
func (r *Reporter) Middleware(next http.Handler) http.Handler {
	if !r.Enabled() {
		return next
	}

	return sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	}).Handle(next)
}

// Hook returns a zerolog hook that forwards fatal and panic log messages
// as Sentry messages. Request and task failures are reported through
// [Reporter.CaptureException] instead, so error-level logs are ignored.
func (r *Reporter) Hook() zerolog.Hook {
	return zerolog.HookFunc(func(_ *zerolog.Event, level zerolog.Level, msg string) {
		if !r.Enabled() || (level != zerolog.FatalLevel && level != zerolog.PanicLevel) || msg == "" {
			return
		}

		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetLevel(sentryLevel(level))
			sentry.CaptureMessage(msg)
		})
	})
}

func sentryLevel(level zerolog.Level) sentry.Level {
	switch level {
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return sentry.LevelFatal
	case zerolog.ErrorLevel:
		return sentry.LevelError
	case zerolog.WarnLevel:
		return sentry.LevelWarning
	case zerolog.InfoLevel:
		return sentry.LevelInfo
	default:
		return sentry.LevelDebug
	}
}
