package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/store"
)

const DefaultPurgeInterval = time.Hour

// DenylistWorker deletes revoked refresh tokens that have expired anyway.
type DenylistWorker struct {
	tokens   store.TokenRepository
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger
}

func NewDenylistWorker(tokens store.TokenRepository, interval time.Duration, logger *logger.Logger) *DenylistWorker {
	if interval <= 0 {
		interval = DefaultPurgeInterval
	}
	return &DenylistWorker{
		tokens:   tokens,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func (w *DenylistWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.Purge(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Purge runs one cleanup pass and returns the number of deleted entries.
func (w *DenylistWorker) Purge(ctx context.Context) int64 {
	n, err := w.tokens.PurgeExpired(ctx, w.now())
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Err(err).Msg("purging token denylist failed")
		}
		return 0
	}
	if n > 0 {
		w.logger.Info().Int64("purged", n).Msg("expired denylist entries purged")
	}
	return n
}
