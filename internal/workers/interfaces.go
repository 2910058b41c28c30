// Package workers runs the background loops of the membership service: the
// task queue consumer that delivers notifications and the periodic cleanup
// of the refresh token denylist.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is cancelled or the
// worker fails for good.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// Reporter receives task failures. *reporter.Reporter implements it.
type Reporter interface {
	CaptureException(ctx context.Context, err error, tags map[string]string)
}
