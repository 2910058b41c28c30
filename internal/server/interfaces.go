package server

import "context"

// Server is the lifecycle of one transport server.
type Server interface {
	// RunServer serves until ctx is cancelled or serving fails. A graceful
	// stop returns nil.
	RunServer(ctx context.Context) error

	// Shutdown stops accepting connections and waits for in-flight requests
	// until ctx expires.
	Shutdown(ctx context.Context) error
}
