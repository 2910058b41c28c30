// Package server runs the HTTP API and the gRPC health endpoint side by side
// and shuts both down gracefully when the run context is cancelled.
package server
