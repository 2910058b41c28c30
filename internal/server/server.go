package server

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-membership/internal/config"
	"github.com/MKhiriev/go-membership/internal/handler"
	"github.com/MKhiriev/go-membership/internal/logger"
)

// ShutdownTimeout bounds the graceful stop of all servers.
const ShutdownTimeout = 15 * time.Second

type server struct {
	servers []Server
	logger  *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	s := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		s.servers = append(s.servers, newHTTPServer(handlers.HTTP.Init(), cfg, logger))
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		s.servers = append(s.servers, newGRPCServer(handlers.GRPC, cfg, logger))
	}

	if len(s.servers) == 0 {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

// RunServer starts every server and blocks until ctx is cancelled or one of
// them fails. Either way all servers are shut down before it returns.
func (s *server) RunServer(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, len(s.servers))
	for _, srv := range s.servers {
		go func() {
			err := srv.RunServer(ctx)
			if err != nil {
				s.logger.Err(err).Msg("server stopped with error")
				cancel()
			}
			errs <- err
		}()
	}

	<-ctx.Done()

	shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer stop()

	var joined []error
	if err := s.Shutdown(shutdownCtx); err != nil {
		joined = append(joined, err)
	}
	for range s.servers {
		if err := <-errs; err != nil {
			joined = append(joined, err)
		}
	}

	if len(joined) == 0 {
		s.logger.Info().Msg("server shutdown gracefully")
	}
	return errors.Join(joined...)
}

func (s *server) Shutdown(ctx context.Context) error {
	var errs []error
	for _, srv := range s.servers {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
