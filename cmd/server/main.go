package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-membership/internal/app"
	"github.com/MKhiriev/go-membership/internal/config"
	"github.com/MKhiriev/go-membership/internal/handler"
	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/server"
	"github.com/MKhiriev/go-membership/models"
	"golang.org/x/sync/errgroup"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("membership-server")
	if err := run(log); err != nil {
		log.Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	core, err := app.NewCore(ctx, cfg, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		return err
	}
	defer core.Close()

	handlers, err := handler.NewHandlers(core.Services, core.Templates, core.Reporter, cfg.Server, core.Logger)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, core.Logger)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.RunServer(gctx) })
	if cfg.Workers.Embedded {
		core.Logger.Info().Msg("running embedded task worker")
		g.Go(func() error { return core.NewWorkers().Run(gctx) })
	}

	return g.Wait()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
