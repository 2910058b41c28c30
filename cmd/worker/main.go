// Command worker runs the background task queue and the token denylist
// purger without the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-membership/internal/app"
	"github.com/MKhiriev/go-membership/internal/config"
	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("membership-worker")
	if err := run(log); err != nil {
		log.Err(err).Msg("worker exited with error")
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log.Info().Str("version", build.Version).Str("commit", build.Commit).Msg("starting worker")

	cfg, err := config.GetWorkerConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	core, err := app.NewCore(ctx, cfg, build, log)
	if err != nil {
		return err
	}
	defer core.Close()

	return core.NewWorkers().Run(ctx)
}
