// Command setretain enables the Retain option on every store lot lacking it.
// Without Retain a sold-out lot is deleted and stock sync can no longer find it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Jens252/billbee-bricklink/internal/application/maintenance"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/bricklink"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/config"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/ecommerce"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/logger"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "only report the lots that would change")
	flag.Parse()

	if err := run(*dryRun); err != nil {
		fmt.Fprintln(os.Stderr, "setretain:", err)
		os.Exit(1)
	}
}

func run(dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	client, err := bricklink.NewClient(cfg.StoreConfig(), log)
	if err != nil {
		return fmt.Errorf("creating store client: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := maintenance.NewRetainService(ecommerce.NewInventoryMaintenance(client, log), log)
	report, err := svc.Run(ctx, dryRun)
	if report != nil {
		log.Info("Retain summary",
			zap.Int("without_retain", report.Scanned),
			zap.Int("updated", report.Updated),
			zap.Int("failed", report.Failed),
			zap.Bool("dry_run", report.DryRun),
		)
	}
	return err
}
