// Package maintenance holds one-off bulk operations on the marketplace store.
package maintenance

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Jens252/billbee-bricklink/internal/domain/integration"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/logger"
)

// RetainReport summarises a retain run.
type RetainReport struct {
	Scanned int
	Updated int
	Failed  int
	DryRun  bool
}

// RetainService turns on the Retain option for every lot lacking it, so sold-out
// lots stay addressable by their inventory id.
type RetainService struct {
	inventory integration.InventoryMaintenance
	logger    *zap.Logger
}

// NewRetainService creates a new RetainService
func NewRetainService(inventory integration.InventoryMaintenance, log *zap.Logger) *RetainService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RetainService{inventory: inventory, logger: log}
}

// Run updates every lot without Retain. With dryRun set it only reports what it
// would change. A failure on one lot is logged and counted; the run continues.
func (s *RetainService) Run(ctx context.Context, dryRun bool) (*RetainReport, error) {
	log := logger.WithLogger(ctx, s.logger)

	ids, err := s.inventory.LotsWithoutRetain(ctx)
	if err != nil {
		return nil, err
	}
	report := &RetainReport{Scanned: len(ids), DryRun: dryRun}
	log.Info("Lots without retain found", zap.Int("count", len(ids)), zap.Bool("dry_run", dryRun))

	var errs []error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if dryRun {
			log.Info("Would enable retain", zap.String("inventory_id", id))
			continue
		}
		if err := s.inventory.EnableRetain(ctx, id); err != nil {
			report.Failed++
			errs = append(errs, err)
			log.Warn("Enable retain failed", zap.String("inventory_id", id), zap.Error(err))
			continue
		}
		report.Updated++
		log.Debug("Retain enabled", zap.String("inventory_id", id))
	}

	log.Info("Retain run finished",
		zap.Int("updated", report.Updated),
		zap.Int("failed", report.Failed),
	)
	return report, errors.Join(errs...)
}
