package ecommerce

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/Jens252/billbee-bricklink/internal/domain/integration"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/bricklink"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/logger"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/telemetry"
)

// retainScanStatus covers available, unavailable and reserved lots.
const retainScanStatus = "Y,N,R"

// InventoryMaintenance applies bulk fixes to store lots.
type InventoryMaintenance struct {
	api    StoreAPI
	logger *zap.Logger
}

var _ integration.InventoryMaintenance = (*InventoryMaintenance)(nil)

func NewInventoryMaintenance(api StoreAPI, log *zap.Logger) *InventoryMaintenance {
	if log == nil {
		log = zap.NewNop()
	}
	return &InventoryMaintenance{api: api, logger: log.Named("maintenance")}
}

func (m *InventoryMaintenance) LotsWithoutRetain(ctx context.Context) ([]string, error) {
	ctx, span := telemetry.StartRepositorySpan(ctx, "inventory", "list_without_retain")
	defer span.End()

	lots, err := fetch[[]bricklink.InventoryItem](ctx, m.api, "inventories", map[string]string{"status": retainScanStatus})
	if err != nil {
		logger.WithLogger(ctx, m.logger).Error("Inventory scan failed", zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, hostError(integration.ErrOperationFailed, err, "list inventories")
	}

	ids := make([]string, 0)
	for _, lot := range lots {
		if !lot.IsRetain {
			ids = append(ids, strconv.FormatInt(lot.InventoryID, 10))
		}
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrTotalCount, len(lots), "without_retain", len(ids))
	return ids, nil
}

func (m *InventoryMaintenance) EnableRetain(ctx context.Context, lotID string) error {
	if err := requireID("inventory", lotID); err != nil {
		return err
	}
	ctx, span := telemetry.StartRepositorySpan(ctx, "inventory", "enable_retain",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, lotID),
	)
	defer span.End()

	retain := true
	if _, err := m.api.Put(ctx, resourcePath("inventories", lotID), bricklink.InventoryUpdate{IsRetain: &retain}); err != nil {
		logger.WithLogger(ctx, m.logger).Error("Enabling retain failed", zap.String("inventory_id", lotID), zap.Error(err))
		telemetry.RecordError(span, err)
		return hostError(integration.ErrProductNotFound, err, "update inventory %s", lotID)
	}
	return nil
}
