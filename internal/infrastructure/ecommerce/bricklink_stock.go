package ecommerce

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Jens252/billbee-bricklink/internal/domain/integration"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/bricklink"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/logger"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/telemetry"
)

// StockSyncRepository pushes host stock levels to store lots.
type StockSyncRepository struct {
	api      StoreAPI
	settings Settings
	logger   *zap.Logger
}

var _ integration.StockSyncRepository = (*StockSyncRepository)(nil)

func NewStockSyncRepository(api StoreAPI, settings Settings, log *zap.Logger) *StockSyncRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &StockSyncRepository{api: api, settings: settings, logger: log.Named("stock")}
}

// SetStock adjusts the lot by the difference between quantity and its current
// stock. PART lots are left alone so part-outs are not disturbed. A lot reaching
// zero moves to the stockroom, a lot coming back from zero leaves it.
func (r *StockSyncRepository) SetStock(ctx context.Context, productID string, quantity decimal.Decimal) error {
	if err := requireID("product", productID); err != nil {
		return err
	}
	ctx, span := telemetry.StartRepositorySpan(ctx, "stock", "set",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, productID),
		telemetry.WithAttribute("quantity", quantity.String()),
	)
	defer span.End()
	log := logger.WithLogger(ctx, r.logger).With(zap.String("product_id", productID))

	lot, err := fetch[bricklink.InventoryItem](ctx, r.api, resourcePath("inventories", productID), nil)
	if err != nil {
		log.Error("Stock update failed", zap.Error(err))
		telemetry.RecordError(span, err)
		return hostError(integration.ErrProductNotFound, err, "read inventory %s", productID)
	}

	update, ok := r.stockUpdate(&lot, quantity)
	if !ok {
		log.Debug("Skipping stock sync for part lot")
		return nil
	}

	if _, err := r.api.Put(ctx, resourcePath("inventories", productID), update); err != nil {
		log.Error("Stock update failed", zap.Error(err))
		telemetry.RecordError(span, err)
		return hostError(integration.ErrProductNotFound, err, "update inventory %s", productID)
	}
	log.Info("Stock updated", zap.Int("from", lot.Quantity), zap.Int("delta", *update.Quantity))
	return nil
}

// stockUpdate computes the relative update for lot. ok is false for parts.
func (r *StockSyncRepository) stockUpdate(lot *bricklink.InventoryItem, quantity decimal.Decimal) (update bricklink.InventoryUpdate, ok bool) {
	if lot.Item.Type == ItemTypePart {
		return bricklink.InventoryUpdate{}, false
	}

	target := max(0, int(quantity.IntPart()))
	if r.settings.MaxQuantityForSets != nil && lot.Item.Type == ItemTypeSet {
		target = min(*r.settings.MaxQuantityForSets, target)
	}

	delta := target - lot.Quantity
	retain := true
	update = bricklink.InventoryUpdate{Quantity: &delta, IsRetain: &retain}

	switch {
	case target == 0:
		inStockroom := true
		update.IsStockRoom = &inStockroom
		update.StockRoomID = r.settings.stockroomID()
	case lot.Quantity == 0:
		inStockroom := false
		update.IsStockRoom = &inStockroom
	}
	return update, true
}
