package ecommerce

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jens252/billbee-bricklink/internal/domain/integration"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/bricklink"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/logger"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/telemetry"
)

// retainHint explains the usual reason a lot cannot be found.
const retainHint = "item sold out without the Retain option set?"

// ProductRepository serves store lots as products.
type ProductRepository struct {
	api      StoreAPI
	settings Settings
	logger   *zap.Logger
}

var _ integration.ProductsRepository = (*ProductRepository)(nil)

// NewProductRepository creates a product repository on top of the store API.
func NewProductRepository(api StoreAPI, settings Settings, log *zap.Logger) *ProductRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductRepository{api: api, settings: settings, logger: log.Named("products")}
}

// GetProducts lists the lots matching the configured status and type filters and
// enriches the requested page with catalog data.
func (r *ProductRepository) GetProducts(ctx context.Context, page, pageSize int) (*integration.PagedData[integration.Product], error) {
	ctx, span := telemetry.StartRepositorySpan(ctx, "products", "list",
		telemetry.WithAttribute(telemetry.SpanAttrPage, page),
		telemetry.WithAttribute(telemetry.SpanAttrPageSize, pageSize),
	)
	defer span.End()

	lots, err := fetch[[]bricklink.InventoryItem](ctx, r.api, "inventories", r.settings.inventoryQuery())
	if err != nil {
		logger.WithLogger(ctx, r.logger).Error("Failed to fetch store inventory", zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("%w: list inventory: %w", integration.ErrOperationFailed, err)
	}

	onPage := paginate(lots, page, pageSize)
	products := make([]integration.Product, 0, len(onPage))
	for i := range onPage {
		p, err := r.toProduct(ctx, &onPage[i])
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		products = append(products, *p)
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrTotalCount, len(lots))
	return &integration.PagedData[integration.Product]{Items: products, TotalCount: len(lots)}, nil
}

// GetProduct loads one lot by inventory id.
func (r *ProductRepository) GetProduct(ctx context.Context, productID string) (*integration.Product, error) {
	if err := requireID("product", productID); err != nil {
		return nil, err
	}
	ctx, span := telemetry.StartRepositorySpan(ctx, "products", "get",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, productID))
	defer span.End()

	lot, err := fetch[bricklink.InventoryItem](ctx, r.api, resourcePath("inventories", productID), nil)
	if err != nil {
		logger.WithLogger(ctx, r.logger).Error("Failed to fetch inventory lot",
			zap.String("product_id", productID), zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, hostError(integration.ErrProductNotFound, err, "fetch inventory %s, %s", productID, retainHint)
	}
	return r.toProduct(ctx, &lot)
}

func (r *ProductRepository) toProduct(ctx context.Context, lot *bricklink.InventoryItem) (*integration.Product, error) {
	p, err := convertBLProduct(lot, r.catalogItem(ctx, &lot.Item))
	if err != nil {
		return nil, fmt.Errorf("%w: convert inventory %d: %w", integration.ErrOperationFailed, lot.InventoryID, err)
	}
	return p, nil
}

// catalogItem returns nil when the catalog entry cannot be loaded.
func (r *ProductRepository) catalogItem(ctx context.Context, ref *bricklink.ItemRef) *bricklink.CatalogItem {
	item, err := fetch[bricklink.CatalogItem](ctx, r.api, resourcePath("items", ref.Type, ref.No), nil)
	if err != nil {
		logger.WithLogger(ctx, r.logger).Warn("Failed to fetch catalog data",
			zap.String("item_type", ref.Type), zap.String("item_no", ref.No), zap.Error(err))
		return nil
	}
	return &item
}
