package integration

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrdersRepository exposes marketplace orders to the host platform.
type OrdersRepository interface {
	// GetOrders returns the page of orders changed after modifiedSince and the size of
	// the whole filtered set. Pages are 1-based.
	GetOrders(ctx context.Context, page, pageSize int, modifiedSince time.Time) (*PagedData[Order], error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	// AcknowledgeOrder marks the order as imported. Calling it twice has no further effect.
	AcknowledgeOrder(ctx context.Context, orderID string) error
	SetOrderState(ctx context.Context, orderID string, newState OrderStatus, comment string) error
}

// ProductsRepository exposes marketplace inventory as products.
type ProductsRepository interface {
	GetProducts(ctx context.Context, page, pageSize int) (*PagedData[Product], error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
}

// ShippingProfileRepository lists the shipping methods available for orders.
type ShippingProfileRepository interface {
	GetShippingProfiles(ctx context.Context) ([]ShippingProfile, error)
}

// StockSyncRepository pushes host stock levels back to the marketplace.
type StockSyncRepository interface {
	SetStock(ctx context.Context, productID string, quantity decimal.Decimal) error
}

// InventoryMaintenance exposes bulk fixes on marketplace inventory.
type InventoryMaintenance interface {
	// LotsWithoutRetain lists the ids of lots that are deleted once sold out.
	LotsWithoutRetain(ctx context.Context) ([]string, error)
	// EnableRetain keeps the lot in the inventory at zero quantity.
	EnableRetain(ctx context.Context, lotID string) error
}
