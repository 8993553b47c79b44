// Package integration contains the custom-shop integration bounded context.
// It defines the entities the order-management host platform understands and the
// repository ports a marketplace adapter must satisfy to be served to that host.
//
// Key concepts:
//   - Order, OrderProduct, OrderComment, Address: canonical order shapes owned by the host
//   - Product, ProductImage: canonical catalog shapes owned by the host
//   - ShippingProfile: a shipping method the host can assign to orders
//   - OrdersRepository, ProductsRepository, ShippingProfileRepository, StockSyncRepository:
//     ports implemented by marketplace adapters
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package integration
