package ecommerce

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Jens252/billbee-bricklink/internal/domain/integration"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/bricklink"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/logger"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/telemetry"
)

// ackMarker is put in front of the seller remarks of acknowledged orders.
const ackMarker = "Billbee"

// OrderRepository serves store orders to the host platform.
type OrderRepository struct {
	api      StoreAPI
	settings Settings
	logger   *zap.Logger
}

var _ integration.OrdersRepository = (*OrderRepository)(nil)

// NewOrderRepository creates an order repository on top of the store API.
func NewOrderRepository(api StoreAPI, settings Settings, log *zap.Logger) *OrderRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderRepository{api: api, settings: settings, logger: log.Named("orders")}
}

// GetOrders lists every non-purged order, keeps those whose status changed after
// modifiedSince and loads the full detail of the requested page only.
func (r *OrderRepository) GetOrders(ctx context.Context, page, pageSize int, modifiedSince time.Time) (*integration.PagedData[integration.Order], error) {
	ctx, span := telemetry.StartRepositorySpan(ctx, "orders", "list",
		telemetry.WithAttribute(telemetry.SpanAttrPage, page),
		telemetry.WithAttribute(telemetry.SpanAttrPageSize, pageSize),
	)
	defer span.End()
	log := logger.WithLogger(ctx, r.logger)

	summaries, err := fetch[[]bricklink.Order](ctx, r.api, "orders", map[string]string{"status": "-purged"})
	if err != nil {
		log.Error("Failed to fetch orders", zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("%w: list orders: %w", integration.ErrOperationFailed, err)
	}

	changed := make([]bricklink.Order, 0, len(summaries))
	for _, o := range summaries {
		stamp := o.DateStatusChanged
		if stamp == "" {
			stamp = o.DateOrdered
		}
		at, err := parseBLTime(stamp)
		if err != nil {
			log.Error("Order with unreadable status change date", zap.Int64("order_id", o.OrderID), zap.Error(err))
			return nil, fmt.Errorf("%w: order %d: %w", integration.ErrOperationFailed, o.OrderID, err)
		}
		if at.After(modifiedSince) {
			changed = append(changed, o)
		}
	}

	onPage := paginate(changed, page, pageSize)
	orders := make([]integration.Order, 0, len(onPage))
	for _, o := range onPage {
		order, err := r.GetOrder(ctx, strconv.FormatInt(o.OrderID, 10))
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		orders = append(orders, *order)
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrTotalCount, len(changed))
	return &integration.PagedData[integration.Order]{Items: orders, TotalCount: len(changed)}, nil
}

// GetOrder loads an order with its lines and messages.
func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (*integration.Order, error) {
	if err := requireID("order", orderID); err != nil {
		return nil, err
	}
	ctx, span := telemetry.StartRepositorySpan(ctx, "orders", "get",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, orderID))
	defer span.End()
	log := logger.WithLogger(ctx, r.logger).With(zap.String("order_id", orderID))

	bl, err := fetch[bricklink.Order](ctx, r.api, resourcePath("orders", orderID), nil)
	if err != nil {
		log.Error("Failed to fetch order", zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, hostError(integration.ErrOrderNotFound, err, "fetch order %s", orderID)
	}

	order, err := convertBLOrder(&bl)
	if err != nil {
		log.Error("Failed to convert order", zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("%w: convert order %s: %w", integration.ErrOperationFailed, orderID, err)
	}

	lines, err := r.orderItems(ctx, orderID)
	if err != nil {
		log.Error("Failed to fetch order items", zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, hostError(integration.ErrOrderNotFound, err, "fetch items of order %s", orderID)
	}
	order.Items = append(lines, order.Items...)
	order.Comments = r.orderComments(ctx, orderID, bl.SellerName)

	log.Info("Fetched order", zap.Int("items", len(order.Items)), zap.Int("comments", len(order.Comments)))
	return order, nil
}

func (r *OrderRepository) orderItems(ctx context.Context, orderID string) ([]integration.OrderProduct, error) {
	batches, err := fetch[[][]bricklink.OrderItem](ctx, r.api, resourcePath("orders", orderID, "items"), nil)
	if err != nil {
		return nil, err
	}
	return convertBLOrderItems(batches, r.settings.GroupParts)
}

// orderComments never fails: an order without readable messages still imports.
func (r *OrderRepository) orderComments(ctx context.Context, orderID, sellerName string) []integration.OrderComment {
	log := logger.WithLogger(ctx, r.logger).With(zap.String("order_id", orderID))
	comments := make([]integration.OrderComment, 0)

	messages, err := fetch[[]bricklink.Message](ctx, r.api, resourcePath("orders", orderID, "messages"), nil)
	if err != nil {
		log.Warn("Failed to fetch order messages", zap.Error(err))
		return comments
	}

	for i := range messages {
		if !keepBLMessage(&messages[i]) {
			continue
		}
		c, err := convertBLMessage(&messages[i], sellerName)
		if err != nil {
			log.Warn("Skipping order message", zap.Int("index", i), zap.Error(err))
			continue
		}
		comments = append(comments, c)
	}
	return comments
}

// AcknowledgeOrder marks the order remarks once and moves pending orders to processing.
func (r *OrderRepository) AcknowledgeOrder(ctx context.Context, orderID string) error {
	if err := requireID("order", orderID); err != nil {
		return err
	}
	ctx, span := telemetry.StartRepositorySpan(ctx, "orders", "acknowledge",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, orderID))
	defer span.End()
	log := logger.WithLogger(ctx, r.logger).With(zap.String("order_id", orderID))

	bl, err := fetch[bricklink.Order](ctx, r.api, resourcePath("orders", orderID), nil)
	if err != nil {
		log.Error("Failed to acknowledge order", zap.Error(err))
		telemetry.RecordError(span, err)
		return hostError(integration.ErrOrderNotFound, err, "acknowledge order %s", orderID)
	}

	remarks := ""
	if bl.Remarks != nil {
		remarks = *bl.Remarks
	}
	if !strings.Contains(remarks, ackMarker) {
		marked := ackMarker + " " + remarks
		if _, err := r.api.Put(ctx, resourcePath("orders", orderID), bricklink.OrderUpdate{Remarks: &marked}); err != nil {
			log.Error("Failed to mark order remarks", zap.Error(err))
			telemetry.RecordError(span, err)
			return hostError(integration.ErrOrderNotFound, err, "acknowledge order %s", orderID)
		}
	}

	if strings.EqualFold(bl.Status, BLStatusPending) {
		return r.SetOrderState(ctx, orderID, integration.OrderStatusFulfillmentQueued, "")
	}
	return nil
}

// SetOrderState writes the marketplace status for newState. States without a
// marketplace counterpart are ignored. The comment is not transmitted.
func (r *OrderRepository) SetOrderState(ctx context.Context, orderID string, newState integration.OrderStatus, comment string) error {
	if err := requireID("order", orderID); err != nil {
		return err
	}
	ctx, span := telemetry.StartRepositorySpan(ctx, "orders", "set_state",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, orderID),
		telemetry.WithAttribute("new_state", int(newState)),
	)
	defer span.End()
	log := logger.WithLogger(ctx, r.logger).With(zap.String("order_id", orderID), zap.Int("new_state", int(newState)))

	var err error
	switch target := mapToBLOrderStatus(newState); target {
	case "":
		log.Debug("State has no marketplace counterpart, ignoring")
		return nil
	case BLStatusFiled:
		filed := true
		_, err = r.api.Put(ctx, resourcePath("orders", orderID), bricklink.OrderUpdate{IsFiled: &filed})
	default:
		_, err = r.api.Put(ctx, resourcePath("orders", orderID, "status"), bricklink.StatusUpdate{Field: "status", Value: target})
	}
	if err != nil {
		log.Error("Failed to update order status", zap.Error(err))
		telemetry.RecordError(span, err)
		return hostError(integration.ErrOrderNotFound, err, "update status of order %s", orderID)
	}
	log.Info("Order status updated")
	return nil
}
