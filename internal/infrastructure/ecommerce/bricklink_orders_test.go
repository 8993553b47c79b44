package ecommerce

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jens252/billbee-bricklink/internal/domain/integration"
)

func orderSummaryJSON(id int, status, changed string) string {
	return fmt.Sprintf(`{"order_id":%d,"date_ordered":"2024-01-01T00:00:00.000Z","date_status_changed":%q,"status":%q}`, id, changed, status)
}

func orderJSON(id int, status, remarks string) string {
	return fmt.Sprintf(`{
		"order_id": %d,
		"date_ordered": "2024-03-01T10:20:30.000Z",
		"seller_name": "brickseller",
		"buyer_name": "jdoe",
		"buyer_email": "jdoe@example.com",
		"status": %q,
		"remarks": %s,
		"payment": {"method": "PayPal", "date_paid": "2024-03-02T08:00:00.000Z"},
		"shipping": {"method_id": 7, "address": {"name": {"first": "Jane", "last": "Doe"}, "address1": "Hauptstraße 12", "postal_code": "10115", "city": "Berlin", "country_code": "DE"}},
		"cost": {"currency_code": "EUR", "subtotal": "100.00", "grand_total": "112.00", "salesTax": "2.00"}
	}`, id, status, remarks)
}

const orderItemsJSON = `[[
	{"inventory_id": 1, "item": {"no": "75192-1", "name": "Millennium Falcon", "type": "SET"}, "quantity": 1, "unit_price": "100.00", "unit_price_final": "100.00"}
]]`

const orderMessagesJSON = `[
	{"subject": "Question", "body": "Is it boxed?", "from": "jdoe", "to": "brickseller", "dateSent": "2024-03-01T11:00:00.000Z"},
	{"subject": "Feedback", "body": "Seller left you feedback.", "from": "brickseller", "to": "jdoe", "dateSent": "2024-03-03T11:00:00.000Z"},
	{"subject": "Answer", "body": "Yes", "from": "brickseller", "to": "jdoe", "dateSent": "2024-03-01T12:00:00.000Z"}
]`

func storeWithOrder(id int, status, remarks string) *fakeStore {
	path := fmt.Sprintf("orders/%d", id)
	return newFakeStore().
		on(path, orderJSON(id, status, remarks)).
		on(path+"/items", orderItemsJSON).
		on(path+"/messages", orderMessagesJSON)
}

// ---------------------------------------------------------------------------
// GetOrders
// ---------------------------------------------------------------------------

func TestOrderRepository_GetOrders(t *testing.T) {
	store := newFakeStore().on("orders", "["+
		orderSummaryJSON(1, "COMPLETED", "2024-03-01T00:00:00.000Z")+","+
		orderSummaryJSON(2, "PAID", "2024-03-05T00:00:00.000Z")+","+
		orderSummaryJSON(3, "PENDING", "2024-03-10T00:00:00.000Z")+"]")
	for _, id := range []int{1, 2, 3} {
		path := fmt.Sprintf("orders/%d", id)
		store.on(path, orderJSON(id, "PAID", "null")).on(path+"/items", orderItemsJSON).on(path+"/messages", "[]")
	}
	repo := NewOrderRepository(store, Settings{}, nil)
	since := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	t.Run("first page", func(t *testing.T) {
		result, err := repo.GetOrders(context.Background(), 1, 1, since)
		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalCount)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "2", result.Items[0].OrderID)
		assert.Equal(t, map[string]string{"status": "-purged"}, store.queries["orders"])
	})

	t.Run("second page", func(t *testing.T) {
		result, err := repo.GetOrders(context.Background(), 2, 1, since)
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "3", result.Items[0].OrderID)
	})

	t.Run("past the last page", func(t *testing.T) {
		result, err := repo.GetOrders(context.Background(), 5, 10, since)
		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalCount)
		assert.Empty(t, result.Items)
	})

	t.Run("zero time includes everything", func(t *testing.T) {
		result, err := repo.GetOrders(context.Background(), 1, 10, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalCount)
	})
}

func TestOrderRepository_GetOrders_FallsBackToOrderDate(t *testing.T) {
	store := newFakeStore().on("orders", `[{"order_id":9,"date_ordered":"2024-03-05T00:00:00.000Z","status":"PAID"}]`)
	repo := NewOrderRepository(store, Settings{}, nil)

	result, err := repo.GetOrders(context.Background(), 5, 10, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalCount)
}

func TestOrderRepository_GetOrders_Errors(t *testing.T) {
	tests := []struct {
		name    string
		store   *fakeStore
		wantErr error
	}{
		{
			name:    "list fails",
			store:   newFakeStore().fail("orders", serverError("orders")),
			wantErr: integration.ErrOperationFailed,
		},
		{
			name:    "list not found is still a failure",
			store:   newFakeStore().fail("orders", notFound("orders")),
			wantErr: integration.ErrOperationFailed,
		},
		{
			name:    "invalid payload",
			store:   newFakeStore().on("orders", `[{"order_id":1}]`),
			wantErr: integration.ErrOperationFailed,
		},
		{
			name:    "unreadable status date",
			store:   newFakeStore().on("orders", "["+orderSummaryJSON(1, "PAID", "yesterday")+"]"),
			wantErr: integration.ErrOperationFailed,
		},
		{
			name:    "order on page disappeared",
			store:   newFakeStore().on("orders", "["+orderSummaryJSON(1, "PAID", "2024-03-05T00:00:00.000Z")+"]"),
			wantErr: integration.ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewOrderRepository(tt.store, Settings{}, nil)
			_, err := repo.GetOrders(context.Background(), 1, 10, time.Time{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// GetOrder
// ---------------------------------------------------------------------------

func TestOrderRepository_GetOrder(t *testing.T) {
	repo := NewOrderRepository(storeWithOrder(4711, "PAID", `"gift wrap"`), Settings{}, nil)

	order, err := repo.GetOrder(context.Background(), "4711")
	require.NoError(t, err)

	assert.Equal(t, "4711", order.OrderID)
	assert.Equal(t, integration.OrderStatusPaid, order.StatusID)
	assertDecimal(t, "10", order.ShipCost)

	// product lines come before the tax line
	require.Len(t, order.Items, 2)
	assert.Equal(t, "75192", order.Items[0].SKU)
	assert.Equal(t, salesTaxItemName, order.Items[1].Name)

	require.Len(t, order.Comments, 2)
	assert.Equal(t, "Question", order.Comments[0].Name)
	assert.True(t, order.Comments[0].FromCustomer)
	assert.Equal(t, "Answer", order.Comments[1].Name)
	assert.False(t, order.Comments[1].FromCustomer)
}

func TestOrderRepository_GetOrder_GroupsParts(t *testing.T) {
	store := storeWithOrder(1, "PAID", "null").on("orders/1/items", `[[
		{"inventory_id": 1, "item": {"no": "3001", "type": "PART"}, "color_id": 11, "quantity": 10, "unit_price": "0.10", "unit_price_final": "0.10"},
		{"inventory_id": 2, "item": {"no": "3002", "type": "PART"}, "color_id": 5, "quantity": 5, "unit_price": "0.20", "unit_price_final": "0.20"}
	]]`)
	repo := NewOrderRepository(store, Settings{GroupParts: true}, nil)

	order, err := repo.GetOrder(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "LEGO Parts (15 pieces)", order.Items[0].Name)
	assertDecimal(t, "2", order.Items[0].UnitPrice)
}

func TestOrderRepository_GetOrder_MessagesAreOptional(t *testing.T) {
	t.Run("messages fail", func(t *testing.T) {
		store := storeWithOrder(1, "PAID", "null").fail("orders/1/messages", serverError("orders/1/messages"))
		order, err := NewOrderRepository(store, Settings{}, nil).GetOrder(context.Background(), "1")
		require.NoError(t, err)
		assert.NotNil(t, order.Comments)
		assert.Empty(t, order.Comments)
	})

	t.Run("unreadable message skipped", func(t *testing.T) {
		store := storeWithOrder(1, "PAID", "null").on("orders/1/messages",
			`[{"subject":"a","body":"b","to":"brickseller","dateSent":"soon"},{"subject":"c","body":"d","to":"jdoe","dateSent":"2024-03-01T12:00:00.000Z"}]`)
		order, err := NewOrderRepository(store, Settings{}, nil).GetOrder(context.Background(), "1")
		require.NoError(t, err)
		require.Len(t, order.Comments, 1)
		assert.Equal(t, "c", order.Comments[0].Name)
	})
}

func TestOrderRepository_GetOrder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		store   *fakeStore
		orderID string
		wantErr error
	}{
		{name: "empty id", store: newFakeStore(), orderID: "", wantErr: integration.ErrInvalidArgument},
		{name: "unknown order", store: newFakeStore(), orderID: "1", wantErr: integration.ErrOrderNotFound},
		{
			name:    "store unavailable",
			store:   newFakeStore().fail("orders/1", serverError("orders/1")),
			orderID: "1",
			wantErr: integration.ErrOperationFailed,
		},
		{
			name:    "items unavailable",
			store:   storeWithOrder(1, "PAID", "null").fail("orders/1/items", serverError("orders/1/items")),
			orderID: "1",
			wantErr: integration.ErrOperationFailed,
		},
		{
			name:    "unconvertible item",
			store:   storeWithOrder(1, "PAID", "null").on("orders/1/items", `[[{"inventory_id":1,"item":{"no":"3001","type":"PART"},"quantity":1}]]`),
			orderID: "1",
			wantErr: integration.ErrOperationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrderRepository(tt.store, Settings{}, nil).GetOrder(context.Background(), tt.orderID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// AcknowledgeOrder and SetOrderState
// ---------------------------------------------------------------------------

func TestOrderRepository_AcknowledgeOrder(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		remarks  string
		wantPuts []fakePut
	}{
		{
			name:    "pending order is marked and moved to processing",
			status:  "PENDING",
			remarks: `"gift wrap"`,
			wantPuts: []fakePut{
				{Path: "orders/1", Body: map[string]any{"remarks": "Billbee gift wrap"}},
				{Path: "orders/1/status", Body: map[string]any{"field": "status", "value": "PROCESSING"}},
			},
		},
		{
			name:    "no remarks keeps the marker separator",
			status:  "PAID",
			remarks: "null",
			wantPuts: []fakePut{
				{Path: "orders/1", Body: map[string]any{"remarks": "Billbee "}},
			},
		},
		{
			name:    "empty remarks",
			status:  "PAID",
			remarks: `""`,
			wantPuts: []fakePut{
				{Path: "orders/1", Body: map[string]any{"remarks": "Billbee "}},
			},
		},
		{
			name:     "already acknowledged",
			status:   "PAID",
			remarks:  `"Billbee gift wrap"`,
			wantPuts: nil,
		},
		{
			name:    "already acknowledged pending order still moves on",
			status:  "pending",
			remarks: `"Billbee"`,
			wantPuts: []fakePut{
				{Path: "orders/1/status", Body: map[string]any{"field": "status", "value": "PROCESSING"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storeWithOrder(1, tt.status, tt.remarks)
			err := NewOrderRepository(store, Settings{}, nil).AcknowledgeOrder(context.Background(), "1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantPuts, store.puts)
		})
	}
}

func TestOrderRepository_AcknowledgeOrder_Errors(t *testing.T) {
	repo := NewOrderRepository(newFakeStore(), Settings{}, nil)
	assert.ErrorIs(t, repo.AcknowledgeOrder(context.Background(), ""), integration.ErrInvalidArgument)
	assert.ErrorIs(t, repo.AcknowledgeOrder(context.Background(), "1"), integration.ErrOrderNotFound)

	store := storeWithOrder(1, "PAID", "null").failPut("orders/1", serverError("orders/1"))
	err := NewOrderRepository(store, Settings{}, nil).AcknowledgeOrder(context.Background(), "1")
	assert.ErrorIs(t, err, integration.ErrOperationFailed)
}

func TestOrderRepository_SetOrderState(t *testing.T) {
	tests := []struct {
		name     string
		state    integration.OrderStatus
		wantPuts []fakePut
	}{
		{
			name:     "shipped",
			state:    integration.OrderStatusShipped,
			wantPuts: []fakePut{{Path: "orders/1/status", Body: map[string]any{"field": "status", "value": "SHIPPED"}}},
		},
		{
			name:     "confirmed",
			state:    integration.OrderStatusConfirmed,
			wantPuts: []fakePut{{Path: "orders/1/status", Body: map[string]any{"field": "status", "value": "READY"}}},
		},
		{
			name:     "archived files the order",
			state:    integration.OrderStatusArchived,
			wantPuts: []fakePut{{Path: "orders/1", Body: map[string]any{"is_filed": true}}},
		},
		{
			name:     "cancelled is ignored",
			state:    integration.OrderStatusCancelled,
			wantPuts: nil,
		},
		{
			name:     "unknown state is ignored",
			state:    integration.OrderStatus(42),
			wantPuts: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			err := NewOrderRepository(store, Settings{}, nil).SetOrderState(context.Background(), "1", tt.state, "shipped with DHL")
			require.NoError(t, err)
			assert.Equal(t, tt.wantPuts, store.puts)
		})
	}
}

func TestOrderRepository_SetOrderState_Errors(t *testing.T) {
	repo := NewOrderRepository(newFakeStore(), Settings{}, nil)
	assert.ErrorIs(t, repo.SetOrderState(context.Background(), "", integration.OrderStatusShipped, ""), integration.ErrInvalidArgument)

	store := newFakeStore().failPut("orders/1/status", notFound("orders/1/status"))
	err := NewOrderRepository(store, Settings{}, nil).SetOrderState(context.Background(), "1", integration.OrderStatusPaid, "")
	assert.ErrorIs(t, err, integration.ErrOrderNotFound)

	store = newFakeStore().failPut("orders/1", serverError("orders/1"))
	err = NewOrderRepository(store, Settings{}, nil).SetOrderState(context.Background(), "1", integration.OrderStatusArchived, "")
	assert.ErrorIs(t, err, integration.ErrOperationFailed)
}
