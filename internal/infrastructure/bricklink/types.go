package bricklink

import "github.com/shopspring/decimal"

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

// Order is an order resource as returned by orders and orders/{id}.
type Order struct {
	OrderID           int64     `json:"order_id" validate:"required"`
	DateOrdered       string    `json:"date_ordered" validate:"required"`
	DateStatusChanged string    `json:"date_status_changed"`
	SellerName        string    `json:"seller_name"`
	StoreName         string    `json:"store_name"`
	BuyerName         string    `json:"buyer_name"`
	BuyerEmail        string    `json:"buyer_email"`
	Status            string    `json:"status" validate:"required"`
	Remarks           *string   `json:"remarks"`
	IsFiled           bool      `json:"is_filed"`
	TotalCount        int       `json:"total_count"`
	UniqueCount       int       `json:"unique_count"`
	Payment           *Payment  `json:"payment"`
	Shipping          *Shipping `json:"shipping"`
	Cost              Cost      `json:"cost"`
}

// Payment describes how and when an order was paid.
type Payment struct {
	Method       string  `json:"method"`
	CurrencyCode string  `json:"currency_code"`
	DatePaid     *string `json:"date_paid"`
	Status       string  `json:"status"`
}

// Shipping describes the chosen method and destination of an order.
type Shipping struct {
	MethodID    *int64           `json:"method_id"`
	Method      string           `json:"method"`
	TrackingNo  string           `json:"tracking_no"`
	DateShipped *string          `json:"date_shipped"`
	Address     *ShippingAddress `json:"address"`
}

// ShippingAddress is the buyer's destination address.
type ShippingAddress struct {
	Name        AddressName `json:"name"`
	Full        string      `json:"full"`
	Address1    string      `json:"address1"`
	Address2    string      `json:"address2"`
	PostalCode  string      `json:"postal_code"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	CountryCode string      `json:"country_code"`
	PhoneNumber string      `json:"phone_number"`
}

// AddressName is the recipient name split into parts.
type AddressName struct {
	Full  string `json:"full"`
	First string `json:"first"`
	Last  string `json:"last"`
}

// Cost is the monetary breakdown of an order in the seller's currency.
type Cost struct {
	CurrencyCode string          `json:"currency_code"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	SalesTax     decimal.Decimal `json:"salesTax"`
	Shipping     decimal.Decimal `json:"shipping"`
	Insurance    decimal.Decimal `json:"insurance"`
}

// OrderItem is one line of an order. orders/{id}/items returns these in batches.
type OrderItem struct {
	InventoryID    int64           `json:"inventory_id"`
	Item           ItemRef         `json:"item"`
	ColorID        *int            `json:"color_id"`
	ColorName      string          `json:"color_name"`
	Quantity       int             `json:"quantity" validate:"gte=0"`
	NewOrUsed      string          `json:"new_or_used"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	UnitPriceFinal decimal.Decimal `json:"unit_price_final"`
	CurrencyCode   string          `json:"currency_code"`
	Remarks        string          `json:"remarks"`
	Description    string          `json:"description"`
}

// ItemRef identifies a catalog item.
type ItemRef struct {
	No         string `json:"no" validate:"required"`
	Name       string `json:"name"`
	Type       string `json:"type" validate:"required"`
	CategoryID int    `json:"category_id"`
}

// Message is an order message exchanged between buyer and seller.
type Message struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	From     string `json:"from"`
	To       string `json:"to"`
	DateSent string `json:"dateSent" validate:"required"`
}

// ---------------------------------------------------------------------------
// Inventory and catalog
// ---------------------------------------------------------------------------

// InventoryItem is a store lot as returned by inventories and inventories/{id}.
type InventoryItem struct {
	InventoryID int64           `json:"inventory_id" validate:"required"`
	Item        ItemRef         `json:"item"`
	ColorID     *int            `json:"color_id"`
	ColorName   string          `json:"color_name"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	NewOrUsed   string          `json:"new_or_used"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Description string          `json:"description"`
	Remarks     string          `json:"remarks"`
	IsRetain    bool            `json:"is_retain"`
	IsStockRoom bool            `json:"is_stock_room"`
	StockRoomID string          `json:"stock_room_id"`
	SaleRate    int             `json:"sale_rate" validate:"gte=0,lte=100"`
	DateCreated string          `json:"date_created"`
}

// CatalogItem is the reference data behind a lot. Weight is in grams, dimensions in cm.
type CatalogItem struct {
	No           string          `json:"no"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	CategoryID   int             `json:"category_id"`
	ImageURL     string          `json:"image_url"`
	ThumbnailURL string          `json:"thumbnail_url"`
	Weight       decimal.Decimal `json:"weight"`
	DimX         decimal.Decimal `json:"dim_x"`
	DimY         decimal.Decimal `json:"dim_y"`
	DimZ         decimal.Decimal `json:"dim_z"`
	YearReleased int             `json:"year_released"`
	Description  string          `json:"description"`
	IsObsolete   bool            `json:"is_obsolete"`
}

// ShippingMethod is a shipping method configured in the store settings.
type ShippingMethod struct {
	MethodID    int64  `json:"method_id" validate:"required"`
	Name        string `json:"name"`
	Note        string `json:"note"`
	Insurance   bool   `json:"insurance"`
	IsDefault   bool   `json:"is_default"`
	IsAvailable bool   `json:"is_available"`
}

// ---------------------------------------------------------------------------
// Update requests
// ---------------------------------------------------------------------------

// OrderUpdate is the body of PUT orders/{id}.
type OrderUpdate struct {
	Remarks *string `json:"remarks,omitempty"`
	IsFiled *bool   `json:"is_filed,omitempty"`
}

// StatusUpdate is the body of PUT orders/{id}/status.
type StatusUpdate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// InventoryUpdate is the body of PUT inventories/{id}. Quantity is relative.
type InventoryUpdate struct {
	Quantity    *int   `json:"quantity,omitempty"`
	IsRetain    *bool  `json:"is_retain,omitempty"`
	IsStockRoom *bool  `json:"is_stock_room,omitempty"`
	StockRoomID string `json:"stock_room_id,omitempty"`
}
