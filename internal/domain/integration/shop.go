package integration

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Order status codes understood by the host platform
// ---------------------------------------------------------------------------

// OrderStatus is the host platform's integer order state.
type OrderStatus int

const (
	OrderStatusUnknown           OrderStatus = 0
	OrderStatusOrdered           OrderStatus = 1
	OrderStatusConfirmed         OrderStatus = 2
	OrderStatusPaid              OrderStatus = 3
	OrderStatusShipped           OrderStatus = 4
	OrderStatusComplaint         OrderStatus = 5
	OrderStatusDeleted           OrderStatus = 6
	OrderStatusCompleted         OrderStatus = 7
	OrderStatusCancelled         OrderStatus = 8
	OrderStatusArchived          OrderStatus = 9
	OrderStatusDemanded          OrderStatus = 11
	OrderStatusSecondDemand      OrderStatus = 12
	OrderStatusPacked            OrderStatus = 13
	OrderStatusOffered           OrderStatus = 14
	OrderStatusPaymentReminder   OrderStatus = 15
	OrderStatusFulfillmentQueued OrderStatus = 16
)

// PaymentMethod is the host platform's integer payment method code.
type PaymentMethod int

const (
	PaymentMethodBankTransfer   PaymentMethod = 1
	PaymentMethodCashOnDelivery PaymentMethod = 2
	PaymentMethodPayPal         PaymentMethod = 3
	PaymentMethodCash           PaymentMethod = 4
	PaymentMethodOther          PaymentMethod = 22
	PaymentMethodCreditCard     PaymentMethod = 31
	PaymentMethodStripe         PaymentMethod = 63
)

// ---------------------------------------------------------------------------
// Canonical order shapes
// ---------------------------------------------------------------------------

// Order is the host platform's view of a marketplace order.
type Order struct {
	OrderID           string
	OrderNumber       string
	CurrencyCode      string
	NickName          string
	Email             string
	Phone             string
	ShipCost          decimal.Decimal
	InvoiceAddress    *Address
	OrderDate         time.Time
	PayDate           *time.Time
	ShipDate          *time.Time
	PaymentMethod     PaymentMethod
	StatusID          OrderStatus
	SellerComment     *string
	ShippingProfileID string
	Items             []OrderProduct
	Comments          []OrderComment
}

// OrderProduct is a single order line.
type OrderProduct struct {
	ProductID string
	SKU       string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	// DiscountPercent is nil when the line was sold at list price.
	DiscountPercent *decimal.Decimal
}

// OrderComment is a message exchanged between buyer and seller.
type OrderComment struct {
	Name         string
	Comment      string
	DateAdded    time.Time
	FromCustomer bool
}

// Address is a postal address split the way the host platform stores it.
type Address struct {
	FirstName   string
	LastName    string
	Company     string
	Street      string
	HouseNumber string
	Address2    string
	Postcode    string
	City        string
	State       string
	CountryCode string
	Phone       string
}

// ---------------------------------------------------------------------------
// Canonical catalog shapes
// ---------------------------------------------------------------------------

// Product is a sellable stock unit as the host platform sees it.
type Product struct {
	ID           string
	SKU          string
	Title        string
	Description  string
	Manufacturer string
	Quantity     decimal.Decimal
	Price        decimal.Decimal
	WeightInKg   *decimal.Decimal
	LengthInCm   *decimal.Decimal
	WidthInCm    *decimal.Decimal
	HeightInCm   *decimal.Decimal
	Images       []ProductImage
}

// ProductImage is an image attached to a product.
type ProductImage struct {
	URL       string
	IsDefault bool
	Position  int
}

// ShippingProfile is a shipping method the host can assign to orders.
type ShippingProfile struct {
	ID   string
	Name string
}

// PagedData is one page of a larger result together with the size of the whole result.
type PagedData[T any] struct {
	Items      []T
	TotalCount int
}

// TotalPages returns the number of pages of pageSize needed for the whole result.
func (p *PagedData[T]) TotalPages(pageSize int) int {
	if pageSize <= 0 || p.TotalCount == 0 {
		return 0
	}
	return (p.TotalCount + pageSize - 1) / pageSize
}
