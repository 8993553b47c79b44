package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Jens252/billbee-bricklink/internal/domain/integration"
)

// Order is the wire form of integration.Order
type Order struct {
	OrderID           string         `json:"order_id"`
	OrderNumber       string         `json:"order_number"`
	CurrencyCode      string         `json:"currency_code"`
	NickName          string         `json:"nick_name"`
	Email             string         `json:"email"`
	Phone1            string         `json:"phone1"`
	ShipCost          json.Number    `json:"ship_cost"`
	InvoiceAddress    *Address       `json:"invoice_address,omitempty"`
	DeliveryAddress   *Address       `json:"delivery_address,omitempty"`
	OrderDate         time.Time      `json:"order_date"`
	PayDate           *time.Time     `json:"pay_date,omitempty"`
	ShipDate          *time.Time     `json:"ship_date,omitempty"`
	PaymentMethod     int            `json:"payment_method"`
	OrderStatusID     int            `json:"order_status_id"`
	SellerComment     *string        `json:"seller_comment,omitempty"`
	ShippingProfileID string         `json:"shippingprofile_id,omitempty"`
	OrderProducts     []OrderProduct `json:"order_products"`
	OrderHistory      []OrderComment `json:"order_history"`
}

// OrderProduct is the wire form of integration.OrderProduct
type OrderProduct struct {
	ProductID       string       `json:"product_id"`
	SKU             string       `json:"sku"`
	Name            string       `json:"name"`
	Quantity        json.Number  `json:"quantity"`
	UnitPrice       json.Number  `json:"unit_price"`
	DiscountPercent *json.Number `json:"discount_percent,omitempty"`
}

// OrderComment is the wire form of integration.OrderComment
type OrderComment struct {
	Name         string    `json:"name"`
	Comment      string    `json:"comment"`
	DateAdded    time.Time `json:"date_added"`
	FromCustomer bool      `json:"from_customer"`
}

// Address is the wire form of integration.Address
type Address struct {
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	Company     string `json:"company"`
	Street      string `json:"street"`
	HouseNumber string `json:"housenumber"`
	Address2    string `json:"address2"`
	Postcode    string `json:"postcode"`
	City        string `json:"city"`
	State       string `json:"state"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
}

// Product is the wire form of integration.Product
type Product struct {
	ID           string         `json:"id"`
	SKU          string         `json:"sku"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Manufacturer string         `json:"manufacturer"`
	Quantity     json.Number    `json:"quantity"`
	Price        json.Number    `json:"price"`
	WeightInKg   *json.Number   `json:"weight_in_kg,omitempty"`
	LengthInCm   *json.Number   `json:"length_in_cm,omitempty"`
	WidthInCm    *json.Number   `json:"width_in_cm,omitempty"`
	HeightInCm   *json.Number   `json:"height_in_cm,omitempty"`
	Images       []ProductImage `json:"images"`
}

// ProductImage is the wire form of integration.ProductImage
type ProductImage struct {
	URL       string `json:"url"`
	IsDefault bool   `json:"is_default"`
	Position  int    `json:"position"`
}

// ShippingProfile is the wire form of integration.ShippingProfile
type ShippingProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// number renders a decimal as a bare JSON number
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func optionalNumber(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	n := number(*d)
	return &n
}

// NewOrder converts a canonical order. The invoice address doubles as delivery address.
func NewOrder(o *integration.Order) Order {
	out := Order{
		OrderID:           o.OrderID,
		OrderNumber:       o.OrderNumber,
		CurrencyCode:      o.CurrencyCode,
		NickName:          o.NickName,
		Email:             o.Email,
		Phone1:            o.Phone,
		ShipCost:          number(o.ShipCost),
		OrderDate:         o.OrderDate,
		PayDate:           o.PayDate,
		ShipDate:          o.ShipDate,
		PaymentMethod:     int(o.PaymentMethod),
		OrderStatusID:     int(o.StatusID),
		SellerComment:     o.SellerComment,
		ShippingProfileID: o.ShippingProfileID,
		OrderProducts:     make([]OrderProduct, 0, len(o.Items)),
		OrderHistory:      make([]OrderComment, 0, len(o.Comments)),
	}
	if o.InvoiceAddress != nil {
		addr := NewAddress(o.InvoiceAddress)
		out.InvoiceAddress = &addr
		out.DeliveryAddress = &addr
	}
	for _, item := range o.Items {
		out.OrderProducts = append(out.OrderProducts, OrderProduct{
			ProductID:       item.ProductID,
			SKU:             item.SKU,
			Name:            item.Name,
			Quantity:        number(item.Quantity),
			UnitPrice:       number(item.UnitPrice),
			DiscountPercent: optionalNumber(item.DiscountPercent),
		})
	}
	for _, c := range o.Comments {
		out.OrderHistory = append(out.OrderHistory, OrderComment(c))
	}
	return out
}

// NewOrders converts a slice of canonical orders
func NewOrders(orders []integration.Order) []Order {
	out := make([]Order, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrder(&orders[i]))
	}
	return out
}

// NewAddress converts a canonical address
func NewAddress(a *integration.Address) Address {
	return Address(*a)
}

// NewProduct converts a canonical product
func NewProduct(p *integration.Product) Product {
	out := Product{
		ID:           p.ID,
		SKU:          p.SKU,
		Title:        p.Title,
		Description:  p.Description,
		Manufacturer: p.Manufacturer,
		Quantity:     number(p.Quantity),
		Price:        number(p.Price),
		WeightInKg:   optionalNumber(p.WeightInKg),
		LengthInCm:   optionalNumber(p.LengthInCm),
		WidthInCm:    optionalNumber(p.WidthInCm),
		HeightInCm:   optionalNumber(p.HeightInCm),
		Images:       make([]ProductImage, 0, len(p.Images)),
	}
	for _, img := range p.Images {
		out.Images = append(out.Images, ProductImage(img))
	}
	return out
}

// NewProducts converts a slice of canonical products
func NewProducts(products []integration.Product) []Product {
	out := make([]Product, 0, len(products))
	for i := range products {
		out = append(out, NewProduct(&products[i]))
	}
	return out
}

// NewShippingProfiles converts canonical shipping profiles
func NewShippingProfiles(profiles []integration.ShippingProfile) []ShippingProfile {
	out := make([]ShippingProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ShippingProfile(p))
	}
	return out
}
