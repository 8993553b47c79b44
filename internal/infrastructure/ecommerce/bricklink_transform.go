package ecommerce

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Jens252/billbee-bricklink/internal/domain/integration"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/bricklink"
)

const (
	// Manufacturer is reported for every product.
	Manufacturer = "LEGO"

	salesTaxItemName = "State Sales Tax"
	partsItemName    = "LEGO Parts (%d pieces)"
)

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

// convertBLOrder maps an order resource to the host order. Line items other than
// the sales tax line are added by the caller.
func convertBLOrder(o *bricklink.Order) (*integration.Order, error) {
	orderDate, err := parseBLTime(o.DateOrdered)
	if err != nil {
		return nil, fmt.Errorf("order %d date_ordered: %w", o.OrderID, err)
	}

	id := strconv.FormatInt(o.OrderID, 10)
	order := &integration.Order{
		OrderID:      id,
		OrderNumber:  id,
		CurrencyCode: o.Cost.CurrencyCode,
		NickName:     o.BuyerName,
		Email:        o.BuyerEmail,
		ShipCost:     deriveShipCost(o.Cost),
		OrderDate:    orderDate,
		StatusID:     mapBLOrderStatus(o.Status),
		Items:        []integration.OrderProduct{},
		Comments:     []integration.OrderComment{},
	}

	if o.Remarks != nil {
		remarks := *o.Remarks
		order.SellerComment = &remarks
	}

	order.PaymentMethod = integration.PaymentMethodOther
	if o.Payment != nil {
		order.PaymentMethod = mapBLPaymentMethod(o.Payment.Method)
		if order.PayDate, err = parseOptionalBLTime(o.Payment.DatePaid); err != nil {
			return nil, fmt.Errorf("order %d date_paid: %w", o.OrderID, err)
		}
	}

	if s := o.Shipping; s != nil {
		if order.ShipDate, err = parseOptionalBLTime(s.DateShipped); err != nil {
			return nil, fmt.Errorf("order %d date_shipped: %w", o.OrderID, err)
		}
		if s.MethodID != nil {
			order.ShippingProfileID = strconv.FormatInt(*s.MethodID, 10)
		}
		if s.Address != nil {
			order.InvoiceAddress = convertBLAddress(s.Address)
			order.Phone = s.Address.PhoneNumber
		}
	}

	if o.Cost.SalesTax.IsPositive() {
		order.Items = append(order.Items, integration.OrderProduct{
			Name:      salesTaxItemName,
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: o.Cost.SalesTax.Round(2),
		})
	}

	return order, nil
}

// deriveShipCost is everything in the grand total that is neither goods nor tax.
func deriveShipCost(c bricklink.Cost) decimal.Decimal {
	return c.GrandTotal.Sub(c.Subtotal).Sub(c.SalesTax).Round(2)
}

func convertBLAddress(a *bricklink.ShippingAddress) *integration.Address {
	addr := &integration.Address{
		FirstName:   a.Name.First,
		LastName:    a.Name.Last,
		Street:      a.Address1,
		Address2:    a.Address2,
		Postcode:    a.PostalCode,
		City:        a.City,
		State:       a.State,
		CountryCode: a.CountryCode,
		Phone:       a.PhoneNumber,
	}
	if parsed := ParseStreetAddress(a.Address1); parsed != nil {
		addr.Street = parsed.Street
		addr.HouseNumber = parsed.HouseNumber
	}
	return addr
}

// convertBLOrderItem maps one order line. A discount is only recorded when the
// final price differs from the list price.
func convertBLOrderItem(item *bricklink.OrderItem) (integration.OrderProduct, error) {
	sku, err := DefaultSKUCodec.Encode(ItemKey{No: item.Item.No, Type: item.Item.Type, ColorID: item.ColorID})
	if err != nil {
		return integration.OrderProduct{}, err
	}

	p := integration.OrderProduct{
		ProductID: strconv.FormatInt(item.InventoryID, 10),
		SKU:       sku,
		Name:      item.Item.Name,
		Quantity:  decimal.NewFromInt(int64(item.Quantity)),
		UnitPrice: item.UnitPrice,
	}
	if !item.UnitPriceFinal.Equal(item.UnitPrice) && !item.UnitPrice.IsZero() {
		discount := decimal.NewFromInt(1).Sub(item.UnitPriceFinal.Div(item.UnitPrice))
		p.DiscountPercent = &discount
	}
	return p, nil
}

// convertBLOrderItems flattens the item batches of an order. With groupParts set,
// PART lines are replaced by a single line worth the sum of their discounted prices.
func convertBLOrderItems(batches [][]bricklink.OrderItem, groupParts bool) ([]integration.OrderProduct, error) {
	lines := make([]integration.OrderProduct, 0)
	partsValue := decimal.Zero
	partsQuantity := 0

	for _, batch := range batches {
		for i := range batch {
			item := &batch[i]
			if groupParts && item.Item.Type == ItemTypePart {
				price := decimal.Min(item.UnitPrice, item.UnitPriceFinal)
				partsValue = partsValue.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
				partsQuantity += item.Quantity
				continue
			}
			line, err := convertBLOrderItem(item)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
		}
	}

	if partsQuantity > 0 {
		lines = append(lines, integration.OrderProduct{
			Name:      fmt.Sprintf(partsItemName, partsQuantity),
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: partsValue.Round(2),
		})
	}
	return lines, nil
}

// ---------------------------------------------------------------------------
// Order messages
// ---------------------------------------------------------------------------

const maxCommentLength = 2000

var feedbackNotifications = map[string]bool{
	"Seller left you feedback.": true,
	"You left seller feedback.": true,
}

// keepBLMessage drops automatic feedback notices and oversized bodies.
func keepBLMessage(m *bricklink.Message) bool {
	return !feedbackNotifications[m.Body] && len(m.Body) < maxCommentLength
}

func convertBLMessage(m *bricklink.Message, sellerName string) (integration.OrderComment, error) {
	sent, err := parseBLTime(m.DateSent)
	if err != nil {
		return integration.OrderComment{}, err
	}
	return integration.OrderComment{
		Name:         m.Subject,
		Comment:      m.Body,
		DateAdded:    sent,
		FromCustomer: m.To == sellerName,
	}, nil
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

// convertBLProduct maps a store lot to a product. catalog may be nil, in which
// case weight, dimensions and images stay unset.
func convertBLProduct(lot *bricklink.InventoryItem, catalog *bricklink.CatalogItem) (*integration.Product, error) {
	sku, err := DefaultSKUCodec.Encode(ItemKey{No: lot.Item.No, Type: lot.Item.Type, ColorID: lot.ColorID})
	if err != nil {
		return nil, err
	}

	saleFactor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(lot.SaleRate)).Div(hundred))
	p := &integration.Product{
		ID:           strconv.FormatInt(lot.InventoryID, 10),
		SKU:          sku,
		Title:        lot.Item.Name,
		Description:  lot.Description,
		Manufacturer: Manufacturer,
		Quantity:     decimal.NewFromInt(int64(lot.Quantity)),
		Price:        lot.UnitPrice.Mul(saleFactor),
		Images:       []integration.ProductImage{},
	}

	if catalog != nil {
		weight := catalog.Weight.Div(thousand)
		length, width, height := catalog.DimX, catalog.DimY, catalog.DimZ
		p.WeightInKg = &weight
		p.LengthInCm = &length
		p.WidthInCm = &width
		p.HeightInCm = &height
		if p.Description == "" {
			p.Description = catalog.Description
		}
		if catalog.ImageURL != "" {
			p.Images = append(p.Images, convertBLImage(catalog.ImageURL))
		}
	}
	return p, nil
}

// convertBLImage gives scheme-relative catalog URLs ("//img.bricklink.com/...")
// an explicit https scheme.
func convertBLImage(url string) integration.ProductImage {
	if !strings.HasPrefix(url, "http") {
		url = "https:" + url
	}
	return integration.ProductImage{URL: url, IsDefault: true, Position: 1}
}
