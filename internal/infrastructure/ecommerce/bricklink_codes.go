package ecommerce

import (
	"strings"

	"github.com/Jens252/billbee-bricklink/internal/domain/integration"
)

// Marketplace order status values.
const (
	BLStatusPending    = "PENDING"
	BLStatusUpdated    = "UPDATED"
	BLStatusProcessing = "PROCESSING"
	BLStatusReady      = "READY"
	BLStatusPaid       = "PAID"
	BLStatusPacked     = "PACKED"
	BLStatusShipped    = "SHIPPED"
	BLStatusReceived   = "RECEIVED"
	BLStatusCompleted  = "COMPLETED"
	BLStatusCancelled  = "CANCELLED"
	// BLStatusFiled is not a status on the marketplace but the is_filed order flag.
	BLStatusFiled = "FILED"
)

// Marketplace item types.
const (
	ItemTypeSet         = "SET"
	ItemTypePart        = "PART"
	ItemTypeMinifig     = "MINIFIG"
	ItemTypeBook        = "BOOK"
	ItemTypeGear        = "GEAR"
	ItemTypeCatalog     = "CATALOG"
	ItemTypeInstruction = "INSTRUCTION"
	ItemTypeUnsortedLot = "UNSORTED_LOT"
	ItemTypeOriginalBox = "ORIGINAL_BOX"
)

var orderStatusFromBL = map[string]integration.OrderStatus{
	BLStatusPending:    integration.OrderStatusOrdered,
	BLStatusUpdated:    integration.OrderStatusOrdered,
	BLStatusProcessing: integration.OrderStatusOrdered,
	BLStatusReady:      integration.OrderStatusConfirmed,
	BLStatusPaid:       integration.OrderStatusPaid,
	BLStatusPacked:     integration.OrderStatusPacked,
	BLStatusShipped:    integration.OrderStatusShipped,
	BLStatusReceived:   integration.OrderStatusCompleted,
	BLStatusCompleted:  integration.OrderStatusCompleted,
	BLStatusCancelled:  integration.OrderStatusCancelled,
}

// orderStatusToBL is not the inverse of orderStatusFromBL: several marketplace
// values collapse onto one host state and only one of them is written back.
var orderStatusToBL = map[integration.OrderStatus]string{
	integration.OrderStatusFulfillmentQueued: BLStatusProcessing,
	integration.OrderStatusConfirmed:         BLStatusReady,
	integration.OrderStatusOffered:           BLStatusReady,
	integration.OrderStatusPaid:              BLStatusPaid,
	integration.OrderStatusPacked:            BLStatusPacked,
	integration.OrderStatusShipped:           BLStatusShipped,
	integration.OrderStatusCompleted:         BLStatusCompleted,
	integration.OrderStatusArchived:          BLStatusFiled,
}

var paymentMethodFromBL = map[string]integration.PaymentMethod{
	"IBAN":                             integration.PaymentMethodBankTransfer,
	"Bank Transfer":                    integration.PaymentMethodBankTransfer,
	"COD (Cash On Delivery)":           integration.PaymentMethodCashOnDelivery,
	"PayPal (Onsite)":                  integration.PaymentMethodPayPal,
	"PayPal":                           integration.PaymentMethodPayPal,
	"Cash (no COD)":                    integration.PaymentMethodCash,
	"Visa/MasterCard":                  integration.PaymentMethodCreditCard,
	"American Express":                 integration.PaymentMethodCreditCard,
	"Credit/Debit (Powered by Stripe)": integration.PaymentMethodStripe,
}

var itemTypeByInitial = map[byte]string{
	'M': ItemTypeMinifig,
	'P': ItemTypePart,
	'B': ItemTypeBook,
	'G': ItemTypeGear,
	'C': ItemTypeCatalog,
	'I': ItemTypeInstruction,
	'U': ItemTypeUnsortedLot,
	'O': ItemTypeOriginalBox,
}

// mapBLOrderStatus maps a marketplace status, in any letter case, to the host state.
// Unknown values map to OrderStatusUnknown.
func mapBLOrderStatus(status string) integration.OrderStatus {
	return orderStatusFromBL[strings.ToUpper(status)]
}

// mapToBLOrderStatus returns the marketplace value for a host state, or "" when
// the state has no marketplace counterpart.
func mapToBLOrderStatus(status integration.OrderStatus) string {
	return orderStatusToBL[status]
}

// mapBLPaymentMethod matches the marketplace payment label exactly. Anything
// unrecognised is reported as "other".
func mapBLPaymentMethod(method string) integration.PaymentMethod {
	if pm, ok := paymentMethodFromBL[method]; ok {
		return pm
	}
	return integration.PaymentMethodOther
}

// itemTypeForInitial returns the item type a SKU initial stands for, SET by default.
func itemTypeForInitial(initial byte) string {
	if t, ok := itemTypeByInitial[initial]; ok {
		return t
	}
	return ItemTypeSet
}
