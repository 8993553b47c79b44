package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Jens252/billbee-bricklink/internal/domain/integration"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/logger"
	"github.com/Jens252/billbee-bricklink/internal/interfaces/http/dto"
	"github.com/Jens252/billbee-bricklink/internal/interfaces/http/middleware"
)

// Custom-shop action names, passed in the Action query parameter
const (
	ActionGetOrders           = "GetOrders"
	ActionGetOrder            = "GetOrder"
	ActionAckOrder            = "AckOrder"
	ActionSetOrderState       = "SetOrderState"
	ActionGetProducts         = "GetProducts"
	ActionGetProduct          = "GetProduct"
	ActionGetShippingProfiles = "GetShippingProfiles"
	ActionSetStock            = "SetStock"
)

const (
	defaultPage     = 1
	defaultPageSize = 100
)

// startDateLayouts are tried in order when parsing StartDate
var startDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type action struct {
	method string
	handle func(*gin.Context)
}

// CustomShopHandler dispatches custom-shop actions onto the repository ports
type CustomShopHandler struct {
	BaseHandler
	orders   integration.OrdersRepository
	products integration.ProductsRepository
	shipping integration.ShippingProfileRepository
	stock    integration.StockSyncRepository
	actions  map[string]action
}

// NewCustomShopHandler creates a new CustomShopHandler
func NewCustomShopHandler(
	orders integration.OrdersRepository,
	products integration.ProductsRepository,
	shipping integration.ShippingProfileRepository,
	stock integration.StockSyncRepository,
) *CustomShopHandler {
	h := &CustomShopHandler{
		orders:   orders,
		products: products,
		shipping: shipping,
		stock:    stock,
	}
	h.actions = map[string]action{
		ActionGetOrders:           {http.MethodGet, h.getOrders},
		ActionGetOrder:            {http.MethodGet, h.getOrder},
		ActionAckOrder:            {http.MethodPost, h.ackOrder},
		ActionSetOrderState:       {http.MethodPost, h.setOrderState},
		ActionGetProducts:         {http.MethodGet, h.getProducts},
		ActionGetProduct:          {http.MethodGet, h.getProduct},
		ActionGetShippingProfiles: {http.MethodGet, h.getShippingProfiles},
		ActionSetStock:            {http.MethodPost, h.setStock},
	}
	return h
}

// RegisterRoutes mounts the endpoint at path on both verbs
func (h *CustomShopHandler) RegisterRoutes(rg gin.IRoutes, path string) {
	rg.GET(path, h.Handle)
	rg.POST(path, h.Handle)
}

// Handle dispatches on the Action parameter
func (h *CustomShopHandler) Handle(c *gin.Context) {
	name := c.Query(middleware.ActionParam)
	act, ok := h.actions[name]
	if !ok {
		h.Error(c, dto.ErrCodeUnknownAction, "unknown action: "+name)
		return
	}
	if c.Request.Method != act.method {
		h.Error(c, dto.ErrCodeMethodNotAllowed, name+" requires "+act.method)
		return
	}
	act.handle(c)
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

func (h *CustomShopHandler) getOrders(c *gin.Context) {
	page, pageSize, ok := h.paging(c)
	if !ok {
		return
	}
	startDate, err := parseStartDate(c.Query("StartDate"))
	if err != nil {
		h.BadRequest(c, "invalid StartDate: "+err.Error())
		return
	}

	result, err := h.orders.GetOrders(c.Request.Context(), page, pageSize, startDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.OrdersPage{
		Paging: dto.NewPaging(result, page, pageSize),
		Orders: dto.NewOrders(result.Items),
	})
}

func (h *CustomShopHandler) getOrder(c *gin.Context) {
	orderID, ok := h.required(c, "OrderId")
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewOrder(order))
}

func (h *CustomShopHandler) ackOrder(c *gin.Context) {
	orderID, ok := h.required(c, "OrderId")
	if !ok {
		return
	}

	if err := h.orders.AcknowledgeOrder(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}
	logger.GetGinLogger(c).Info("Order acknowledged", zap.String("order_id", orderID))
	h.Success(c, dto.StatusResponse{Status: "ok"})
}

func (h *CustomShopHandler) setOrderState(c *gin.Context) {
	orderID, ok := h.required(c, "OrderId")
	if !ok {
		return
	}
	rawState, ok := h.required(c, "NewStateId")
	if !ok {
		return
	}
	state, err := strconv.Atoi(rawState)
	if err != nil {
		h.BadRequest(c, "invalid NewStateId: "+rawState)
		return
	}

	err = h.orders.SetOrderState(c.Request.Context(), orderID, integration.OrderStatus(state), param(c, "Comment"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	logger.GetGinLogger(c).Info("Order state set",
		zap.String("order_id", orderID),
		zap.Int("new_state", state),
	)
	h.Success(c, dto.StatusResponse{Status: "ok"})
}

// ---------------------------------------------------------------------------
// Products, shipping and stock
// ---------------------------------------------------------------------------

func (h *CustomShopHandler) getProducts(c *gin.Context) {
	page, pageSize, ok := h.paging(c)
	if !ok {
		return
	}

	result, err := h.products.GetProducts(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.ProductsPage{
		Paging:   dto.NewPaging(result, page, pageSize),
		Products: dto.NewProducts(result.Items),
	})
}

func (h *CustomShopHandler) getProduct(c *gin.Context) {
	productID, ok := h.required(c, "ProductId")
	if !ok {
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProduct(product))
}

func (h *CustomShopHandler) getShippingProfiles(c *gin.Context) {
	profiles, err := h.shipping.GetShippingProfiles(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewShippingProfiles(profiles))
}

func (h *CustomShopHandler) setStock(c *gin.Context) {
	productID, ok := h.required(c, "ProductId")
	if !ok {
		return
	}
	rawStock, ok := h.required(c, "AvailableStock")
	if !ok {
		return
	}
	stock, err := decimal.NewFromString(rawStock)
	if err != nil {
		h.BadRequest(c, "invalid AvailableStock: "+rawStock)
		return
	}

	if err := h.stock.SetStock(c.Request.Context(), productID, stock); err != nil {
		h.HandleError(c, err)
		return
	}
	logger.GetGinLogger(c).Info("Stock synchronised",
		zap.String("product_id", productID),
		zap.String("available_stock", stock.String()),
	)
	h.Success(c, dto.StatusResponse{Status: "ok"})
}

// ---------------------------------------------------------------------------
// Parameter helpers
// ---------------------------------------------------------------------------

// param reads a form value, falling back to the query string
func param(c *gin.Context, name string) string {
	if v, ok := c.GetPostForm(name); ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(c.Query(name))
}

func (h *CustomShopHandler) required(c *gin.Context, name string) (string, bool) {
	v := param(c, name)
	if v == "" {
		h.BadRequest(c, name+" is required")
		return "", false
	}
	return v, true
}

func (h *CustomShopHandler) paging(c *gin.Context) (page, pageSize int, ok bool) {
	page, err := positiveInt(c.Query("Page"), defaultPage)
	if err != nil {
		h.BadRequest(c, "invalid Page: "+c.Query("Page"))
		return 0, 0, false
	}
	pageSize, err = positiveInt(c.Query("PageSize"), defaultPageSize)
	if err != nil {
		h.BadRequest(c, "invalid PageSize: "+c.Query("PageSize"))
		return 0, 0, false
	}
	return page, pageSize, true
}

func positiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// parseStartDate returns the zero time for an empty value, so every order qualifies
func parseStartDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range startDateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
