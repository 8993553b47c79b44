package dto

import "github.com/Jens252/billbee-bricklink/internal/domain/integration"

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message, requestID string) ErrorResponse {
	return ErrorResponse{Error: &ErrorInfo{Code: code, Message: message, RequestID: requestID}}
}

// Paging describes where a page sits in the whole result
type Paging struct {
	Page       int `json:"page"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// NewPaging builds paging metadata for a page of pageSize entries
func NewPaging[T any](data *integration.PagedData[T], page, pageSize int) Paging {
	return Paging{
		Page:       page,
		TotalCount: data.TotalCount,
		TotalPages: data.TotalPages(pageSize),
	}
}

// OrdersPage is the GetOrders response
type OrdersPage struct {
	Paging Paging  `json:"paging"`
	Orders []Order `json:"orders"`
}

// ProductsPage is the GetProducts response
type ProductsPage struct {
	Paging   Paging    `json:"paging"`
	Products []Product `json:"products"`
}

// StatusResponse acknowledges write actions
type StatusResponse struct {
	Status string `json:"status"`
}

// HealthResponse is the liveness probe body
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
