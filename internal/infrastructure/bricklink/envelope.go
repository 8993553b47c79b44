package bricklink

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Response is the transport-level view of one store API exchange.
type Response struct {
	Method     string
	Path       string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Envelope is the wrapper the store API puts around every payload.
type Envelope struct {
	Meta *Meta          `json:"meta"`
	Data json.RawMessage `json:"data"`
}

// Meta carries the application-level status of a response.
type Meta struct {
	Code        *int   `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// exchange is the state threaded through the envelope steps.
type exchange struct {
	resp        *Response
	envelope    *Envelope
	code        int
	requireData bool
	data        json.RawMessage
}

// step transforms the exchange or rejects it with a classified error.
type step func(*exchange) error

// EnvelopeHandler runs every store API response through the same ordered steps:
// decode the envelope, resolve the effective status code, classify it and
// extract the payload.
type EnvelopeHandler struct {
	steps []step
}

// NewEnvelopeHandler builds the pipeline. With debug set, each exchange is logged
// before it is decoded.
func NewEnvelopeHandler(logger *zap.Logger, debug bool) *EnvelopeHandler {
	steps := []step{decodeEnvelope, resolveCode, classify, extractData}
	if debug && logger != nil {
		steps = append([]step{logExchange(logger)}, steps...)
	}
	return &EnvelopeHandler{steps: steps}
}

// Handle returns the envelope's data field for a successful response. When
// requireData is false a success without data yields nil data and no error.
func (h *EnvelopeHandler) Handle(resp *Response, requireData bool) (json.RawMessage, error) {
	ex := &exchange{resp: resp, code: resp.StatusCode, requireData: requireData}
	for _, s := range h.steps {
		if err := s(ex); err != nil {
			return nil, err
		}
	}
	return ex.data, nil
}

// HandleFailure classifies a call that failed before an envelope could be read.
// resp is nil when no response reached the client.
func (h *EnvelopeHandler) HandleFailure(err error, resp *Response) error {
	if resp == nil || resp.StatusCode == 0 {
		return &APIError{Kind: ErrRequest, Message: "Request error: " + err.Error(), Err: err}
	}
	path := cleanPath(resp.Path)
	switch code := resp.StatusCode; {
	case code == http.StatusTooManyRequests:
		return &APIError{Kind: ErrRateLimited, StatusCode: code, Path: path, Message: "Rate limit exceeded", Err: err}
	case code >= http.StatusInternalServerError:
		return &APIError{Kind: ErrServer, StatusCode: code, Path: path, Message: "Server error: " + err.Error(), Err: err}
	default:
		return &APIError{Kind: ErrRequest, StatusCode: code, Path: path, Message: "Request error: " + err.Error(), Err: err}
	}
}

func decodeEnvelope(ex *exchange) error {
	var env Envelope
	if err := json.Unmarshal(ex.resp.Body, &env); err != nil {
		if ex.resp.StatusCode == http.StatusOK || ex.resp.StatusCode == http.StatusCreated {
			return &APIError{
				Kind:       ErrDecode,
				StatusCode: ex.resp.StatusCode,
				Path:       cleanPath(ex.resp.Path),
				Message:    "expected JSON envelope, got non-JSON body",
				Err:        err,
			}
		}
		return nil
	}
	ex.envelope = &env
	return nil
}

func resolveCode(ex *exchange) error {
	if ex.envelope != nil && ex.envelope.Meta != nil && ex.envelope.Meta.Code != nil {
		ex.code = *ex.envelope.Meta.Code
	}
	return nil
}

func classify(ex *exchange) error {
	path := cleanPath(ex.resp.Path)
	msg := ex.metaMessage()
	switch code := ex.code; {
	case code == http.StatusOK || code == http.StatusCreated || code == http.StatusNoContent:
		return nil
	case code == http.StatusBadRequest:
		return newAPIError(ErrClient, code, path, msg)
	case code == http.StatusUnauthorized:
		return newAPIError(ErrAuthentication, code, path, msg)
	case code == http.StatusNotFound:
		return newAPIError(ErrNotFound, code, path, "resource not found: "+path)
	case code >= http.StatusInternalServerError:
		return newAPIError(ErrServer, code, path, msg)
	default:
		return newAPIError(ErrUnexpectedStatus, code, path, fmt.Sprintf("unexpected status code %d", code))
	}
}

func extractData(ex *exchange) error {
	if ex.envelope != nil && len(ex.envelope.Data) > 0 && string(ex.envelope.Data) != "null" {
		ex.data = ex.envelope.Data
		return nil
	}
	if ex.requireData {
		return newAPIError(ErrDecode, ex.code, cleanPath(ex.resp.Path), "no data found")
	}
	return nil
}

func logExchange(logger *zap.Logger) step {
	return func(ex *exchange) error {
		logger.Debug("BrickLink API response",
			zap.String("method", ex.resp.Method),
			zap.String("path", ex.resp.Path),
			zap.Int("status", ex.resp.StatusCode),
			zap.Int("body_size", len(ex.resp.Body)),
		)
		return nil
	}
}

func (ex *exchange) metaMessage() string {
	if ex.envelope == nil || ex.envelope.Meta == nil {
		return ""
	}
	m := ex.envelope.Meta
	if m.Description != "" && m.Message != "" {
		return m.Message + ": " + m.Description
	}
	return m.Message + m.Description
}

// cleanPath strips the API prefix so errors name the resource, e.g. "orders/123".
func cleanPath(path string) string {
	return strings.Replace(path, APIPathPrefix, "", 1)
}
