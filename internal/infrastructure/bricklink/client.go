// Package bricklink is a client for the BrickLink store API. Every call is OAuth1
// signed and every response passes through the same envelope pipeline, so callers
// only see a payload or a classified *APIError.
package bricklink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Jens252/billbee-bricklink/internal/infrastructure/telemetry"
)

// Client performs store API calls.
type Client struct {
	rest     *resty.Client
	envelope *EnvelopeHandler
	config   *Config
	logger   *zap.Logger
	metrics  *telemetry.APIMetrics
}

// NewClient validates cfg and builds a signed client for it.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("bricklink: config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("bricklink")

	if strings.HasPrefix(cfg.BaseURL, "http://") {
		logger.Warn("BrickLink API configured over plain HTTP, credentials and order data are not encrypted",
			zap.String("base_url", cfg.BaseURL))
	}

	rest := resty.NewWithClient(newSignedHTTPClient(cfg)).
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetLogger(logger.Sugar()).
		SetHeaders(map[string]string{
			"Accept":       "application/json",
			"Content-Type": "application/json",
			"User-Agent":   "Mozilla/5.0",
		})

	metrics, err := telemetry.NewAPIMetrics(otel.Meter(telemetry.TracerName + "/bricklink"))
	if err != nil {
		logger.Warn("API metrics unavailable", zap.Error(err))
	}

	return &Client{
		rest:     rest,
		envelope: NewEnvelopeHandler(logger, cfg.Debug),
		config:   cfg,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

// newSignedHTTPClient returns an http.Client whose transport signs each request
// with the store's OAuth1 credentials.
func newSignedHTTPClient(cfg *Config) *http.Client {
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	base := &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: cfg.ConnectTimeout,
		},
	}
	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, base)
	return oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret).
		Client(ctx, oauth1.NewToken(cfg.TokenValue, cfg.TokenSecret))
}

// Get fetches path and returns the envelope's data field.
func (c *Client) Get(ctx context.Context, path string, query map[string]string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, true)
}

// Put sends body to path. The returned data is nil when the API answers without one.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, nil, body, false)
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body any, requireData bool) (json.RawMessage, error) {
	ctx, span := telemetry.StartSpan(ctx, "bricklink."+strings.ToLower(method),
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute(telemetry.SpanAttrAPIPath, path),
	)
	defer span.End()
	start := time.Now()

	req := c.rest.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	data, err := c.handle(resp, err, requireData)

	c.metrics.Record(ctx, method, outcome(err), time.Since(start))
	if resp != nil {
		telemetry.SetAttributes(span, telemetry.SpanAttrAPIStatus, resp.StatusCode())
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return data, nil
}

func (c *Client) handle(resp *resty.Response, err error, requireData bool) (json.RawMessage, error) {
	r := toResponse(resp)
	if err != nil {
		return nil, c.envelope.HandleFailure(err, r)
	}
	if r == nil {
		return nil, c.envelope.HandleFailure(errors.New("no response received"), nil)
	}
	if c.config.HTTPErrors && r.StatusCode >= http.StatusBadRequest {
		failure := fmt.Errorf("%s %s resulted in %d %s", r.Method, r.Path, r.StatusCode, http.StatusText(r.StatusCode))
		return nil, c.envelope.HandleFailure(failure, r)
	}
	return c.envelope.Handle(r, requireData)
}

func toResponse(resp *resty.Response) *Response {
	if resp == nil || resp.RawResponse == nil {
		return nil
	}
	r := &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}
	if req := resp.RawResponse.Request; req != nil {
		r.Method = req.Method
		r.Path = req.URL.Path
	}
	return r
}

func outcome(err error) string {
	var apiErr *APIError
	if err == nil {
		return "success"
	}
	if errors.As(err, &apiErr) {
		return strings.TrimPrefix(apiErr.Kind.Error(), "bricklink: ")
	}
	return "error"
}
