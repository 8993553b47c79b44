package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jens252/billbee-bricklink/internal/infrastructure/logger"
	"github.com/Jens252/billbee-bricklink/internal/interfaces/http/handler"
	"github.com/Jens252/billbee-bricklink/internal/interfaces/http/middleware"
)

// Config holds the router settings
type Config struct {
	// ShopPath is where the custom-shop endpoint is mounted
	ShopPath       string
	Secret         string
	MaxBodySize    int64
	TrustedProxies []string
	Tracing        middleware.TracingConfig
}

// Router builds the gin engine for the service
type Router struct {
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithClock replaces the clock used to validate request keys
func WithClock(now func() time.Time) RouterOption {
	return func(r *Router) {
		r.now = now
	}
}

// NewRouter creates a new Router instance
func NewRouter(cfg Config, log *zap.Logger, opts ...RouterOption) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Router{cfg: cfg, logger: log, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Engine wires middleware and routes. The health probe sits outside key auth.
func (r *Router) Engine(shop *handler.CustomShopHandler, system *handler.SystemHandler) (*gin.Engine, error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(r.cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("setting trusted proxies: %w", err)
	}

	engine.Use(
		logger.Recovery(r.logger),
		middleware.RequestID(),
		middleware.TracingWithConfig(r.cfg.Tracing),
		middleware.SpanAttributes(),
		middleware.SpanErrorMarker(),
		logger.GinMiddleware(r.logger),
	)

	engine.GET("/health", system.Health)

	shopGroup := engine.Group("")
	if r.cfg.MaxBodySize > 0 {
		shopGroup.Use(middleware.BodyLimit(r.cfg.MaxBodySize))
	}
	shopGroup.Use(middleware.KeyAuth(middleware.KeyAuthConfig{Secret: r.cfg.Secret, Now: r.now}))
	shop.RegisterRoutes(shopGroup, r.cfg.ShopPath)

	return engine, nil
}
