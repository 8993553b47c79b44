// Command server exposes the BrickLink store as a Billbee custom shop.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jens252/billbee-bricklink/internal/infrastructure/bricklink"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/config"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/ecommerce"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/logger"
	"github.com/Jens252/billbee-bricklink/internal/infrastructure/telemetry"
	"github.com/Jens252/billbee-bricklink/internal/interfaces/http/handler"
	"github.com/Jens252/billbee-bricklink/internal/interfaces/http/middleware"
	"github.com/Jens252/billbee-bricklink/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Billbee BrickLink connector",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("path", cfg.Billbee.Path),
	)

	// Telemetry must be in place before the store client creates its instruments
	ctx := context.Background()
	tp, err := telemetry.NewTracerProvider(ctx, cfg.TelemetrySettings(), log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	mp, err := telemetry.NewMeterProvider(ctx, cfg.TelemetrySettings(), log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	log.Debug("Telemetry ready", zap.Bool("tracing", tp.IsEnabled()))

	settings := cfg.AdapterSettings()
	if err := settings.Validate(); err != nil {
		log.Fatal("Invalid adapter settings", zap.Error(err))
	}

	client, err := bricklink.NewClient(cfg.StoreConfig(), log)
	if err != nil {
		log.Fatal("Failed to create store client", zap.Error(err))
	}

	shop := handler.NewCustomShopHandler(
		ecommerce.NewOrderRepository(client, settings, log),
		ecommerce.NewProductRepository(client, settings, log),
		ecommerce.NewShippingProfileRepository(client, log),
		ecommerce.NewStockSyncRepository(client, settings, log),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine, err := router.NewRouter(router.Config{
		ShopPath:       cfg.Billbee.Path,
		Secret:         cfg.Billbee.SecretKey,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
	}, log).Engine(shop, handler.NewSystemHandler(cfg.App.Name))
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := mp.Shutdown(shutdownCtx); err != nil {
		log.Warn("Meter provider shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
