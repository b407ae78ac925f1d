package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinekit/internal/config"
	"github.com/kailas-cloud/dinekit/internal/domain/slot"
	"github.com/kailas-cloud/dinekit/internal/domain/sorting"
	logpkg "github.com/kailas-cloud/dinekit/internal/logger"
	"github.com/kailas-cloud/dinekit/internal/metrics"
	"github.com/kailas-cloud/dinekit/internal/repository/cartstore"
	"github.com/kailas-cloud/dinekit/internal/repository/catalog"
	chiTransport "github.com/kailas-cloud/dinekit/internal/transport/chi"
	browseuc "github.com/kailas-cloud/dinekit/internal/usecase/browse"
	cartuc "github.com/kailas-cloud/dinekit/internal/usecase/cart"
	healthuc "github.com/kailas-cloud/dinekit/internal/usecase/health"
	reservationuc "github.com/kailas-cloud/dinekit/internal/usecase/reservation"
	"github.com/kailas-cloud/dinekit/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting dinekit API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog", cfg.Catalog.Path),
		zap.String("locale", cfg.Sorting.Locale),
	)

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	repo, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	logger.Info("Catalog loaded", zap.Strings("collections", repo.Collections()))

	carts := cartstore.New()

	// Create use case services
	browseSvc := browseuc.New(repo, sorting.NewLibrary(sorting.WithLocale(cfg.Locale())))
	cartSvc := cartuc.New(repo, carts).
		WithCollection(cfg.Cart.Collection).
		WithMaxQuantity(cfg.Cart.MaxQuantity).
		WithPricing(cfg.TaxPercent(), cfg.DeliveryFee())
	reservationSvc := reservationuc.New(repo, slot.NewGenerator()).
		WithDefaultIncrement(cfg.Reservation.DefaultIncrementMin)
	healthSvc := healthuc.New(map[string]healthuc.Pinger{
		"catalog": repo,
		"carts":   carts,
	})

	server := chiTransport.NewServer(browseSvc, cartSvc, reservationSvc, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           chiTransport.NewRouter(server, logger),
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully", zap.Int("open_carts", carts.Len()))
}
