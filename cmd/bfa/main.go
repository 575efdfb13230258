package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddenberg/finboard-bfa-go/internal/config"
	"github.com/boddenberg/finboard-bfa-go/internal/handler"
	"github.com/boddenberg/finboard-bfa-go/internal/infra/cache"
	"github.com/boddenberg/finboard-bfa-go/internal/infra/memstore"
	"github.com/boddenberg/finboard-bfa-go/internal/infra/observability"
	"github.com/boddenberg/finboard-bfa-go/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const serviceName = "finboard-bfa"

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel, serviceName)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("snapshot_path", cfg.SnapshotPath),
		zap.Duration("transfer_revert_delay", cfg.TransferRevertDelay),
		zap.Duration("cache_ttl", cfg.CacheTTL),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, serviceName)
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Ledger snapshot store ---
	var store *memstore.Store
	if cfg.SnapshotPath != "" {
		store, err = memstore.NewFromFile(cfg.SnapshotPath, logger)
		if err != nil {
			logger.Fatal("failed to load snapshot", zap.String("path", cfg.SnapshotPath), zap.Error(err))
		}
	} else {
		store = memstore.New(logger)
	}

	// --- Cache ---
	insightsCache := cache.NewWithEvictionHook[any](cfg.CacheTTL, func(string) {
		metrics.IncrCacheEviction("insights")
	})

	// --- Services ---
	ledgerSvc := service.NewLedgerService(store, metrics, logger)
	transferSvc := service.NewTransferService(store, cfg.TransferRevertDelay, metrics, logger)
	accountsSvc := service.NewAccountsService(store, metrics, logger)
	billsSvc := service.NewBillsService(store, metrics, logger)
	insightsSvc := service.NewInsightsService(store, insightsCache, metrics, logger)
	overviewSvc := service.NewOverviewService(accountsSvc, ledgerSvc, billsSvc, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(handler.Services{
		Ledger:   ledgerSvc,
		Transfer: transferSvc,
		Accounts: accountsSvc,
		Bills:    billsSvc,
		Insights: insightsSvc,
		Overview: overviewSvc,
	}, store, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
