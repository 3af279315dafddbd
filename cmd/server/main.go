// Package main is the entry point for the herdboard API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"herdboard/internal/config"
	"herdboard/internal/domain/analytics"
	"herdboard/internal/domain/herd"
	"herdboard/internal/domain/ledger"
	"herdboard/internal/infrastructure/export"
	v1 "herdboard/internal/infrastructure/http/v1"
	"herdboard/internal/infrastructure/storage/postgres"
	"herdboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: cfg.App.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting herdboard server")

	// --- Database connection ---
	poolCfg := postgres.DefaultPoolConfig(cfg.DB.ConnectionString())
	if cfg.DB.MaxConns > 0 {
		poolCfg.MaxConns = cfg.DB.MaxConns
	}
	if cfg.DB.MinConns > 0 {
		poolCfg.MinConns = cfg.DB.MinConns
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}

	// --- Repositories ---
	animalRepo := postgres.NewAnimalRepo(pool)
	costRepo := postgres.NewCostRepo(pool)
	saleRepo := postgres.NewSaleRepo(pool)
	birthRepo := postgres.NewBirthRepo(pool)

	// --- Domain services ---
	herdService := herd.NewService(animalRepo)
	costService := ledger.NewCostService(costRepo)
	saleService := ledger.NewSaleService(saleRepo)
	birthService := ledger.NewBirthService(birthRepo)

	source := postgres.NewSnapshotSource(animalRepo, costRepo, saleRepo, birthRepo)
	analyticsService, err := analytics.NewService(source, cfg.Analytics, log)
	if err != nil {
		log.Fatalw("failed to initialize analytics service", "error", err)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:             pool,
		Logger:           log,
		HerdService:      herdService,
		CostService:      costService,
		SaleService:      saleService,
		BirthService:     birthService,
		AnalyticsService: analyticsService,
		Exporter:         export.NewExporter(),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.HTTP.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
