// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"herdboard/internal/domain/analytics"
	"herdboard/internal/domain/herd"
	"herdboard/internal/domain/ledger"
	"herdboard/internal/infrastructure/export"
	"herdboard/internal/infrastructure/http/v1/handlers"
	"herdboard/internal/infrastructure/http/v1/middleware"
	"herdboard/internal/infrastructure/storage/postgres"
	"herdboard/pkg/logger"
)

// RouterConfig holds everything the HTTP layer depends on.
type RouterConfig struct {
	// Pool is the database connection pool (health checks).
	Pool *postgres.Pool

	// Logger for request logging.
	Logger *logger.Logger

	HerdService  *herd.Service
	CostService  *ledger.CostService
	SaleService  *ledger.SaleService
	BirthService *ledger.BirthService

	AnalyticsService *analytics.Service
	Exporter         *export.Exporter
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	v1 := router.Group("/api/v1")
	{
		herdHandler := handlers.NewHerdHandler(base, cfg.HerdService)
		animals := v1.Group("/herd/animals")
		{
			animals.GET("", herdHandler.List)
			animals.POST("", herdHandler.Create)
			animals.GET("/:id", herdHandler.Get)
			animals.PUT("/:id", herdHandler.Update)
			animals.PATCH("/:id/status", herdHandler.SetStatus)
		}

		ledgerHandler := handlers.NewLedgerHandler(base, cfg.CostService, cfg.SaleService, cfg.BirthService)
		ledgerGroup := v1.Group("/ledger")
		{
			costs := ledgerGroup.Group("/costs")
			costs.GET("", ledgerHandler.ListCosts)
			costs.POST("", ledgerHandler.CreateCost)
			costs.GET("/:id", ledgerHandler.GetCost)
			costs.DELETE("/:id", ledgerHandler.DeleteCost)

			sales := ledgerGroup.Group("/sales")
			sales.GET("", ledgerHandler.ListSales)
			sales.POST("", ledgerHandler.CreateSale)
			sales.GET("/:id", ledgerHandler.GetSale)
			sales.DELETE("/:id", ledgerHandler.DeleteSale)

			births := ledgerGroup.Group("/births")
			births.GET("", ledgerHandler.ListBirths)
			births.POST("", ledgerHandler.CreateBirth)
			births.GET("/:id", ledgerHandler.GetBirth)
			births.DELETE("/:id", ledgerHandler.DeleteBirth)
		}

		reportsHandler := handlers.NewReportsHandler(base, cfg.AnalyticsService, cfg.Exporter)
		reports := v1.Group("/reports")
		{
			reports.GET("", reportsHandler.Generate)
			reports.GET("/download", reportsHandler.Download)
		}
	}

	return router
}
