// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/auth"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/customer"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/inventory"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/ledger"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/reports"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/sale"
	"github.com/Alejoxd70/sactpaper-stationery/internal/infrastructure/http/v1/handlers"
	"github.com/Alejoxd70/sactpaper-stationery/internal/infrastructure/http/v1/middleware"
	"github.com/Alejoxd70/sactpaper-stationery/internal/infrastructure/storage/postgres"
	"github.com/Alejoxd70/sactpaper-stationery/pkg/logger"
)

// RouterConfig holds the wired services the router exposes.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	// Development switches Gin out of release mode.
	Development bool

	AuthService      *auth.Service
	InventoryService *inventory.Service
	CustomerService  *customer.Service
	LedgerService    *ledger.Service
	SaleService      *sale.Service
	ReportService    *reports.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Order matters: recovery outermost, errors rendered last.
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints, no auth.
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	api := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(cfg.AuthService)
		api.POST("/auth/login", authHandler.Login)

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.AuthService))

		registerProductRoutes(protected, cfg)
		registerCustomerRoutes(protected, cfg)
		registerAccountRoutes(protected, cfg)
		registerSaleRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
	}

	return router
}

func registerProductRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewProductHandler(cfg.InventoryService)

	products := rg.Group("/products")
	{
		products.GET("", handler.List)
		products.GET("/low-stock", handler.LowStock)
		products.GET("/:id", handler.Get)
		products.POST("", handler.Create)
		products.PUT("/:id", handler.Update)
		products.POST("/:id/adjust", handler.Adjust)
		products.GET("/:id/movements", handler.Movements)
	}
}

func registerCustomerRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewCustomerHandler(cfg.CustomerService, cfg.SaleService)

	customers := rg.Group("/customers")
	{
		customers.GET("", handler.List)
		customers.GET("/:id", handler.Get)
		customers.POST("", handler.Create)
		customers.PUT("/:id", handler.Update)
		customers.GET("/:id/invoices", handler.Invoices)
	}
}

func registerAccountRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewAccountHandler(cfg.LedgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", handler.List)
		accounts.GET("/:id", handler.Get)
		accounts.GET("/:id/balance", handler.Balance)
		accounts.GET("/:id/postings", handler.Postings)

		// Chart changes are an admin concern.
		accounts.POST("", middleware.RequireAdmin(), handler.Create)
		accounts.PUT("/:id", middleware.RequireAdmin(), handler.Update)
	}
}

func registerSaleRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewSaleHandler(cfg.SaleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", handler.Create)
		sales.GET("", handler.List)
		sales.GET("/:id", handler.Get)
		sales.GET("/:id/xml", handler.Export)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handler := handlers.NewReportHandler(cfg.ReportService)

	reportsGroup := rg.Group("/reports")
	{
		reportsGroup.GET("/sales", handler.Sales)
		reportsGroup.GET("/inventory", handler.Inventory)
		reportsGroup.GET("/profit-loss", handler.ProfitLoss)
		reportsGroup.GET("/balance", handler.Balance)
		reportsGroup.GET("/top-products", handler.TopProducts)
		reportsGroup.GET("/dashboard", handler.Dashboard)
		reportsGroup.GET("/general", handler.General)
	}
}
