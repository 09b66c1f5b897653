// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/core/numerator"
	"stockbook/internal/domain/catalogs/item"
	"stockbook/internal/domain/documents/returns"
	"stockbook/internal/domain/documents/transaction"
	"stockbook/internal/domain/reports"
	"stockbook/internal/domain/vouchers/discount"
	"stockbook/internal/infrastructure/http/v1/handlers"
	"stockbook/internal/infrastructure/http/v1/middleware"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/internal/infrastructure/storage/postgres/catalog_repo"
	"stockbook/internal/infrastructure/storage/postgres/document_repo"
	"stockbook/internal/infrastructure/storage/postgres/voucher_repo"
	"stockbook/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager manages database transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation. Nil disables auth (development).
	JWTValidator middleware.JWTValidator

	// Numerator for document number generation
	Numerator numerator.Generator
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

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	if cfg.JWTValidator != nil {
		v1.Use(middleware.Auth(cfg.JWTValidator))
	}

	baseHandler := handlers.NewBaseHandler()

	// --- ITEMS (stock ledger) ---
	itemRepo := catalog_repo.NewItemRepo(cfg.TxManager)
	{
		service := item.NewService(itemRepo, cfg.TxManager)
		handler := handlers.NewItemHandler(baseHandler, service)
		items := v1.Group("/items")
		items.POST("", handler.Create)
		items.GET("", handler.List)
		items.GET("/:id", handler.Get)
		items.PUT("/:id", handler.Update)
		items.DELETE("/:id", handler.Deactivate)
		items.POST("/:id/adjust", handler.Adjust)
	}

	// --- DISCOUNT VOUCHERS ---
	{
		service := discount.NewService(voucher_repo.NewDiscountRepo(cfg.TxManager), cfg.TxManager)
		handler := handlers.NewDiscountHandler(baseHandler, service)
		discounts := v1.Group("/discounts")
		discounts.POST("", handler.Create)
		discounts.GET("", handler.List)
		discounts.GET("/:code", handler.Get)
		discounts.POST("/:code/validate", handler.Validate)
		discounts.POST("/:code/redeem", handler.Redeem)
		discounts.POST("/:code/redeem-if-valid", handler.RedeemIfValid)
	}

	// --- TRANSACTION VOUCHERS (purchase & sales) ---
	{
		service := transaction.NewService(document_repo.NewVoucherRepo(cfg.TxManager), cfg.Numerator, cfg.TxManager)
		handler := handlers.NewVoucherHandler(baseHandler, service)
		vouchers := v1.Group("/vouchers/:kind")
		vouchers.POST("", handler.Create)
		vouchers.GET("", handler.List)
		vouchers.GET("/:ref", handler.Get)
		vouchers.PUT("/:ref", handler.Update)
		vouchers.DELETE("/:ref", handler.Void)
	}

	// --- RETURNS (purchase & sales) ---
	{
		service := returns.NewService(document_repo.NewReturnRepo(cfg.TxManager), cfg.Numerator, cfg.TxManager)
		handler := handlers.NewReturnHandler(baseHandler, service)
		rets := v1.Group("/returns/:kind")
		rets.POST("", handler.Create)
		rets.GET("", handler.List)
		rets.GET("/:ref", handler.Get)
		rets.PUT("/:ref", handler.Update)
		rets.DELETE("/:ref", handler.Void)
	}

	// --- REPORTS ---
	{
		service := reports.NewService(itemRepo)
		handler := handlers.NewReportsHandler(baseHandler, service)
		v1.GET("/reports/inventory-summary", handler.InventorySummary)
	}

	return router
}
