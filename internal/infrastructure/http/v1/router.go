// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"tripdesk/internal/domain/catalogs/article"
	"tripdesk/internal/domain/catalogs/client"
	"tripdesk/internal/domain/catalogs/supplier"
	"tripdesk/internal/domain/documents/invoice"
	"tripdesk/internal/domain/documents/order"
	"tripdesk/internal/domain/documents/voucher"
	"tripdesk/internal/infrastructure/http/v1/handlers"
	"tripdesk/internal/infrastructure/http/v1/middleware"
	"tripdesk/internal/infrastructure/sequence"
	"tripdesk/internal/infrastructure/storage/postgres"
	"tripdesk/internal/infrastructure/storage/postgres/catalog_repo"
	"tripdesk/internal/infrastructure/storage/postgres/document_repo"
	"tripdesk/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (used by health checks).
	Pool *postgres.Pool

	// TxManager drives all transactional work.
	TxManager *postgres.TxManager

	// Logger for request logging.
	Logger *logger.Logger

	// JWTSecret signs and verifies access tokens.
	JWTSecret []byte

	// Sequences is the document numbering service.
	Sequences *sequence.Service
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

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.Auth(cfg.JWTSecret))
	{
		registerCatalogRoutes(apiV1, cfg)
		registerDocumentRoutes(apiV1, cfg)
		registerSequenceRoutes(apiV1, cfg)
	}

	return router
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- CLIENTS ---
	{
		repo := catalog_repo.NewClientRepo(cfg.TxManager)
		service := client.NewService(repo, cfg.TxManager, cfg.Sequences)
		handler := handlers.NewClientHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/clients"), handler, "catalog:client")
	}

	// --- SUPPLIERS ---
	{
		repo := catalog_repo.NewSupplierRepo(cfg.TxManager)
		service := supplier.NewService(repo, cfg.TxManager, cfg.Sequences)
		handler := handlers.NewSupplierHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/suppliers"), handler, "catalog:supplier")
	}

	// --- ARTICLES ---
	{
		repo := catalog_repo.NewArticleRepo(cfg.TxManager)
		registry := catalog_repo.NewArticleDetailRegistry(cfg.TxManager)
		service := article.NewService(repo, registry, cfg.TxManager, cfg.Sequences)
		handler := handlers.NewArticleHandler(baseHandler, service)

		group := catalogs.Group("/articles")
		RegisterCatalogRoutes(group, handler, "catalog:article")
		group.GET("/by-supplier/:supplierId",
			middleware.RequirePermission("catalog:article:read"), handler.ListBySupplier)
	}
}

// registerDocumentRoutes registers document endpoints. The order service gets
// the invoice guard so price changes and invoice state stay consistent.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	docs := rg.Group("/document")
	baseHandler := handlers.NewBaseHandler()

	orderRepo := document_repo.NewOrderRepo(cfg.TxManager)
	invoiceRepo := document_repo.NewInvoiceRepo(cfg.TxManager)
	voucherRepo := document_repo.NewVoucherRepo(cfg.TxManager)

	// Audit entries share the transaction of the write they describe.
	if audit, err := postgres.NewAuditService(cfg.TxManager); err != nil {
		cfg.Logger.Warnw("audit disabled", "error", err)
	} else {
		orderRepo.WithAudit(audit)
		invoiceRepo.WithAudit(audit)
		voucherRepo.WithAudit(audit)
	}

	guard := invoice.NewGuard(invoiceRepo)
	orderService := order.NewService(orderRepo, cfg.TxManager, cfg.Sequences, guard)
	invoiceService := invoice.NewService(invoiceRepo, orderRepo, cfg.TxManager, cfg.Sequences)
	voucherService := voucher.NewService(voucherRepo, invoiceRepo, cfg.TxManager, cfg.Sequences)

	orderHandler := handlers.NewOrderHandler(baseHandler, orderService)
	invoiceHandler := handlers.NewInvoiceHandler(baseHandler, invoiceService)
	voucherHandler := handlers.NewVoucherHandler(baseHandler, voucherService)

	// --- ORDERS ---
	{
		group := docs.Group("/orders")
		group.GET("", middleware.RequirePermission("document:order:read"), orderHandler.List)
		group.POST("", middleware.RequirePermission("document:order:create"), orderHandler.Create)
		group.GET("/:id", middleware.RequirePermission("document:order:read"), orderHandler.Get)
		group.PUT("/:id", middleware.RequirePermission("document:order:update"), orderHandler.Update)
		group.DELETE("/:id", middleware.RequirePermission("document:order:delete"), orderHandler.Delete)
		group.PUT("/:id/price", middleware.RequirePermission("document:order:update"), orderHandler.ChangePrice)
		group.POST("/:id/status", middleware.RequirePermission("document:order:update"), orderHandler.SetStatus)
		group.POST("/:id/invoice", middleware.RequirePermission("document:invoice:create"), invoiceHandler.CreateForOrder)
		group.GET("/:id/invoice", middleware.RequirePermission("document:invoice:read"), invoiceHandler.GetByOrder)
	}

	// --- INVOICES ---
	{
		group := docs.Group("/invoices")
		group.GET("", middleware.RequirePermission("document:invoice:read"), invoiceHandler.List)
		group.GET("/:id", middleware.RequirePermission("document:invoice:read"), invoiceHandler.Get)
		group.POST("/:id/status", middleware.RequirePermission("document:invoice:update"), invoiceHandler.SetStatus)
		group.GET("/:id/vouchers", middleware.RequirePermission("document:voucher:read"), voucherHandler.ListByInvoice)
	}

	// --- PAYMENT VOUCHERS ---
	{
		group := docs.Group("/vouchers")
		group.GET("", middleware.RequirePermission("document:voucher:read"), voucherHandler.List)
		group.POST("", middleware.RequirePermission("document:voucher:create"), voucherHandler.Create)
		group.GET("/:id", middleware.RequirePermission("document:voucher:read"), voucherHandler.Get)
	}
}

// registerSequenceRoutes registers numbering administration endpoints.
func registerSequenceRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewSequenceHandler(baseHandler, cfg.Sequences)

	group := rg.Group("/sequences")
	group.GET("/:type", middleware.RequirePermission("admin:sequence:read"), handler.GetConfig)
	group.PATCH("/:type", middleware.RequirePermission("admin:sequence:update"), handler.UpdateConfig)
}
