// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stylos/internal/domain/auth"
	"stylos/internal/domain/catalog/client"
	"stylos/internal/domain/catalog/product"
	"stylos/internal/domain/finance"
	"stylos/internal/domain/orders"
	"stylos/internal/domain/reports"
	"stylos/internal/domain/stock"
	"stylos/internal/infrastructure/http/v1/handlers"
	"stylos/internal/infrastructure/http/v1/middleware"
	"stylos/pkg/logger"
)

// RouterConfig holds everything the router needs wired in.
type RouterConfig struct {
	Logger *logger.Logger

	// Store answers readiness probes for whichever backend is active.
	Store          handlers.Pinger
	StorageBackend string
	Version        string

	// AllowedOrigins for CORS; empty allows all (local development).
	AllowedOrigins []string

	JWTValidator middleware.JWTValidator

	AuthService    *auth.Service
	ProductService *product.Service
	ClientService  *client.Service
	OrderService   *orders.Service
	StockService   *stock.Service
	FinanceService *finance.Service
	ReportsService *reports.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(corsMiddleware(cfg.AllowedOrigins))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Store, cfg.StorageBackend, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		protected.GET("/auth/me", authHandler.Me)

		admin := protected.Group("")
		admin.Use(middleware.RequireRole(string(auth.RoleAdmin)))

		admin.POST("/auth/register", authHandler.Register)
		admin.GET("/users", authHandler.ListUsers)
		admin.DELETE("/users/:id", authHandler.DeleteUser)

		registerCatalogRoutes(protected, admin, base, cfg)
		registerOrderRoutes(protected, admin, base, cfg)
		registerStockRoutes(protected, base, cfg)
		registerFinanceRoutes(admin, base, cfg)
		registerReportRoutes(protected, admin, base, cfg)
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = origins
	}
	return cors.New(corsConfig)
}

func registerCatalogRoutes(rg, admin *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	productHandler := handlers.NewProductHandler(base, cfg.ProductService)
	rg.GET("/products", productHandler.List)
	rg.GET("/products/:id", productHandler.Get)
	admin.POST("/products", productHandler.Create)
	admin.PUT("/products/:id", productHandler.Update)

	clientHandler := handlers.NewClientHandler(base, cfg.ClientService)
	rg.GET("/clients", clientHandler.List)
	rg.GET("/clients/:id", clientHandler.Get)
	rg.POST("/clients", clientHandler.Create)
	rg.PUT("/clients/:id", clientHandler.Update)
}

func registerOrderRoutes(rg, admin *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	orderHandler := handlers.NewOrderHandler(base, cfg.OrderService)
	rg.GET("/orders", orderHandler.List)
	rg.GET("/orders/:id", orderHandler.Get)
	rg.GET("/orders/code/:code", orderHandler.GetByCode)
	rg.POST("/orders", orderHandler.Create)
	rg.POST("/orders/:id/advance", orderHandler.Advance)
	rg.POST("/orders/:id/cancel", orderHandler.Cancel)
	admin.PUT("/orders/:id/status", orderHandler.SetStatus)
}

func registerStockRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	stockHandler := handlers.NewStockHandler(base, cfg.StockService)
	rg.GET("/stock/movements", stockHandler.List)
	rg.POST("/stock/movements", stockHandler.RecordMovement)
	rg.GET("/stock/categories/:category/output", stockHandler.CategoryTotal)
}

func registerFinanceRoutes(admin *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	financeHandler := handlers.NewFinanceHandler(base, cfg.FinanceService)
	admin.GET("/finance/expenses", financeHandler.ListExpenses)
	admin.POST("/finance/expenses", financeHandler.RecordExpense)
	admin.GET("/finance/categories", financeHandler.Categories)
	admin.GET("/finance/summary", financeHandler.Summary)
}

func registerReportRoutes(rg, admin *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	reportsHandler := handlers.NewReportsHandler(base, cfg.ReportsService)
	rg.GET("/reports/dashboard", reportsHandler.Dashboard)
	rg.GET("/reports/low-stock", reportsHandler.LowStock)
	admin.GET("/reports/valuation", reportsHandler.Valuation)
}
