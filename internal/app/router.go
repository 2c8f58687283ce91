package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"wallet/internal/handler"
	"wallet/internal/middleware"
	"wallet/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler        *handler.AuthHandler
	PaymentHandler     *handler.PaymentHandler
	TransactionHandler *handler.TransactionHandler
	StatsHandler       *handler.StatsHandler
	CatalogHandler     *handler.CatalogHandler
	AuthService        *service.AuthService
	RedisClient        *redis.Client
	NewRelicApp        *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	session := middleware.SessionMiddleware(deps.AuthService)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Static form catalogs (operators, gas providers, quick amounts).
		v1.GET("/services/catalog", deps.CatalogHandler.Catalog)

		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", deps.AuthHandler.Signup)
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/logout", session, deps.AuthHandler.Logout)
		}

		// Payment routes: session-gated, idempotent on retry.
		payments := v1.Group("/payments", session, middleware.IdempotencyMiddleware(deps.RedisClient))
		{
			payments.POST("", deps.PaymentHandler.Pay)
			payments.POST("/balance", deps.PaymentHandler.AddBalance)
			payments.POST("/mobile", deps.PaymentHandler.MobileTopUp)
			payments.POST("/gas", deps.PaymentHandler.GasPayment)
		}

		// Transaction history routes.
		transactions := v1.Group("/transactions", session)
		{
			transactions.GET("", deps.TransactionHandler.List)
			transactions.GET("/:id", deps.TransactionHandler.Get)
		}

		// Dashboard stats routes.
		stats := v1.Group("/stats", session)
		{
			stats.GET("/dashboard", deps.StatsHandler.Dashboard)
			stats.GET("/insights", deps.StatsHandler.Insights)
		}
	}

	return router
}
