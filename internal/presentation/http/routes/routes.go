package routes

import (
	"github.com/gin-gonic/gin"

	"opticare-backend/internal/config"
	domainRepo "opticare-backend/internal/domain/repository"
	"opticare-backend/internal/presentation/http/handler"
	"opticare-backend/internal/presentation/http/middleware"
	"opticare-backend/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Prescription *handler.PrescriptionHandler
	Order        *handler.OrderHandler
	History      *handler.HistoryHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", h.Auth.Login)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rlCfg := middleware.DefaultRateLimiterConfig()
		if deps.Cfg.RateLimit.Requests > 0 && deps.Cfg.RateLimit.Duration > 0 {
			rlCfg.RequestsPerSecond = float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration)
			rlCfg.BurstSize = deps.Cfg.RateLimit.Requests
		}
		rateLimiter := middleware.NewClientRateLimiter(rlCfg)
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	prescriptions := protected.Group("/prescriptions")
	{
		prescriptions.POST("", h.Prescription.Create)
		prescriptions.GET("/:id", h.Prescription.Get)
		prescriptions.PUT("/:id/reference-no", h.Prescription.UpdateReferenceNo)
	}

	orders := protected.Group("/orders")
	// Saves are replay-protected: a double-submitted save with the same
	// Idempotency-Key never reaches the order writer twice.
	orders.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Save)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", h.Order.Update)
		orders.PUT("/:id/status", h.Order.UpdateStatus)
		orders.DELETE("/:id/items/:item_id", h.Order.RemoveItem)
	}

	history := protected.Group("/customer-history")
	{
		history.GET("", h.History.Get)
		history.GET("/search", h.History.Search)
	}
}
