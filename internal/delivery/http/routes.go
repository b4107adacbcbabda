package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rooted/backend/config"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	// Logger wraps recovery so panicked requests are still counted
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		assistant := v1.Group("/assistant")
		{
			assistant.POST("/chat", handler.Chat)
			assistant.POST("/parse", handler.ParseMessage)
		}

		farms := v1.Group("/farms")
		{
			farms.GET("", handler.ListFarms)
			farms.GET("/:id", handler.GetFarm)
		}
	}

	return router
}
