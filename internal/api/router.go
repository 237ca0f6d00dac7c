package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"vehicle-status-backend/config"
	"vehicle-status-backend/internal/logging"
	"vehicle-status-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(handler *Handler, cfg config.ServerConfig, logger *zap.Logger) *gin.Engine {
	logger = logging.OrNop(logger).Named("http")

	r := gin.New()
	r.Use(mw.Logger(logger), mw.Recovery(logger))

	// Initialize middleware
	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)
	commandLimiter := mw.KeyedRateLimit(rate.Limit(cfg.CommandLimitPerMin/60), 1, mw.ClientAndVehicle)

	r.GET("/healthz", handler.Healthz)
	r.GET("/readyz", handler.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter, mw.BearerAuth(cfg.APIKey))
	{
		api.GET("/commands", handler.ListCommandNames)

		vehicles := api.Group("/vehicles")
		vehicles.GET("", handler.ListVehicles)
		vehicles.GET("/:id", handler.GetVehicle)
		vehicles.GET("/:id/physical", handler.GetPhysicalStatus)
		vehicles.GET("/:id/energy", handler.GetEnergyStatus)
		vehicles.GET("/:id/climate", handler.GetClimateStatus)
		vehicles.GET("/:id/maintenance", handler.GetMaintenanceInfo)
		vehicles.GET("/:id/position", handler.GetPosition)
		vehicles.GET("/:id/commands", handler.ListCommands)
		vehicles.POST("/:id/commands/:command", commandLimiter, handler.ExecuteCommand)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
