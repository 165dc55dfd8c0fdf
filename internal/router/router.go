package router

import (
	"github.com/gin-gonic/gin"

	"github.com/manzapp/manz/backend/config"
	"github.com/manzapp/manz/backend/internal/api"
	"github.com/manzapp/manz/backend/internal/middleware"
)

// SetupRouter configures the engine middleware and the application routes
func SetupRouter(cfg *config.Config, deps api.Dependencies) *gin.Engine {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	metrics := middleware.NewMetrics("manz")
	router.Use(metrics.Middleware())
	router.GET("/metrics", metrics.Handler())

	api.SetupAPI(router, deps)

	return router
}
