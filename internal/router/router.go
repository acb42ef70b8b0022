package router

import (
	"github.com/gin-gonic/gin"

	"passportx/internal/handler"
	"passportx/internal/middleware"
	"passportx/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	extractH *handler.ExtractionHandler,
	uiH *handler.UIHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Browser UI
	r.GET("/", uiH.Index)
	r.POST("/web-extract", extractH.WebExtract)

	// External API - requires the shared app key
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AppKeyAuth(authSvc))
	v1.POST("/extract", extractH.APIExtract)

	return r
}
