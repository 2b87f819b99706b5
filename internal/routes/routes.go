package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/container"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/middleware"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/security"
)

// RegisterPublicRoutes mounts the unauthenticated surface: login only.
func RegisterPublicRoutes(router *gin.Engine, c *container.Container) {
	c.LoginHandler.RegisterRoutes(router)
}

// RegisterProtectedRoutes mounts everything behind the JWT middleware.
// Per-action RBAC checks run inside the handlers and services.
func RegisterProtectedRoutes(router *gin.Engine, c *container.Container) {
	protected := router.Group("/api")
	protected.Use(security.JWTMiddleware())

	c.AssetsHandler.RegisterRoutes(protected)
	c.AssignmentsHandler.RegisterRoutes(protected)
	c.RepairsHandler.RegisterRoutes(protected)
	c.ClientsHandler.RegisterRoutes(protected)
	c.IssuesHandler.RegisterRoutes(protected)
	c.BillingHandler.RegisterRoutes(protected)
	c.SLAHandler.RegisterRoutes(protected)
	c.AuditLogHandler.RegisterRoutes(protected)
	c.UserHandler.RegisterRoutes(protected)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckHandler())
}
