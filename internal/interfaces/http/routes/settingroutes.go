package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tracker/internal/interfaces/http/handlers"
	"github.com/orris-inc/tracker/internal/interfaces/http/middleware"
)

// SettingRouteConfig holds dependencies for site-wide routes.
type SettingRouteConfig struct {
	SettingHandler    *handlers.SettingHandler
	PermissionHandler *handlers.PermissionHandler
	MarkdownHandler   *handlers.MarkdownHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// SetupSettingRoutes configures settings, global permissions and markdown preview.
func SetupSettingRoutes(api *gin.RouterGroup, config *SettingRouteConfig) {
	settings := api.Group("/settings")
	settings.Use(config.AuthMiddleware.RequireAuth())
	{
		settings.GET("", config.SettingHandler.GetSettings)
		settings.PUT("", config.SettingHandler.UpdateSettings)
	}

	permissions := api.Group("/permissions")
	permissions.Use(config.AuthMiddleware.RequireAuth())
	{
		permissions.GET("", config.PermissionHandler.ListGrants)
		permissions.POST("", config.PermissionHandler.Grant)
		permissions.DELETE("", config.PermissionHandler.Revoke)
	}

	api.POST("/markdown", config.AuthMiddleware.OptionalAuth(), config.MarkdownHandler.Preview)
}
