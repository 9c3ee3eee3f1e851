package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tracker/internal/interfaces/http/handlers"
	"github.com/orris-inc/tracker/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication and profile routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	ProfileHandler *handlers.ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupAuthRoutes configures login and the caller's own profile.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", cfg.RateLimiter.Limit(), cfg.AuthHandler.Login)
	}

	me := api.Group("/me")
	me.Use(cfg.AuthMiddleware.RequireAuth())
	{
		me.GET("", cfg.ProfileHandler.GetProfile)
		me.PATCH("", cfg.ProfileHandler.UpdateProfile)
		me.PUT("/password", cfg.ProfileHandler.ChangePassword)
	}
}
