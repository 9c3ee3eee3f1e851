package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/orris-inc/tracker/docs"
	"github.com/orris-inc/tracker/internal/interfaces/http/middleware"
	"github.com/orris-inc/tracker/internal/interfaces/http/routes"
	"github.com/orris-inc/tracker/internal/shared/version"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestLogger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	c.engine.GET("/health", c.health)
	c.engine.GET("/version", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"version": version.Version, "commit": version.Commit, "build_date": version.BuildDate})
	})

	api := c.engine.Group("/api/v1")
	h := c.hdlrs

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    h.authHandler,
		ProfileHandler: h.profileHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.rateLimiter,
	})

	routes.SetupProjectRoutes(api, &routes.ProjectRouteConfig{
		ProjectHandler:    h.projectHandler,
		IssueHandler:      h.issueHandler,
		LabelHandler:      h.labelHandler,
		MilestoneHandler:  h.milestoneHandler,
		ActivityHandler:   h.activityHandler,
		PermissionHandler: h.permissionHandler,
		MarkdownHandler:   h.markdownHandler,
		AuthMiddleware:    c.authMiddleware,
	})

	routes.SetupAccountRoutes(api, &routes.AccountRouteConfig{
		AccountHandler: h.accountHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupSettingRoutes(api, &routes.SettingRouteConfig{
		SettingHandler:    h.settingHandler,
		PermissionHandler: h.permissionHandler,
		MarkdownHandler:   h.markdownHandler,
		AuthMiddleware:    c.authMiddleware,
	})
}

// health reports database reachability.
func (c *Container) health(ctx *gin.Context) {
	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request.Context())
	}
	if err != nil {
		c.log.Warnw("health check failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
