package routes

import (
	"github.com/gin-gonic/gin"

	accounthandlers "github.com/orris-inc/tracker/internal/interfaces/http/handlers/account"
	"github.com/orris-inc/tracker/internal/interfaces/http/middleware"
)

// AccountRouteConfig holds dependencies for user, group and team administration.
type AccountRouteConfig struct {
	AccountHandler *accounthandlers.AccountHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupAccountRoutes configures account administration routes. The use cases check
// the manage_accounts permission.
func SetupAccountRoutes(api *gin.RouterGroup, config *AccountRouteConfig) {
	h := config.AccountHandler

	users := api.Group("/users")
	users.Use(config.AuthMiddleware.RequireAuth())
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.PUT("/:id/password", h.SetPassword)
		users.POST("/:id/activate", h.ActivateUser)
		users.POST("/:id/disable", h.DisableUser)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}

	groups := api.Group("/groups")
	groups.Use(config.AuthMiddleware.RequireAuth())
	{
		groups.GET("", h.ListGroups)
		groups.POST("", h.CreateGroup)
		groups.POST("/:id/members", h.AddGroupMember)
		groups.DELETE("/:id/members/:member", h.RemoveGroupMember)
		groups.GET("/:id", h.GetGroup)
		groups.PUT("/:id", h.RenameGroup)
		groups.DELETE("/:id", h.DeleteGroup)
	}

	teams := api.Group("/teams")
	teams.Use(config.AuthMiddleware.RequireAuth())
	{
		teams.GET("", h.ListTeams)
		teams.POST("", h.CreateTeam)
		teams.POST("/:id/members", h.AddTeamMember)
		teams.DELETE("/:id/members/:member", h.RemoveTeamMember)
		teams.GET("/:id", h.GetTeam)
		teams.PUT("/:id", h.RenameTeam)
		teams.DELETE("/:id", h.DeleteTeam)
	}
}
