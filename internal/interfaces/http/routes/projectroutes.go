package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tracker/internal/interfaces/http/handlers"
	activityhandlers "github.com/orris-inc/tracker/internal/interfaces/http/handlers/activity"
	issuehandlers "github.com/orris-inc/tracker/internal/interfaces/http/handlers/issue"
	labelhandlers "github.com/orris-inc/tracker/internal/interfaces/http/handlers/label"
	milestonehandlers "github.com/orris-inc/tracker/internal/interfaces/http/handlers/milestone"
	projecthandlers "github.com/orris-inc/tracker/internal/interfaces/http/handlers/project"
	"github.com/orris-inc/tracker/internal/interfaces/http/middleware"
)

// ProjectRouteConfig holds dependencies for everything under /projects.
type ProjectRouteConfig struct {
	ProjectHandler    *projecthandlers.ProjectHandler
	IssueHandler      *issuehandlers.IssueHandler
	LabelHandler      *labelhandlers.LabelHandler
	MilestoneHandler  *milestonehandlers.MilestoneHandler
	ActivityHandler   *activityhandlers.ActivityHandler
	PermissionHandler *handlers.PermissionHandler
	MarkdownHandler   *handlers.MarkdownHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// SetupProjectRoutes configures project, issue, label, milestone and activity routes.
// Reads are open to anonymous callers; visibility is decided by project permissions.
func SetupProjectRoutes(api *gin.RouterGroup, config *ProjectRouteConfig) {
	auth := config.AuthMiddleware.RequireAuth()

	projects := api.Group("/projects")
	projects.Use(config.AuthMiddleware.OptionalAuth())
	{
		projects.GET("", config.ProjectHandler.ListProjects)
		projects.POST("", auth, config.ProjectHandler.CreateProject)

		// Specific project sub-resources before the bare /:project routes
		project := projects.Group("/:project")
		{
			project.POST("/archive", auth, config.ProjectHandler.ArchiveProject)
			project.POST("/unarchive", auth, config.ProjectHandler.UnarchiveProject)
			project.POST("/subscription", auth, config.ProjectHandler.Subscribe)
			project.DELETE("/subscription", auth, config.ProjectHandler.Unsubscribe)
			project.POST("/read", auth, config.ProjectHandler.MarkAllRead)
			project.POST("/markdown", config.MarkdownHandler.Preview)

			project.GET("/permissions", config.PermissionHandler.ListGrants)
			project.POST("/permissions", auth, config.PermissionHandler.Grant)
			project.DELETE("/permissions", auth, config.PermissionHandler.Revoke)

			project.GET("/activity", config.ActivityHandler.ListActivity)
			project.GET("/activity/ws", config.ActivityHandler.StreamWebSocket)
			project.GET("/activity/events", config.ActivityHandler.StreamEvents)

			setupIssueRoutes(project.Group("/issues"), config.IssueHandler, auth)
			setupLabelRoutes(project.Group("/labels"), config.LabelHandler, auth)
			setupMilestoneRoutes(project.Group("/milestones"), config.MilestoneHandler, auth)

			project.GET("", config.ProjectHandler.GetProject)
			project.PATCH("", auth, config.ProjectHandler.UpdateProject)
			project.DELETE("", auth, config.ProjectHandler.DeleteProject)
		}
	}
}

func setupIssueRoutes(issues *gin.RouterGroup, h *issuehandlers.IssueHandler, auth gin.HandlerFunc) {
	issues.GET("", h.ListIssues)
	issues.POST("", auth, h.CreateIssue)

	issues.POST("/:issue/close", auth, h.CloseIssue)
	issues.POST("/:issue/reopen", auth, h.ReopenIssue)
	issues.POST("/:issue/comments", auth, h.AddComment)
	issues.PATCH("/:issue/comments/:event", auth, h.EditComment)
	issues.DELETE("/:issue/comments/:event", auth, h.DeleteComment)
	issues.POST("/:issue/labels/:label", auth, h.AddLabel)
	issues.DELETE("/:issue/labels/:label", auth, h.RemoveLabel)
	issues.PUT("/:issue/milestone", auth, h.SetMilestone)
	issues.DELETE("/:issue/milestone", auth, h.UnsetMilestone)
	issues.POST("/:issue/subscription", auth, h.Subscribe)
	issues.DELETE("/:issue/subscription", auth, h.Unsubscribe)

	issues.GET("/:issue", h.GetIssue)
	issues.PATCH("/:issue", auth, h.UpdateIssue)
	issues.DELETE("/:issue", auth, h.DeleteIssue)
}

func setupLabelRoutes(labels *gin.RouterGroup, h *labelhandlers.LabelHandler, auth gin.HandlerFunc) {
	labels.GET("", h.ListLabels)
	labels.POST("", auth, h.CreateLabel)
	labels.PUT("/:label", auth, h.UpdateLabel)
	labels.DELETE("/:label", auth, h.DeleteLabel)
}

func setupMilestoneRoutes(milestones *gin.RouterGroup, h *milestonehandlers.MilestoneHandler, auth gin.HandlerFunc) {
	milestones.GET("", h.ListMilestones)
	milestones.POST("", auth, h.CreateMilestone)
	milestones.POST("/:milestone/close", auth, h.CloseMilestone)
	milestones.POST("/:milestone/reopen", auth, h.ReopenMilestone)
	milestones.PUT("/:milestone", auth, h.EditMilestone)
	milestones.DELETE("/:milestone", auth, h.DeleteMilestone)
}
