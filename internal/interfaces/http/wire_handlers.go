package http

import (
	"github.com/orris-inc/tracker/internal/interfaces/http/handlers"
	accountHandlers "github.com/orris-inc/tracker/internal/interfaces/http/handlers/account"
	activityHandlers "github.com/orris-inc/tracker/internal/interfaces/http/handlers/activity"
	issueHandlers "github.com/orris-inc/tracker/internal/interfaces/http/handlers/issue"
	labelHandlers "github.com/orris-inc/tracker/internal/interfaces/http/handlers/label"
	milestoneHandlers "github.com/orris-inc/tracker/internal/interfaces/http/handlers/milestone"
	projectHandlers "github.com/orris-inc/tracker/internal/interfaces/http/handlers/project"
)

// allHandlers holds all HTTP handler instances.
type allHandlers struct {
	authHandler       *handlers.AuthHandler
	profileHandler    *handlers.ProfileHandler
	permissionHandler *handlers.PermissionHandler
	settingHandler    *handlers.SettingHandler
	markdownHandler   *handlers.MarkdownHandler
	projectHandler    *projectHandlers.ProjectHandler
	issueHandler      *issueHandlers.IssueHandler
	labelHandler      *labelHandlers.LabelHandler
	milestoneHandler  *milestoneHandlers.MilestoneHandler
	activityHandler   *activityHandlers.ActivityHandler
	accountHandler    *accountHandlers.AccountHandler
}

func (c *Container) initHandlers() {
	ucs := c.ucs
	log := c.log

	c.hdlrs = &allHandlers{
		authHandler:       handlers.NewAuthHandler(ucs.login, log),
		profileHandler:    handlers.NewProfileHandler(ucs.accounts.GetUser, ucs.updateProfile, ucs.changePassword),
		permissionHandler: handlers.NewPermissionHandler(ucs.listGrants, ucs.grant, ucs.revoke, log),
		settingHandler:    handlers.NewSettingHandler(ucs.getSettings, ucs.updateSettings, log),
		markdownHandler:   handlers.NewMarkdownHandler(c.renderer, log),
		projectHandler: projectHandlers.NewProjectHandler(
			ucs.listProjects,
			ucs.getProject,
			ucs.createProject,
			ucs.updateProject,
			ucs.deleteProject,
			ucs.archiveProject,
			ucs.unarchiveProject,
			ucs.subscribeProject,
			ucs.unsubscribe,
			ucs.markProjectRead,
		),
		issueHandler: issueHandlers.NewIssueHandler(ucs.issues),
		labelHandler: labelHandlers.NewLabelHandler(ucs.listLabels, ucs.saveLabel, ucs.deleteLabel),
		milestoneHandler: milestoneHandlers.NewMilestoneHandler(
			ucs.listMilestones,
			ucs.createMilestone,
			ucs.editMilestone,
			ucs.closeMilestone,
			ucs.reopenMilestone,
			ucs.deleteMilestone,
		),
		activityHandler: activityHandlers.NewActivityHandler(ucs.listActivity, ucs.streamAccess, c.activityHub),
		accountHandler:  accountHandlers.NewAccountHandler(ucs.accounts),
	}
}
