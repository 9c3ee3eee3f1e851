package http

import (
	activityUsecases "github.com/orris-inc/tracker/internal/application/activity/usecases"
	issueUsecases "github.com/orris-inc/tracker/internal/application/issue/usecases"
	labelUsecases "github.com/orris-inc/tracker/internal/application/label/usecases"
	milestoneUsecases "github.com/orris-inc/tracker/internal/application/milestone/usecases"
	permissionUsecases "github.com/orris-inc/tracker/internal/application/permission/usecases"
	projectUsecases "github.com/orris-inc/tracker/internal/application/project/usecases"
	settingUsecases "github.com/orris-inc/tracker/internal/application/setting/usecases"
	userUsecases "github.com/orris-inc/tracker/internal/application/user/usecases"
	accountHandlers "github.com/orris-inc/tracker/internal/interfaces/http/handlers/account"
	issueHandlers "github.com/orris-inc/tracker/internal/interfaces/http/handlers/issue"
)

// allUseCases holds every use case, grouped the way the handlers consume them.
type allUseCases struct {
	// Projects
	listProjects     projectUsecases.ListProjectsExecutor
	getProject       projectUsecases.GetProjectExecutor
	createProject    projectUsecases.CreateProjectExecutor
	updateProject    projectUsecases.UpdateProjectExecutor
	deleteProject    projectUsecases.DeleteProjectExecutor
	archiveProject   projectUsecases.ArchiveProjectExecutor
	unarchiveProject projectUsecases.ArchiveProjectExecutor
	subscribeProject projectUsecases.ProjectSubscriptionExecutor
	unsubscribe      projectUsecases.ProjectSubscriptionExecutor
	markProjectRead  projectUsecases.MarkProjectReadExecutor

	// Issues
	issues issueHandlers.IssueUseCases

	// Labels and milestones
	listLabels      labelUsecases.ListLabelsExecutor
	saveLabel       labelUsecases.SaveLabelExecutor
	deleteLabel     labelUsecases.DeleteLabelExecutor
	listMilestones  milestoneUsecases.ListMilestonesExecutor
	createMilestone milestoneUsecases.CreateMilestoneExecutor
	editMilestone   milestoneUsecases.EditMilestoneExecutor
	closeMilestone  milestoneUsecases.ChangeMilestoneStateExecutor
	reopenMilestone milestoneUsecases.ChangeMilestoneStateExecutor
	deleteMilestone milestoneUsecases.DeleteMilestoneExecutor

	// Activity
	listActivity activityUsecases.ListActivityExecutor
	streamAccess activityUsecases.StreamAccessExecutor

	// Accounts and authentication
	accounts       accountHandlers.AccountUseCases
	login          userUsecases.LoginExecutor
	updateProfile  userUsecases.UpdateProfileExecutor
	changePassword userUsecases.ChangePasswordExecutor

	// Permissions and settings
	listGrants     permissionUsecases.ListGrantsExecutor
	grant          permissionUsecases.ChangeGrantExecutor
	revoke         permissionUsecases.ChangeGrantExecutor
	getSettings    settingUsecases.GetSettingsExecutor
	updateSettings settingUsecases.UpdateSettingsExecutor
}

func (c *Container) initUseCases() {
	r := c.repos
	log := c.log
	access := c.access

	ucs := &allUseCases{
		listProjects:     projectUsecases.NewListProjectsUseCase(r.projectRepo, access, log),
		getProject:       projectUsecases.NewGetProjectUseCase(r.projectSubscriberRepo, c.readTracker, access, log),
		createProject:    projectUsecases.NewCreateProjectUseCase(r.projectRepo, r.projectSubscriberRepo, c.enforcer, access, c.txMgr, log),
		updateProject:    projectUsecases.NewUpdateProjectUseCase(r.projectRepo, access, log),
		deleteProject:    projectUsecases.NewDeleteProjectUseCase(r.projectRepo, c.enforcer, access, c.unreadCache, c.txMgr, log),
		archiveProject:   projectUsecases.NewArchiveProjectUseCase(r.projectRepo, access, log),
		unarchiveProject: projectUsecases.NewUnarchiveProjectUseCase(r.projectRepo, access, log),
		subscribeProject: projectUsecases.NewSubscribeProjectUseCase(r.projectSubscriberRepo, r.userRepo, access, log),
		unsubscribe:      projectUsecases.NewUnsubscribeProjectUseCase(r.projectSubscriberRepo, r.userRepo, access, log),
		markProjectRead:  projectUsecases.NewMarkProjectReadUseCase(c.readTracker, access, log),

		issues: issueHandlers.IssueUseCases{
			List:           issueUsecases.NewListIssuesUseCase(r.issueRepo, r.labelRepo, r.milestoneRepo, r.userRepo, r.settingRepo, c.readTracker, access, log),
			Get:            issueUsecases.NewGetIssueUseCase(r.issueRepo, r.eventRepo, r.issueSubscriberRepo, r.labelRepo, r.milestoneRepo, c.readTracker, access, log),
			Create:         issueUsecases.NewCreateIssueUseCase(r.issueRepo, r.issueSubscriberRepo, access, c.dispatcher, c.txMgr, log),
			Update:         issueUsecases.NewUpdateIssueUseCase(r.issueRepo, r.eventRepo, access, c.publisher, c.unreadCache, c.txMgr, log),
			Delete:         issueUsecases.NewDeleteIssueUseCase(r.issueRepo, access, c.unreadCache, c.txMgr, log),
			Close:          issueUsecases.NewCloseIssueUseCase(r.issueRepo, r.eventRepo, access, c.dispatcher, c.publisher, c.unreadCache, c.txMgr, log),
			Reopen:         issueUsecases.NewReopenIssueUseCase(r.issueRepo, r.eventRepo, access, c.dispatcher, c.publisher, c.unreadCache, c.txMgr, log),
			AddComment:     issueUsecases.NewAddCommentUseCase(r.issueRepo, r.eventRepo, r.issueSubscriberRepo, access, c.dispatcher, c.publisher, c.unreadCache, c.txMgr, log),
			EditComment:    issueUsecases.NewEditCommentUseCase(r.issueRepo, r.eventRepo, access, c.txMgr, log),
			DeleteComment:  issueUsecases.NewDeleteCommentUseCase(r.issueRepo, r.eventRepo, access, c.unreadCache, c.txMgr, log),
			AddLabel:       issueUsecases.NewAddLabelUseCase(r.issueRepo, r.labelRepo, access, c.txMgr, log),
			RemoveLabel:    issueUsecases.NewRemoveLabelUseCase(r.issueRepo, r.labelRepo, access, c.txMgr, log),
			SetMilestone:   issueUsecases.NewSetMilestoneUseCase(r.issueRepo, r.milestoneRepo, access, c.txMgr, log),
			UnsetMilestone: issueUsecases.NewUnsetMilestoneUseCase(r.issueRepo, r.milestoneRepo, access, c.txMgr, log),
			Subscribe:      issueUsecases.NewSubscribeIssueUseCase(r.issueRepo, r.issueSubscriberRepo, r.userRepo, access, log),
			Unsubscribe:    issueUsecases.NewUnsubscribeIssueUseCase(r.issueRepo, r.issueSubscriberRepo, r.userRepo, access, log),
		},

		listLabels:      labelUsecases.NewListLabelsUseCase(r.labelRepo, access, log),
		saveLabel:       labelUsecases.NewSaveLabelUseCase(r.labelRepo, access, log),
		deleteLabel:     labelUsecases.NewDeleteLabelUseCase(r.labelRepo, r.issueRepo, access, c.txMgr, log),
		listMilestones:  milestoneUsecases.NewListMilestonesUseCase(r.milestoneRepo, access, log),
		createMilestone: milestoneUsecases.NewCreateMilestoneUseCase(r.milestoneRepo, access, log),
		editMilestone:   milestoneUsecases.NewEditMilestoneUseCase(r.milestoneRepo, r.issueRepo, r.eventRepo, access, c.publisher, c.unreadCache, c.txMgr, log),
		closeMilestone:  milestoneUsecases.NewCloseMilestoneUseCase(r.milestoneRepo, access, log),
		reopenMilestone: milestoneUsecases.NewReopenMilestoneUseCase(r.milestoneRepo, access, log),
		deleteMilestone: milestoneUsecases.NewDeleteMilestoneUseCase(r.milestoneRepo, r.issueRepo, access, c.txMgr, log),

		listActivity: activityUsecases.NewListActivityUseCase(r.eventRepo, r.issueRepo, r.userRepo, r.settingRepo, access, log),
		streamAccess: activityUsecases.NewStreamAccessUseCase(access, log),

		accounts: accountHandlers.AccountUseCases{
			ListUsers:    userUsecases.NewListUsersUseCase(r.userRepo, access, log),
			GetUser:      userUsecases.NewGetUserUseCase(r.userRepo, r.groupRepo, r.teamRepo, r.membershipRepo, access, log),
			CreateUser:   userUsecases.NewCreateUserUseCase(r.userRepo, c.hasher, access, log),
			UpdateUser:   userUsecases.NewUpdateUserUseCase(r.userRepo, access, log),
			DeleteUser:   userUsecases.NewDeleteUserUseCase(r.userRepo, c.enforcer, access, c.txMgr, log),
			SetPassword:  userUsecases.NewSetPasswordUseCase(r.userRepo, c.hasher, access, log),
			ActivateUser: userUsecases.NewActivateUserUseCase(r.userRepo, access, log),
			DisableUser:  userUsecases.NewDisableUserUseCase(r.userRepo, access, log),
			ListGroups:   userUsecases.NewListGroupsUseCase(r.groupRepo, access, log),
			GetGroup:     userUsecases.NewGetGroupUseCase(r.groupRepo, r.userRepo, r.membershipRepo, access, log),
			SaveGroup:    userUsecases.NewSaveGroupUseCase(r.groupRepo, access, log),
			DeleteGroup:  userUsecases.NewDeleteGroupUseCase(r.groupRepo, c.enforcer, access, c.txMgr, log),
			ListTeams:    userUsecases.NewListTeamsUseCase(r.teamRepo, access, log),
			GetTeam:      userUsecases.NewGetTeamUseCase(r.teamRepo, r.groupRepo, r.userRepo, r.membershipRepo, access, log),
			SaveTeam:     userUsecases.NewSaveTeamUseCase(r.teamRepo, access, log),
			DeleteTeam:   userUsecases.NewDeleteTeamUseCase(r.teamRepo, c.enforcer, access, c.txMgr, log),
			AddMember:    userUsecases.NewAddMembershipUseCase(r.userRepo, r.groupRepo, r.teamRepo, r.membershipRepo, c.enforcer, access, log),
			RemoveMember: userUsecases.NewRemoveMembershipUseCase(r.userRepo, r.groupRepo, r.teamRepo, r.membershipRepo, c.enforcer, access, log),
		},
		login:          userUsecases.NewLoginUseCase(r.userRepo, c.hasher, c.jwtSvc, log),
		updateProfile:  userUsecases.NewUpdateProfileUseCase(r.userRepo, log),
		changePassword: userUsecases.NewChangePasswordUseCase(r.userRepo, c.hasher, log),

		listGrants:     permissionUsecases.NewListGrantsUseCase(c.enforcer, c.subjects, access, log),
		grant:          permissionUsecases.NewGrantUseCase(c.enforcer, c.subjects, access, log),
		revoke:         permissionUsecases.NewRevokeUseCase(c.enforcer, c.subjects, access, log),
		getSettings:    settingUsecases.NewGetSettingsUseCase(r.settingRepo, access, log),
		updateSettings: settingUsecases.NewUpdateSettingsUseCase(r.settingRepo, access, log),
	}

	c.ucs = ucs
}
