package http

import (
	"gorm.io/gorm"

	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/label"
	"github.com/orris-inc/tracker/internal/domain/milestone"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/domain/setting"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo              user.Repository
	groupRepo             user.GroupRepository
	teamRepo              user.TeamRepository
	membershipRepo        user.MembershipRepository
	projectRepo           project.Repository
	projectSubscriberRepo project.SubscriberRepository
	issueRepo             issue.Repository
	eventRepo             issue.EventRepository
	issueSubscriberRepo   issue.SubscriberRepository
	readStateRepo         issue.ReadStateRepository
	labelRepo             label.Repository
	milestoneRepo         milestone.Repository
	settingRepo           setting.Repository
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		userRepo:              repository.NewUserRepository(db),
		groupRepo:             repository.NewGroupRepository(db),
		teamRepo:              repository.NewTeamRepository(db),
		membershipRepo:        repository.NewMembershipRepository(db),
		projectRepo:           repository.NewProjectRepository(db),
		projectSubscriberRepo: repository.NewProjectSubscriberRepository(db),
		issueRepo:             repository.NewIssueRepository(db),
		eventRepo:             repository.NewEventRepository(db),
		issueSubscriberRepo:   repository.NewIssueSubscriberRepository(db),
		readStateRepo:         repository.NewReadStateRepository(db),
		labelRepo:             repository.NewLabelRepository(db),
		milestoneRepo:         repository.NewMilestoneRepository(db),
		settingRepo:           repository.NewSettingRepository(db),
	}
}
