package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/label"
	"github.com/orris-inc/tracker/internal/domain/milestone"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/domain/user"
	vo "github.com/orris-inc/tracker/internal/domain/user/valueobjects"
	infrapermission "github.com/orris-inc/tracker/internal/infrastructure/permission"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/testdb"
	"github.com/orris-inc/tracker/internal/infrastructure/repository"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type fixture struct {
	ctx        context.Context
	gdb        *gorm.DB
	enforcer   *infrapermission.Enforcer
	projects   *repository.ProjectRepository
	issues     *repository.IssueRepository
	events     *repository.EventRepository
	subs       *repository.IssueSubscriberRepository
	labels     *repository.LabelRepository
	milestones *repository.MilestoneRepository
	users      *repository.UserRepository
	settings   *repository.SettingRepository
	readState  *repository.ReadStateRepository
	access     *common.Access
	dispatcher *recordingDispatcher
	publisher  *recordingPublisher
	cache      *memoryCache
	txMgr      *db.TransactionManager
	reads      *ReadTracker
	log        logger.Interface
	project    *project.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := testdb.New(t)
	log := logger.NewLogger()

	f := &fixture{
		ctx:        context.Background(),
		gdb:        gdb,
		projects:   repository.NewProjectRepository(gdb),
		issues:     repository.NewIssueRepository(gdb),
		events:     repository.NewEventRepository(gdb),
		subs:       repository.NewIssueSubscriberRepository(gdb),
		labels:     repository.NewLabelRepository(gdb),
		milestones: repository.NewMilestoneRepository(gdb),
		users:      repository.NewUserRepository(gdb),
		settings:   repository.NewSettingRepository(gdb),
		readState:  repository.NewReadStateRepository(gdb),
		dispatcher: &recordingDispatcher{},
		publisher:  &recordingPublisher{},
		cache:      newMemoryCache(),
		txMgr:      db.NewTransactionManager(gdb),
		log:        log,
	}

	enforcer, err := infrapermission.NewEnforcer(gdb, f.users, log)
	require.NoError(t, err)
	f.enforcer = enforcer
	f.access = common.NewAccess(f.projects, enforcer, log)
	f.reads = NewReadTracker(f.issues, f.events, f.readState, f.cache, f.txMgr, log)

	p, err := project.NewProject("demo", "Demo")
	require.NoError(t, err)
	require.NoError(t, f.projects.Create(f.ctx, p))
	f.project = p
	return f
}

func (f *fixture) ref(issueID uint) IssueRef {
	return IssueRef{ProjectName: f.project.Name(), IssueID: issueID}
}

// addUser creates an active user with an email address.
func (f *fixture) addUser(t *testing.T, name string) *user.User {
	t.Helper()
	addr, err := vo.NewEmail(name + "@example.com")
	require.NoError(t, err)
	u, err := user.NewUser(name, name, "", addr)
	require.NoError(t, err)
	require.NoError(t, f.users.Create(f.ctx, u))
	return u
}

// grant gives perms on the fixture project; no perms means all of them.
func (f *fixture) grant(t *testing.T, userID uint, perms ...permission.Perm) {
	t.Helper()
	if len(perms) == 0 {
		perms = permission.ProjectPerms
	}
	projectID := f.project.ID()
	for _, perm := range perms {
		_, err := f.enforcer.Grant(f.ctx, permission.User(userID), perm, &projectID)
		require.NoError(t, err)
	}
}

func (f *fixture) addIssue(t *testing.T, authorID uint, title, description string) *issue.Issue {
	t.Helper()
	iss, err := issue.NewIssue(f.project.ID(), authorID, title, description, nil)
	require.NoError(t, err)
	require.NoError(t, f.issues.Create(f.ctx, iss))
	return iss
}

func (f *fixture) addComment(t *testing.T, iss *issue.Issue, authorID uint, body string) *issue.Event {
	t.Helper()
	ev, err := issue.NewComment(iss, authorID, body)
	require.NoError(t, err)
	require.NoError(t, f.events.Append(f.ctx, ev))
	return ev
}

func (f *fixture) addLabel(t *testing.T, name string) *label.Label {
	t.Helper()
	l, err := label.NewLabel(f.project.ID(), name, "#cc0000", false)
	require.NoError(t, err)
	require.NoError(t, f.labels.Create(f.ctx, l))
	return l
}

func (f *fixture) addMilestone(t *testing.T, name string) *milestone.Milestone {
	t.Helper()
	m, err := milestone.NewMilestone(f.project.ID(), name, nil)
	require.NoError(t, err)
	require.NoError(t, f.milestones.Create(f.ctx, m))
	return m
}

func (f *fixture) setItemsPerPage(t *testing.T, n int) {
	t.Helper()
	s, err := f.settings.Get(f.ctx)
	require.NoError(t, err)
	_, err = s.SetItemsPerPage(n)
	require.NoError(t, err)
	require.NoError(t, f.settings.Save(f.ctx, s))
}

func (f *fixture) reload(t *testing.T, issueID uint) *issue.Issue {
	t.Helper()
	iss, err := f.issues.Get(f.ctx, f.project.ID(), issueID)
	require.NoError(t, err)
	require.NotNil(t, iss)
	return iss
}

func (f *fixture) codes(t *testing.T, issueID uint) []issue.Code {
	t.Helper()
	events, err := f.events.ListByIssue(f.ctx, f.project.ID(), issueID)
	require.NoError(t, err)
	out := make([]issue.Code, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Code())
	}
	return out
}
