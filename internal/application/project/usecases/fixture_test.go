package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/application/common"
	issueusecases "github.com/orris-inc/tracker/internal/application/issue/usecases"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/user"
	vo "github.com/orris-inc/tracker/internal/domain/user/valueobjects"
	"github.com/orris-inc/tracker/internal/infrastructure/cache"
	infrapermission "github.com/orris-inc/tracker/internal/infrastructure/permission"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/testdb"
	"github.com/orris-inc/tracker/internal/infrastructure/repository"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type fixture struct {
	ctx      context.Context
	enforcer *infrapermission.Enforcer
	projects *repository.ProjectRepository
	subs     *repository.ProjectSubscriberRepository
	issues   *repository.IssueRepository
	events   *repository.EventRepository
	users    *repository.UserRepository
	access   *common.Access
	txMgr    *db.TransactionManager
	reads    *issueusecases.ReadTracker
	log      logger.Interface
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := testdb.New(t)
	log := logger.NewLogger()

	f := &fixture{
		ctx:      context.Background(),
		projects: repository.NewProjectRepository(gdb),
		subs:     repository.NewProjectSubscriberRepository(gdb),
		issues:   repository.NewIssueRepository(gdb),
		events:   repository.NewEventRepository(gdb),
		users:    repository.NewUserRepository(gdb),
		txMgr:    db.NewTransactionManager(gdb),
		log:      log,
	}
	enforcer, err := infrapermission.NewEnforcer(gdb, f.users, log)
	require.NoError(t, err)
	f.enforcer = enforcer
	f.access = common.NewAccess(f.projects, enforcer, log)
	f.reads = issueusecases.NewReadTracker(f.issues, f.events, repository.NewReadStateRepository(gdb), cache.NoopUnreadCache{}, f.txMgr, log)
	return f
}

func (f *fixture) addUser(t *testing.T, name string, perms ...permission.Perm) *user.User {
	t.Helper()
	addr, err := vo.NewEmail(name + "@example.com")
	require.NoError(t, err)
	u, err := user.NewUser(name, name, "", addr)
	require.NoError(t, err)
	require.NoError(t, f.users.Create(f.ctx, u))
	for _, perm := range perms {
		_, err := f.enforcer.Grant(f.ctx, permission.User(u.ID()), perm, nil)
		require.NoError(t, err)
	}
	return u
}

func (f *fixture) create(t *testing.T, actorID uint, name, displayName string) *CreateProjectResult {
	t.Helper()
	uc := NewCreateProjectUseCase(f.projects, f.subs, f.enforcer, f.access, f.txMgr, f.log)
	result, err := uc.Execute(f.ctx, CreateProjectCommand{ActorID: actorID, Name: name, DisplayName: displayName})
	require.NoError(t, err)
	return result
}
