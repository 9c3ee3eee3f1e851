package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/infrastructure/auth"
	infrapermission "github.com/orris-inc/tracker/internal/infrastructure/permission"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/testdb"
	"github.com/orris-inc/tracker/internal/infrastructure/repository"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type fixture struct {
	ctx         context.Context
	enforcer    *infrapermission.Enforcer
	users       *repository.UserRepository
	groups      *repository.GroupRepository
	teams       *repository.TeamRepository
	memberships *repository.MembershipRepository
	hasher      *auth.BcryptPasswordHasher
	access      *common.Access
	txMgr       *db.TransactionManager
	log         logger.Interface
	admin       *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := testdb.New(t)
	log := logger.NewLogger()

	f := &fixture{
		ctx:         context.Background(),
		users:       repository.NewUserRepository(gdb),
		groups:      repository.NewGroupRepository(gdb),
		teams:       repository.NewTeamRepository(gdb),
		memberships: repository.NewMembershipRepository(gdb),
		hasher:      auth.NewBcryptPasswordHasher(4),
		txMgr:       db.NewTransactionManager(gdb),
		log:         log,
	}
	enforcer, err := infrapermission.NewEnforcer(gdb, f.users, log)
	require.NoError(t, err)
	f.enforcer = enforcer
	f.access = common.NewAccess(repository.NewProjectRepository(gdb), enforcer, log)
	f.admin = f.addUser(t, "admin", permission.ManageAccounts)
	return f
}

func (f *fixture) addUser(t *testing.T, name string, perms ...permission.Perm) *user.User {
	t.Helper()
	u, err := user.NewUser(name, name, "", nil)
	require.NoError(t, err)
	require.NoError(t, f.users.Create(f.ctx, u))
	for _, perm := range perms {
		_, err := f.enforcer.Grant(f.ctx, permission.User(u.ID()), perm, nil)
		require.NoError(t, err)
	}
	return u
}

func (f *fixture) createUser(t *testing.T, cmd CreateUserCommand) *user.User {
	t.Helper()
	cmd.ActorID = f.admin.ID()
	created, err := NewCreateUserUseCase(f.users, f.hasher, f.access, f.log).Execute(f.ctx, cmd)
	require.NoError(t, err)
	u, err := f.users.GetByID(f.ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}
