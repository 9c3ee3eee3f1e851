package permission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/testdb"
	"github.com/orris-inc/tracker/internal/infrastructure/repository"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type fixture struct {
	enforcer *Enforcer
	users    *repository.UserRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := testdb.New(t)
	users := repository.NewUserRepository(gdb)
	e, err := NewEnforcer(gdb, users, logger.NewLogger())
	require.NoError(t, err)
	return &fixture{enforcer: e, users: users}
}

func (f *fixture) addUser(t *testing.T, name string) *user.User {
	t.Helper()
	u, err := user.NewUser(name, "", "", nil)
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func ptr(v uint) *uint { return &v }

func TestEnforcer_DirectAndWildcardGrants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")

	ok, err := f.enforcer.HasPerm(ctx, alice.ID(), permission.CreateIssue, ptr(1))
	require.NoError(t, err)
	assert.False(t, ok)

	added, err := f.enforcer.Grant(ctx, permission.User(alice.ID()), permission.CreateIssue, ptr(1))
	require.NoError(t, err)
	assert.True(t, added)
	added, err = f.enforcer.Grant(ctx, permission.User(alice.ID()), permission.CreateIssue, ptr(1))
	require.NoError(t, err)
	assert.False(t, added)

	ok, err = f.enforcer.HasPerm(ctx, alice.ID(), permission.CreateIssue, ptr(1))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = f.enforcer.HasPerm(ctx, alice.ID(), permission.CreateIssue, ptr(2))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.enforcer.Grant(ctx, permission.User(alice.ID()), permission.ModifyIssue, nil)
	require.NoError(t, err)
	ok, err = f.enforcer.HasPerm(ctx, alice.ID(), permission.ModifyIssue, ptr(42))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnforcer_MembershipPropagates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bob := f.addUser(t, "bob")

	_, err := f.enforcer.Grant(ctx, permission.Team(7), permission.ManageTags, ptr(1))
	require.NoError(t, err)

	added, err := f.enforcer.AddMembership(ctx, permission.User(bob.ID()), permission.Group(3))
	require.NoError(t, err)
	assert.True(t, added)
	_, err = f.enforcer.AddMembership(ctx, permission.Group(3), permission.Team(7))
	require.NoError(t, err)

	ok, err := f.enforcer.HasPerm(ctx, bob.ID(), permission.ManageTags, ptr(1))
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := f.enforcer.RemoveMembership(ctx, permission.User(bob.ID()), permission.Group(3))
	require.NoError(t, err)
	assert.True(t, removed)

	ok, err = f.enforcer.HasPerm(ctx, bob.ID(), permission.ManageTags, ptr(1))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.enforcer.AddMembership(ctx, permission.Team(7), permission.Group(3))
	assert.Error(t, err)
}

func TestEnforcer_AccountFlags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root := f.addUser(t, "root")
	root.SetSuperuser(true)
	require.NoError(t, f.users.Update(ctx, root))

	ok, err := f.enforcer.HasPerm(ctx, root.ID(), permission.DeleteProject, ptr(9))
	require.NoError(t, err)
	assert.True(t, ok)

	carol := f.addUser(t, "carol")
	_, err = f.enforcer.Grant(ctx, permission.User(carol.ID()), permission.CreateProject, nil)
	require.NoError(t, err)
	carol.Disable()
	require.NoError(t, f.users.Update(ctx, carol))

	ok, err = f.enforcer.HasPerm(ctx, carol.ID(), permission.CreateProject, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.enforcer.HasPerm(ctx, 999, permission.CreateProject, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnforcer_Anonymous(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.enforcer.Grant(ctx, permission.User(0), permission.CreateComment, ptr(1))
	require.NoError(t, err)

	ok, err := f.enforcer.HasPerm(ctx, 0, permission.CreateComment, ptr(1))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.enforcer.HasPerm(ctx, 0, permission.CreateIssue, ptr(1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnforcer_AnonymousGrantsReachLoggedInUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")

	_, err := f.enforcer.Grant(ctx, permission.User(0), permission.CreateComment, ptr(7))
	require.NoError(t, err)

	ok, err := f.enforcer.HasPerm(ctx, alice.ID(), permission.CreateComment, ptr(7))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.enforcer.HasPerm(ctx, alice.ID(), permission.CreateComment, ptr(8))
	require.NoError(t, err)
	assert.False(t, ok)

	alice.Disable()
	require.NoError(t, f.users.Update(ctx, alice))
	ok, err = f.enforcer.HasPerm(ctx, alice.ID(), permission.CreateComment, ptr(7))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnforcer_GlobalScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.enforcer.Grant(ctx, permission.User(1), permission.ManageAccounts, ptr(1))
	assert.Error(t, err)
	_, err = f.enforcer.Grant(ctx, permission.User(1), permission.Perm("fly"), nil)
	assert.Error(t, err)
}

func TestEnforcer_ListGrants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.enforcer.Grant(ctx, permission.User(1), permission.CreateIssue, ptr(1))
	require.NoError(t, err)
	_, err = f.enforcer.Grant(ctx, permission.Group(2), permission.DeleteIssue, nil)
	require.NoError(t, err)
	_, err = f.enforcer.Grant(ctx, permission.User(1), permission.ManageSettings, nil)
	require.NoError(t, err)
	_, err = f.enforcer.Grant(ctx, permission.User(3), permission.CreateIssue, ptr(2))
	require.NoError(t, err)

	grants, err := f.enforcer.ListGrants(ctx, ptr(1))
	require.NoError(t, err)
	assert.ElementsMatch(t, []permission.Grant{
		{Subject: permission.User(1), Perm: permission.CreateIssue, ProjectID: ptr(1)},
		{Subject: permission.Group(2), Perm: permission.DeleteIssue, All: true},
	}, grants)

	global, err := f.enforcer.ListGrants(ctx, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []permission.Grant{
		{Subject: permission.User(1), Perm: permission.ManageSettings},
		{Subject: permission.Group(2), Perm: permission.DeleteIssue, All: true},
	}, global)
}

func TestEnforcer_RemoveSubjectAndProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dave := f.addUser(t, "dave")

	_, err := f.enforcer.Grant(ctx, permission.Group(5), permission.CreateIssue, ptr(1))
	require.NoError(t, err)
	_, err = f.enforcer.AddMembership(ctx, permission.User(dave.ID()), permission.Group(5))
	require.NoError(t, err)

	require.NoError(t, f.enforcer.RemoveSubject(ctx, permission.Group(5)))
	ok, err := f.enforcer.HasPerm(ctx, dave.ID(), permission.CreateIssue, ptr(1))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.enforcer.Grant(ctx, permission.User(dave.ID()), permission.CreateIssue, ptr(1))
	require.NoError(t, err)
	require.NoError(t, f.enforcer.RemoveProject(ctx, 1))
	ok, err = f.enforcer.HasPerm(ctx, dave.ID(), permission.CreateIssue, ptr(1))
	require.NoError(t, err)
	assert.False(t, ok)

	// grants survive a reload from the adapter
	_, err = f.enforcer.Grant(ctx, permission.User(dave.ID()), permission.CreateIssue, ptr(2))
	require.NoError(t, err)
	require.NoError(t, f.enforcer.LoadPolicy())
	ok, err = f.enforcer.HasPerm(ctx, dave.ID(), permission.CreateIssue, ptr(2))
	require.NoError(t, err)
	assert.True(t, ok)
}
