package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/domain/user"
	infrapermission "github.com/orris-inc/tracker/internal/infrastructure/permission"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/testdb"
	"github.com/orris-inc/tracker/internal/infrastructure/repository"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type fixture struct {
	ctx      context.Context
	enforcer *infrapermission.Enforcer
	users    *repository.UserRepository
	groups   *repository.GroupRepository
	list     *ListGrantsUseCase
	grant    *ChangeGrantUseCase
	revoke   *ChangeGrantUseCase
	project  *project.Project
	admin    *user.User
	owner    *user.User
	other    *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := testdb.New(t)
	log := logger.NewLogger()
	ctx := context.Background()

	f := &fixture{
		ctx:    ctx,
		users:  repository.NewUserRepository(gdb),
		groups: repository.NewGroupRepository(gdb),
	}
	projects := repository.NewProjectRepository(gdb)
	enforcer, err := infrapermission.NewEnforcer(gdb, f.users, log)
	require.NoError(t, err)
	f.enforcer = enforcer

	access := common.NewAccess(projects, enforcer, log)
	subjects := NewSubjectDirectory(f.users, f.groups, repository.NewTeamRepository(gdb))
	f.list = NewListGrantsUseCase(enforcer, subjects, access, log)
	f.grant = NewGrantUseCase(enforcer, subjects, access, log)
	f.revoke = NewRevokeUseCase(enforcer, subjects, access, log)

	p, err := project.NewProject("demo", "Demo")
	require.NoError(t, err)
	require.NoError(t, projects.Create(ctx, p))
	f.project = p

	f.admin = f.addUser(t, "admin")
	_, err = enforcer.Grant(ctx, permission.User(f.admin.ID()), permission.ManageAccounts, nil)
	require.NoError(t, err)
	f.owner = f.addUser(t, "owner")
	pid := p.ID()
	_, err = enforcer.Grant(ctx, permission.User(f.owner.ID()), permission.ManageProjectPermission, &pid)
	require.NoError(t, err)
	f.other = f.addUser(t, "other")
	return f
}

func (f *fixture) addUser(t *testing.T, name string) *user.User {
	t.Helper()
	u, err := user.NewUser(name, "", "", nil)
	require.NoError(t, err)
	require.NoError(t, f.users.Create(f.ctx, u))
	return u
}

func TestProjectGrants(t *testing.T) {
	f := newFixture(t)
	scope := Scope{ActorID: f.owner.ID(), ProjectName: "demo"}

	result, err := f.grant.Execute(f.ctx, ChangeGrantCommand{Scope: scope, Subject: permission.User(f.other.ID()), Perm: "create_issue"})
	require.NoError(t, err)
	assert.True(t, result.Modified)

	result, err = f.grant.Execute(f.ctx, ChangeGrantCommand{Scope: scope, Subject: permission.User(f.other.ID()), Perm: "create_issue"})
	require.NoError(t, err)
	assert.False(t, result.Modified)

	pid := f.project.ID()
	ok, err := f.enforcer.HasPerm(f.ctx, f.other.ID(), permission.CreateIssue, &pid)
	require.NoError(t, err)
	assert.True(t, ok)

	grants, err := f.list.Execute(f.ctx, scope)
	require.NoError(t, err)
	require.Len(t, grants, 2)
	assert.Equal(t, "owner", grants[0].SubjectName)
	assert.Equal(t, "other", grants[1].SubjectName)
	assert.Equal(t, "create_issue", grants[1].Perm)

	result, err = f.revoke.Execute(f.ctx, ChangeGrantCommand{Scope: scope, Subject: permission.User(f.other.ID()), Perm: "create_issue"})
	require.NoError(t, err)
	assert.True(t, result.Modified)

	ok, err = f.enforcer.HasPerm(f.ctx, f.other.ID(), permission.CreateIssue, &pid)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProjectGrants_Rejected(t *testing.T) {
	f := newFixture(t)
	scope := Scope{ActorID: f.owner.ID(), ProjectName: "demo"}

	_, err := f.grant.Execute(f.ctx, ChangeGrantCommand{Scope: scope, Subject: permission.User(f.other.ID()), Perm: "create_project"})
	assert.Contains(t, errors.GetAppError(err).Fields, "perm")

	_, err = f.grant.Execute(f.ctx, ChangeGrantCommand{Scope: scope, Subject: permission.User(f.other.ID()), Perm: "fly"})
	assert.Contains(t, errors.GetAppError(err).Fields, "perm")

	_, err = f.grant.Execute(f.ctx, ChangeGrantCommand{Scope: scope, Subject: permission.Group(12), Perm: "create_issue"})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = f.list.Execute(f.ctx, Scope{ActorID: f.other.ID(), ProjectName: "demo"})
	assert.True(t, errors.IsForbiddenError(err))

	pid := f.project.ID()
	_, err = f.enforcer.Grant(f.ctx, permission.User(f.other.ID()), permission.CreateIssue, &pid)
	require.NoError(t, err)
	_, err = f.list.Execute(f.ctx, Scope{ActorID: f.other.ID(), ProjectName: "demo"})
	assert.True(t, errors.IsForbiddenError(err))
}

func TestAnonymousProjectGrant(t *testing.T) {
	f := newFixture(t)
	scope := Scope{ActorID: f.owner.ID(), ProjectName: "demo"}

	_, err := f.grant.Execute(f.ctx, ChangeGrantCommand{Scope: scope, Subject: permission.User(0), Perm: "create_comment"})
	require.NoError(t, err)

	grants, err := f.list.Execute(f.ctx, scope)
	require.NoError(t, err)
	names := make([]string, 0, len(grants))
	for _, g := range grants {
		names = append(names, g.SubjectName)
	}
	assert.Contains(t, names, "Anonymous")

	_, err = f.grant.Execute(f.ctx, ChangeGrantCommand{
		Scope:   Scope{ActorID: f.admin.ID()},
		Subject: permission.User(0),
		Perm:    "create_project",
	})
	assert.Contains(t, errors.GetAppError(err).Fields, "subject")
}

func TestGlobalGrants(t *testing.T) {
	f := newFixture(t)
	scope := Scope{ActorID: f.admin.ID()}

	group, err := user.NewGroup("Devs")
	require.NoError(t, err)
	require.NoError(t, f.groups.Create(f.ctx, group))

	_, err = f.grant.Execute(f.ctx, ChangeGrantCommand{Scope: scope, Subject: permission.Group(group.ID()), Perm: "create_project"})
	require.NoError(t, err)
	_, err = f.grant.Execute(f.ctx, ChangeGrantCommand{Scope: scope, Subject: permission.User(f.other.ID()), Perm: "create_comment"})
	require.NoError(t, err)

	pid := f.project.ID()
	ok, err := f.enforcer.HasPerm(f.ctx, f.other.ID(), permission.CreateComment, &pid)
	require.NoError(t, err)
	assert.True(t, ok, "project permissions granted globally apply to every project")

	grants, err := f.list.Execute(f.ctx, scope)
	require.NoError(t, err)
	byPerm := make(map[string]bool)
	for _, g := range grants {
		byPerm[g.Perm] = g.All
	}
	assert.Equal(t, map[string]bool{"manage_accounts": false, "create_project": false, "create_comment": true}, byPerm)

	_, err = f.list.Execute(f.ctx, Scope{ActorID: f.owner.ID()})
	assert.True(t, errors.IsForbiddenError(err))
	_, err = f.list.Execute(f.ctx, Scope{})
	assert.Equal(t, errors.ErrorTypeUnauthorized, errors.GetAppError(err).Type)
}
