package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/infrastructure/cache"
	"github.com/orris-inc/tracker/internal/shared/errors"
)

func TestCreateProjectUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice", permission.CreateProject)

	result := f.create(t, alice.ID(), "demo", "Demo")
	assert.Equal(t, "demo", result.Project.Name)

	subscribed, err := f.subs.IsSubscribed(f.ctx, result.Project.ID, alice.ID())
	require.NoError(t, err)
	assert.True(t, subscribed)

	projectID := result.Project.ID
	for _, perm := range permission.ProjectPerms {
		ok, err := f.enforcer.HasPerm(f.ctx, alice.ID(), perm, &projectID)
		require.NoError(t, err)
		assert.True(t, ok, perm)
	}
}

func TestCreateProjectUseCase_Execute_Failures(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice", permission.CreateProject)
	bob := f.addUser(t, "bob")
	f.create(t, alice.ID(), "demo", "Demo")
	uc := NewCreateProjectUseCase(f.projects, f.subs, f.enforcer, f.access, f.txMgr, f.log)

	tests := []struct {
		name  string
		cmd   CreateProjectCommand
		check func(error) bool
		field string
	}{
		{name: "anonymous", cmd: CreateProjectCommand{Name: "x", DisplayName: "X"}, check: func(err error) bool {
			return errors.GetAppError(err).Type == errors.ErrorTypeUnauthorized
		}},
		{name: "no permission", cmd: CreateProjectCommand{ActorID: bob.ID(), Name: "x", DisplayName: "X"}, check: errors.IsForbiddenError},
		{name: "reserved name", cmd: CreateProjectCommand{ActorID: alice.ID(), Name: "admin", DisplayName: "Admin"}, check: errors.IsValidationError, field: "name"},
		{name: "invalid name", cmd: CreateProjectCommand{ActorID: alice.ID(), Name: "Not Valid", DisplayName: "X"}, check: errors.IsValidationError, field: "name"},
		{name: "duplicate name", cmd: CreateProjectCommand{ActorID: alice.ID(), Name: "demo", DisplayName: "Other"}, check: errors.IsValidationError, field: "name"},
		{name: "display name differs only by case", cmd: CreateProjectCommand{ActorID: alice.ID(), Name: "demo2", DisplayName: "DEMO"}, check: errors.IsValidationError, field: "display_name"},
		{name: "blank display name", cmd: CreateProjectCommand{ActorID: alice.ID(), Name: "demo3", DisplayName: " "}, check: errors.IsValidationError, field: "display_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(f.ctx, tt.cmd)
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
			if tt.field != "" {
				assert.Contains(t, errors.GetAppError(err).Fields, tt.field)
			}
		})
	}
}

func TestListProjectsUseCase_Execute_Visibility(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice", permission.CreateProject)
	bob := f.addUser(t, "bob", permission.CreateProject)
	f.create(t, alice.ID(), "alpha", "Alpha")
	beta := f.create(t, bob.ID(), "beta", "Beta")

	uc := NewListProjectsUseCase(f.projects, f.access, f.log)
	names := func(actorID uint) []string {
		list, err := uc.Execute(f.ctx, ListProjectsQuery{ActorID: actorID})
		require.NoError(t, err)
		out := []string{}
		for _, p := range list {
			out = append(out, p.Name)
		}
		return out
	}

	assert.Equal(t, []string{"alpha"}, names(alice.ID()))
	assert.Equal(t, []string{"beta"}, names(bob.ID()))
	assert.Empty(t, names(0))

	betaID := beta.Project.ID
	_, err := f.enforcer.Grant(f.ctx, permission.User(0), permission.CreateComment, &betaID)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, names(0))
	assert.Equal(t, []string{"alpha", "beta"}, names(alice.ID()))
}

func TestUpdateProjectUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice", permission.CreateProject)
	f.create(t, alice.ID(), "alpha", "Alpha")
	f.create(t, alice.ID(), "beta", "Beta")
	uc := NewUpdateProjectUseCase(f.projects, f.access, f.log)

	result, err := uc.Execute(f.ctx, UpdateProjectCommand{ProjectName: "alpha", ActorID: alice.ID(), DisplayName: "Alpha"})
	require.NoError(t, err)
	assert.False(t, result.Modified)

	_, err = uc.Execute(f.ctx, UpdateProjectCommand{ProjectName: "alpha", ActorID: alice.ID(), DisplayName: "beta"})
	require.Error(t, err)
	assert.Contains(t, errors.GetAppError(err).Fields, "display_name")

	result, err = uc.Execute(f.ctx, UpdateProjectCommand{ProjectName: "alpha", ActorID: alice.ID(), DisplayName: "ALPHA"})
	require.NoError(t, err)
	assert.True(t, result.Modified)
	assert.Equal(t, "alpha", result.Project.Name)
	assert.Equal(t, "ALPHA", result.Project.DisplayName)

	bob := f.addUser(t, "bob")
	_, err = uc.Execute(f.ctx, UpdateProjectCommand{ProjectName: "alpha", ActorID: bob.ID(), DisplayName: "Mine"})
	assert.True(t, errors.IsForbiddenError(err), "bob holds no grant on alpha")
}

func TestArchiveProjectUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice", permission.CreateProject)
	f.create(t, alice.ID(), "alpha", "Alpha")
	archive := NewArchiveProjectUseCase(f.projects, f.access, f.log)
	unarchive := NewUnarchiveProjectUseCase(f.projects, f.access, f.log)
	cmd := ArchiveProjectCommand{ProjectName: "alpha", ActorID: alice.ID()}

	_, err := unarchive.Execute(f.ctx, cmd)
	assert.True(t, errors.IsNotFoundError(err))

	p, err := archive.Execute(f.ctx, cmd)
	require.NoError(t, err)
	assert.True(t, p.Archived)

	_, err = archive.Execute(f.ctx, cmd)
	assert.True(t, errors.IsNotFoundError(err))

	list := NewListProjectsUseCase(f.projects, f.access, f.log)
	active, err := list.Execute(f.ctx, ListProjectsQuery{ActorID: alice.ID()})
	require.NoError(t, err)
	assert.Empty(t, active)
	archived, err := list.Execute(f.ctx, ListProjectsQuery{ActorID: alice.ID(), Archived: true})
	require.NoError(t, err)
	assert.Len(t, archived, 1)

	p, err = unarchive.Execute(f.ctx, cmd)
	require.NoError(t, err)
	assert.False(t, p.Archived)
}

func TestDeleteProjectUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice", permission.CreateProject)
	created := f.create(t, alice.ID(), "alpha", "Alpha")
	projectID := created.Project.ID

	iss, err := issue.NewIssue(projectID, alice.ID(), "Bug", "", nil)
	require.NoError(t, err)
	require.NoError(t, f.issues.Create(f.ctx, iss))

	bob := f.addUser(t, "bob")
	_, err = f.enforcer.Grant(f.ctx, permission.User(bob.ID()), permission.CreateIssue, &projectID)
	require.NoError(t, err)

	uc := NewDeleteProjectUseCase(f.projects, f.enforcer, f.access, cache.NoopUnreadCache{}, f.txMgr, f.log)
	err = uc.Execute(f.ctx, DeleteProjectCommand{ProjectName: "alpha", ActorID: bob.ID()})
	assert.True(t, errors.IsForbiddenError(err))

	require.NoError(t, uc.Execute(f.ctx, DeleteProjectCommand{ProjectName: "alpha", ActorID: alice.ID()}))

	p, err := f.projects.GetByName(f.ctx, "alpha")
	require.NoError(t, err)
	assert.Nil(t, p)
	left, err := f.issues.Get(f.ctx, projectID, iss.ID())
	require.NoError(t, err)
	assert.Nil(t, left)

	grants, err := f.enforcer.ListGrants(f.ctx, &projectID)
	require.NoError(t, err)
	assert.Empty(t, grants)
}

func TestProjectSubscriptionUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice", permission.CreateProject)
	f.create(t, alice.ID(), "alpha", "Alpha")
	subscribe := NewSubscribeProjectUseCase(f.subs, f.users, f.access, f.log)
	unsubscribe := NewUnsubscribeProjectUseCase(f.subs, f.users, f.access, f.log)
	cmd := ProjectSubscriptionCommand{ProjectName: "alpha", ActorID: alice.ID()}

	// The creator is already subscribed.
	result, err := subscribe.Execute(f.ctx, cmd)
	require.NoError(t, err)
	assert.False(t, result.Modified)

	result, err = unsubscribe.Execute(f.ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.Modified)
	assert.False(t, result.Subscribed)

	result, err = unsubscribe.Execute(f.ctx, cmd)
	require.NoError(t, err)
	assert.False(t, result.Modified)

	result, err = subscribe.Execute(f.ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.Modified)
}

func TestGetProjectUseCase_Execute_UnreadIssues(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice", permission.CreateProject)
	created := f.create(t, alice.ID(), "alpha", "Alpha")
	projectID := created.Project.ID

	for _, title := range []string{"one", "two"} {
		iss, err := issue.NewIssue(projectID, alice.ID(), title, "", nil)
		require.NoError(t, err)
		require.NoError(t, f.issues.Create(f.ctx, iss))
		ev, err := issue.NewComment(iss, alice.ID(), "hello")
		require.NoError(t, err)
		require.NoError(t, f.events.Append(f.ctx, ev))
	}

	get := NewGetProjectUseCase(f.subs, f.reads, f.access, f.log)
	detail, err := get.Execute(f.ctx, GetProjectQuery{ProjectName: "alpha", ActorID: alice.ID()})
	require.NoError(t, err)
	assert.True(t, detail.Subscribed)
	assert.Equal(t, int64(2), detail.UnreadIssues)

	markRead := NewMarkProjectReadUseCase(f.reads, f.access, f.log)
	require.NoError(t, markRead.Execute(f.ctx, MarkProjectReadCommand{ProjectName: "alpha", ActorID: alice.ID()}))

	detail, err = get.Execute(f.ctx, GetProjectQuery{ProjectName: "alpha", ActorID: alice.ID()})
	require.NoError(t, err)
	assert.Zero(t, detail.UnreadIssues)

	_, err = get.Execute(f.ctx, GetProjectQuery{ProjectName: "alpha"})
	assert.True(t, errors.IsUnauthorizedError(err))

	_, err = get.Execute(f.ctx, GetProjectQuery{ProjectName: "missing", ActorID: alice.ID()})
	assert.True(t, errors.IsNotFoundError(err))
}
