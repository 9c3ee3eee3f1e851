package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/domain/user"
	infrapermission "github.com/orris-inc/tracker/internal/infrastructure/permission"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/testdb"
	"github.com/orris-inc/tracker/internal/infrastructure/repository"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type fixture struct {
	ctx      context.Context
	enforcer *infrapermission.Enforcer
	labels   *repository.LabelRepository
	issues   *repository.IssueRepository
	events   *repository.EventRepository
	access   *common.Access
	txMgr    *db.TransactionManager
	log      logger.Interface
	project  *project.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := testdb.New(t)
	log := logger.NewLogger()
	users := repository.NewUserRepository(gdb)
	projects := repository.NewProjectRepository(gdb)

	enforcer, err := infrapermission.NewEnforcer(gdb, users, log)
	require.NoError(t, err)

	f := &fixture{
		ctx:      context.Background(),
		enforcer: enforcer,
		labels:   repository.NewLabelRepository(gdb),
		issues:   repository.NewIssueRepository(gdb),
		events:   repository.NewEventRepository(gdb),
		access:   common.NewAccess(projects, enforcer, log),
		txMgr:    db.NewTransactionManager(gdb),
		log:      log,
	}

	// Tests act as users 1 and 2.
	for i, name := range []string{"alice", "bob"} {
		u, err := user.NewUser(name, "", "", nil)
		require.NoError(t, err)
		require.NoError(t, users.Create(f.ctx, u))
		require.Equal(t, uint(i+1), u.ID())
	}

	p, err := project.NewProject("demo", "Demo")
	require.NoError(t, err)
	require.NoError(t, projects.Create(f.ctx, p))
	f.project = p
	return f
}

func (f *fixture) grant(t *testing.T, userID uint, perms ...permission.Perm) {
	t.Helper()
	projectID := f.project.ID()
	for _, perm := range perms {
		_, err := f.enforcer.Grant(f.ctx, permission.User(userID), perm, &projectID)
		require.NoError(t, err)
	}
}

func TestSaveLabelUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	f.grant(t, 1, permission.ManageTags)
	uc := NewSaveLabelUseCase(f.labels, f.access, f.log)

	created, err := uc.Execute(f.ctx, SaveLabelCommand{ProjectName: "demo", ActorID: 1, Name: "bug", Color: "#FF0000"})
	require.NoError(t, err)
	assert.True(t, created.Modified)
	assert.Equal(t, "#ff0000", created.Label.Color)

	_, err = uc.Execute(f.ctx, SaveLabelCommand{ProjectName: "demo", ActorID: 1, Name: "bug"})
	require.Error(t, err)
	assert.Contains(t, errors.GetAppError(err).Fields, "name")

	_, err = uc.Execute(f.ctx, SaveLabelCommand{ProjectName: "demo", ActorID: 1, Name: "x", Color: "red"})
	require.Error(t, err)
	assert.Contains(t, errors.GetAppError(err).Fields, "color")

	same, err := uc.Execute(f.ctx, SaveLabelCommand{ProjectName: "demo", ActorID: 1, LabelID: created.Label.ID, Name: "bug", Color: "#ff0000"})
	require.NoError(t, err)
	assert.False(t, same.Modified)

	edited, err := uc.Execute(f.ctx, SaveLabelCommand{ProjectName: "demo", ActorID: 1, LabelID: created.Label.ID, Name: "defect", Inverted: true})
	require.NoError(t, err)
	assert.True(t, edited.Modified)
	assert.Equal(t, "defect", edited.Label.Name)

	_, err = uc.Execute(f.ctx, SaveLabelCommand{ProjectName: "demo", ActorID: 1, LabelID: 999, Name: "x"})
	assert.True(t, errors.IsNotFoundError(err))

	f.grant(t, 2, permission.CreateIssue)
	_, err = uc.Execute(f.ctx, SaveLabelCommand{ProjectName: "demo", ActorID: 2, Name: "feature"})
	assert.True(t, errors.IsForbiddenError(err))
}

func TestDeleteLabelUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	f.grant(t, 1, permission.ManageTags, permission.DeleteTags)
	save := NewSaveLabelUseCase(f.labels, f.access, f.log)
	created, err := save.Execute(f.ctx, SaveLabelCommand{ProjectName: "demo", ActorID: 1, Name: "bug"})
	require.NoError(t, err)
	labelID := created.Label.ID

	iss, err := issue.NewIssue(f.project.ID(), 1, "Crash", "", nil)
	require.NoError(t, err)
	require.NoError(t, f.issues.Create(f.ctx, iss))
	comment, err := issue.NewComment(iss, 1, "seen it")
	require.NoError(t, err)
	require.NoError(t, f.events.Append(f.ctx, comment))
	iss.AddLabel(labelID)
	require.NoError(t, f.issues.Update(f.ctx, iss))

	uc := NewDeleteLabelUseCase(f.labels, f.issues, f.access, f.txMgr, f.log)
	require.NoError(t, uc.Execute(f.ctx, DeleteLabelCommand{ProjectName: "demo", ActorID: 1, LabelID: labelID}))

	stored, err := f.issues.Get(f.ctx, f.project.ID(), iss.ID())
	require.NoError(t, err)
	assert.Empty(t, stored.LabelIDs())

	events, err := f.events.ListByIssue(f.ctx, f.project.ID(), iss.ID())
	require.NoError(t, err)
	assert.Len(t, events, 1, "deleting a label keeps the history")

	list, err := NewListLabelsUseCase(f.labels, f.access, f.log).Execute(f.ctx, ListLabelsQuery{ProjectName: "demo", ActorID: 1})
	require.NoError(t, err)
	assert.Empty(t, list)

	kept, err := f.labels.GetByIDIncludingDeleted(f.ctx, labelID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.True(t, kept.IsDeleted())

	err = uc.Execute(f.ctx, DeleteLabelCommand{ProjectName: "demo", ActorID: 1, LabelID: labelID})
	assert.True(t, errors.IsNotFoundError(err))

	// The name is free again once the label is deleted.
	_, err = save.Execute(f.ctx, SaveLabelCommand{ProjectName: "demo", ActorID: 1, Name: "bug"})
	require.NoError(t, err)
}
