package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/domain/label"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/testdb"
)

func TestProjectRepository_DisplayNameTaken(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewProjectRepository(gdb)
	ctx := context.Background()

	p, err := project.NewProject("school", "École")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	taken, err := repo.DisplayNameTaken(ctx, "ÉCOLE", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.DisplayNameTaken(ctx, "école", p.ID())
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestProjectRepository_ListAndArchive(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewProjectRepository(gdb)
	ctx := context.Background()
	a := createProject(t, gdb, "alpha")
	createProject(t, gdb, "beta")

	require.NoError(t, a.Archive())
	require.NoError(t, repo.Update(ctx, a))

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "beta", active[0].Name())

	archived, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.True(t, archived[0].IsArchived())

	byName, err := repo.GetByName(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, a.ID(), byName.ID())
}

func TestProjectRepository_DeleteCascades(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewProjectRepository(gdb)
	issues := NewIssueRepository(gdb)
	labels := NewLabelRepository(gdb)
	ctx := context.Background()
	p := createProject(t, gdb, "alpha")
	iss := createIssue(t, gdb, p.ID(), "task")
	appendComment(t, gdb, iss, "hi")
	l, err := label.NewLabel(p.ID(), "bug", "", false)
	require.NoError(t, err)
	require.NoError(t, labels.Create(ctx, l))

	require.NoError(t, repo.Delete(ctx, p.ID()))

	gone, err := repo.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)
	ids, err := issues.ListIDs(ctx, p.ID())
	require.NoError(t, err)
	assert.Empty(t, ids)
	ls, err := labels.ListByProject(ctx, p.ID())
	require.NoError(t, err)
	assert.Empty(t, ls)
}

func TestProjectSubscriberRepository(t *testing.T) {
	gdb := testdb.New(t)
	subs := NewProjectSubscriberRepository(gdb)
	ctx := context.Background()

	added, err := subs.Add(ctx, 1, 9)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = subs.Add(ctx, 1, 9)
	require.NoError(t, err)
	assert.False(t, added)

	ok, err := subs.IsSubscribed(ctx, 1, 9)
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := subs.Remove(ctx, 1, 9)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = subs.Remove(ctx, 1, 9)
	require.NoError(t, err)
	assert.False(t, removed)
}
