package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/domain/label"
	"github.com/orris-inc/tracker/internal/domain/milestone"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/testdb"
)

func TestLabelRepository_SoftDelete(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewLabelRepository(gdb)
	ctx := context.Background()

	l, err := label.NewLabel(1, "bug", "#FF0000", true)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, l))

	taken, err := repo.NameTaken(ctx, 1, "bug", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	l.MarkDeleted()
	require.NoError(t, repo.Update(ctx, l))

	taken, err = repo.NameTaken(ctx, 1, "bug", 0)
	require.NoError(t, err)
	assert.False(t, taken)

	active, err := repo.GetByID(ctx, 1, l.ID())
	require.NoError(t, err)
	assert.Nil(t, active)

	kept, err := repo.GetByIDIncludingDeleted(ctx, l.ID())
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, "#ff0000", kept.Color())
	assert.True(t, kept.Inverted())
}

func TestMilestoneRepository_ListFilter(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewMilestoneRepository(gdb)
	ctx := context.Background()

	open, err := milestone.NewMilestone(1, "v2", dueDate(10))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, open))

	closed, err := milestone.NewMilestone(1, "v1", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, closed))
	require.NoError(t, closed.Close())
	require.NoError(t, repo.Update(ctx, closed))

	deleted, err := milestone.NewMilestone(1, "v0", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, deleted))
	deleted.MarkDeleted()
	require.NoError(t, repo.Update(ctx, deleted))

	names := func(f milestone.Filter) []string {
		ms, err := repo.ListByProject(ctx, 1, f)
		require.NoError(t, err)
		out := make([]string, 0, len(ms))
		for _, m := range ms {
			out = append(out, m.Name())
		}
		return out
	}
	assert.Equal(t, []string{"v2"}, names(milestone.FilterOpen))
	assert.Equal(t, []string{"v1"}, names(milestone.FilterClosed))
	assert.Equal(t, []string{"v1", "v2"}, names(milestone.FilterAll))

	byName, err := repo.GetByName(ctx, 1, "v0")
	require.NoError(t, err)
	assert.Nil(t, byName)

	got, err := repo.GetByName(ctx, 1, "v2")
	require.NoError(t, err)
	require.NotNil(t, got.DueDate())
	assert.True(t, got.DueDate().Equal(*dueDate(10)))
}
