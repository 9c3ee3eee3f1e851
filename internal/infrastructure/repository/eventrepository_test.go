package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/testdb"
)

func TestEventRepository_AppendKeepsOrder(t *testing.T) {
	gdb := testdb.New(t)
	events := NewEventRepository(gdb)
	ctx := context.Background()
	p := createProject(t, gdb, "alpha")
	iss := createIssue(t, gdb, p.ID(), "old title")

	changes, modified, err := iss.Update(1, "new title", dueDate(3), "")
	require.NoError(t, err)
	require.True(t, modified)
	require.NoError(t, events.Append(ctx, changes...))
	require.Less(t, changes[0].ID(), changes[1].ID())

	stored, err := events.ListByIssue(ctx, p.ID(), iss.ID())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, issue.CodeRename, stored[0].Code())
	assert.Equal(t, issue.CodeSetDueDate, stored[1].Code())
	assert.Equal(t, issue.SetDueDatePayload{DueDate: dueDate(3).Unix()}, stored[1].Payload())
}

func TestEventRepository_CommentEditAndDelete(t *testing.T) {
	gdb := testdb.New(t)
	events := NewEventRepository(gdb)
	ctx := context.Background()
	p := createProject(t, gdb, "alpha")
	iss := createIssue(t, gdb, p.ID(), "task")
	ev := appendComment(t, gdb, iss, "first draft")

	changed, err := ev.EditBody("final")
	require.NoError(t, err)
	require.True(t, changed)
	require.NoError(t, events.UpdateBody(ctx, ev))

	got, err := events.Get(ctx, p.ID(), iss.ID(), ev.ID())
	require.NoError(t, err)
	assert.Equal(t, "final", got.Body())

	wrongIssue, err := events.Get(ctx, p.ID(), iss.ID()+1, ev.ID())
	require.NoError(t, err)
	assert.Nil(t, wrongIssue)

	require.NoError(t, events.Delete(ctx, ev.ID()))
	got, err = events.Get(ctx, p.ID(), iss.ID(), ev.ID())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEventRepository_ListByProjectNewestFirst(t *testing.T) {
	gdb := testdb.New(t)
	events := NewEventRepository(gdb)
	ctx := context.Background()
	p := createProject(t, gdb, "alpha")
	iss := createIssue(t, gdb, p.ID(), "task")
	a := appendComment(t, gdb, iss, "a")
	b := appendComment(t, gdb, iss, "b")
	c := appendComment(t, gdb, iss, "c")

	page, total, err := events.ListByProject(ctx, p.ID(), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, c.ID(), page[0].ID())
	assert.Equal(t, b.ID(), page[1].ID())

	n, err := events.CountAfter(ctx, p.ID(), iss.ID(), a.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
