package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/label"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/testdb"
	"github.com/orris-inc/tracker/internal/shared/db"
)

func TestIssueRepository_CreateAllocatesPerProject(t *testing.T) {
	gdb := testdb.New(t)
	p1 := createProject(t, gdb, "alpha")
	p2 := createProject(t, gdb, "beta")

	a1 := createIssue(t, gdb, p1.ID(), "first")
	a2 := createIssue(t, gdb, p1.ID(), "second")
	b1 := createIssue(t, gdb, p2.ID(), "other")

	assert.Equal(t, uint(1), a1.ID())
	assert.Equal(t, uint(2), a2.ID())
	assert.Equal(t, uint(1), b1.ID())
}

func TestIssueRepository_IDsNeverReused(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewIssueRepository(gdb)
	ctx := context.Background()
	p := createProject(t, gdb, "alpha")

	createIssue(t, gdb, p.ID(), "one")
	two := createIssue(t, gdb, p.ID(), "two")
	require.NoError(t, repo.Delete(ctx, p.ID(), two.ID()))

	three := createIssue(t, gdb, p.ID(), "three")
	assert.Equal(t, uint(3), three.ID())
}

func TestIssueRepository_RolledBackCreateConsumesNothing(t *testing.T) {
	gdb := testdb.New(t)
	tm := db.NewTransactionManager(gdb)
	repo := NewIssueRepository(gdb)
	ctx := context.Background()
	p := createProject(t, gdb, "alpha")

	boom := errors.New("boom")
	err := tm.RunInTransaction(ctx, func(ctx context.Context) error {
		iss, err := issue.NewIssue(p.ID(), 1, "doomed", "", nil)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, iss))
		return boom
	})
	require.ErrorIs(t, err, boom)

	iss := createIssue(t, gdb, p.ID(), "kept")
	assert.Equal(t, uint(1), iss.ID())
}

func TestIssueRepository_UpdateSyncsLabelsAndMilestone(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewIssueRepository(gdb)
	ctx := context.Background()
	p := createProject(t, gdb, "alpha")
	iss := createIssue(t, gdb, p.ID(), "task")

	iss.AddLabel(3)
	iss.AddLabel(5)
	iss.SetMilestone(9)
	require.NoError(t, repo.Update(ctx, iss))

	got, err := repo.Get(ctx, p.ID(), iss.ID())
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 5}, got.LabelIDs())
	require.NotNil(t, got.MilestoneID())
	assert.Equal(t, uint(9), *got.MilestoneID())

	got.RemoveLabel(3)
	got.UnsetMilestone(9)
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.Get(ctx, p.ID(), iss.ID())
	require.NoError(t, err)
	assert.Equal(t, []uint{5}, got.LabelIDs())
	assert.Nil(t, got.MilestoneID())
}

func TestIssueRepository_GetInState(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewIssueRepository(gdb)
	ctx := context.Background()
	p := createProject(t, gdb, "alpha")
	iss := createIssue(t, gdb, p.ID(), "task")

	got, err := repo.GetInState(ctx, p.ID(), iss.ID(), true)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetInState(ctx, p.ID(), iss.ID(), false)
	require.NoError(t, err)
	assert.NotNil(t, got)

	missing, err := repo.Get(ctx, p.ID(), 42)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIssueRepository_DeleteCascades(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewIssueRepository(gdb)
	events := NewEventRepository(gdb)
	subs := NewIssueSubscriberRepository(gdb)
	reads := NewReadStateRepository(gdb)
	ctx := context.Background()
	p := createProject(t, gdb, "alpha")
	iss := createIssue(t, gdb, p.ID(), "task")
	appendComment(t, gdb, iss, "hello")
	_, err := subs.Add(ctx, p.ID(), iss.ID(), 1)
	require.NoError(t, err)
	require.NoError(t, reads.SaveMarker(ctx, &issue.ReadMarker{UserID: 1, ProjectID: p.ID(), IssueID: iss.ID(), LastEventID: 1}))

	require.NoError(t, repo.Delete(ctx, p.ID(), iss.ID()))

	evs, err := events.ListByIssue(ctx, p.ID(), iss.ID())
	require.NoError(t, err)
	assert.Empty(t, evs)
	ids, err := subs.ListUserIDs(ctx, p.ID(), iss.ID())
	require.NoError(t, err)
	assert.Empty(t, ids)
	marker, err := reads.GetMarker(ctx, 1, p.ID(), iss.ID())
	require.NoError(t, err)
	assert.Nil(t, marker)
}

func TestIssueRepository_List(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewIssueRepository(gdb)
	labels := NewLabelRepository(gdb)
	ctx := context.Background()
	p := createProject(t, gdb, "alpha")

	bug, err := label.NewLabel(p.ID(), "bug", "", false)
	require.NoError(t, err)
	require.NoError(t, labels.Create(ctx, bug))

	crash := createIssue(t, gdb, p.ID(), "Crash on start")
	crash.AddLabel(bug.ID())
	require.NoError(t, repo.Update(ctx, crash))

	typo := createIssue(t, gdb, p.ID(), "Typo in docs")
	_, err = typo.Close(1)
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, typo))

	later := createIssue(t, gdb, p.ID(), "Crash later")
	later.SetMilestone(7)
	require.NoError(t, repo.Update(ctx, later))

	list := func(f issue.Filter) []uint {
		t.Helper()
		f.ProjectID = p.ID()
		issues, total, err := repo.List(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, int64(len(issues)), total)
		ids := make([]uint, 0, len(issues))
		for _, iss := range issues {
			ids = append(ids, iss.ID())
		}
		return ids
	}

	assert.Equal(t, []uint{3, 1}, list(issue.Filter{Status: issue.StatusOpen, SortDesc: true}))
	assert.Equal(t, []uint{2}, list(issue.Filter{Status: issue.StatusClosed}))
	assert.Equal(t, []uint{1, 2, 3}, list(issue.Filter{Status: issue.StatusAll}))
	assert.Equal(t, []uint{1}, list(issue.Filter{Status: issue.StatusAll, LabelIDs: []uint{bug.ID()}}))
	assert.Equal(t, []uint{2, 3}, list(issue.Filter{Status: issue.StatusAll, NoLabel: true}))
	assert.Equal(t, []uint{1, 2}, list(issue.Filter{Status: issue.StatusAll, NoMilestone: true}))
	assert.Equal(t, []uint{1, 3}, list(issue.Filter{Status: issue.StatusAll, TitleWords: []string{"crash"}}))
	assert.Equal(t, []uint{3, 1, 2}, list(issue.Filter{Status: issue.StatusAll, SortBy: "title"}))

	issues, total, err := repo.List(ctx, issue.Filter{ProjectID: p.ID(), Status: issue.StatusAll, Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, issues, 1)
	assert.Equal(t, uint(2), issues[0].ID())
}

func TestIssueRepository_DetachMilestoneAndLabel(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewIssueRepository(gdb)
	ctx := context.Background()
	p := createProject(t, gdb, "alpha")
	iss := createIssue(t, gdb, p.ID(), "task")
	iss.SetMilestone(4)
	iss.AddLabel(8)
	require.NoError(t, repo.Update(ctx, iss))

	onMilestone, err := repo.ListByMilestone(ctx, 4)
	require.NoError(t, err)
	require.Len(t, onMilestone, 1)

	require.NoError(t, repo.DetachMilestone(ctx, 4))
	require.NoError(t, repo.DetachLabel(ctx, 8))

	got, err := repo.Get(ctx, p.ID(), iss.ID())
	require.NoError(t, err)
	assert.Nil(t, got.MilestoneID())
	assert.Empty(t, got.LabelIDs())
}
