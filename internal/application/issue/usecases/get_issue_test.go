package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/errors"
)

func newGetIssue(f *fixture) *GetIssueUseCase {
	return NewGetIssueUseCase(f.issues, f.events, f.subs, f.labels, f.milestones, f.reads, f.access, f.log)
}

func TestGetIssueUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice")
	f.grant(t, alice.ID())

	bug := f.addLabel(t, "bug")
	f.addLabel(t, "feature")
	v1 := f.addMilestone(t, "v1")
	f.addMilestone(t, "v2")
	closed := f.addMilestone(t, "v0")
	require.NoError(t, closed.Close())
	require.NoError(t, f.milestones.Update(f.ctx, closed))

	iss := f.addIssue(t, alice.ID(), "Bug", "details")
	iss.AddLabel(bug.ID())
	iss.SetMilestone(v1.ID())
	require.NoError(t, f.issues.Update(f.ctx, iss))
	comment := f.addComment(t, iss, alice.ID(), "first")
	_, err := f.subs.Add(f.ctx, f.project.ID(), iss.ID(), alice.ID())
	require.NoError(t, err)

	uc := newGetIssue(f)
	detail, err := uc.Execute(f.ctx, GetIssueQuery{IssueRef: f.ref(iss.ID()), ActorID: alice.ID()})
	require.NoError(t, err)

	assert.Equal(t, "Bug", detail.Issue.Title)
	require.Len(t, detail.Events, 1)
	assert.Equal(t, comment.ID(), detail.Events[0].ID)
	require.Len(t, detail.Labels, 1)
	assert.Equal(t, "bug", detail.Labels[0].Name)
	require.Len(t, detail.AvailableLabels, 1)
	assert.Equal(t, "feature", detail.AvailableLabels[0].Name)
	require.NotNil(t, detail.Milestone)
	assert.Equal(t, "v1", detail.Milestone.Name)
	require.Len(t, detail.AvailableMilestones, 1)
	assert.Equal(t, "v2", detail.AvailableMilestones[0].Name)
	assert.True(t, detail.Subscribed)
	assert.Nil(t, detail.LastReadEventID)

	// The second view sees the marker left by the first.
	f.addComment(t, iss, alice.ID(), "second")
	detail, err = uc.Execute(f.ctx, GetIssueQuery{IssueRef: f.ref(iss.ID()), ActorID: alice.ID()})
	require.NoError(t, err)
	require.NotNil(t, detail.LastReadEventID)
	assert.Equal(t, comment.ID(), *detail.LastReadEventID)
}

func TestGetIssueUseCase_Execute_Visibility(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice")
	f.grant(t, alice.ID(), permission.CreateIssue)
	iss := f.addIssue(t, alice.ID(), "Bug", "")
	uc := newGetIssue(f)

	_, err := uc.Execute(f.ctx, GetIssueQuery{IssueRef: f.ref(iss.ID())})
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorizedError(err))

	// Anonymous grants make the project public.
	f.grant(t, 0, permission.CreateComment)
	detail, err := uc.Execute(f.ctx, GetIssueQuery{IssueRef: f.ref(iss.ID())})
	require.NoError(t, err)
	assert.False(t, detail.Subscribed)
	assert.Nil(t, detail.LastReadEventID)
}
