package issue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssue(t *testing.T) *Issue {
	t.Helper()
	iss, err := NewIssue(1, 7, "Bug A", "", nil)
	require.NoError(t, err)
	require.NoError(t, iss.SetID(1))
	return iss
}

func TestNewIssue(t *testing.T) {
	iss, err := NewIssue(1, 7, "  Bug A  ", "steps", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bug A", iss.Title())
	assert.False(t, iss.IsClosed())
	assert.Empty(t, iss.LabelIDs())
	assert.Zero(t, iss.ID())

	_, err = NewIssue(1, 7, "   ", "", nil)
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestIssue_SetID(t *testing.T) {
	iss := newTestIssue(t)
	assert.Error(t, iss.SetID(2))
}

func TestIssue_UpdateRename(t *testing.T) {
	iss := newTestIssue(t)

	events, modified, err := iss.Update(9, "Bug A fixed", nil, "")
	require.NoError(t, err)
	assert.True(t, modified)
	require.Len(t, events, 1)
	assert.Equal(t, CodeRename, events[0].Code())
	assert.Equal(t, RenamePayload{OldTitle: "Bug A", NewTitle: "Bug A fixed"}, events[0].Payload())
	assert.Equal(t, uint(9), events[0].AuthorID())
	assert.Equal(t, "Bug A fixed", iss.Title())
}

func TestIssue_UpdateNotModified(t *testing.T) {
	iss := newTestIssue(t)

	events, modified, err := iss.Update(9, "Bug A", nil, "")
	require.NoError(t, err)
	assert.False(t, modified)
	assert.Empty(t, events)
}

func TestIssue_UpdateDescriptionHasNoEvent(t *testing.T) {
	iss := newTestIssue(t)

	events, modified, err := iss.Update(9, "Bug A", nil, "new description")
	require.NoError(t, err)
	assert.True(t, modified)
	assert.Empty(t, events)
	assert.Equal(t, "new description", iss.Description())
	assert.True(t, iss.HasDescription())
}

func TestIssue_UpdateDueDate(t *testing.T) {
	d1 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	iss := newTestIssue(t)

	events, _, err := iss.Update(9, "Bug A", &d1, "")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, SetDueDatePayload{DueDate: d1.Unix()}, events[0].Payload())

	events, _, err = iss.Update(9, "Bug A", &d2, "")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ChangeDueDatePayload{OldDueDate: d1.Unix(), NewDueDate: d2.Unix()}, events[0].Payload())

	same := d2.Add(300 * time.Millisecond)
	events, modified, err := iss.Update(9, "Bug A", &same, "")
	require.NoError(t, err)
	assert.False(t, modified, "sub-second differences are not a change")
	assert.Empty(t, events)

	events, _, err = iss.Update(9, "Bug A", nil, "")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, UnsetDueDatePayload{DueDate: d2.Unix()}, events[0].Payload())
	assert.Nil(t, iss.DueDate())
}

func TestIssue_UpdateRenameAndDueDateOrder(t *testing.T) {
	d := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	iss := newTestIssue(t)

	events, modified, err := iss.Update(9, "Renamed", &d, "text")
	require.NoError(t, err)
	assert.True(t, modified)
	require.Len(t, events, 2)
	assert.Equal(t, CodeRename, events[0].Code())
	assert.Equal(t, CodeSetDueDate, events[1].Code())
}

func TestIssue_CloseReopen(t *testing.T) {
	iss := newTestIssue(t)

	ev, err := iss.Close(9)
	require.NoError(t, err)
	assert.Equal(t, CodeClose, ev.Code())
	assert.True(t, iss.IsClosed())

	_, err = iss.Close(9)
	assert.ErrorIs(t, err, ErrAlreadyClosed)

	ev, err = iss.Reopen(9)
	require.NoError(t, err)
	assert.Equal(t, CodeReopen, ev.Code())
	assert.False(t, iss.IsClosed())

	_, err = iss.Reopen(9)
	assert.ErrorIs(t, err, ErrAlreadyOpen)
}

func TestIssue_ToggleState(t *testing.T) {
	iss := newTestIssue(t)

	assert.Equal(t, CodeClose, iss.ToggleState(9).Code())
	assert.True(t, iss.IsClosed())
	assert.Equal(t, CodeReopen, iss.ToggleState(9).Code())
	assert.False(t, iss.IsClosed())
}

func TestIssue_Labels(t *testing.T) {
	iss := newTestIssue(t)

	assert.True(t, iss.AddLabel(3))
	assert.False(t, iss.AddLabel(3))
	assert.Equal(t, []uint{3}, iss.LabelIDs())

	assert.True(t, iss.RemoveLabel(3))
	assert.False(t, iss.RemoveLabel(3))
	assert.Empty(t, iss.LabelIDs())
}

func TestIssue_MilestoneSlot(t *testing.T) {
	iss := newTestIssue(t)

	assert.True(t, iss.SetMilestone(4))
	assert.False(t, iss.SetMilestone(4))
	assert.True(t, iss.SetMilestone(5), "a new milestone replaces the previous one")
	require.NotNil(t, iss.MilestoneID())
	assert.Equal(t, uint(5), *iss.MilestoneID())

	assert.False(t, iss.UnsetMilestone(4), "only the current milestone can be removed")
	assert.True(t, iss.UnsetMilestone(5))
	assert.Nil(t, iss.MilestoneID())
}
