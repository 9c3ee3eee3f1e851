package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/errors"
)

func newCreateIssue(f *fixture) *CreateIssueUseCase {
	return NewCreateIssueUseCase(f.issues, f.subs, f.access, f.dispatcher, f.txMgr, f.log)
}

func TestCreateIssueUseCase_Execute_Success(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice")
	f.grant(t, alice.ID(), permission.CreateIssue)
	uc := newCreateIssue(f)

	due := time.Date(2026, 3, 1, 12, 30, 15, 500, time.UTC)
	first, err := uc.Execute(f.ctx, CreateIssueCommand{
		ProjectName: "demo",
		ActorID:     alice.ID(),
		Title:       "  Crash on save  ",
		DueDate:     &due,
		Description: "steps",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Issue.ID)
	assert.Equal(t, "Crash on save", first.Issue.Title)
	assert.False(t, first.Issue.Closed)
	require.NotNil(t, first.Issue.DueDate)
	assert.True(t, due.Truncate(time.Second).Equal(*first.Issue.DueDate))

	second, err := uc.Execute(f.ctx, CreateIssueCommand{ProjectName: "demo", ActorID: alice.ID(), Title: "Second"})
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Issue.ID)

	// Creating an issue records no event.
	assert.Empty(t, f.codes(t, first.Issue.ID))

	subscribed, err := f.subs.IsSubscribed(f.ctx, f.project.ID(), first.Issue.ID, alice.ID())
	require.NoError(t, err)
	assert.True(t, subscribed)

	assert.Equal(t, []string{"new_issue", "new_issue"}, f.dispatcher.kinds())
}

func TestCreateIssueUseCase_Execute_Failures(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	f.grant(t, alice.ID(), permission.CreateIssue)
	f.grant(t, bob.ID(), permission.CreateComment)
	uc := newCreateIssue(f)

	tests := []struct {
		name  string
		cmd   CreateIssueCommand
		check func(error) bool
	}{
		{
			name:  "anonymous",
			cmd:   CreateIssueCommand{ProjectName: "demo", Title: "x"},
			check: errors.IsUnauthorizedError,
		},
		{
			name:  "missing permission",
			cmd:   CreateIssueCommand{ProjectName: "demo", ActorID: bob.ID(), Title: "x"},
			check: errors.IsForbiddenError,
		},
		{
			name:  "unknown project",
			cmd:   CreateIssueCommand{ProjectName: "nope", ActorID: alice.ID(), Title: "x"},
			check: errors.IsNotFoundError,
		},
		{
			name:  "blank title",
			cmd:   CreateIssueCommand{ProjectName: "demo", ActorID: alice.ID(), Title: "   "},
			check: errors.IsValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := uc.Execute(f.ctx, tt.cmd)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, tt.check(err), err.Error())
		})
	}

	assert.Empty(t, f.dispatcher.kinds())
}

func TestCreateIssueUseCase_Execute_NoGrantOnProject(t *testing.T) {
	f := newFixture(t)
	eve := f.addUser(t, "eve")

	_, err := newCreateIssue(f).Execute(f.ctx, CreateIssueCommand{ProjectName: "demo", ActorID: eve.ID(), Title: "x"})
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
	assert.False(t, errors.IsNotFoundError(err))
}
