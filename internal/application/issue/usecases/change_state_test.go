package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/errors"
)

func TestChangeIssueStateUseCase_CloseAndReopen(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice")
	f.grant(t, alice.ID(), permission.ManageIssue)
	iss := f.addIssue(t, alice.ID(), "Bug", "")

	closeUC := NewCloseIssueUseCase(f.issues, f.events, f.access, f.dispatcher, f.publisher, f.cache, f.txMgr, f.log)
	reopenUC := NewReopenIssueUseCase(f.issues, f.events, f.access, f.dispatcher, f.publisher, f.cache, f.txMgr, f.log)
	cmd := ChangeIssueStateCommand{IssueRef: f.ref(iss.ID()), ActorID: alice.ID()}

	result, err := closeUC.Execute(f.ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.Issue.Closed)
	assert.Equal(t, string(issue.CodeClose), result.Event.Code)
	assert.True(t, f.reload(t, iss.ID()).IsClosed())

	// Closing a closed issue finds nothing to close.
	_, err = closeUC.Execute(f.ctx, cmd)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	result, err = reopenUC.Execute(f.ctx, cmd)
	require.NoError(t, err)
	assert.False(t, result.Issue.Closed)

	_, err = reopenUC.Execute(f.ctx, cmd)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	assert.Equal(t, []issue.Code{issue.CodeClose, issue.CodeReopen}, f.codes(t, iss.ID()))
	assert.Equal(t, []string{"close_issue", "reopen_issue"}, f.dispatcher.kinds())
	assert.Equal(t, 2, f.cache.projectInvalidated)
}

func TestChangeIssueStateUseCase_RequiresManageIssue(t *testing.T) {
	f := newFixture(t)
	bob := f.addUser(t, "bob")
	f.grant(t, bob.ID(), permission.CreateComment, permission.ModifyIssue)
	iss := f.addIssue(t, bob.ID(), "Bug", "")

	uc := NewCloseIssueUseCase(f.issues, f.events, f.access, f.dispatcher, f.publisher, f.cache, f.txMgr, f.log)
	_, err := uc.Execute(f.ctx, ChangeIssueStateCommand{IssueRef: f.ref(iss.ID()), ActorID: bob.ID()})
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
	assert.False(t, f.reload(t, iss.ID()).IsClosed())
	assert.Empty(t, f.dispatcher.kinds())
}
