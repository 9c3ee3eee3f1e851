package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/notification"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/shared/errors"
)

// IssueRef names one issue of a project.
type IssueRef struct {
	ProjectName string
	IssueID     uint
}

// loadIssue resolves a project visible to the actor and one of its issues.
func loadIssue(ctx context.Context, access *common.Access, issues issue.Repository, actorID uint, ref IssueRef) (*project.Project, *issue.Issue, error) {
	p, err := access.Project(ctx, actorID, ref.ProjectName)
	if err != nil {
		return nil, nil, err
	}

	iss, err := issues.Get(ctx, p.ID(), ref.IssueID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load issue: %w", err)
	}
	if iss == nil {
		return nil, nil, errors.NewNotFoundError("issue not found")
	}
	return p, iss, nil
}

// issueValidationError maps domain validation failures onto field errors.
func issueValidationError(err error) error {
	switch {
	case stderrors.Is(err, issue.ErrEmptyTitle), stderrors.Is(err, issue.ErrTitleTooLong):
		return errors.NewFieldError("title", err.Error())
	case stderrors.Is(err, issue.ErrEmptyComment):
		return errors.NewFieldError("comment", err.Error())
	}
	return errors.NewValidationError(err.Error())
}

// eventsAppended runs the post-commit work for new events: live activity and
// unread-count invalidation.
func eventsAppended(ctx context.Context, publisher notification.Publisher, cache issue.UnreadCache, projectID uint, events ...*issue.Event) {
	if len(events) == 0 {
		return
	}
	cache.InvalidateProject(ctx, projectID)
	publisher.PublishEvents(ctx, events...)
}

// notifyStateChange dispatches the notification matching a CLOSE or REOPEN event.
func notifyStateChange(ctx context.Context, dispatcher notification.Dispatcher, iss *issue.Issue, ev *issue.Event) {
	switch ev.Code() {
	case issue.CodeClose:
		dispatcher.NotifyCloseIssue(ctx, iss, ev)
	case issue.CodeReopen:
		dispatcher.NotifyReopenIssue(ctx, iss, ev)
	}
}

func ptr(v uint) *uint { return &v }
