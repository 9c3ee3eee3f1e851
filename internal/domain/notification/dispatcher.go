package notification

import (
	"context"

	"github.com/orris-inc/tracker/internal/domain/issue"
)

// Dispatcher tells subscribers about issue activity. It is called after the
// change is committed; implementations log their failures instead of returning
// them so a notification problem never fails the operation.
type Dispatcher interface {
	NotifyNewIssue(ctx context.Context, iss *issue.Issue)
	NotifyNewComment(ctx context.Context, iss *issue.Issue, ev *issue.Event)
	NotifyCloseIssue(ctx context.Context, iss *issue.Issue, ev *issue.Event)
	NotifyReopenIssue(ctx context.Context, iss *issue.Issue, ev *issue.Event)
}

// Publisher broadcasts appended events to live activity listeners.
type Publisher interface {
	PublishEvents(ctx context.Context, events ...*issue.Event)
}
