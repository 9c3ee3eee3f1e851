package notification

import (
	"context"

	"github.com/orris-inc/tracker/internal/domain/issue"
	domainnotification "github.com/orris-inc/tracker/internal/domain/notification"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

// LogDispatcher only logs. It is used when email notifications are disabled.
type LogDispatcher struct {
	logger logger.Interface
}

var _ domainnotification.Dispatcher = (*LogDispatcher)(nil)

func NewLogDispatcher(logger logger.Interface) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) NotifyNewIssue(_ context.Context, iss *issue.Issue) {
	d.logger.Debugw("notification skipped", "kind", "new_issue", "project_id", iss.ProjectID(), "issue_id", iss.ID())
}

func (d *LogDispatcher) NotifyNewComment(_ context.Context, iss *issue.Issue, ev *issue.Event) {
	d.logger.Debugw("notification skipped", "kind", "new_comment", "project_id", iss.ProjectID(), "issue_id", iss.ID(), "event_id", ev.ID())
}

func (d *LogDispatcher) NotifyCloseIssue(_ context.Context, iss *issue.Issue, ev *issue.Event) {
	d.logger.Debugw("notification skipped", "kind", "close_issue", "project_id", iss.ProjectID(), "issue_id", iss.ID(), "event_id", ev.ID())
}

func (d *LogDispatcher) NotifyReopenIssue(_ context.Context, iss *issue.Issue, ev *issue.Event) {
	d.logger.Debugw("notification skipped", "kind", "reopen_issue", "project_id", iss.ProjectID(), "issue_id", iss.ID(), "event_id", ev.ID())
}
