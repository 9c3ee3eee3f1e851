// Package notification emails issue activity to project and issue subscribers.
package notification

import (
	"context"
	"fmt"
	htmltemplate "html/template"
	"slices"
	"strings"

	"github.com/orris-inc/tracker/internal/domain/issue"
	domainnotification "github.com/orris-inc/tracker/internal/domain/notification"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/infrastructure/email"
	"github.com/orris-inc/tracker/internal/infrastructure/template"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/services/markdown"
)

// TemplateRenderer renders the bodies of one notification kind.
type TemplateRenderer interface {
	Render(kind template.Kind, data template.NotificationData) (*template.Rendered, error)
}

// EmailDispatcher resolves recipients from the subscriber sets and sends one email
// per recipient. Failures are logged, never returned.
type EmailDispatcher struct {
	projects    project.Repository
	projectSubs project.SubscriberRepository
	issueSubs   issue.SubscriberRepository
	users       user.Repository
	sender      email.Sender
	templates   TemplateRenderer
	markdown    markdown.Renderer
	baseURL     string
	logger      logger.Interface
}

var _ domainnotification.Dispatcher = (*EmailDispatcher)(nil)

func NewEmailDispatcher(
	projects project.Repository,
	projectSubs project.SubscriberRepository,
	issueSubs issue.SubscriberRepository,
	users user.Repository,
	sender email.Sender,
	templates TemplateRenderer,
	markdown markdown.Renderer,
	baseURL string,
	logger logger.Interface,
) *EmailDispatcher {
	return &EmailDispatcher{
		projects:    projects,
		projectSubs: projectSubs,
		issueSubs:   issueSubs,
		users:       users,
		sender:      sender,
		templates:   templates,
		markdown:    markdown,
		baseURL:     strings.TrimRight(baseURL, "/"),
		logger:      logger,
	}
}

func (d *EmailDispatcher) NotifyNewIssue(ctx context.Context, iss *issue.Issue) {
	d.dispatch(ctx, template.KindNewIssue, iss, iss.AuthorID(), iss.Description())
}

func (d *EmailDispatcher) NotifyNewComment(ctx context.Context, iss *issue.Issue, ev *issue.Event) {
	d.dispatch(ctx, template.KindNewComment, iss, ev.AuthorID(), ev.Body())
}

func (d *EmailDispatcher) NotifyCloseIssue(ctx context.Context, iss *issue.Issue, ev *issue.Event) {
	d.dispatch(ctx, template.KindCloseIssue, iss, ev.AuthorID(), "")
}

func (d *EmailDispatcher) NotifyReopenIssue(ctx context.Context, iss *issue.Issue, ev *issue.Event) {
	d.dispatch(ctx, template.KindReopenIssue, iss, ev.AuthorID(), "")
}

// Subject formats the subject line shared by every notification of an issue.
func Subject(p *project.Project, iss *issue.Issue) string {
	return fmt.Sprintf("[%s] #%d: %s", p.DisplayName(), iss.ID(), iss.Title())
}

func (d *EmailDispatcher) dispatch(ctx context.Context, kind template.Kind, iss *issue.Issue, actorID uint, body string) {
	log := d.logger.With("kind", kind, "project_id", iss.ProjectID(), "issue_id", iss.ID())

	p, err := d.projects.GetByID(ctx, iss.ProjectID())
	if err != nil || p == nil {
		log.Errorw("failed to load project for notification", "error", err)
		return
	}

	recipients, err := d.recipients(ctx, iss, actorID)
	if err != nil {
		log.Errorw("failed to resolve notification recipients", "error", err)
		return
	}
	if len(recipients) == 0 {
		log.Debugw("no notification recipients")
		return
	}

	data := template.NotificationData{
		ProjectName:        p.Name(),
		ProjectDisplayName: p.DisplayName(),
		IssueID:            iss.ID(),
		IssueTitle:         iss.Title(),
		IssueURL:           fmt.Sprintf("%s/projects/%s/issues/%d", d.baseURL, p.Name(), iss.ID()),
		ActorName:          d.actorName(ctx, actorID),
		Body:               body,
	}
	if body != "" {
		rendered, err := d.markdown.Render(body, p.Name())
		if err != nil {
			log.Warnw("failed to render notification body", "error", err)
			rendered = htmltemplate.HTMLEscapeString(body)
		}
		data.BodyHTML = htmltemplate.HTML(rendered)
	}

	out, err := d.templates.Render(kind, data)
	if err != nil {
		log.Errorw("failed to render notification", "error", err)
		return
	}

	subject := Subject(p, iss)
	msgs := make([]email.Message, 0, len(recipients))
	for _, u := range recipients {
		msgs = append(msgs, email.Message{
			To:        u.Email().String(),
			Subject:   subject,
			PlainBody: out.Plain,
			HTMLBody:  out.HTML,
			Headers: map[string]string{
				"X-Tracker-Project": p.Name(),
				"X-Tracker-Issue":   fmt.Sprintf("%d", iss.ID()),
			},
		})
	}

	if err := d.sender.Send(ctx, msgs...); err != nil {
		log.Errorw("failed to send notification", "recipients", len(msgs), "error", err)
		return
	}
	log.Infow("notification sent", "recipients", len(msgs))
}

// recipients is the union of project and issue subscribers who want to hear about
// an action of actorID.
func (d *EmailDispatcher) recipients(ctx context.Context, iss *issue.Issue, actorID uint) ([]*user.User, error) {
	projectIDs, err := d.projectSubs.ListUserIDs(ctx, iss.ProjectID())
	if err != nil {
		return nil, fmt.Errorf("failed to list project subscribers: %w", err)
	}
	issueIDs, err := d.issueSubs.ListUserIDs(ctx, iss.ProjectID(), iss.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list issue subscribers: %w", err)
	}

	ids := append(projectIDs, issueIDs...)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	users, err := d.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscribers: %w", err)
	}

	out := make([]*user.User, 0, len(users))
	for _, u := range users {
		if u.WantsNotification(actorID) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (d *EmailDispatcher) actorName(ctx context.Context, actorID uint) string {
	if actorID == 0 {
		return "Anonymous"
	}
	u, err := d.users.GetByID(ctx, actorID)
	if err != nil || u == nil {
		return fmt.Sprintf("user %d", actorID)
	}
	return u.DisplayName()
}
