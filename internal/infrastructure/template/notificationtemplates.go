// Package template loads the email templates used for issue notifications.
package template

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"os"
	"path/filepath"
	texttemplate "text/template"

	"github.com/orris-inc/tracker/internal/shared/logger"
)

// Kind names one notification template pair.
type Kind string

const (
	KindNewIssue    Kind = "new_issue"
	KindNewComment  Kind = "new_comment"
	KindCloseIssue  Kind = "close_issue"
	KindReopenIssue Kind = "reopen_issue"
)

var kinds = []Kind{KindNewIssue, KindNewComment, KindCloseIssue, KindReopenIssue}

//go:embed defaults/*.tmpl
var defaults embed.FS

// NotificationData is what the templates can reference.
type NotificationData struct {
	ProjectName        string
	ProjectDisplayName string
	IssueID            uint
	IssueTitle         string
	IssueURL           string
	ActorName          string
	Body               string
	BodyHTML           htmltemplate.HTML
}

// Rendered holds both bodies of one email.
type Rendered struct {
	Plain string
	HTML  string
}

type templatePair struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

// NotificationTemplates renders notification emails. Files named
// <kind>.txt.tmpl / <kind>.html.tmpl in the override directory replace the
// built-in versions.
type NotificationTemplates struct {
	templates map[Kind]templatePair
	path      string
	logger    logger.Interface
}

func NewNotificationTemplates(path string, logger logger.Interface) *NotificationTemplates {
	return &NotificationTemplates{
		templates: make(map[Kind]templatePair),
		path:      path,
		logger:    logger,
	}
}

// Load parses the built-in templates and any overrides. A missing override
// directory is not an error.
func (l *NotificationTemplates) Load() error {
	for _, kind := range kinds {
		textSrc, err := l.source(kind, "txt")
		if err != nil {
			return err
		}
		htmlSrc, err := l.source(kind, "html")
		if err != nil {
			return err
		}

		textTmpl, err := texttemplate.New(string(kind)).Parse(textSrc)
		if err != nil {
			return fmt.Errorf("failed to parse %s text template: %w", kind, err)
		}
		htmlTmpl, err := htmltemplate.New(string(kind)).Parse(htmlSrc)
		if err != nil {
			return fmt.Errorf("failed to parse %s html template: %w", kind, err)
		}
		l.templates[kind] = templatePair{text: textTmpl, html: htmlTmpl}
	}

	l.logger.Infow("notification templates loaded", "count", len(l.templates), "override_path", l.path)
	return nil
}

func (l *NotificationTemplates) source(kind Kind, ext string) (string, error) {
	name := fmt.Sprintf("%s.%s.tmpl", kind, ext)

	if l.path != "" {
		content, err := os.ReadFile(filepath.Join(l.path, name))
		if err == nil {
			l.logger.Infow("using custom notification template", "file", name)
			return string(content), nil
		}
		if !os.IsNotExist(err) {
			l.logger.Warnw("failed to read notification template",
				"file", name,
				"error", err,
			)
		}
	}

	content, err := defaults.ReadFile("defaults/" + name)
	if err != nil {
		return "", fmt.Errorf("missing built-in template %s: %w", name, err)
	}
	return string(content), nil
}

// Render executes the template pair of kind.
func (l *NotificationTemplates) Render(kind Kind, data NotificationData) (*Rendered, error) {
	pair, ok := l.templates[kind]
	if !ok {
		return nil, fmt.Errorf("notification template %s is not loaded", kind)
	}

	var plain, html bytes.Buffer
	if err := pair.text.Execute(&plain, data); err != nil {
		return nil, fmt.Errorf("failed to render %s text template: %w", kind, err)
	}
	if err := pair.html.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render %s html template: %w", kind, err)
	}
	return &Rendered{Plain: plain.String(), HTML: html.String()}, nil
}
