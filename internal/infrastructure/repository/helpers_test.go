package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/project"
)

func createProject(t *testing.T, gdb *gorm.DB, name string) *project.Project {
	t.Helper()
	p, err := project.NewProject(name, "Project "+name)
	require.NoError(t, err)
	require.NoError(t, NewProjectRepository(gdb).Create(context.Background(), p))
	return p
}

func createIssue(t *testing.T, gdb *gorm.DB, projectID uint, title string) *issue.Issue {
	t.Helper()
	iss, err := issue.NewIssue(projectID, 1, title, "", nil)
	require.NoError(t, err)
	require.NoError(t, NewIssueRepository(gdb).Create(context.Background(), iss))
	return iss
}

func appendComment(t *testing.T, gdb *gorm.DB, iss *issue.Issue, body string) *issue.Event {
	t.Helper()
	ev, err := issue.NewComment(iss, 1, body)
	require.NoError(t, err)
	require.NoError(t, NewEventRepository(gdb).Append(context.Background(), ev))
	return ev
}

func dueDate(days int) *time.Time {
	d := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return &d
}
