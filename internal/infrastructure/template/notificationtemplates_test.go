package template

import (
	htmltemplate "html/template"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/shared/logger"
)

func sampleData() NotificationData {
	return NotificationData{
		ProjectName:        "demo",
		ProjectDisplayName: "Demo",
		IssueID:            7,
		IssueTitle:         "Crash on <save>",
		IssueURL:           "http://localhost:8080/projects/demo/issues/7",
		ActorName:          "Alice Martin",
		Body:               "It *crashes*",
		BodyHTML:           htmltemplate.HTML("<p>It <em>crashes</em></p>"),
	}
}

func TestNotificationTemplates_Defaults(t *testing.T) {
	l := NewNotificationTemplates("", logger.NewLogger())
	require.NoError(t, l.Load())

	out, err := l.Render(KindNewComment, sampleData())
	require.NoError(t, err)
	assert.Contains(t, out.Plain, "Alice Martin commented on #7 Crash on <save>:")
	assert.Contains(t, out.Plain, "It *crashes*")
	assert.Contains(t, out.HTML, "<em>crashes</em>")
	assert.Contains(t, out.HTML, "Crash on &lt;save&gt;")

	for _, kind := range []Kind{KindNewIssue, KindCloseIssue, KindReopenIssue} {
		out, err := l.Render(kind, sampleData())
		require.NoError(t, err, kind)
		assert.Contains(t, out.Plain, sampleData().IssueURL, kind)
	}
}

func TestNotificationTemplates_Override(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "close_issue.txt.tmpl"), []byte("closed by {{.ActorName}}"), 0o644))

	l := NewNotificationTemplates(dir, logger.NewLogger())
	require.NoError(t, l.Load())

	out, err := l.Render(KindCloseIssue, sampleData())
	require.NoError(t, err)
	assert.Equal(t, "closed by Alice Martin", out.Plain)
	assert.Contains(t, out.HTML, "closed <a href=")
}

func TestNotificationTemplates_BadOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new_issue.html.tmpl"), []byte("{{.Broken"), 0o644))

	l := NewNotificationTemplates(dir, logger.NewLogger())
	assert.Error(t, l.Load())
}

func TestNotificationTemplates_NotLoaded(t *testing.T) {
	l := NewNotificationTemplates("", logger.NewLogger())
	_, err := l.Render(KindNewIssue, sampleData())
	assert.Error(t, err)
}
