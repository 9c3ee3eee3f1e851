package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/permission"
)

func newListIssues(f *fixture) *ListIssuesUseCase {
	return NewListIssuesUseCase(f.issues, f.labels, f.milestones, f.users, f.settings, f.reads, f.access, f.log)
}

func titles(result *ListIssuesResult) []string {
	out := make([]string, 0, len(result.Issues))
	for _, item := range result.Issues {
		out = append(out, item.Title)
	}
	return out
}

func TestListIssuesUseCase_Execute_Search(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	f.grant(t, alice.ID())

	bug := f.addLabel(t, "bug")
	v1 := f.addMilestone(t, "v1")

	crash := f.addIssue(t, alice.ID(), "Crash on save", "")
	crash.AddLabel(bug.ID())
	crash.SetMilestone(v1.ID())
	require.NoError(t, f.issues.Update(f.ctx, crash))

	slow := f.addIssue(t, bob.ID(), "Slow save", "")
	done := f.addIssue(t, alice.ID(), "Old crash", "")
	_, err := done.Close(alice.ID())
	require.NoError(t, err)
	require.NoError(t, f.issues.Update(f.ctx, done))
	_ = slow

	uc := newListIssues(f)
	tests := []struct {
		name   string
		search string
		sort   string
		want   []string
		errors int
	}{
		{name: "default is open, newest first", want: []string{"Slow save", "Crash on save"}},
		{name: "all", search: "is:all", want: []string{"Old crash", "Slow save", "Crash on save"}},
		{name: "closed", search: "is:closed", want: []string{"Old crash"}},
		{name: "title words", search: "is:all CRASH", want: []string{"Old crash", "Crash on save"}},
		{name: "label", search: "label:bug", want: []string{"Crash on save"}},
		{name: "no label", search: "no:label", want: []string{"Slow save"}},
		{name: "milestone", search: "milestone:v1", want: []string{"Crash on save"}},
		{name: "no milestone", search: "is:all no:milestone", want: []string{"Old crash", "Slow save"}},
		{name: "author", search: "author:bob", want: []string{"Slow save"}},
		{name: "sort by title", search: "is:all", sort: "title", want: []string{"Crash on save", "Old crash", "Slow save"}},
		{name: "unknown label is reported", search: "label:nope", want: []string{"Slow save", "Crash on save"}, errors: 1},
		{name: "unknown filter is reported", search: "color:red save", want: []string{"Slow save", "Crash on save"}, errors: 1},
		{name: "unknown sort falls back", sort: "-weird", want: []string{"Slow save", "Crash on save"}, errors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := uc.Execute(f.ctx, ListIssuesQuery{
				ProjectName: "demo",
				ActorID:     alice.ID(),
				Search:      tt.search,
				Sort:        tt.sort,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(result))
			assert.Len(t, result.Errors, tt.errors)
		})
	}
}

func TestListIssuesUseCase_Execute_PaginationAndUnread(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "alice")
	f.grant(t, alice.ID(), permission.CreateIssue)

	var issues []*issue.Issue
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		issues = append(issues, f.addIssue(t, alice.ID(), title, ""))
	}
	f.addComment(t, issues[4], alice.ID(), "one")
	f.addComment(t, issues[4], alice.ID(), "two")

	uc := newListIssues(f)

	// The default items_per_page fits everything on one page.
	result, err := uc.Execute(f.ctx, ListIssuesQuery{ProjectName: "demo", ActorID: alice.ID()})
	require.NoError(t, err)
	assert.Len(t, result.Issues, 5)
	assert.Equal(t, 25, result.PageSize)

	f.setItemsPerPage(t, 2)
	result, err = uc.Execute(f.ctx, ListIssuesQuery{ProjectName: "demo", ActorID: alice.ID()})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Total)
	assert.Equal(t, []string{"e", "d"}, titles(result))
	assert.Equal(t, int64(2), result.Issues[0].UnreadEvents)
	assert.Zero(t, result.Issues[1].UnreadEvents)

	// A page past the end shows the last page.
	result, err = uc.Execute(f.ctx, ListIssuesQuery{ProjectName: "demo", ActorID: alice.ID(), Page: 9})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Page)
	assert.Equal(t, 2, result.PageSize)
	assert.Equal(t, []string{"a"}, titles(result))
}
