package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/orris-inc/tracker/internal/domain/issue"
)

type sentNotification struct {
	kind    string
	issueID uint
	eventID uint
}

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (d *recordingDispatcher) record(kind string, iss *issue.Issue, ev *issue.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := sentNotification{kind: kind, issueID: iss.ID()}
	if ev != nil {
		n.eventID = ev.ID()
	}
	d.sent = append(d.sent, n)
}

func (d *recordingDispatcher) NotifyNewIssue(_ context.Context, iss *issue.Issue) {
	d.record("new_issue", iss, nil)
}

func (d *recordingDispatcher) NotifyNewComment(_ context.Context, iss *issue.Issue, ev *issue.Event) {
	d.record("new_comment", iss, ev)
}

func (d *recordingDispatcher) NotifyCloseIssue(_ context.Context, iss *issue.Issue, ev *issue.Event) {
	d.record("close_issue", iss, ev)
}

func (d *recordingDispatcher) NotifyReopenIssue(_ context.Context, iss *issue.Issue, ev *issue.Event) {
	d.record("reopen_issue", iss, ev)
}

func (d *recordingDispatcher) kinds() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.sent))
	for _, n := range d.sent {
		out = append(out, n.kind)
	}
	return out
}

type recordingPublisher struct {
	codes []issue.Code
}

func (p *recordingPublisher) PublishEvents(_ context.Context, events ...*issue.Event) {
	for _, ev := range events {
		p.codes = append(p.codes, ev.Code())
	}
}

// memoryCache is an UnreadCache that counts invalidations.
type memoryCache struct {
	counts             map[string]int64
	projectInvalidated int
	userInvalidated    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{counts: map[string]int64{}}
}

func cacheKey(projectID, userID uint) string {
	return fmt.Sprintf("%d:%d", projectID, userID)
}

func (c *memoryCache) Get(_ context.Context, projectID, userID uint) (int64, bool) {
	n, ok := c.counts[cacheKey(projectID, userID)]
	return n, ok
}

func (c *memoryCache) Set(_ context.Context, projectID, userID uint, count int64) {
	c.counts[cacheKey(projectID, userID)] = count
}

func (c *memoryCache) InvalidateProject(_ context.Context, projectID uint) {
	c.projectInvalidated++
	prefix := fmt.Sprintf("%d:", projectID)
	for k := range c.counts {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			delete(c.counts, k)
		}
	}
}

func (c *memoryCache) InvalidateUser(_ context.Context, projectID, userID uint) {
	c.userInvalidated++
	delete(c.counts, cacheKey(projectID, userID))
}

type mockTransactor struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}
