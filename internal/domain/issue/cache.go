package issue

import "context"

// UnreadCache memoizes the number of unread issues per (project, user). Misses
// and backend failures both fall through to the read-state repository.
type UnreadCache interface {
	Get(ctx context.Context, projectID, userID uint) (count int64, ok bool)
	Set(ctx context.Context, projectID, userID uint, count int64)
	// InvalidateProject drops the counts of every user of the project.
	InvalidateProject(ctx context.Context, projectID uint)
	InvalidateUser(ctx context.Context, projectID, userID uint)
}
