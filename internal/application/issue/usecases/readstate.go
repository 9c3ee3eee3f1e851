package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

// ReadTracker maintains per-user read markers and answers unread counts. The
// anonymous user (id 0) has no markers: nothing is unread for them.
type ReadTracker struct {
	issues    issue.Repository
	events    issue.EventRepository
	readState issue.ReadStateRepository
	cache     issue.UnreadCache
	txMgr     db.Transactor
	logger    logger.Interface
	now       func() time.Time
}

func NewReadTracker(
	issues issue.Repository,
	events issue.EventRepository,
	readState issue.ReadStateRepository,
	cache issue.UnreadCache,
	txMgr db.Transactor,
	logger logger.Interface,
) *ReadTracker {
	return &ReadTracker{
		issues:    issues,
		events:    events,
		readState: readState,
		cache:     cache,
		txMgr:     txMgr,
		logger:    logger,
		now:       time.Now,
	}
}

// MarkAsRead moves the user's marker to the newest event of the issue and returns
// the last-read event id to highlight from (nil on a first visit).
func (t *ReadTracker) MarkAsRead(ctx context.Context, userID, projectID, issueID uint) (*uint, error) {
	if userID == 0 {
		return nil, nil
	}

	var lastRead *uint
	var advanced bool
	err := t.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		lastRead, advanced, err = t.visit(txCtx, userID, projectID, issueID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if advanced {
		t.cache.InvalidateUser(ctx, projectID, userID)
	}
	return lastRead, nil
}

func (t *ReadTracker) visit(ctx context.Context, userID, projectID, issueID uint) (*uint, bool, error) {
	marker, err := t.readState.GetMarker(ctx, userID, projectID, issueID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load read marker: %w", err)
	}
	latest, err := t.events.LatestID(ctx, projectID, issueID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load latest event: %w", err)
	}

	next, lastRead, advanced := issue.Visit(marker, userID, projectID, issueID, latest, t.now())
	if err := t.readState.SaveMarker(ctx, next); err != nil {
		return nil, false, fmt.Errorf("failed to save read marker: %w", err)
	}
	return lastRead, advanced, nil
}

// UnreadEventCount counts events of the issue newer than the user's marker. A
// never-visited issue has all of its events unread.
func (t *ReadTracker) UnreadEventCount(ctx context.Context, userID, projectID, issueID uint) (int64, error) {
	if userID == 0 {
		return 0, nil
	}

	marker, err := t.readState.GetMarker(ctx, userID, projectID, issueID)
	if err != nil {
		return 0, fmt.Errorf("failed to load read marker: %w", err)
	}
	var after uint
	if marker != nil {
		after = marker.LastEventID
	}

	n, err := t.events.CountAfter(ctx, projectID, issueID, after)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread events: %w", err)
	}
	return n, nil
}

// UnreadEventCounts is UnreadEventCount for several issues at once.
func (t *ReadTracker) UnreadEventCounts(ctx context.Context, userID, projectID uint, issueIDs []uint) (map[uint]int64, error) {
	if userID == 0 || len(issueIDs) == 0 {
		return map[uint]int64{}, nil
	}

	counts, err := t.readState.UnreadEventCounts(ctx, userID, projectID, issueIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread events: %w", err)
	}
	return counts, nil
}

// UnreadIssueCount counts issues of the project with at least one unread event.
// Results are cached per project and user.
func (t *ReadTracker) UnreadIssueCount(ctx context.Context, userID, projectID uint) (int64, error) {
	if userID == 0 {
		return 0, nil
	}
	if n, ok := t.cache.Get(ctx, projectID, userID); ok {
		return n, nil
	}

	n, err := t.readState.CountUnreadIssues(ctx, userID, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread issues: %w", err)
	}
	t.cache.Set(ctx, projectID, userID, n)
	return n, nil
}

// MarkAllAsRead marks every issue of the project as read for the user.
func (t *ReadTracker) MarkAllAsRead(ctx context.Context, userID, projectID uint) error {
	if userID == 0 {
		return nil
	}

	err := t.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		ids, err := t.issues.ListIDs(txCtx, projectID)
		if err != nil {
			return fmt.Errorf("failed to list issues: %w", err)
		}
		for _, id := range ids {
			if _, _, err := t.visit(txCtx, userID, projectID, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.logger.Errorw("failed to mark project as read", "project_id", projectID, "user_id", userID, "error", err)
		return err
	}

	t.cache.InvalidateUser(ctx, projectID, userID)
	t.logger.Infow("project marked as read", "project_id", projectID, "user_id", userID)
	return nil
}
