package issue

import "context"

// Repository persists issues. Finders return (nil, nil) when nothing matches.
type Repository interface {
	// Create allocates the next id of the project and inserts the issue. Allocation
	// is serialized per project; ids are never reused.
	Create(ctx context.Context, iss *Issue) error
	// Update saves scalar fields, the milestone slot and the label set.
	Update(ctx context.Context, iss *Issue) error
	// Delete removes the issue with its events, label links, subscribers and read
	// markers.
	Delete(ctx context.Context, projectID, id uint) error
	Get(ctx context.Context, projectID, id uint) (*Issue, error)
	// GetInState returns the issue only when its closed flag equals closed.
	GetInState(ctx context.Context, projectID, id uint, closed bool) (*Issue, error)
	List(ctx context.Context, filter Filter) ([]*Issue, int64, error)
	ListIDs(ctx context.Context, projectID uint) ([]uint, error)
	ListByMilestone(ctx context.Context, milestoneID uint) ([]*Issue, error)
	DetachLabel(ctx context.Context, labelID uint) error
	DetachMilestone(ctx context.Context, milestoneID uint) error
}

// EventRepository appends to and reads the per-issue event log.
type EventRepository interface {
	Append(ctx context.Context, events ...*Event) error
	Get(ctx context.Context, projectID, issueID, eventID uint) (*Event, error)
	ListByIssue(ctx context.Context, projectID, issueID uint) ([]*Event, error)
	// ListByProject returns events newest first.
	ListByProject(ctx context.Context, projectID uint, offset, limit int) ([]*Event, int64, error)
	UpdateBody(ctx context.Context, ev *Event) error
	Delete(ctx context.Context, eventID uint) error
	LatestID(ctx context.Context, projectID, issueID uint) (uint, error)
	CountAfter(ctx context.Context, projectID, issueID, afterID uint) (int64, error)
}

// SubscriberRepository manages issue subscriber sets.
type SubscriberRepository interface {
	Add(ctx context.Context, projectID, issueID, userID uint) (bool, error)
	Remove(ctx context.Context, projectID, issueID, userID uint) (bool, error)
	IsSubscribed(ctx context.Context, projectID, issueID, userID uint) (bool, error)
	ListUserIDs(ctx context.Context, projectID, issueID uint) ([]uint, error)
}

// ReadStateRepository stores read markers and answers unread counts.
type ReadStateRepository interface {
	GetMarker(ctx context.Context, userID, projectID, issueID uint) (*ReadMarker, error)
	SaveMarker(ctx context.Context, m *ReadMarker) error
	// CountUnreadIssues counts issues of the project holding at least one event
	// newer than the user's marker; issues never visited count when they have events.
	CountUnreadIssues(ctx context.Context, userID, projectID uint) (int64, error)
	// UnreadEventCounts returns, per issue id, the number of unread events.
	UnreadEventCounts(ctx context.Context, userID, projectID uint, issueIDs []uint) (map[uint]int64, error)
}

// Status filters issues by state in listings.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	StatusAll    Status = "all"
)

// Filter selects issues of one project. Zero-valued fields do not filter.
type Filter struct {
	ProjectID   uint
	Status      Status
	LabelIDs    []uint
	MilestoneID *uint
	NoMilestone bool
	NoLabel     bool
	AuthorID    *uint
	TitleWords  []string
	SortBy      string
	SortDesc    bool
	Offset      int
	Limit       int
}
