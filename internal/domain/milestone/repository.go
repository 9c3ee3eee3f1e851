package milestone

import "context"

// Filter selects milestones by state in listings.
type Filter string

const (
	FilterOpen   Filter = "open"
	FilterClosed Filter = "closed"
	FilterAll    Filter = "all"
)

func (f Filter) IsValid() bool {
	return f == FilterOpen || f == FilterClosed || f == FilterAll
}

// Repository persists milestones. Finders return (nil, nil) when nothing matches and
// ignore deleted milestones unless stated otherwise.
type Repository interface {
	Create(ctx context.Context, m *Milestone) error
	Update(ctx context.Context, m *Milestone) error
	GetByName(ctx context.Context, projectID uint, name string) (*Milestone, error)
	// GetByIDIncludingDeleted resolves a milestone for historical display.
	GetByIDIncludingDeleted(ctx context.Context, id uint) (*Milestone, error)
	ListByProject(ctx context.Context, projectID uint, filter Filter) ([]*Milestone, error)
	NameTaken(ctx context.Context, projectID uint, name string, excludeID uint) (bool, error)
}
