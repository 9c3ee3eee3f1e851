package label

import "context"

// Repository persists labels. Finders return (nil, nil) when nothing matches and,
// unless stated otherwise, ignore deleted labels.
type Repository interface {
	Create(ctx context.Context, l *Label) error
	Update(ctx context.Context, l *Label) error
	GetByID(ctx context.Context, projectID, id uint) (*Label, error)
	// GetByIDIncludingDeleted resolves a label for historical display.
	GetByIDIncludingDeleted(ctx context.Context, id uint) (*Label, error)
	GetByName(ctx context.Context, projectID uint, name string) (*Label, error)
	ListByProject(ctx context.Context, projectID uint) ([]*Label, error)
	ListByIDs(ctx context.Context, ids []uint) ([]*Label, error)
	NameTaken(ctx context.Context, projectID uint, name string, excludeID uint) (bool, error)
}
