package project

import "context"

// Repository persists projects. Finders return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	// Delete removes the project and everything it owns.
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Project, error)
	GetByName(ctx context.Context, name string) (*Project, error)
	// DisplayNameTaken matches case-insensitively, ignoring excludeID.
	DisplayNameTaken(ctx context.Context, displayName string, excludeID uint) (bool, error)
	List(ctx context.Context, archived bool) ([]*Project, error)
}

// SubscriberRepository manages project subscriber sets.
type SubscriberRepository interface {
	Add(ctx context.Context, projectID, userID uint) (bool, error)
	Remove(ctx context.Context, projectID, userID uint) (bool, error)
	IsSubscribed(ctx context.Context, projectID, userID uint) (bool, error)
	ListUserIDs(ctx context.Context, projectID uint) ([]uint, error)
}
