package user

import "context"

// Repository persists users. Finders return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
}

type ListFilter struct {
	Page     int
	PageSize int
	// Search matches username, first or last name.
	Search string
}

type GroupRepository interface {
	Create(ctx context.Context, g *Group) error
	Update(ctx context.Context, g *Group) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Group, error)
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	List(ctx context.Context) ([]*Group, error)
}

type TeamRepository interface {
	Create(ctx context.Context, t *Team) error
	Update(ctx context.Context, t *Team) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Team, error)
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	List(ctx context.Context) ([]*Team, error)
}

// MembershipRepository stores user-group, user-team and group-team links. Add and
// Remove report false when the link already exists or does not exist.
type MembershipRepository interface {
	AddUserToGroup(ctx context.Context, userID, groupID uint) (bool, error)
	RemoveUserFromGroup(ctx context.Context, userID, groupID uint) (bool, error)
	AddUserToTeam(ctx context.Context, userID, teamID uint) (bool, error)
	RemoveUserFromTeam(ctx context.Context, userID, teamID uint) (bool, error)
	AddGroupToTeam(ctx context.Context, groupID, teamID uint) (bool, error)
	RemoveGroupFromTeam(ctx context.Context, groupID, teamID uint) (bool, error)
	GroupMembers(ctx context.Context, groupID uint) ([]uint, error)
	TeamUsers(ctx context.Context, teamID uint) ([]uint, error)
	TeamGroups(ctx context.Context, teamID uint) ([]uint, error)
	UserGroups(ctx context.Context, userID uint) ([]uint, error)
	UserTeams(ctx context.Context, userID uint) ([]uint, error)
}
