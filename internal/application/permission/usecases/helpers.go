package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/errors"
)

// Scope selects which permission table a request works on. An empty ProjectName
// means the global table, which also holds grants on every project.
type Scope struct {
	ActorID     uint
	ProjectName string
}

// resolveScope checks the actor may manage the table and returns the project id
// it is keyed by (nil for the global table).
func resolveScope(ctx context.Context, access *common.Access, scope Scope) (*uint, error) {
	if err := common.RequireLogin(scope.ActorID); err != nil {
		return nil, err
	}
	if scope.ProjectName == "" {
		if err := access.Require(ctx, scope.ActorID, permission.ManageAccounts, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}

	p, err := access.Project(ctx, scope.ActorID, scope.ProjectName)
	if err != nil {
		return nil, err
	}
	if err := access.RequireInProject(ctx, scope.ActorID, permission.ManageProjectPermission, p.ID()); err != nil {
		return nil, err
	}
	id := p.ID()
	return &id, nil
}

// SubjectDirectory names grant subjects and tells whether they exist.
type SubjectDirectory struct {
	users  user.Repository
	groups user.GroupRepository
	teams  user.TeamRepository
}

func NewSubjectDirectory(users user.Repository, groups user.GroupRepository, teams user.TeamRepository) *SubjectDirectory {
	return &SubjectDirectory{users: users, groups: groups, teams: teams}
}

// Name returns the display name of s, or "" when it no longer exists.
func (d *SubjectDirectory) Name(ctx context.Context, s permission.Subject) (string, error) {
	switch s.Kind {
	case permission.KindUser:
		if s.ID == 0 {
			return "Anonymous", nil
		}
		u, err := d.users.GetByID(ctx, s.ID)
		if err != nil || u == nil {
			return "", err
		}
		return u.Username(), nil
	case permission.KindGroup:
		g, err := d.groups.GetByID(ctx, s.ID)
		if err != nil || g == nil {
			return "", err
		}
		return g.Name(), nil
	case permission.KindTeam:
		t, err := d.teams.GetByID(ctx, s.ID)
		if err != nil || t == nil {
			return "", err
		}
		return t.Name(), nil
	}
	return "", nil
}

func (d *SubjectDirectory) require(ctx context.Context, s permission.Subject) error {
	name, err := d.Name(ctx, s)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.Kind, err)
	}
	if name == "" {
		return errors.NewNotFoundError(fmt.Sprintf("%s not found", s.Kind))
	}
	return nil
}
