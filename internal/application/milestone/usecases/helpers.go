package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/milestone"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/shared/errors"
)

// MilestoneRef names a milestone of a project. Milestones are addressed by name.
type MilestoneRef struct {
	ProjectName   string
	MilestoneName string
}

// loadMilestone checks login and perm, then resolves the milestone.
func loadMilestone(ctx context.Context, access *common.Access, milestones milestone.Repository, actorID uint, perm permission.Perm, ref MilestoneRef) (*project.Project, *milestone.Milestone, error) {
	if err := common.RequireLogin(actorID); err != nil {
		return nil, nil, err
	}
	p, err := access.Project(ctx, actorID, ref.ProjectName)
	if err != nil {
		return nil, nil, err
	}
	if err := access.RequireInProject(ctx, actorID, perm, p.ID()); err != nil {
		return nil, nil, err
	}

	m, err := milestones.GetByName(ctx, p.ID(), ref.MilestoneName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load milestone: %w", err)
	}
	if m == nil {
		return nil, nil, errors.NewNotFoundError("milestone not found")
	}
	return p, m, nil
}

func nameTakenError() error {
	return errors.NewFieldError("name", "a milestone with this name already exists")
}
