package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/project/dto"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type ListProjectsQuery struct {
	ActorID  uint
	Archived bool
}

// ListProjectsUseCase lists the active or archived projects the actor can see.
type ListProjectsUseCase struct {
	projects project.Repository
	access   *common.Access
	logger   logger.Interface
}

func NewListProjectsUseCase(projects project.Repository, access *common.Access, logger logger.Interface) *ListProjectsUseCase {
	return &ListProjectsUseCase{projects: projects, access: access, logger: logger}
}

func (uc *ListProjectsUseCase) Execute(ctx context.Context, query ListProjectsQuery) ([]*dto.ProjectDTO, error) {
	all, err := uc.projects.List(ctx, query.Archived)
	if err != nil {
		uc.logger.Errorw("failed to list projects", "archived", query.Archived, "error", err)
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	visible := make([]*project.Project, 0, len(all))
	for _, p := range all {
		ok, err := uc.access.CanSee(ctx, query.ActorID, p.ID())
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, p)
		}
	}
	return dto.ToProjectDTOs(visible), nil
}
