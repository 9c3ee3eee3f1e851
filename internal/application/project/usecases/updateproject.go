package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/project/dto"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type UpdateProjectCommand struct {
	ProjectName string
	ActorID     uint
	DisplayName string
}

type UpdateProjectResult struct {
	Project  *dto.ProjectDTO
	Modified bool
}

// UpdateProjectUseCase changes the display name. The URL name never changes.
type UpdateProjectUseCase struct {
	projects project.Repository
	access   *common.Access
	logger   logger.Interface
}

func NewUpdateProjectUseCase(projects project.Repository, access *common.Access, logger logger.Interface) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{projects: projects, access: access, logger: logger}
}

func (uc *UpdateProjectUseCase) Execute(ctx context.Context, cmd UpdateProjectCommand) (*UpdateProjectResult, error) {
	uc.logger.Infow("executing update project use case", "project", cmd.ProjectName, "actor_id", cmd.ActorID)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return nil, err
	}
	p, err := uc.access.Project(ctx, cmd.ActorID, cmd.ProjectName)
	if err != nil {
		return nil, err
	}
	if err := uc.access.RequireInProject(ctx, cmd.ActorID, permission.ModifyProject, p.ID()); err != nil {
		return nil, err
	}

	taken, err := uc.projects.DisplayNameTaken(ctx, cmd.DisplayName, p.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to check display name: %w", err)
	}
	if taken {
		return nil, displayNameTakenError()
	}

	modified, err := p.Rename(cmd.DisplayName)
	if err != nil {
		return nil, projectValidationError(err)
	}
	if !modified {
		return &UpdateProjectResult{Project: dto.ToProjectDTO(p)}, nil
	}

	if err := uc.projects.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update project", "project_id", p.ID(), "error", err)
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	uc.logger.Infow("project updated successfully", "project_id", p.ID())
	return &UpdateProjectResult{Project: dto.ToProjectDTO(p), Modified: true}, nil
}
