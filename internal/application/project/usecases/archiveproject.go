package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/project/dto"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type ArchiveProjectCommand struct {
	ProjectName string
	ActorID     uint
}

// ArchiveProjectUseCase archives or unarchives a project. A project already in the
// wanted state is NotFound, like a state-filtered lookup.
type ArchiveProjectUseCase struct {
	archive  bool
	projects project.Repository
	access   *common.Access
	logger   logger.Interface
}

func NewArchiveProjectUseCase(projects project.Repository, access *common.Access, logger logger.Interface) *ArchiveProjectUseCase {
	return &ArchiveProjectUseCase{archive: true, projects: projects, access: access, logger: logger}
}

func NewUnarchiveProjectUseCase(projects project.Repository, access *common.Access, logger logger.Interface) *ArchiveProjectUseCase {
	return &ArchiveProjectUseCase{archive: false, projects: projects, access: access, logger: logger}
}

func (uc *ArchiveProjectUseCase) Execute(ctx context.Context, cmd ArchiveProjectCommand) (*dto.ProjectDTO, error) {
	uc.logger.Infow("executing archive project use case", "project", cmd.ProjectName, "archive", uc.archive, "actor_id", cmd.ActorID)

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

	if uc.archive {
		err = p.Archive()
	} else {
		err = p.Unarchive()
	}
	if err != nil {
		return nil, errors.NewNotFoundError("project not found", err.Error())
	}

	if err := uc.projects.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update project", "project_id", p.ID(), "error", err)
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	uc.logger.Infow("project archive state changed", "project_id", p.ID(), "archived", p.IsArchived())
	return dto.ToProjectDTO(p), nil
}
