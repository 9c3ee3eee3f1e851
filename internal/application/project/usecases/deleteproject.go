package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type DeleteProjectCommand struct {
	ProjectName string
	ActorID     uint
}

// DeleteProjectUseCase removes a project with everything it owns, then drops the
// grants stored on it.
type DeleteProjectUseCase struct {
	projects    project.Repository
	permissions permission.Manager
	access      *common.Access
	cache       issue.UnreadCache
	txMgr       db.Transactor
	logger      logger.Interface
}

func NewDeleteProjectUseCase(
	projects project.Repository,
	permissions permission.Manager,
	access *common.Access,
	cache issue.UnreadCache,
	txMgr db.Transactor,
	logger logger.Interface,
) *DeleteProjectUseCase {
	return &DeleteProjectUseCase{
		projects:    projects,
		permissions: permissions,
		access:      access,
		cache:       cache,
		txMgr:       txMgr,
		logger:      logger,
	}
}

func (uc *DeleteProjectUseCase) Execute(ctx context.Context, cmd DeleteProjectCommand) error {
	uc.logger.Infow("executing delete project use case", "project", cmd.ProjectName, "actor_id", cmd.ActorID)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return err
	}
	p, err := uc.access.Project(ctx, cmd.ActorID, cmd.ProjectName)
	if err != nil {
		return err
	}
	if err := uc.access.RequireInProject(ctx, cmd.ActorID, permission.DeleteProject, p.ID()); err != nil {
		return err
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.projects.Delete(txCtx, p.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete project", "project_id", p.ID(), "error", err)
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if err := uc.permissions.RemoveProject(ctx, p.ID()); err != nil {
		uc.logger.Errorw("failed to remove project grants", "project_id", p.ID(), "error", err)
		return err
	}
	uc.cache.InvalidateProject(ctx, p.ID())

	uc.logger.Infow("project deleted successfully", "project_id", p.ID(), "name", p.Name())
	return nil
}
