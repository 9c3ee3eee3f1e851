package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type DeleteIssueCommand struct {
	IssueRef
	ActorID uint
}

type DeleteIssueUseCase struct {
	issues issue.Repository
	access *common.Access
	cache  issue.UnreadCache
	txMgr  db.Transactor
	logger logger.Interface
}

func NewDeleteIssueUseCase(
	issues issue.Repository,
	access *common.Access,
	cache issue.UnreadCache,
	txMgr db.Transactor,
	logger logger.Interface,
) *DeleteIssueUseCase {
	return &DeleteIssueUseCase{
		issues: issues,
		access: access,
		cache:  cache,
		txMgr:  txMgr,
		logger: logger,
	}
}

func (uc *DeleteIssueUseCase) Execute(ctx context.Context, cmd DeleteIssueCommand) error {
	uc.logger.Infow("executing delete issue use case", "project", cmd.ProjectName, "issue_id", cmd.IssueID, "actor_id", cmd.ActorID)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return err
	}
	p, iss, err := loadIssue(ctx, uc.access, uc.issues, cmd.ActorID, cmd.IssueRef)
	if err != nil {
		return err
	}
	if err := uc.access.RequireInProject(ctx, cmd.ActorID, permission.DeleteIssue, p.ID()); err != nil {
		return err
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.issues.Delete(txCtx, p.ID(), iss.ID()); err != nil {
			uc.logger.Errorw("failed to delete issue", "project_id", p.ID(), "issue_id", iss.ID(), "error", err)
			return fmt.Errorf("failed to delete issue: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	uc.cache.InvalidateProject(ctx, p.ID())

	uc.logger.Infow("issue deleted successfully", "project_id", p.ID(), "issue_id", iss.ID())
	return nil
}
