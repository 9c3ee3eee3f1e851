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

type DeleteCommentCommand struct {
	IssueRef
	EventID uint
	ActorID uint
}

type DeleteCommentUseCase struct {
	issues issue.Repository
	events issue.EventRepository
	access *common.Access
	cache  issue.UnreadCache
	txMgr  db.Transactor
	logger logger.Interface
}

func NewDeleteCommentUseCase(
	issues issue.Repository,
	events issue.EventRepository,
	access *common.Access,
	cache issue.UnreadCache,
	txMgr db.Transactor,
	logger logger.Interface,
) *DeleteCommentUseCase {
	return &DeleteCommentUseCase{
		issues: issues,
		events: events,
		access: access,
		cache:  cache,
		txMgr:  txMgr,
		logger: logger,
	}
}

func (uc *DeleteCommentUseCase) Execute(ctx context.Context, cmd DeleteCommentCommand) error {
	uc.logger.Infow("executing delete comment use case", "project", cmd.ProjectName, "issue_id", cmd.IssueID, "event_id", cmd.EventID, "actor_id", cmd.ActorID)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return err
	}
	p, iss, err := loadIssue(ctx, uc.access, uc.issues, cmd.ActorID, cmd.IssueRef)
	if err != nil {
		return err
	}
	if err := uc.access.RequireInProject(ctx, cmd.ActorID, permission.DeleteComment, p.ID()); err != nil {
		return err
	}
	ev, err := loadComment(ctx, uc.events, p.ID(), iss.ID(), cmd.EventID)
	if err != nil {
		return err
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.events.Delete(txCtx, ev.ID()); err != nil {
			uc.logger.Errorw("failed to delete comment", "event_id", ev.ID(), "error", err)
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	uc.cache.InvalidateProject(ctx, p.ID())

	uc.logger.Infow("comment deleted successfully", "project_id", p.ID(), "issue_id", iss.ID(), "event_id", ev.ID())
	return nil
}
