package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/issue/dto"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/notification"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type UpdateIssueCommand struct {
	IssueRef
	ActorID     uint
	Title       string
	DueDate     *time.Time
	Description string
}

type UpdateIssueResult struct {
	Issue    *dto.IssueDTO
	Modified bool
}

type UpdateIssueUseCase struct {
	issues    issue.Repository
	events    issue.EventRepository
	access    *common.Access
	publisher notification.Publisher
	cache     issue.UnreadCache
	txMgr     db.Transactor
	logger    logger.Interface
}

func NewUpdateIssueUseCase(
	issues issue.Repository,
	events issue.EventRepository,
	access *common.Access,
	publisher notification.Publisher,
	cache issue.UnreadCache,
	txMgr db.Transactor,
	logger logger.Interface,
) *UpdateIssueUseCase {
	return &UpdateIssueUseCase{
		issues:    issues,
		events:    events,
		access:    access,
		publisher: publisher,
		cache:     cache,
		txMgr:     txMgr,
		logger:    logger,
	}
}

func (uc *UpdateIssueUseCase) Execute(ctx context.Context, cmd UpdateIssueCommand) (*UpdateIssueResult, error) {
	uc.logger.Infow("executing update issue use case", "project", cmd.ProjectName, "issue_id", cmd.IssueID, "actor_id", cmd.ActorID)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return nil, err
	}
	p, iss, err := loadIssue(ctx, uc.access, uc.issues, cmd.ActorID, cmd.IssueRef)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(ctx, cmd.ActorID, iss); err != nil {
		return nil, err
	}

	events, modified, err := iss.Update(cmd.ActorID, cmd.Title, cmd.DueDate, cmd.Description)
	if err != nil {
		return nil, issueValidationError(err)
	}
	if !modified {
		return &UpdateIssueResult{Issue: dto.ToIssueDTO(iss), Modified: false}, nil
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if len(events) > 0 {
			if err := uc.events.Append(txCtx, events...); err != nil {
				uc.logger.Errorw("failed to append issue events", "issue_id", iss.ID(), "error", err)
				return fmt.Errorf("failed to append events: %w", err)
			}
		}
		if err := uc.issues.Update(txCtx, iss); err != nil {
			uc.logger.Errorw("failed to update issue", "issue_id", iss.ID(), "error", err)
			return fmt.Errorf("failed to update issue: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	eventsAppended(ctx, uc.publisher, uc.cache, p.ID(), events...)

	uc.logger.Infow("issue updated successfully", "project_id", p.ID(), "issue_id", iss.ID(), "events", len(events))
	return &UpdateIssueResult{Issue: dto.ToIssueDTO(iss), Modified: true}, nil
}

// authorize treats a described issue like its description comment: the author
// or a holder of modify_comment may edit it.
func (uc *UpdateIssueUseCase) authorize(ctx context.Context, actorID uint, iss *issue.Issue) error {
	if iss.HasDescription() {
		privileged, err := uc.access.Has(ctx, actorID, permission.ModifyComment, ptr(iss.ProjectID()))
		if err != nil {
			return err
		}
		if actorID == iss.AuthorID() || privileged {
			return nil
		}
		uc.logger.Warnw("issue edit denied", "issue_id", iss.ID(), "actor_id", actorID)
		return errors.NewForbiddenError("permission denied", string(permission.ModifyComment))
	}
	return uc.access.RequireInProject(ctx, actorID, permission.ModifyIssue, iss.ProjectID())
}
