package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/issue/dto"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type EditCommentCommand struct {
	IssueRef
	EventID uint
	ActorID uint
	Body    string
}

type EditCommentResult struct {
	Comment  *dto.EventDTO
	Modified bool
}

type EditCommentUseCase struct {
	issues issue.Repository
	events issue.EventRepository
	access *common.Access
	txMgr  db.Transactor
	logger logger.Interface
}

func NewEditCommentUseCase(
	issues issue.Repository,
	events issue.EventRepository,
	access *common.Access,
	txMgr db.Transactor,
	logger logger.Interface,
) *EditCommentUseCase {
	return &EditCommentUseCase{
		issues: issues,
		events: events,
		access: access,
		txMgr:  txMgr,
		logger: logger,
	}
}

func (uc *EditCommentUseCase) Execute(ctx context.Context, cmd EditCommentCommand) (*EditCommentResult, error) {
	uc.logger.Infow("executing edit comment use case", "project", cmd.ProjectName, "issue_id", cmd.IssueID, "event_id", cmd.EventID, "actor_id", cmd.ActorID)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return nil, err
	}
	p, iss, err := loadIssue(ctx, uc.access, uc.issues, cmd.ActorID, cmd.IssueRef)
	if err != nil {
		return nil, err
	}
	ev, err := loadComment(ctx, uc.events, p.ID(), iss.ID(), cmd.EventID)
	if err != nil {
		return nil, err
	}

	privileged, err := uc.access.Has(ctx, cmd.ActorID, permission.ModifyComment, ptr(p.ID()))
	if err != nil {
		return nil, err
	}
	if !ev.EditableBy(cmd.ActorID, privileged) {
		uc.logger.Warnw("comment edit denied", "event_id", ev.ID(), "actor_id", cmd.ActorID)
		return nil, errors.NewForbiddenError("permission denied", string(permission.ModifyComment))
	}

	modified, err := ev.EditBody(cmd.Body)
	if err != nil {
		return nil, issueValidationError(err)
	}
	if !modified {
		return &EditCommentResult{Comment: dto.ToEventDTO(ev), Modified: false}, nil
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.events.UpdateBody(txCtx, ev); err != nil {
			uc.logger.Errorw("failed to update comment", "event_id", ev.ID(), "error", err)
			return fmt.Errorf("failed to update comment: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	uc.logger.Infow("comment edited successfully", "project_id", p.ID(), "issue_id", iss.ID(), "event_id", ev.ID())
	return &EditCommentResult{Comment: dto.ToEventDTO(ev), Modified: true}, nil
}

// loadComment returns a COMMENT event of the issue; any other event is NotFound.
func loadComment(ctx context.Context, events issue.EventRepository, projectID, issueID, eventID uint) (*issue.Event, error) {
	ev, err := events.Get(ctx, projectID, issueID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if ev == nil || !ev.IsComment() {
		return nil, errors.NewNotFoundError("comment not found")
	}
	return ev, nil
}
