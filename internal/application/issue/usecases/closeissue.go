package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/issue/dto"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/notification"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type ChangeIssueStateCommand struct {
	IssueRef
	ActorID uint
}

type ChangeIssueStateResult struct {
	Issue *dto.IssueDTO
	Event *dto.EventDTO
}

// ChangeIssueStateUseCase closes or reopens an issue. The issue is looked up in the
// state the transition starts from, so closing a closed issue is NotFound.
type ChangeIssueStateUseCase struct {
	closing    bool
	issues     issue.Repository
	events     issue.EventRepository
	access     *common.Access
	dispatcher notification.Dispatcher
	publisher  notification.Publisher
	cache      issue.UnreadCache
	txMgr      db.Transactor
	logger     logger.Interface
}

func NewCloseIssueUseCase(
	issues issue.Repository,
	events issue.EventRepository,
	access *common.Access,
	dispatcher notification.Dispatcher,
	publisher notification.Publisher,
	cache issue.UnreadCache,
	txMgr db.Transactor,
	logger logger.Interface,
) *ChangeIssueStateUseCase {
	return newChangeIssueStateUseCase(true, issues, events, access, dispatcher, publisher, cache, txMgr, logger)
}

func NewReopenIssueUseCase(
	issues issue.Repository,
	events issue.EventRepository,
	access *common.Access,
	dispatcher notification.Dispatcher,
	publisher notification.Publisher,
	cache issue.UnreadCache,
	txMgr db.Transactor,
	logger logger.Interface,
) *ChangeIssueStateUseCase {
	return newChangeIssueStateUseCase(false, issues, events, access, dispatcher, publisher, cache, txMgr, logger)
}

func newChangeIssueStateUseCase(
	closing bool,
	issues issue.Repository,
	events issue.EventRepository,
	access *common.Access,
	dispatcher notification.Dispatcher,
	publisher notification.Publisher,
	cache issue.UnreadCache,
	txMgr db.Transactor,
	logger logger.Interface,
) *ChangeIssueStateUseCase {
	return &ChangeIssueStateUseCase{
		closing:    closing,
		issues:     issues,
		events:     events,
		access:     access,
		dispatcher: dispatcher,
		publisher:  publisher,
		cache:      cache,
		txMgr:      txMgr,
		logger:     logger,
	}
}

func (uc *ChangeIssueStateUseCase) action() string {
	if uc.closing {
		return "close"
	}
	return "reopen"
}

func (uc *ChangeIssueStateUseCase) Execute(ctx context.Context, cmd ChangeIssueStateCommand) (*ChangeIssueStateResult, error) {
	uc.logger.Infow("executing "+uc.action()+" issue use case", "project", cmd.ProjectName, "issue_id", cmd.IssueID, "actor_id", cmd.ActorID)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return nil, err
	}
	p, err := uc.access.Project(ctx, cmd.ActorID, cmd.ProjectName)
	if err != nil {
		return nil, err
	}
	if err := uc.access.RequireInProject(ctx, cmd.ActorID, permission.ManageIssue, p.ID()); err != nil {
		return nil, err
	}

	// Open issues are closed and closed issues are reopened.
	iss, err := uc.issues.GetInState(ctx, p.ID(), cmd.IssueID, !uc.closing)
	if err != nil {
		return nil, fmt.Errorf("failed to load issue: %w", err)
	}
	if iss == nil {
		return nil, errors.NewNotFoundError("issue not found")
	}

	var ev *issue.Event
	if uc.closing {
		ev, err = iss.Close(cmd.ActorID)
	} else {
		ev, err = iss.Reopen(cmd.ActorID)
	}
	if err != nil {
		return nil, errors.NewNotFoundError("issue not found")
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.events.Append(txCtx, ev); err != nil {
			uc.logger.Errorw("failed to append state event", "issue_id", iss.ID(), "error", err)
			return fmt.Errorf("failed to append event: %w", err)
		}
		if err := uc.issues.Update(txCtx, iss); err != nil {
			uc.logger.Errorw("failed to update issue state", "issue_id", iss.ID(), "error", err)
			return fmt.Errorf("failed to update issue: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	eventsAppended(ctx, uc.publisher, uc.cache, p.ID(), ev)
	notifyStateChange(ctx, uc.dispatcher, iss, ev)

	uc.logger.Infow("issue state changed successfully", "project_id", p.ID(), "issue_id", iss.ID(), "closed", iss.IsClosed())
	return &ChangeIssueStateResult{Issue: dto.ToIssueDTO(iss), Event: dto.ToEventDTO(ev)}, nil
}
