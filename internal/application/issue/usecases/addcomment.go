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
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type AddCommentCommand struct {
	IssueRef
	ActorID     uint
	Body        string
	ToggleState bool
}

type AddCommentResult struct {
	Comment *dto.EventDTO
	// StateEvent is the CLOSE or REOPEN event when the comment toggled the state.
	StateEvent *dto.EventDTO
	Issue      *dto.IssueDTO
}

type AddCommentUseCase struct {
	issues      issue.Repository
	events      issue.EventRepository
	subscribers issue.SubscriberRepository
	access      *common.Access
	dispatcher  notification.Dispatcher
	publisher   notification.Publisher
	cache       issue.UnreadCache
	txMgr       db.Transactor
	logger      logger.Interface
}

func NewAddCommentUseCase(
	issues issue.Repository,
	events issue.EventRepository,
	subscribers issue.SubscriberRepository,
	access *common.Access,
	dispatcher notification.Dispatcher,
	publisher notification.Publisher,
	cache issue.UnreadCache,
	txMgr db.Transactor,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		issues:      issues,
		events:      events,
		subscribers: subscribers,
		access:      access,
		dispatcher:  dispatcher,
		publisher:   publisher,
		cache:       cache,
		txMgr:       txMgr,
		logger:      logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error) {
	uc.logger.Infow("executing add comment use case",
		"project", cmd.ProjectName,
		"issue_id", cmd.IssueID,
		"actor_id", cmd.ActorID,
		"toggle_state", cmd.ToggleState,
	)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return nil, err
	}
	p, iss, err := loadIssue(ctx, uc.access, uc.issues, cmd.ActorID, cmd.IssueRef)
	if err != nil {
		return nil, err
	}
	if err := uc.access.RequireInProject(ctx, cmd.ActorID, permission.CreateComment, p.ID()); err != nil {
		return nil, err
	}
	if cmd.ToggleState {
		if err := uc.access.RequireInProject(ctx, cmd.ActorID, permission.ManageIssue, p.ID()); err != nil {
			return nil, err
		}
	}

	comment, err := issue.NewComment(iss, cmd.ActorID, cmd.Body)
	if err != nil {
		return nil, issueValidationError(err)
	}
	appended := []*issue.Event{comment}

	var stateEvent *issue.Event
	if cmd.ToggleState {
		stateEvent = iss.ToggleState(cmd.ActorID)
		appended = append(appended, stateEvent)
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.events.Append(txCtx, appended...); err != nil {
			uc.logger.Errorw("failed to save comment", "issue_id", iss.ID(), "error", err)
			return fmt.Errorf("failed to save comment: %w", err)
		}
		if stateEvent != nil {
			if err := uc.issues.Update(txCtx, iss); err != nil {
				uc.logger.Errorw("failed to update issue state", "issue_id", iss.ID(), "error", err)
				return fmt.Errorf("failed to update issue: %w", err)
			}
		}
		if _, err := uc.subscribers.Add(txCtx, p.ID(), iss.ID(), cmd.ActorID); err != nil {
			uc.logger.Errorw("failed to subscribe commenter", "issue_id", iss.ID(), "error", err)
			return fmt.Errorf("failed to subscribe commenter: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	eventsAppended(ctx, uc.publisher, uc.cache, p.ID(), appended...)
	uc.dispatcher.NotifyNewComment(ctx, iss, comment)
	if stateEvent != nil {
		notifyStateChange(ctx, uc.dispatcher, iss, stateEvent)
	}

	uc.logger.Infow("comment added successfully", "project_id", p.ID(), "issue_id", iss.ID(), "event_id", comment.ID())
	return &AddCommentResult{
		Comment:    dto.ToEventDTO(comment),
		StateEvent: dto.ToEventDTO(stateEvent),
		Issue:      dto.ToIssueDTO(iss),
	}, nil
}
