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
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type CreateIssueCommand struct {
	ProjectName string
	ActorID     uint
	Title       string
	DueDate     *time.Time
	Description string
}

type CreateIssueResult struct {
	Issue *dto.IssueDTO
}

type CreateIssueUseCase struct {
	issues      issue.Repository
	subscribers issue.SubscriberRepository
	access      *common.Access
	dispatcher  notification.Dispatcher
	txMgr       db.Transactor
	logger      logger.Interface
}

func NewCreateIssueUseCase(
	issues issue.Repository,
	subscribers issue.SubscriberRepository,
	access *common.Access,
	dispatcher notification.Dispatcher,
	txMgr db.Transactor,
	logger logger.Interface,
) *CreateIssueUseCase {
	return &CreateIssueUseCase{
		issues:      issues,
		subscribers: subscribers,
		access:      access,
		dispatcher:  dispatcher,
		txMgr:       txMgr,
		logger:      logger,
	}
}

func (uc *CreateIssueUseCase) Execute(ctx context.Context, cmd CreateIssueCommand) (*CreateIssueResult, error) {
	uc.logger.Infow("executing create issue use case", "project", cmd.ProjectName, "actor_id", cmd.ActorID)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return nil, err
	}
	p, err := uc.access.Project(ctx, cmd.ActorID, cmd.ProjectName)
	if err != nil {
		return nil, err
	}
	if err := uc.access.RequireInProject(ctx, cmd.ActorID, permission.CreateIssue, p.ID()); err != nil {
		return nil, err
	}

	iss, err := issue.NewIssue(p.ID(), cmd.ActorID, cmd.Title, cmd.Description, cmd.DueDate)
	if err != nil {
		return nil, issueValidationError(err)
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.issues.Create(txCtx, iss); err != nil {
			uc.logger.Errorw("failed to create issue", "project_id", p.ID(), "error", err)
			return fmt.Errorf("failed to create issue: %w", err)
		}
		if _, err := uc.subscribers.Add(txCtx, p.ID(), iss.ID(), cmd.ActorID); err != nil {
			uc.logger.Errorw("failed to subscribe issue author", "issue_id", iss.ID(), "error", err)
			return fmt.Errorf("failed to subscribe author: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	uc.dispatcher.NotifyNewIssue(ctx, iss)

	uc.logger.Infow("issue created successfully", "project_id", p.ID(), "issue_id", iss.ID())
	return &CreateIssueResult{Issue: dto.ToIssueDTO(iss)}, nil
}
