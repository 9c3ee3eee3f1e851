package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type IssueSubscriptionCommand struct {
	IssueRef
	ActorID uint
}

type IssueSubscriptionResult struct {
	Subscribed bool
	Modified   bool
}

// IssueSubscriptionUseCase adds the actor to, or removes them from, the subscriber
// set of an issue. Only subscribing requires a reachable account.
type IssueSubscriptionUseCase struct {
	subscribe   bool
	issues      issue.Repository
	subscribers issue.SubscriberRepository
	users       user.Repository
	access      *common.Access
	logger      logger.Interface
}

func NewSubscribeIssueUseCase(
	issues issue.Repository,
	subscribers issue.SubscriberRepository,
	users user.Repository,
	access *common.Access,
	logger logger.Interface,
) *IssueSubscriptionUseCase {
	return &IssueSubscriptionUseCase{
		subscribe:   true,
		issues:      issues,
		subscribers: subscribers,
		users:       users,
		access:      access,
		logger:      logger,
	}
}

func NewUnsubscribeIssueUseCase(
	issues issue.Repository,
	subscribers issue.SubscriberRepository,
	users user.Repository,
	access *common.Access,
	logger logger.Interface,
) *IssueSubscriptionUseCase {
	return &IssueSubscriptionUseCase{
		issues:      issues,
		subscribers: subscribers,
		users:       users,
		access:      access,
		logger:      logger,
	}
}

func (uc *IssueSubscriptionUseCase) Execute(ctx context.Context, cmd IssueSubscriptionCommand) (*IssueSubscriptionResult, error) {
	uc.logger.Infow("executing issue subscription use case", "project", cmd.ProjectName, "issue_id", cmd.IssueID, "actor_id", cmd.ActorID, "subscribe", uc.subscribe)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return nil, err
	}
	p, iss, err := loadIssue(ctx, uc.access, uc.issues, cmd.ActorID, cmd.IssueRef)
	if err != nil {
		return nil, err
	}

	var modified bool
	if uc.subscribe {
		if err := common.RequireSubscriber(ctx, uc.users, cmd.ActorID); err != nil {
			return nil, err
		}
		modified, err = uc.subscribers.Add(ctx, p.ID(), iss.ID(), cmd.ActorID)
	} else {
		modified, err = uc.subscribers.Remove(ctx, p.ID(), iss.ID(), cmd.ActorID)
	}
	if err != nil {
		uc.logger.Errorw("failed to change issue subscription", "issue_id", iss.ID(), "actor_id", cmd.ActorID, "error", err)
		return nil, fmt.Errorf("failed to change subscription: %w", err)
	}

	if modified {
		uc.logger.Infow("issue subscription changed", "project_id", p.ID(), "issue_id", iss.ID(), "actor_id", cmd.ActorID, "subscribed", uc.subscribe)
	}
	return &IssueSubscriptionResult{Subscribed: uc.subscribe, Modified: modified}, nil
}
