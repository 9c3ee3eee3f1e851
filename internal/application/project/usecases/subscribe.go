package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type ProjectSubscriptionCommand struct {
	ProjectName string
	ActorID     uint
}

type ProjectSubscriptionResult struct {
	Subscribed bool
	Modified   bool
}

// ProjectSubscriptionUseCase adds or removes the actor from the project
// subscribers.
type ProjectSubscriptionUseCase struct {
	subscribe   bool
	subscribers project.SubscriberRepository
	users       user.Repository
	access      *common.Access
	logger      logger.Interface
}

func NewSubscribeProjectUseCase(subscribers project.SubscriberRepository, users user.Repository, access *common.Access, logger logger.Interface) *ProjectSubscriptionUseCase {
	return &ProjectSubscriptionUseCase{subscribe: true, subscribers: subscribers, users: users, access: access, logger: logger}
}

func NewUnsubscribeProjectUseCase(subscribers project.SubscriberRepository, users user.Repository, access *common.Access, logger logger.Interface) *ProjectSubscriptionUseCase {
	return &ProjectSubscriptionUseCase{subscribe: false, subscribers: subscribers, users: users, access: access, logger: logger}
}

func (uc *ProjectSubscriptionUseCase) Execute(ctx context.Context, cmd ProjectSubscriptionCommand) (*ProjectSubscriptionResult, error) {
	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return nil, err
	}
	p, err := uc.access.Project(ctx, cmd.ActorID, cmd.ProjectName)
	if err != nil {
		return nil, err
	}

	var modified bool
	if uc.subscribe {
		if err := common.RequireSubscriber(ctx, uc.users, cmd.ActorID); err != nil {
			return nil, err
		}
		modified, err = uc.subscribers.Add(ctx, p.ID(), cmd.ActorID)
	} else {
		modified, err = uc.subscribers.Remove(ctx, p.ID(), cmd.ActorID)
	}
	if err != nil {
		uc.logger.Errorw("failed to change project subscription", "project_id", p.ID(), "user_id", cmd.ActorID, "error", err)
		return nil, fmt.Errorf("failed to change subscription: %w", err)
	}

	if modified {
		uc.logger.Infow("project subscription changed", "project_id", p.ID(), "user_id", cmd.ActorID, "subscribed", uc.subscribe)
	}
	return &ProjectSubscriptionResult{Subscribed: uc.subscribe, Modified: modified}, nil
}
