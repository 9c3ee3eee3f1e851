package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	issueusecases "github.com/orris-inc/tracker/internal/application/issue/usecases"
	"github.com/orris-inc/tracker/internal/application/project/dto"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type GetProjectQuery struct {
	ProjectName string
	ActorID     uint
}

type GetProjectUseCase struct {
	subscribers project.SubscriberRepository
	reads       *issueusecases.ReadTracker
	access      *common.Access
	logger      logger.Interface
}

func NewGetProjectUseCase(
	subscribers project.SubscriberRepository,
	reads *issueusecases.ReadTracker,
	access *common.Access,
	logger logger.Interface,
) *GetProjectUseCase {
	return &GetProjectUseCase{subscribers: subscribers, reads: reads, access: access, logger: logger}
}

func (uc *GetProjectUseCase) Execute(ctx context.Context, query GetProjectQuery) (*dto.ProjectDetailDTO, error) {
	p, err := uc.access.Project(ctx, query.ActorID, query.ProjectName)
	if err != nil {
		return nil, err
	}

	detail := &dto.ProjectDetailDTO{ProjectDTO: dto.ToProjectDTO(p)}
	if query.ActorID == 0 {
		return detail, nil
	}

	detail.Subscribed, err = uc.subscribers.IsSubscribed(ctx, p.ID(), query.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check subscription: %w", err)
	}
	detail.UnreadIssues, err = uc.reads.UnreadIssueCount(ctx, query.ActorID, p.ID())
	if err != nil {
		uc.logger.Errorw("failed to count unread issues", "project_id", p.ID(), "user_id", query.ActorID, "error", err)
		return nil, err
	}
	return detail, nil
}
