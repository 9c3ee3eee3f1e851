package usecases

import (
	"context"

	"github.com/orris-inc/tracker/internal/application/milestone/dto"
)

type ListMilestonesExecutor interface {
	Execute(ctx context.Context, query ListMilestonesQuery) ([]*dto.MilestoneDTO, error)
}

type CreateMilestoneExecutor interface {
	Execute(ctx context.Context, cmd CreateMilestoneCommand) (*dto.MilestoneDTO, error)
}

type EditMilestoneExecutor interface {
	Execute(ctx context.Context, cmd EditMilestoneCommand) (*EditMilestoneResult, error)
}

type ChangeMilestoneStateExecutor interface {
	Execute(ctx context.Context, cmd ChangeMilestoneStateCommand) (*dto.MilestoneDTO, error)
}

type DeleteMilestoneExecutor interface {
	Execute(ctx context.Context, cmd DeleteMilestoneCommand) error
}
