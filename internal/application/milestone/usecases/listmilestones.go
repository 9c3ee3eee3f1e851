package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/milestone/dto"
	"github.com/orris-inc/tracker/internal/domain/milestone"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type ListMilestonesQuery struct {
	ProjectName string
	ActorID     uint
	// Filter is open, closed or all; empty means open.
	Filter string
}

type ListMilestonesUseCase struct {
	milestones milestone.Repository
	access     *common.Access
	logger     logger.Interface
}

func NewListMilestonesUseCase(milestones milestone.Repository, access *common.Access, logger logger.Interface) *ListMilestonesUseCase {
	return &ListMilestonesUseCase{milestones: milestones, access: access, logger: logger}
}

func (uc *ListMilestonesUseCase) Execute(ctx context.Context, query ListMilestonesQuery) ([]*dto.MilestoneDTO, error) {
	filter := milestone.Filter(query.Filter)
	if filter == "" {
		filter = milestone.FilterOpen
	}
	if !filter.IsValid() {
		return nil, errors.NewValidationError("invalid milestone filter", query.Filter)
	}

	p, err := uc.access.Project(ctx, query.ActorID, query.ProjectName)
	if err != nil {
		return nil, err
	}

	milestones, err := uc.milestones.ListByProject(ctx, p.ID(), filter)
	if err != nil {
		uc.logger.Errorw("failed to list milestones", "project_id", p.ID(), "filter", filter, "error", err)
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	return dto.ToMilestoneDTOs(milestones), nil
}
