package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/milestone/dto"
	"github.com/orris-inc/tracker/internal/domain/milestone"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type ChangeMilestoneStateCommand struct {
	MilestoneRef
	ActorID uint
}

// ChangeMilestoneStateUseCase closes or reopens a milestone. A milestone already in
// the wanted state is NotFound.
type ChangeMilestoneStateUseCase struct {
	closing    bool
	milestones milestone.Repository
	access     *common.Access
	logger     logger.Interface
}

func NewCloseMilestoneUseCase(milestones milestone.Repository, access *common.Access, logger logger.Interface) *ChangeMilestoneStateUseCase {
	return &ChangeMilestoneStateUseCase{closing: true, milestones: milestones, access: access, logger: logger}
}

func NewReopenMilestoneUseCase(milestones milestone.Repository, access *common.Access, logger logger.Interface) *ChangeMilestoneStateUseCase {
	return &ChangeMilestoneStateUseCase{closing: false, milestones: milestones, access: access, logger: logger}
}

func (uc *ChangeMilestoneStateUseCase) Execute(ctx context.Context, cmd ChangeMilestoneStateCommand) (*dto.MilestoneDTO, error) {
	uc.logger.Infow("executing change milestone state use case", "project", cmd.ProjectName, "milestone", cmd.MilestoneName, "close", uc.closing)

	_, m, err := loadMilestone(ctx, uc.access, uc.milestones, cmd.ActorID, permission.ManageTags, cmd.MilestoneRef)
	if err != nil {
		return nil, err
	}

	if uc.closing {
		err = m.Close()
	} else {
		err = m.Reopen()
	}
	if err != nil {
		return nil, errors.NewNotFoundError("milestone not found", err.Error())
	}

	if err := uc.milestones.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to update milestone", "milestone_id", m.ID(), "error", err)
		return nil, fmt.Errorf("failed to update milestone: %w", err)
	}

	uc.logger.Infow("milestone state changed", "milestone_id", m.ID(), "closed", m.IsClosed())
	return dto.ToMilestoneDTO(m), nil
}
