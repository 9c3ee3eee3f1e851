package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/milestone/dto"
	"github.com/orris-inc/tracker/internal/domain/milestone"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type CreateMilestoneCommand struct {
	ProjectName string
	ActorID     uint
	Name        string
	DueDate     *time.Time
}

type CreateMilestoneUseCase struct {
	milestones milestone.Repository
	access     *common.Access
	logger     logger.Interface
}

func NewCreateMilestoneUseCase(milestones milestone.Repository, access *common.Access, logger logger.Interface) *CreateMilestoneUseCase {
	return &CreateMilestoneUseCase{milestones: milestones, access: access, logger: logger}
}

func (uc *CreateMilestoneUseCase) Execute(ctx context.Context, cmd CreateMilestoneCommand) (*dto.MilestoneDTO, error) {
	uc.logger.Infow("executing create milestone use case", "project", cmd.ProjectName, "actor_id", cmd.ActorID)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return nil, err
	}
	p, err := uc.access.Project(ctx, cmd.ActorID, cmd.ProjectName)
	if err != nil {
		return nil, err
	}
	if err := uc.access.RequireInProject(ctx, cmd.ActorID, permission.ManageTags, p.ID()); err != nil {
		return nil, err
	}

	m, err := milestone.NewMilestone(p.ID(), cmd.Name, cmd.DueDate)
	if err != nil {
		return nil, errors.NewFieldError("name", err.Error())
	}
	taken, err := uc.milestones.NameTaken(ctx, p.ID(), m.Name(), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check milestone name: %w", err)
	}
	if taken {
		return nil, nameTakenError()
	}

	if err := uc.milestones.Create(ctx, m); err != nil {
		uc.logger.Errorw("failed to create milestone", "project_id", p.ID(), "name", m.Name(), "error", err)
		return nil, fmt.Errorf("failed to create milestone: %w", err)
	}

	uc.logger.Infow("milestone created successfully", "project_id", p.ID(), "milestone_id", m.ID())
	return dto.ToMilestoneDTO(m), nil
}
