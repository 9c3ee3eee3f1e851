package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/milestone/dto"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/milestone"
	"github.com/orris-inc/tracker/internal/domain/notification"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type EditMilestoneCommand struct {
	MilestoneRef
	ActorID uint
	Name    string
	DueDate *time.Time
}

type EditMilestoneResult struct {
	Milestone *dto.MilestoneDTO
	Modified  bool
}

// EditMilestoneUseCase renames a milestone or changes its due date. A rename is
// recorded as CHANGE_MILESTONE on every issue currently on the milestone.
type EditMilestoneUseCase struct {
	milestones milestone.Repository
	issues     issue.Repository
	events     issue.EventRepository
	access     *common.Access
	publisher  notification.Publisher
	cache      issue.UnreadCache
	txMgr      db.Transactor
	logger     logger.Interface
}

func NewEditMilestoneUseCase(
	milestones milestone.Repository,
	issues issue.Repository,
	events issue.EventRepository,
	access *common.Access,
	publisher notification.Publisher,
	cache issue.UnreadCache,
	txMgr db.Transactor,
	logger logger.Interface,
) *EditMilestoneUseCase {
	return &EditMilestoneUseCase{
		milestones: milestones,
		issues:     issues,
		events:     events,
		access:     access,
		publisher:  publisher,
		cache:      cache,
		txMgr:      txMgr,
		logger:     logger,
	}
}

func (uc *EditMilestoneUseCase) Execute(ctx context.Context, cmd EditMilestoneCommand) (*EditMilestoneResult, error) {
	uc.logger.Infow("executing edit milestone use case", "project", cmd.ProjectName, "milestone", cmd.MilestoneName, "actor_id", cmd.ActorID)

	p, m, err := loadMilestone(ctx, uc.access, uc.milestones, cmd.ActorID, permission.ManageTags, cmd.MilestoneRef)
	if err != nil {
		return nil, err
	}

	modified, oldName, err := m.Edit(cmd.Name, cmd.DueDate)
	if err != nil {
		return nil, errors.NewFieldError("name", err.Error())
	}
	if !modified {
		return &EditMilestoneResult{Milestone: dto.ToMilestoneDTO(m)}, nil
	}
	if oldName != "" {
		taken, err := uc.milestones.NameTaken(ctx, p.ID(), m.Name(), m.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to check milestone name: %w", err)
		}
		if taken {
			return nil, nameTakenError()
		}
	}

	var events []*issue.Event
	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.milestones.Update(txCtx, m); err != nil {
			return fmt.Errorf("failed to update milestone: %w", err)
		}
		if oldName == "" {
			return nil
		}

		attached, err := uc.issues.ListByMilestone(txCtx, m.ID())
		if err != nil {
			return fmt.Errorf("failed to list milestone issues: %w", err)
		}
		for _, iss := range attached {
			events = append(events, issue.NewMilestoneRenamed(iss, cmd.ActorID, oldName, m.Name()))
		}
		if len(events) == 0 {
			return nil
		}
		if err := uc.events.Append(txCtx, events...); err != nil {
			return fmt.Errorf("failed to record milestone rename: %w", err)
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Errorw("failed to edit milestone", "milestone_id", m.ID(), "error", txErr)
		return nil, txErr
	}

	if len(events) > 0 {
		uc.cache.InvalidateProject(ctx, p.ID())
		uc.publisher.PublishEvents(ctx, events...)
	}

	uc.logger.Infow("milestone edited successfully", "milestone_id", m.ID(), "renamed_on_issues", len(events))
	return &EditMilestoneResult{Milestone: dto.ToMilestoneDTO(m), Modified: true}, nil
}
