package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/milestone"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type DeleteMilestoneCommand struct {
	MilestoneRef
	ActorID uint
}

// DeleteMilestoneUseCase clears the milestone from its issues without recording
// events, then soft-deletes it.
type DeleteMilestoneUseCase struct {
	milestones milestone.Repository
	issues     issue.Repository
	access     *common.Access
	txMgr      db.Transactor
	logger     logger.Interface
}

func NewDeleteMilestoneUseCase(
	milestones milestone.Repository,
	issues issue.Repository,
	access *common.Access,
	txMgr db.Transactor,
	logger logger.Interface,
) *DeleteMilestoneUseCase {
	return &DeleteMilestoneUseCase{milestones: milestones, issues: issues, access: access, txMgr: txMgr, logger: logger}
}

func (uc *DeleteMilestoneUseCase) Execute(ctx context.Context, cmd DeleteMilestoneCommand) error {
	uc.logger.Infow("executing delete milestone use case", "project", cmd.ProjectName, "milestone", cmd.MilestoneName, "actor_id", cmd.ActorID)

	_, m, err := loadMilestone(ctx, uc.access, uc.milestones, cmd.ActorID, permission.DeleteTags, cmd.MilestoneRef)
	if err != nil {
		return err
	}

	m.MarkDeleted()
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.issues.DetachMilestone(txCtx, m.ID()); err != nil {
			return fmt.Errorf("failed to detach milestone: %w", err)
		}
		return uc.milestones.Update(txCtx, m)
	})
	if err != nil {
		uc.logger.Errorw("failed to delete milestone", "milestone_id", m.ID(), "error", err)
		return err
	}

	uc.logger.Infow("milestone deleted successfully", "milestone_id", m.ID())
	return nil
}
