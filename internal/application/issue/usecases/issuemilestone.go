package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/issue/dto"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/milestone"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type IssueMilestoneCommand struct {
	IssueRef
	MilestoneName string
	ActorID       uint
}

type IssueMilestoneResult struct {
	Issue    *dto.IssueDTO
	Modified bool
}

// IssueMilestoneUseCase fills or clears the milestone slot of an issue. Setting
// replaces the current milestone; unsetting only clears the named milestone.
type IssueMilestoneUseCase struct {
	set        bool
	issues     issue.Repository
	milestones milestone.Repository
	access     *common.Access
	txMgr      db.Transactor
	logger     logger.Interface
}

func NewSetMilestoneUseCase(issues issue.Repository, milestones milestone.Repository, access *common.Access, txMgr db.Transactor, logger logger.Interface) *IssueMilestoneUseCase {
	return &IssueMilestoneUseCase{set: true, issues: issues, milestones: milestones, access: access, txMgr: txMgr, logger: logger}
}

func NewUnsetMilestoneUseCase(issues issue.Repository, milestones milestone.Repository, access *common.Access, txMgr db.Transactor, logger logger.Interface) *IssueMilestoneUseCase {
	return &IssueMilestoneUseCase{set: false, issues: issues, milestones: milestones, access: access, txMgr: txMgr, logger: logger}
}

func (uc *IssueMilestoneUseCase) Execute(ctx context.Context, cmd IssueMilestoneCommand) (*IssueMilestoneResult, error) {
	uc.logger.Infow("executing issue milestone use case",
		"project", cmd.ProjectName,
		"issue_id", cmd.IssueID,
		"milestone", cmd.MilestoneName,
		"set", uc.set,
	)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return nil, err
	}
	p, iss, err := loadIssue(ctx, uc.access, uc.issues, cmd.ActorID, cmd.IssueRef)
	if err != nil {
		return nil, err
	}
	if err := uc.access.RequireInProject(ctx, cmd.ActorID, permission.ManageTags, p.ID()); err != nil {
		return nil, err
	}

	m, err := uc.milestones.GetByName(ctx, p.ID(), cmd.MilestoneName)
	if err != nil {
		return nil, fmt.Errorf("failed to load milestone: %w", err)
	}
	if m == nil {
		return nil, errors.NewNotFoundError("milestone not found")
	}

	var modified bool
	if uc.set {
		modified = iss.SetMilestone(m.ID())
	} else {
		modified = iss.UnsetMilestone(m.ID())
	}
	if !modified {
		return &IssueMilestoneResult{Issue: dto.ToIssueDTO(iss), Modified: false}, nil
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.issues.Update(txCtx, iss); err != nil {
			uc.logger.Errorw("failed to update issue milestone", "issue_id", iss.ID(), "error", err)
			return fmt.Errorf("failed to update issue: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	uc.logger.Infow("issue milestone updated successfully", "project_id", p.ID(), "issue_id", iss.ID(), "milestone_id", m.ID())
	return &IssueMilestoneResult{Issue: dto.ToIssueDTO(iss), Modified: true}, nil
}
