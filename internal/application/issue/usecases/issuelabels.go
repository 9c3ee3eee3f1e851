package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/issue/dto"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/label"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type IssueLabelCommand struct {
	IssueRef
	LabelID uint
	ActorID uint
}

type IssueLabelResult struct {
	Issue    *dto.IssueDTO
	Modified bool
}

// IssueLabelUseCase attaches a label to, or detaches it from, an issue. Both
// directions are idempotent and append no event.
type IssueLabelUseCase struct {
	attach bool
	issues issue.Repository
	labels label.Repository
	access *common.Access
	txMgr  db.Transactor
	logger logger.Interface
}

func NewAddLabelUseCase(issues issue.Repository, labels label.Repository, access *common.Access, txMgr db.Transactor, logger logger.Interface) *IssueLabelUseCase {
	return &IssueLabelUseCase{attach: true, issues: issues, labels: labels, access: access, txMgr: txMgr, logger: logger}
}

func NewRemoveLabelUseCase(issues issue.Repository, labels label.Repository, access *common.Access, txMgr db.Transactor, logger logger.Interface) *IssueLabelUseCase {
	return &IssueLabelUseCase{attach: false, issues: issues, labels: labels, access: access, txMgr: txMgr, logger: logger}
}

func (uc *IssueLabelUseCase) Execute(ctx context.Context, cmd IssueLabelCommand) (*IssueLabelResult, error) {
	uc.logger.Infow("executing issue label use case",
		"project", cmd.ProjectName,
		"issue_id", cmd.IssueID,
		"label_id", cmd.LabelID,
		"attach", uc.attach,
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

	l, err := uc.labels.GetByID(ctx, p.ID(), cmd.LabelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load label: %w", err)
	}
	if l == nil {
		return nil, errors.NewNotFoundError("label not found")
	}

	var modified bool
	if uc.attach {
		modified = iss.AddLabel(l.ID())
	} else {
		modified = iss.RemoveLabel(l.ID())
	}
	if !modified {
		return &IssueLabelResult{Issue: dto.ToIssueDTO(iss), Modified: false}, nil
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.issues.Update(txCtx, iss); err != nil {
			uc.logger.Errorw("failed to update issue labels", "issue_id", iss.ID(), "error", err)
			return fmt.Errorf("failed to update issue: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	uc.logger.Infow("issue labels updated successfully", "project_id", p.ID(), "issue_id", iss.ID(), "label_id", l.ID())
	return &IssueLabelResult{Issue: dto.ToIssueDTO(iss), Modified: true}, nil
}
