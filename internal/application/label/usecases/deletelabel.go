package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/label"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type DeleteLabelCommand struct {
	ProjectName string
	ActorID     uint
	LabelID     uint
}

// DeleteLabelUseCase detaches the label from every issue and soft-deletes it.
// No event is recorded on the issues.
type DeleteLabelUseCase struct {
	labels label.Repository
	issues issue.Repository
	access *common.Access
	txMgr  db.Transactor
	logger logger.Interface
}

func NewDeleteLabelUseCase(
	labels label.Repository,
	issues issue.Repository,
	access *common.Access,
	txMgr db.Transactor,
	logger logger.Interface,
) *DeleteLabelUseCase {
	return &DeleteLabelUseCase{labels: labels, issues: issues, access: access, txMgr: txMgr, logger: logger}
}

func (uc *DeleteLabelUseCase) Execute(ctx context.Context, cmd DeleteLabelCommand) error {
	uc.logger.Infow("executing delete label use case", "project", cmd.ProjectName, "label_id", cmd.LabelID, "actor_id", cmd.ActorID)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return err
	}
	p, err := uc.access.Project(ctx, cmd.ActorID, cmd.ProjectName)
	if err != nil {
		return err
	}
	if err := uc.access.RequireInProject(ctx, cmd.ActorID, permission.DeleteTags, p.ID()); err != nil {
		return err
	}

	l, err := uc.labels.GetByID(ctx, p.ID(), cmd.LabelID)
	if err != nil {
		return fmt.Errorf("failed to load label: %w", err)
	}
	if l == nil {
		return errors.NewNotFoundError("label not found")
	}

	l.MarkDeleted()
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.issues.DetachLabel(txCtx, l.ID()); err != nil {
			return fmt.Errorf("failed to detach label: %w", err)
		}
		return uc.labels.Update(txCtx, l)
	})
	if err != nil {
		uc.logger.Errorw("failed to delete label", "label_id", l.ID(), "error", err)
		return err
	}

	uc.logger.Infow("label deleted successfully", "project_id", p.ID(), "label_id", l.ID())
	return nil
}
