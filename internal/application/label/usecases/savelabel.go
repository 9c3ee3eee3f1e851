package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/label/dto"
	"github.com/orris-inc/tracker/internal/domain/label"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

// SaveLabelCommand creates a label when LabelID is zero and edits it otherwise.
type SaveLabelCommand struct {
	ProjectName string
	ActorID     uint
	LabelID     uint
	Name        string
	Color       string
	Inverted    bool
}

type SaveLabelResult struct {
	Label    *dto.LabelDTO
	Modified bool
}

type SaveLabelUseCase struct {
	labels label.Repository
	access *common.Access
	logger logger.Interface
}

func NewSaveLabelUseCase(labels label.Repository, access *common.Access, logger logger.Interface) *SaveLabelUseCase {
	return &SaveLabelUseCase{labels: labels, access: access, logger: logger}
}

func (uc *SaveLabelUseCase) Execute(ctx context.Context, cmd SaveLabelCommand) (*SaveLabelResult, error) {
	uc.logger.Infow("executing save label use case", "project", cmd.ProjectName, "label_id", cmd.LabelID, "actor_id", cmd.ActorID)

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

	var l *label.Label
	modified := true
	if cmd.LabelID == 0 {
		l, err = label.NewLabel(p.ID(), cmd.Name, cmd.Color, cmd.Inverted)
	} else {
		l, err = uc.labels.GetByID(ctx, p.ID(), cmd.LabelID)
		if err != nil {
			return nil, fmt.Errorf("failed to load label: %w", err)
		}
		if l == nil {
			return nil, errors.NewNotFoundError("label not found")
		}
		modified, err = l.Edit(cmd.Name, cmd.Color, cmd.Inverted)
	}
	if err != nil {
		return nil, labelValidationError(err)
	}
	if !modified {
		return &SaveLabelResult{Label: dto.ToLabelDTO(l)}, nil
	}

	taken, err := uc.labels.NameTaken(ctx, p.ID(), l.Name(), l.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to check label name: %w", err)
	}
	if taken {
		return nil, errors.NewFieldError("name", "a label with this name already exists")
	}

	if l.ID() == 0 {
		err = uc.labels.Create(ctx, l)
	} else {
		err = uc.labels.Update(ctx, l)
	}
	if err != nil {
		uc.logger.Errorw("failed to save label", "project_id", p.ID(), "name", l.Name(), "error", err)
		return nil, fmt.Errorf("failed to save label: %w", err)
	}

	uc.logger.Infow("label saved successfully", "project_id", p.ID(), "label_id", l.ID())
	return &SaveLabelResult{Label: dto.ToLabelDTO(l), Modified: true}, nil
}

func labelValidationError(err error) error {
	switch {
	case stderrors.Is(err, label.ErrEmptyName):
		return errors.NewFieldError("name", err.Error())
	case stderrors.Is(err, label.ErrInvalidColor):
		return errors.NewFieldError("color", err.Error())
	}
	return errors.NewValidationError(err.Error())
}
