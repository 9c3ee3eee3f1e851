package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/label/dto"
	"github.com/orris-inc/tracker/internal/domain/label"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type ListLabelsQuery struct {
	ProjectName string
	ActorID     uint
}

type ListLabelsUseCase struct {
	labels label.Repository
	access *common.Access
	logger logger.Interface
}

func NewListLabelsUseCase(labels label.Repository, access *common.Access, logger logger.Interface) *ListLabelsUseCase {
	return &ListLabelsUseCase{labels: labels, access: access, logger: logger}
}

func (uc *ListLabelsUseCase) Execute(ctx context.Context, query ListLabelsQuery) ([]*dto.LabelDTO, error) {
	p, err := uc.access.Project(ctx, query.ActorID, query.ProjectName)
	if err != nil {
		return nil, err
	}

	labels, err := uc.labels.ListByProject(ctx, p.ID())
	if err != nil {
		uc.logger.Errorw("failed to list labels", "project_id", p.ID(), "error", err)
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return dto.ToLabelDTOs(labels), nil
}
