package usecases

import (
	"context"

	"github.com/orris-inc/tracker/internal/application/label/dto"
)

type ListLabelsExecutor interface {
	Execute(ctx context.Context, query ListLabelsQuery) ([]*dto.LabelDTO, error)
}

type SaveLabelExecutor interface {
	Execute(ctx context.Context, cmd SaveLabelCommand) (*SaveLabelResult, error)
}

type DeleteLabelExecutor interface {
	Execute(ctx context.Context, cmd DeleteLabelCommand) error
}
