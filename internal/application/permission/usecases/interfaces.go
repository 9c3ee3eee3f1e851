package usecases

import (
	"context"

	"github.com/orris-inc/tracker/internal/application/permission/dto"
)

type ListGrantsExecutor interface {
	Execute(ctx context.Context, scope Scope) ([]*dto.GrantDTO, error)
}

type ChangeGrantExecutor interface {
	Execute(ctx context.Context, cmd ChangeGrantCommand) (*ChangeGrantResult, error)
}
