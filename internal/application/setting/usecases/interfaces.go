package usecases

import (
	"context"

	"github.com/orris-inc/tracker/internal/application/setting/dto"
)

type GetSettingsExecutor interface {
	Execute(ctx context.Context, actorID uint) (*dto.SettingsDTO, error)
}

type UpdateSettingsExecutor interface {
	Execute(ctx context.Context, cmd UpdateSettingsCommand) (*UpdateSettingsResult, error)
}
