package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/setting/dto"
	"github.com/orris-inc/tracker/internal/domain/setting"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type UpdateSettingsCommand struct {
	ActorID      uint
	ItemsPerPage int
}

type UpdateSettingsResult struct {
	Settings *dto.SettingsDTO
	Modified bool
}

// UpdateSettingsUseCase handles updates of the site settings
type UpdateSettingsUseCase struct {
	settings setting.Repository
	access   *common.Access
	logger   logger.Interface
}

// NewUpdateSettingsUseCase creates a new UpdateSettingsUseCase
func NewUpdateSettingsUseCase(settings setting.Repository, access *common.Access, logger logger.Interface) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{settings: settings, access: access, logger: logger}
}

func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, cmd UpdateSettingsCommand) (*UpdateSettingsResult, error) {
	uc.logger.Infow("executing update settings use case", "items_per_page", cmd.ItemsPerPage, "actor_id", cmd.ActorID)

	if err := requireSettingsManager(ctx, uc.access, cmd.ActorID); err != nil {
		return nil, err
	}

	s, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	changed, err := s.SetItemsPerPage(cmd.ItemsPerPage)
	if err != nil {
		return nil, errors.NewFieldError("items_per_page", err.Error())
	}
	if !changed {
		return &UpdateSettingsResult{Settings: dto.ToSettingsDTO(s)}, nil
	}

	if err := uc.settings.Save(ctx, s); err != nil {
		uc.logger.Errorw("failed to save settings", "error", err)
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	uc.logger.Infow("settings updated successfully", "items_per_page", s.ItemsPerPage())
	return &UpdateSettingsResult{Settings: dto.ToSettingsDTO(s), Modified: true}, nil
}
