package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/setting/dto"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/setting"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

// GetSettingsUseCase handles retrieval of the site settings
type GetSettingsUseCase struct {
	settings setting.Repository
	access   *common.Access
	logger   logger.Interface
}

// NewGetSettingsUseCase creates a new GetSettingsUseCase
func NewGetSettingsUseCase(settings setting.Repository, access *common.Access, logger logger.Interface) *GetSettingsUseCase {
	return &GetSettingsUseCase{settings: settings, access: access, logger: logger}
}

func (uc *GetSettingsUseCase) Execute(ctx context.Context, actorID uint) (*dto.SettingsDTO, error) {
	if err := requireSettingsManager(ctx, uc.access, actorID); err != nil {
		return nil, err
	}

	s, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Errorw("failed to get settings", "error", err)
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return dto.ToSettingsDTO(s), nil
}

func requireSettingsManager(ctx context.Context, access *common.Access, actorID uint) error {
	if err := common.RequireLogin(actorID); err != nil {
		return err
	}
	return access.Require(ctx, actorID, permission.ManageSettings, nil)
}
