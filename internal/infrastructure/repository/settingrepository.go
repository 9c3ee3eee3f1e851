package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/tracker/internal/domain/setting"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tracker/internal/shared/db"
)

const settingsRowID = 1

type SettingRepository struct {
	db *gorm.DB
}

var _ setting.Repository = (*SettingRepository)(nil)

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(ctx context.Context) (*setting.Settings, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.SettingsModel
	if err := tx.First(&model, settingsRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return setting.Default(), nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return setting.Reconstruct(model.ItemsPerPage, model.UpdatedAt), nil
}

func (r *SettingRepository) Save(ctx context.Context, s *setting.Settings) error {
	tx := db.GetTxFromContext(ctx, r.db)

	model := &models.SettingsModel{
		ID:           settingsRowID,
		ItemsPerPage: s.ItemsPerPage(),
		UpdatedAt:    s.UpdatedAt(),
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"items_per_page", "updated_at"}),
	}).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
