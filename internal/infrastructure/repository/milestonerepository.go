package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/tracker/internal/domain/milestone"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tracker/internal/shared/db"
)

type MilestoneRepository struct {
	db *gorm.DB
}

var _ milestone.Repository = (*MilestoneRepository)(nil)

func NewMilestoneRepository(db *gorm.DB) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

func (r *MilestoneRepository) Create(ctx context.Context, m *milestone.Milestone) error {
	model := mappers.MilestoneToModel(m)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create milestone: %w", err)
	}
	return m.SetID(model.ID)
}

func (r *MilestoneRepository) Update(ctx context.Context, m *milestone.Milestone) error {
	model := mappers.MilestoneToModel(m)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.MilestoneModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":     model.Name,
			"due_date": model.DueDate,
			"closed":   model.Closed,
			"deleted":  model.Deleted,
		}).Error; err != nil {
		return fmt.Errorf("failed to update milestone: %w", err)
	}
	return nil
}

func (r *MilestoneRepository) GetByName(ctx context.Context, projectID uint, name string) (*milestone.Milestone, error) {
	tx := db.GetTxFromContext(ctx, r.db).Scopes(db.NotSoftDeleted(""))
	return r.first(tx, "project_id = ? AND name = ?", projectID, name)
}

func (r *MilestoneRepository) GetByIDIncludingDeleted(ctx context.Context, id uint) (*milestone.Milestone, error) {
	return r.first(db.GetTxFromContext(ctx, r.db), "id = ?", id)
}

func (r *MilestoneRepository) first(tx *gorm.DB, query string, args ...any) (*milestone.Milestone, error) {
	var model models.MilestoneModel
	if err := tx.Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get milestone: %w", err)
	}
	return mappers.MilestoneToDomain(&model), nil
}

func (r *MilestoneRepository) ListByProject(ctx context.Context, projectID uint, filter milestone.Filter) ([]*milestone.Milestone, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Scopes(db.NotSoftDeleted("")).Where("project_id = ?", projectID)

	switch filter {
	case milestone.FilterOpen:
		query = query.Where("closed = ?", false)
	case milestone.FilterClosed:
		query = query.Where("closed = ?", true)
	}

	var rows []*models.MilestoneModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}

	milestones := make([]*milestone.Milestone, 0, len(rows))
	for _, row := range rows {
		milestones = append(milestones, mappers.MilestoneToDomain(row))
	}
	return milestones, nil
}

func (r *MilestoneRepository) NameTaken(ctx context.Context, projectID uint, name string, excludeID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Model(&models.MilestoneModel{}).
		Scopes(db.NotSoftDeleted("")).
		Where("project_id = ? AND name = ?", projectID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check milestone name: %w", err)
	}
	return count > 0, nil
}
