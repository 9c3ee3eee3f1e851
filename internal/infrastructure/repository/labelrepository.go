package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/tracker/internal/domain/label"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tracker/internal/shared/db"
)

type LabelRepository struct {
	db *gorm.DB
}

var _ label.Repository = (*LabelRepository)(nil)

func NewLabelRepository(db *gorm.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

func (r *LabelRepository) Create(ctx context.Context, l *label.Label) error {
	model := mappers.LabelToModel(l)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create label: %w", err)
	}
	return l.SetID(model.ID)
}

func (r *LabelRepository) Update(ctx context.Context, l *label.Label) error {
	model := mappers.LabelToModel(l)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.LabelModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":     model.Name,
			"color":    model.Color,
			"inverted": model.Inverted,
			"deleted":  model.Deleted,
		}).Error; err != nil {
		return fmt.Errorf("failed to update label: %w", err)
	}
	return nil
}

func (r *LabelRepository) GetByID(ctx context.Context, projectID, id uint) (*label.Label, error) {
	tx := db.GetTxFromContext(ctx, r.db).Scopes(db.NotSoftDeleted(""))
	return r.first(tx, "project_id = ? AND id = ?", projectID, id)
}

func (r *LabelRepository) GetByIDIncludingDeleted(ctx context.Context, id uint) (*label.Label, error) {
	return r.first(db.GetTxFromContext(ctx, r.db), "id = ?", id)
}

func (r *LabelRepository) GetByName(ctx context.Context, projectID uint, name string) (*label.Label, error) {
	tx := db.GetTxFromContext(ctx, r.db).Scopes(db.NotSoftDeleted(""))
	return r.first(tx, "project_id = ? AND name = ?", projectID, name)
}

func (r *LabelRepository) first(tx *gorm.DB, query string, args ...any) (*label.Label, error) {
	var model models.LabelModel
	if err := tx.Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get label: %w", err)
	}
	return mappers.LabelToDomain(&model), nil
}

func (r *LabelRepository) ListByProject(ctx context.Context, projectID uint) ([]*label.Label, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []*models.LabelModel
	if err := tx.Scopes(db.NotSoftDeleted("")).
		Where("project_id = ?", projectID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return toLabels(rows), nil
}

func (r *LabelRepository) ListByIDs(ctx context.Context, ids []uint) ([]*label.Label, error) {
	if len(ids) == 0 {
		return []*label.Label{}, nil
	}
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []*models.LabelModel
	if err := tx.Where("id IN ?", ids).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return toLabels(rows), nil
}

func (r *LabelRepository) NameTaken(ctx context.Context, projectID uint, name string, excludeID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Model(&models.LabelModel{}).
		Scopes(db.NotSoftDeleted("")).
		Where("project_id = ? AND name = ?", projectID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check label name: %w", err)
	}
	return count > 0, nil
}

func toLabels(rows []*models.LabelModel) []*label.Label {
	labels := make([]*label.Label, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, mappers.LabelToDomain(row))
	}
	return labels
}
