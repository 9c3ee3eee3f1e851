package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tracker/internal/shared/db"
)

type ProjectRepository struct {
	db     *gorm.DB
	mapper mappers.ProjectMapper
}

var _ project.Repository = (*ProjectRepository)(nil)

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		mapper: mappers.NewProjectMapper(),
	}
}

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	model := r.mapper.ToModel(p)
	model.NextIssueID = 1
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return p.SetID(model.ID)
}

func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	model := r.mapper.ToModel(p)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ProjectModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"display_name": model.DisplayName,
			"display_key":  model.DisplayKey,
			"archived":     model.Archived,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update project: %w", result.Error)
	}
	return nil
}

// Delete removes the project with its issues, events, labels, milestones, links,
// subscribers and read markers.
func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	owned := []any{
		&models.ReadMarkerModel{},
		&models.EventModel{},
		&models.IssueLabelModel{},
		&models.IssueSubscriberModel{},
		&models.IssueModel{},
		&models.LabelModel{},
		&models.MilestoneModel{},
		&models.ProjectSubscriberModel{},
	}
	for _, m := range owned {
		if err := tx.Where("project_id = ?", id).Delete(m).Error; err != nil {
			return fmt.Errorf("failed to delete project rows: %w", err)
		}
	}

	if err := tx.Delete(&models.ProjectModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint) (*project.Project, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*project.Project, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *ProjectRepository) first(ctx context.Context, query string, args ...any) (*project.Project, error) {
	var model models.ProjectModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *ProjectRepository) DisplayNameTaken(ctx context.Context, displayName string, excludeID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	query := tx.Model(&models.ProjectModel{}).
		Where("display_key = ?", project.FoldDisplayName(displayName))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check display name: %w", err)
	}
	return count > 0, nil
}

func (r *ProjectRepository) List(ctx context.Context, archived bool) ([]*project.Project, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []*models.ProjectModel
	if err := tx.Where("archived = ?", archived).Order("display_key ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*project.Project, 0, len(rows))
	for _, row := range rows {
		p, err := r.mapper.ToDomain(row)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

type ProjectSubscriberRepository struct {
	db *gorm.DB
}

var _ project.SubscriberRepository = (*ProjectSubscriberRepository)(nil)

func NewProjectSubscriberRepository(db *gorm.DB) *ProjectSubscriberRepository {
	return &ProjectSubscriberRepository{db: db}
}

func (r *ProjectSubscriberRepository) Add(ctx context.Context, projectID, userID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProjectSubscriberModel{ProjectID: projectID, UserID: userID})
	if result.Error != nil {
		return false, fmt.Errorf("failed to subscribe to project: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ProjectSubscriberRepository) Remove(ctx context.Context, projectID, userID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectSubscriberModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to unsubscribe from project: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ProjectSubscriberRepository) IsSubscribed(ctx context.Context, projectID, userID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var count int64
	if err := tx.Model(&models.ProjectSubscriberModel{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check project subscription: %w", err)
	}
	return count > 0, nil
}

func (r *ProjectSubscriberRepository) ListUserIDs(ctx context.Context, projectID uint) ([]uint, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var ids []uint
	if err := tx.Model(&models.ProjectSubscriberModel{}).
		Where("project_id = ?", projectID).
		Order("user_id").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list project subscribers: %w", err)
	}
	return ids, nil
}
