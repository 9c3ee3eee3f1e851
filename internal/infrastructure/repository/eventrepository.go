package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tracker/internal/shared/db"
)

type EventRepository struct {
	db     *gorm.DB
	mapper mappers.IssueMapper
}

var _ issue.EventRepository = (*EventRepository)(nil)

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{
		db:     db,
		mapper: mappers.NewIssueMapper(),
	}
}

// Append inserts events one by one so ids follow the slice order.
func (r *EventRepository) Append(ctx context.Context, events ...*issue.Event) error {
	tx := db.GetTxFromContext(ctx, r.db)

	for _, ev := range events {
		model, err := r.mapper.EventToModel(ev)
		if err != nil {
			return err
		}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to append %s event: %w", ev.Code(), err)
		}
		if err := ev.SetID(model.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *EventRepository) Get(ctx context.Context, projectID, issueID, eventID uint) (*issue.Event, error) {
	var model models.EventModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("id = ? AND project_id = ? AND issue_id = ?", eventID, projectID, issueID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return r.mapper.EventToDomain(&model)
}

func (r *EventRepository) ListByIssue(ctx context.Context, projectID, issueID uint) ([]*issue.Event, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []*models.EventModel
	if err := tx.Where("project_id = ? AND issue_id = ?", projectID, issueID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list issue events: %w", err)
	}
	return r.toDomain(rows)
}

func (r *EventRepository) ListByProject(ctx context.Context, projectID uint, offset, limit int) ([]*issue.Event, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.EventModel{}).Where("project_id = ?", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count project events: %w", err)
	}

	var rows []*models.EventModel
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list project events: %w", err)
	}

	events, err := r.toDomain(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *EventRepository) UpdateBody(ctx context.Context, ev *issue.Event) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.EventModel{}).
		Where("id = ?", ev.ID()).
		Update("additionnal_section", ev.Body()).Error; err != nil {
		return fmt.Errorf("failed to update event body: %w", err)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, eventID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.EventModel{}, eventID).Error; err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (r *EventRepository) LatestID(ctx context.Context, projectID, issueID uint) (uint, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var latest uint
	if err := tx.Model(&models.EventModel{}).
		Select("COALESCE(MAX(id), 0)").
		Where("project_id = ? AND issue_id = ?", projectID, issueID).
		Scan(&latest).Error; err != nil {
		return 0, fmt.Errorf("failed to get latest event: %w", err)
	}
	return latest, nil
}

func (r *EventRepository) CountAfter(ctx context.Context, projectID, issueID, afterID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var count int64
	if err := tx.Model(&models.EventModel{}).
		Where("project_id = ? AND issue_id = ? AND id > ?", projectID, issueID, afterID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

func (r *EventRepository) toDomain(rows []*models.EventModel) ([]*issue.Event, error) {
	events := make([]*issue.Event, 0, len(rows))
	for _, row := range rows {
		ev, err := r.mapper.EventToDomain(row)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}
