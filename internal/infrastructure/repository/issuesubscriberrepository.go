package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tracker/internal/shared/db"
)

type IssueSubscriberRepository struct {
	db *gorm.DB
}

var _ issue.SubscriberRepository = (*IssueSubscriberRepository)(nil)

func NewIssueSubscriberRepository(db *gorm.DB) *IssueSubscriberRepository {
	return &IssueSubscriberRepository{db: db}
}

func (r *IssueSubscriberRepository) Add(ctx context.Context, projectID, issueID, userID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.IssueSubscriberModel{ProjectID: projectID, IssueID: issueID, UserID: userID})
	if result.Error != nil {
		return false, fmt.Errorf("failed to subscribe to issue: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *IssueSubscriberRepository) Remove(ctx context.Context, projectID, issueID, userID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Where("project_id = ? AND issue_id = ? AND user_id = ?", projectID, issueID, userID).
		Delete(&models.IssueSubscriberModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to unsubscribe from issue: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *IssueSubscriberRepository) IsSubscribed(ctx context.Context, projectID, issueID, userID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var count int64
	if err := tx.Model(&models.IssueSubscriberModel{}).
		Where("project_id = ? AND issue_id = ? AND user_id = ?", projectID, issueID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check issue subscription: %w", err)
	}
	return count > 0, nil
}

func (r *IssueSubscriberRepository) ListUserIDs(ctx context.Context, projectID, issueID uint) ([]uint, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var ids []uint
	if err := tx.Model(&models.IssueSubscriberModel{}).
		Where("project_id = ? AND issue_id = ?", projectID, issueID).
		Order("user_id").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list issue subscribers: %w", err)
	}
	return ids, nil
}
