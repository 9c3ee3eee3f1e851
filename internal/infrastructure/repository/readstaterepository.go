package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tracker/internal/shared/db"
)

type ReadStateRepository struct {
	db *gorm.DB
}

var _ issue.ReadStateRepository = (*ReadStateRepository)(nil)

func NewReadStateRepository(db *gorm.DB) *ReadStateRepository {
	return &ReadStateRepository{db: db}
}

func (r *ReadStateRepository) GetMarker(ctx context.Context, userID, projectID, issueID uint) (*issue.ReadMarker, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.ReadMarkerModel
	if err := tx.Where("user_id = ? AND project_id = ? AND issue_id = ?", userID, projectID, issueID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get read marker: %w", err)
	}

	return &issue.ReadMarker{
		UserID:          model.UserID,
		ProjectID:       model.ProjectID,
		IssueID:         model.IssueID,
		LastEventID:     model.LastEventID,
		PreviousEventID: model.PreviousEventID,
		ReadAt:          model.UpdatedAt,
	}, nil
}

// SaveMarker upserts the marker row.
func (r *ReadStateRepository) SaveMarker(ctx context.Context, m *issue.ReadMarker) error {
	tx := db.GetTxFromContext(ctx, r.db)

	model := &models.ReadMarkerModel{
		UserID:          m.UserID,
		ProjectID:       m.ProjectID,
		IssueID:         m.IssueID,
		LastEventID:     m.LastEventID,
		PreviousEventID: m.PreviousEventID,
		UpdatedAt:       m.ReadAt,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "project_id"}, {Name: "issue_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_event_id", "previous_event_id", "updated_at"}),
	}).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save read marker: %w", err)
	}
	return nil
}

// unreadEvents selects events newer than the user's marker; a missing marker
// counts every event.
const unreadEvents = `FROM events e
LEFT JOIN read_markers m
  ON m.user_id = ? AND m.project_id = e.project_id AND m.issue_id = e.issue_id
WHERE e.project_id = ? AND e.id > COALESCE(m.last_event_id, 0)`

func (r *ReadStateRepository) CountUnreadIssues(ctx context.Context, userID, projectID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.Raw("SELECT COUNT(DISTINCT e.issue_id) "+unreadEvents, userID, projectID).
		Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread issues: %w", err)
	}
	return count, nil
}

func (r *ReadStateRepository) UnreadEventCounts(ctx context.Context, userID, projectID uint, issueIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(issueIDs))
	if len(issueIDs) == 0 {
		return counts, nil
	}

	tx := db.GetTxFromContext(ctx, r.db)

	var rows []struct {
		IssueID uint
		Unread  int64
	}
	if err := tx.Raw("SELECT e.issue_id AS issue_id, COUNT(*) AS unread "+unreadEvents+
		" AND e.issue_id IN ? GROUP BY e.issue_id", userID, projectID, issueIDs).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count unread events: %w", err)
	}
	for _, row := range rows {
		counts[row.IssueID] = row.Unread
	}
	return counts, nil
}
