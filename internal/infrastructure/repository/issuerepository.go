package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/utils/setutil"
)

type IssueRepository struct {
	db     *gorm.DB
	mapper mappers.IssueMapper
}

var _ issue.Repository = (*IssueRepository)(nil)

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{
		db:     db,
		mapper: mappers.NewIssueMapper(),
	}
}

// Create reserves the next id of the project and inserts the issue. The counter
// row stays locked until the surrounding transaction ends; when ctx carries no
// transaction the allocation and insert run in one of their own.
func (r *IssueRepository) Create(ctx context.Context, iss *issue.Issue) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		id, err := allocateIssueID(tx, iss.ProjectID())
		if err != nil {
			return err
		}
		if err := iss.SetID(id); err != nil {
			return err
		}

		if err := tx.Create(r.mapper.ToModel(iss)).Error; err != nil {
			return fmt.Errorf("failed to create issue: %w", err)
		}
		return r.insertLabels(tx, iss.ProjectID(), iss.ID(), iss.LabelIDs())
	})
}

func allocateIssueID(tx *gorm.DB, projectID uint) (uint, error) {
	var counter models.ProjectModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "next_issue_id").
		Where("id = ?", projectID).
		First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("project %d not found", projectID)
		}
		return 0, fmt.Errorf("failed to lock issue counter: %w", err)
	}

	next := max(counter.NextIssueID, 1)
	if err := tx.Model(&models.ProjectModel{}).
		Where("id = ?", projectID).
		Update("next_issue_id", next+1).Error; err != nil {
		return 0, fmt.Errorf("failed to advance issue counter: %w", err)
	}
	return next, nil
}

func (r *IssueRepository) Update(ctx context.Context, iss *issue.Issue) error {
	model := r.mapper.ToModel(iss)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.IssueModel{}).
		Where("project_id = ? AND id = ?", model.ProjectID, model.ID).
		Updates(map[string]any{
			"title":        model.Title,
			"description":  model.Description,
			"due_date":     model.DueDate,
			"closed":       model.Closed,
			"milestone_id": model.MilestoneID,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update issue: %w", result.Error)
	}

	return r.syncLabels(tx, iss)
}

// syncLabels makes the stored label links equal to the issue's label set.
func (r *IssueRepository) syncLabels(tx *gorm.DB, iss *issue.Issue) error {
	var stored []uint
	if err := tx.Model(&models.IssueLabelModel{}).
		Where("project_id = ? AND issue_id = ?", iss.ProjectID(), iss.ID()).
		Pluck("label_id", &stored).Error; err != nil {
		return fmt.Errorf("failed to load issue labels: %w", err)
	}

	var stale []uint
	for _, id := range stored {
		if !iss.HasLabel(id) {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		if err := tx.Where("project_id = ? AND issue_id = ? AND label_id IN ?", iss.ProjectID(), iss.ID(), stale).
			Delete(&models.IssueLabelModel{}).Error; err != nil {
			return fmt.Errorf("failed to detach labels: %w", err)
		}
	}

	storedSet := setutil.New(stored...)
	var added []uint
	for _, id := range iss.LabelIDs() {
		if !storedSet.Has(id) {
			added = append(added, id)
		}
	}
	return r.insertLabels(tx, iss.ProjectID(), iss.ID(), added)
}

func (r *IssueRepository) insertLabels(tx *gorm.DB, projectID, issueID uint, labelIDs []uint) error {
	if len(labelIDs) == 0 {
		return nil
	}
	rows := make([]models.IssueLabelModel, 0, len(labelIDs))
	for _, id := range labelIDs {
		rows = append(rows, models.IssueLabelModel{ProjectID: projectID, IssueID: issueID, LabelID: id})
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to attach labels: %w", err)
	}
	return nil
}

// Delete removes the issue with its events, label links, subscribers and read
// markers.
func (r *IssueRepository) Delete(ctx context.Context, projectID, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	owned := []any{
		&models.ReadMarkerModel{},
		&models.EventModel{},
		&models.IssueLabelModel{},
		&models.IssueSubscriberModel{},
	}
	for _, m := range owned {
		if err := tx.Where("project_id = ? AND issue_id = ?", projectID, id).Delete(m).Error; err != nil {
			return fmt.Errorf("failed to delete issue rows: %w", err)
		}
	}

	if err := tx.Where("project_id = ? AND id = ?", projectID, id).Delete(&models.IssueModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete issue: %w", err)
	}
	return nil
}

func (r *IssueRepository) Get(ctx context.Context, projectID, id uint) (*issue.Issue, error) {
	return r.first(ctx, "project_id = ? AND id = ?", projectID, id)
}

func (r *IssueRepository) GetInState(ctx context.Context, projectID, id uint, closed bool) (*issue.Issue, error) {
	return r.first(ctx, "project_id = ? AND id = ? AND closed = ?", projectID, id, closed)
}

func (r *IssueRepository) first(ctx context.Context, query string, args ...any) (*issue.Issue, error) {
	var model models.IssueModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	issues, err := r.toDomain(tx, []*models.IssueModel{&model})
	if err != nil {
		return nil, err
	}
	return issues[0], nil
}

// allowedIssueOrderByFields whitelists ORDER BY columns.
var allowedIssueOrderByFields = map[string]bool{
	"id":         true,
	"title":      true,
	"due_date":   true,
	"updated_at": true,
}

const issueLabelExists = "EXISTS (SELECT 1 FROM issue_labels il WHERE il.project_id = issues.project_id AND il.issue_id = issues.id"

func (r *IssueRepository) List(ctx context.Context, filter issue.Filter) ([]*issue.Issue, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.IssueModel{}).Where("issues.project_id = ?", filter.ProjectID)

	switch filter.Status {
	case issue.StatusOpen:
		query = query.Where("issues.closed = ?", false)
	case issue.StatusClosed:
		query = query.Where("issues.closed = ?", true)
	}
	for _, labelID := range filter.LabelIDs {
		query = query.Where(issueLabelExists+" AND il.label_id = ?)", labelID)
	}
	if filter.NoLabel {
		query = query.Where("NOT " + issueLabelExists + ")")
	}
	if filter.MilestoneID != nil {
		query = query.Where("issues.milestone_id = ?", *filter.MilestoneID)
	}
	if filter.NoMilestone {
		query = query.Where("issues.milestone_id IS NULL")
	}
	if filter.AuthorID != nil {
		query = query.Where("issues.author_id = ?", *filter.AuthorID)
	}
	for _, word := range filter.TitleWords {
		query = query.Where("LOWER(issues.title) LIKE ?", "%"+strings.ToLower(word)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count issues: %w", err)
	}

	sortBy := strings.ToLower(filter.SortBy)
	if !allowedIssueOrderByFields[sortBy] {
		sortBy = "id"
	}
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Table: "issues", Name: sortBy}, Desc: filter.SortDesc})
	if sortBy != "id" {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Table: "issues", Name: "id"}, Desc: filter.SortDesc})
	}
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}

	var rows []*models.IssueModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list issues: %w", err)
	}

	issues, err := r.toDomain(tx, rows)
	if err != nil {
		return nil, 0, err
	}
	return issues, total, nil
}

func (r *IssueRepository) ListIDs(ctx context.Context, projectID uint) ([]uint, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var ids []uint
	if err := tx.Model(&models.IssueModel{}).
		Where("project_id = ?", projectID).
		Order("id").
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list issue ids: %w", err)
	}
	return ids, nil
}

func (r *IssueRepository) ListByMilestone(ctx context.Context, milestoneID uint) ([]*issue.Issue, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var rows []*models.IssueModel
	if err := tx.Where("milestone_id = ?", milestoneID).Order("project_id, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list milestone issues: %w", err)
	}
	return r.toDomain(tx, rows)
}

func (r *IssueRepository) DetachLabel(ctx context.Context, labelID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("label_id = ?", labelID).Delete(&models.IssueLabelModel{}).Error; err != nil {
		return fmt.Errorf("failed to detach label: %w", err)
	}
	return nil
}

func (r *IssueRepository) DetachMilestone(ctx context.Context, milestoneID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.IssueModel{}).
		Where("milestone_id = ?", milestoneID).
		Update("milestone_id", nil).Error; err != nil {
		return fmt.Errorf("failed to detach milestone: %w", err)
	}
	return nil
}

// toDomain converts rows and loads their label links with one query.
func (r *IssueRepository) toDomain(tx *gorm.DB, rows []*models.IssueModel) ([]*issue.Issue, error) {
	if len(rows) == 0 {
		return []*issue.Issue{}, nil
	}

	type issueKey struct{ projectID, id uint }
	labels := make(map[issueKey][]uint, len(rows))

	projectIDs := make([]uint, 0, 1)
	issueIDs := make([]uint, 0, len(rows))
	seenProject := map[uint]bool{}
	for _, row := range rows {
		if !seenProject[row.ProjectID] {
			seenProject[row.ProjectID] = true
			projectIDs = append(projectIDs, row.ProjectID)
		}
		issueIDs = append(issueIDs, row.ID)
	}

	var links []models.IssueLabelModel
	if err := tx.Where("project_id IN ? AND issue_id IN ?", projectIDs, issueIDs).
		Order("label_id").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load issue labels: %w", err)
	}
	for _, l := range links {
		k := issueKey{l.ProjectID, l.IssueID}
		labels[k] = append(labels[k], l.LabelID)
	}

	issues := make([]*issue.Issue, 0, len(rows))
	for _, row := range rows {
		iss, err := r.mapper.ToDomain(row, labels[issueKey{row.ProjectID, row.ID}])
		if err != nil {
			return nil, err
		}
		issues = append(issues, iss)
	}
	return issues, nil
}
