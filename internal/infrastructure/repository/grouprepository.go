package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tracker/internal/shared/db"
)

type GroupRepository struct {
	db *gorm.DB
}

var _ user.GroupRepository = (*GroupRepository)(nil)

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(ctx context.Context, g *user.Group) error {
	model := &models.GroupModel{Name: g.Name()}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return g.SetID(model.ID)
}

func (r *GroupRepository) Update(ctx context.Context, g *user.Group) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.GroupModel{}).
		Where("id = ?", g.ID()).
		Update("name", g.Name()).Error; err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	return nil
}

// Delete removes the group and its user and team links.
func (r *GroupRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("group_id = ?", id).Delete(&models.GroupMemberModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete group members: %w", err)
	}
	if err := tx.Where("group_id = ?", id).Delete(&models.TeamGroupModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete group teams: %w", err)
	}
	if err := tx.Delete(&models.GroupModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

func (r *GroupRepository) GetByID(ctx context.Context, id uint) (*user.Group, error) {
	var model models.GroupModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return user.ReconstructGroup(model.ID, model.Name), nil
}

func (r *GroupRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	return nameTaken(db.GetTxFromContext(ctx, r.db).Model(&models.GroupModel{}), name, excludeID)
}

func (r *GroupRepository) List(ctx context.Context) ([]*user.Group, error) {
	var rows []models.GroupModel
	if err := db.GetTxFromContext(ctx, r.db).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	groups := make([]*user.Group, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, user.ReconstructGroup(row.ID, row.Name))
	}
	return groups, nil
}

type TeamRepository struct {
	db *gorm.DB
}

var _ user.TeamRepository = (*TeamRepository)(nil)

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, t *user.Team) error {
	model := &models.TeamModel{Name: t.Name()}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return t.SetID(model.ID)
}

func (r *TeamRepository) Update(ctx context.Context, t *user.Team) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TeamModel{}).
		Where("id = ?", t.ID()).
		Update("name", t.Name()).Error; err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	return nil
}

// Delete removes the team and its user and group links.
func (r *TeamRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("team_id = ?", id).Delete(&models.TeamMemberModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete team members: %w", err)
	}
	if err := tx.Where("team_id = ?", id).Delete(&models.TeamGroupModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete team groups: %w", err)
	}
	if err := tx.Delete(&models.TeamModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id uint) (*user.Team, error) {
	var model models.TeamModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return user.ReconstructTeam(model.ID, model.Name), nil
}

func (r *TeamRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	return nameTaken(db.GetTxFromContext(ctx, r.db).Model(&models.TeamModel{}), name, excludeID)
}

func (r *TeamRepository) List(ctx context.Context) ([]*user.Team, error) {
	var rows []models.TeamModel
	if err := db.GetTxFromContext(ctx, r.db).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	teams := make([]*user.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, user.ReconstructTeam(row.ID, row.Name))
	}
	return teams, nil
}

func nameTaken(q *gorm.DB, name string, excludeID uint) (bool, error) {
	q = q.Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check name: %w", err)
	}
	return count > 0, nil
}
