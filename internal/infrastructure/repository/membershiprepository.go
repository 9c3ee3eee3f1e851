package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tracker/internal/shared/db"
)

type MembershipRepository struct {
	db *gorm.DB
}

var _ user.MembershipRepository = (*MembershipRepository)(nil)

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) add(ctx context.Context, row any) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if result.Error != nil {
		return false, fmt.Errorf("failed to add membership: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *MembershipRepository) remove(ctx context.Context, model any, query string, args ...any) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).Where(query, args...).Delete(model)
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove membership: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *MembershipRepository) pluck(ctx context.Context, model any, column, query string, args ...any) ([]uint, error) {
	var ids []uint
	if err := db.GetTxFromContext(ctx, r.db).Model(model).
		Where(query, args...).
		Order(column).
		Pluck(column, &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return ids, nil
}

func (r *MembershipRepository) AddUserToGroup(ctx context.Context, userID, groupID uint) (bool, error) {
	return r.add(ctx, &models.GroupMemberModel{GroupID: groupID, UserID: userID})
}

func (r *MembershipRepository) RemoveUserFromGroup(ctx context.Context, userID, groupID uint) (bool, error) {
	return r.remove(ctx, &models.GroupMemberModel{}, "group_id = ? AND user_id = ?", groupID, userID)
}

func (r *MembershipRepository) AddUserToTeam(ctx context.Context, userID, teamID uint) (bool, error) {
	return r.add(ctx, &models.TeamMemberModel{TeamID: teamID, UserID: userID})
}

func (r *MembershipRepository) RemoveUserFromTeam(ctx context.Context, userID, teamID uint) (bool, error) {
	return r.remove(ctx, &models.TeamMemberModel{}, "team_id = ? AND user_id = ?", teamID, userID)
}

func (r *MembershipRepository) AddGroupToTeam(ctx context.Context, groupID, teamID uint) (bool, error) {
	return r.add(ctx, &models.TeamGroupModel{TeamID: teamID, GroupID: groupID})
}

func (r *MembershipRepository) RemoveGroupFromTeam(ctx context.Context, groupID, teamID uint) (bool, error) {
	return r.remove(ctx, &models.TeamGroupModel{}, "team_id = ? AND group_id = ?", teamID, groupID)
}

func (r *MembershipRepository) GroupMembers(ctx context.Context, groupID uint) ([]uint, error) {
	return r.pluck(ctx, &models.GroupMemberModel{}, "user_id", "group_id = ?", groupID)
}

func (r *MembershipRepository) TeamUsers(ctx context.Context, teamID uint) ([]uint, error) {
	return r.pluck(ctx, &models.TeamMemberModel{}, "user_id", "team_id = ?", teamID)
}

func (r *MembershipRepository) TeamGroups(ctx context.Context, teamID uint) ([]uint, error) {
	return r.pluck(ctx, &models.TeamGroupModel{}, "group_id", "team_id = ?", teamID)
}

func (r *MembershipRepository) UserGroups(ctx context.Context, userID uint) ([]uint, error) {
	return r.pluck(ctx, &models.GroupMemberModel{}, "group_id", "user_id = ?", userID)
}

func (r *MembershipRepository) UserTeams(ctx context.Context, userID uint) ([]uint, error) {
	return r.pluck(ctx, &models.TeamMemberModel{}, "team_id", "user_id = ?", userID)
}
