package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/user/dto"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type GetUserQuery struct {
	ActorID uint
	UserID  uint
}

// GetUserUseCase shows an account with its direct memberships. Users may always
// look at their own account.
type GetUserUseCase struct {
	users       user.Repository
	groups      user.GroupRepository
	teams       user.TeamRepository
	memberships user.MembershipRepository
	access      *common.Access
	logger      logger.Interface
}

func NewGetUserUseCase(
	users user.Repository,
	groups user.GroupRepository,
	teams user.TeamRepository,
	memberships user.MembershipRepository,
	access *common.Access,
	logger logger.Interface,
) *GetUserUseCase {
	return &GetUserUseCase{
		users:       users,
		groups:      groups,
		teams:       teams,
		memberships: memberships,
		access:      access,
		logger:      logger,
	}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, query GetUserQuery) (*dto.UserDetailDTO, error) {
	if err := common.RequireLogin(query.ActorID); err != nil {
		return nil, err
	}
	if query.ActorID != query.UserID {
		if err := requireAccountManager(ctx, uc.access, query.ActorID); err != nil {
			return nil, err
		}
	}

	u, err := loadUser(ctx, uc.users, query.UserID)
	if err != nil {
		return nil, err
	}

	detail := &dto.UserDetailDTO{UserDTO: dto.ToUserDTO(u)}

	groupIDs, err := uc.memberships.UserGroups(ctx, u.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list user groups: %w", err)
	}
	for _, id := range groupIDs {
		g, err := uc.groups.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load group: %w", err)
		}
		if g != nil {
			detail.Groups = append(detail.Groups, dto.ToGroupDTO(g))
		}
	}

	teamIDs, err := uc.memberships.UserTeams(ctx, u.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list user teams: %w", err)
	}
	for _, id := range teamIDs {
		t, err := uc.teams.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load team: %w", err)
		}
		if t != nil {
			detail.Teams = append(detail.Teams, dto.ToTeamDTO(t))
		}
	}
	return detail, nil
}
