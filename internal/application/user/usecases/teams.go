package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/user/dto"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type ListTeamsUseCase struct {
	teams  user.TeamRepository
	access *common.Access
	logger logger.Interface
}

func NewListTeamsUseCase(teams user.TeamRepository, access *common.Access, logger logger.Interface) *ListTeamsUseCase {
	return &ListTeamsUseCase{teams: teams, access: access, logger: logger}
}

func (uc *ListTeamsUseCase) Execute(ctx context.Context, actorID uint) ([]*dto.TeamDTO, error) {
	if err := requireAccountManager(ctx, uc.access, actorID); err != nil {
		return nil, err
	}
	teams, err := uc.teams.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list teams", "error", err)
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return dto.ToTeamDTOs(teams), nil
}

type GetTeamQuery struct {
	ActorID uint
	TeamID  uint
}

type GetTeamUseCase struct {
	teams       user.TeamRepository
	groups      user.GroupRepository
	users       user.Repository
	memberships user.MembershipRepository
	access      *common.Access
	logger      logger.Interface
}

func NewGetTeamUseCase(
	teams user.TeamRepository,
	groups user.GroupRepository,
	users user.Repository,
	memberships user.MembershipRepository,
	access *common.Access,
	logger logger.Interface,
) *GetTeamUseCase {
	return &GetTeamUseCase{teams: teams, groups: groups, users: users, memberships: memberships, access: access, logger: logger}
}

func (uc *GetTeamUseCase) Execute(ctx context.Context, query GetTeamQuery) (*dto.TeamDetailDTO, error) {
	if err := requireAccountManager(ctx, uc.access, query.ActorID); err != nil {
		return nil, err
	}
	t, err := loadTeam(ctx, uc.teams, query.TeamID)
	if err != nil {
		return nil, err
	}

	userIDs, err := uc.memberships.TeamUsers(ctx, t.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list team users: %w", err)
	}
	members, err := uc.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load team users: %w", err)
	}

	detail := &dto.TeamDetailDTO{TeamDTO: dto.ToTeamDTO(t), Users: dto.ToUserDTOs(members)}

	groupIDs, err := uc.memberships.TeamGroups(ctx, t.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list team groups: %w", err)
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
	return detail, nil
}

// SaveTeamCommand creates a team when TeamID is zero and renames it otherwise.
type SaveTeamCommand struct {
	ActorID uint
	TeamID  uint
	Name    string
}

type SaveTeamResult struct {
	Team     *dto.TeamDTO
	Modified bool
}

type SaveTeamUseCase struct {
	teams  user.TeamRepository
	access *common.Access
	logger logger.Interface
}

func NewSaveTeamUseCase(teams user.TeamRepository, access *common.Access, logger logger.Interface) *SaveTeamUseCase {
	return &SaveTeamUseCase{teams: teams, access: access, logger: logger}
}

func (uc *SaveTeamUseCase) Execute(ctx context.Context, cmd SaveTeamCommand) (*SaveTeamResult, error) {
	uc.logger.Infow("executing save team use case", "team_id", cmd.TeamID, "name", cmd.Name, "actor_id", cmd.ActorID)

	if err := requireAccountManager(ctx, uc.access, cmd.ActorID); err != nil {
		return nil, err
	}

	var t *user.Team
	if cmd.TeamID == 0 {
		created, err := user.NewTeam(cmd.Name)
		if err != nil {
			return nil, errors.NewFieldError("name", err.Error())
		}
		t = created
	} else {
		existing, err := loadTeam(ctx, uc.teams, cmd.TeamID)
		if err != nil {
			return nil, err
		}
		renamed, err := existing.Rename(cmd.Name)
		if err != nil {
			return nil, errors.NewFieldError("name", err.Error())
		}
		if !renamed {
			return &SaveTeamResult{Team: dto.ToTeamDTO(existing)}, nil
		}
		t = existing
	}

	taken, err := uc.teams.NameTaken(ctx, t.Name(), t.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to check team name: %w", err)
	}
	if taken {
		return nil, errors.NewFieldError("name", "a team with this name already exists")
	}

	if t.ID() == 0 {
		err = uc.teams.Create(ctx, t)
	} else {
		err = uc.teams.Update(ctx, t)
	}
	if err != nil {
		uc.logger.Errorw("failed to save team", "name", t.Name(), "error", err)
		return nil, fmt.Errorf("failed to save team: %w", err)
	}

	uc.logger.Infow("team saved successfully", "team_id", t.ID(), "name", t.Name())
	return &SaveTeamResult{Team: dto.ToTeamDTO(t), Modified: true}, nil
}

type DeleteTeamCommand struct {
	ActorID uint
	TeamID  uint
}

// DeleteTeamUseCase removes a team with its memberships and grants.
type DeleteTeamUseCase struct {
	teams       user.TeamRepository
	permissions permission.Manager
	access      *common.Access
	txMgr       db.Transactor
	logger      logger.Interface
}

func NewDeleteTeamUseCase(
	teams user.TeamRepository,
	permissions permission.Manager,
	access *common.Access,
	txMgr db.Transactor,
	logger logger.Interface,
) *DeleteTeamUseCase {
	return &DeleteTeamUseCase{teams: teams, permissions: permissions, access: access, txMgr: txMgr, logger: logger}
}

func (uc *DeleteTeamUseCase) Execute(ctx context.Context, cmd DeleteTeamCommand) error {
	uc.logger.Infow("executing delete team use case", "team_id", cmd.TeamID, "actor_id", cmd.ActorID)

	if err := requireAccountManager(ctx, uc.access, cmd.ActorID); err != nil {
		return err
	}
	t, err := loadTeam(ctx, uc.teams, cmd.TeamID)
	if err != nil {
		return err
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.teams.Delete(txCtx, t.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete team", "team_id", t.ID(), "error", err)
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if err := uc.permissions.RemoveSubject(ctx, permission.Team(t.ID())); err != nil {
		uc.logger.Errorw("failed to remove team grants", "team_id", t.ID(), "error", err)
		return err
	}

	uc.logger.Infow("team deleted successfully", "team_id", t.ID())
	return nil
}
