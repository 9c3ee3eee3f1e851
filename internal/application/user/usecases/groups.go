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

type ListGroupsUseCase struct {
	groups user.GroupRepository
	access *common.Access
	logger logger.Interface
}

func NewListGroupsUseCase(groups user.GroupRepository, access *common.Access, logger logger.Interface) *ListGroupsUseCase {
	return &ListGroupsUseCase{groups: groups, access: access, logger: logger}
}

func (uc *ListGroupsUseCase) Execute(ctx context.Context, actorID uint) ([]*dto.GroupDTO, error) {
	if err := requireAccountManager(ctx, uc.access, actorID); err != nil {
		return nil, err
	}
	groups, err := uc.groups.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list groups", "error", err)
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return dto.ToGroupDTOs(groups), nil
}

type GetGroupQuery struct {
	ActorID uint
	GroupID uint
}

type GetGroupUseCase struct {
	groups      user.GroupRepository
	users       user.Repository
	memberships user.MembershipRepository
	access      *common.Access
	logger      logger.Interface
}

func NewGetGroupUseCase(
	groups user.GroupRepository,
	users user.Repository,
	memberships user.MembershipRepository,
	access *common.Access,
	logger logger.Interface,
) *GetGroupUseCase {
	return &GetGroupUseCase{groups: groups, users: users, memberships: memberships, access: access, logger: logger}
}

func (uc *GetGroupUseCase) Execute(ctx context.Context, query GetGroupQuery) (*dto.GroupDetailDTO, error) {
	if err := requireAccountManager(ctx, uc.access, query.ActorID); err != nil {
		return nil, err
	}
	g, err := loadGroup(ctx, uc.groups, query.GroupID)
	if err != nil {
		return nil, err
	}

	ids, err := uc.memberships.GroupMembers(ctx, g.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	members, err := uc.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load group members: %w", err)
	}
	return &dto.GroupDetailDTO{GroupDTO: dto.ToGroupDTO(g), Users: dto.ToUserDTOs(members)}, nil
}

// SaveGroupCommand creates a group when GroupID is zero and renames it otherwise.
type SaveGroupCommand struct {
	ActorID uint
	GroupID uint
	Name    string
}

type SaveGroupResult struct {
	Group    *dto.GroupDTO
	Modified bool
}

type SaveGroupUseCase struct {
	groups user.GroupRepository
	access *common.Access
	logger logger.Interface
}

func NewSaveGroupUseCase(groups user.GroupRepository, access *common.Access, logger logger.Interface) *SaveGroupUseCase {
	return &SaveGroupUseCase{groups: groups, access: access, logger: logger}
}

func (uc *SaveGroupUseCase) Execute(ctx context.Context, cmd SaveGroupCommand) (*SaveGroupResult, error) {
	uc.logger.Infow("executing save group use case", "group_id", cmd.GroupID, "name", cmd.Name, "actor_id", cmd.ActorID)

	if err := requireAccountManager(ctx, uc.access, cmd.ActorID); err != nil {
		return nil, err
	}

	var g *user.Group
	if cmd.GroupID == 0 {
		created, err := user.NewGroup(cmd.Name)
		if err != nil {
			return nil, errors.NewFieldError("name", err.Error())
		}
		g = created
	} else {
		existing, err := loadGroup(ctx, uc.groups, cmd.GroupID)
		if err != nil {
			return nil, err
		}
		renamed, err := existing.Rename(cmd.Name)
		if err != nil {
			return nil, errors.NewFieldError("name", err.Error())
		}
		if !renamed {
			return &SaveGroupResult{Group: dto.ToGroupDTO(existing)}, nil
		}
		g = existing
	}

	taken, err := uc.groups.NameTaken(ctx, g.Name(), g.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to check group name: %w", err)
	}
	if taken {
		return nil, errors.NewFieldError("name", "a group with this name already exists")
	}

	if g.ID() == 0 {
		err = uc.groups.Create(ctx, g)
	} else {
		err = uc.groups.Update(ctx, g)
	}
	if err != nil {
		uc.logger.Errorw("failed to save group", "name", g.Name(), "error", err)
		return nil, fmt.Errorf("failed to save group: %w", err)
	}

	uc.logger.Infow("group saved successfully", "group_id", g.ID(), "name", g.Name())
	return &SaveGroupResult{Group: dto.ToGroupDTO(g), Modified: true}, nil
}

type DeleteGroupCommand struct {
	ActorID uint
	GroupID uint
}

// DeleteGroupUseCase removes a group with its memberships and grants.
type DeleteGroupUseCase struct {
	groups      user.GroupRepository
	permissions permission.Manager
	access      *common.Access
	txMgr       db.Transactor
	logger      logger.Interface
}

func NewDeleteGroupUseCase(
	groups user.GroupRepository,
	permissions permission.Manager,
	access *common.Access,
	txMgr db.Transactor,
	logger logger.Interface,
) *DeleteGroupUseCase {
	return &DeleteGroupUseCase{groups: groups, permissions: permissions, access: access, txMgr: txMgr, logger: logger}
}

func (uc *DeleteGroupUseCase) Execute(ctx context.Context, cmd DeleteGroupCommand) error {
	uc.logger.Infow("executing delete group use case", "group_id", cmd.GroupID, "actor_id", cmd.ActorID)

	if err := requireAccountManager(ctx, uc.access, cmd.ActorID); err != nil {
		return err
	}
	g, err := loadGroup(ctx, uc.groups, cmd.GroupID)
	if err != nil {
		return err
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.groups.Delete(txCtx, g.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete group", "group_id", g.ID(), "error", err)
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if err := uc.permissions.RemoveSubject(ctx, permission.Group(g.ID())); err != nil {
		uc.logger.Errorw("failed to remove group grants", "group_id", g.ID(), "error", err)
		return err
	}

	uc.logger.Infow("group deleted successfully", "group_id", g.ID())
	return nil
}
