package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

// MembershipCommand links Member into Container: a user into a group or team, or
// a group into a team.
type MembershipCommand struct {
	ActorID   uint
	Container permission.Subject
	Member    permission.Subject
}

type MembershipResult struct {
	Modified bool
}

// MembershipUseCase adds or removes a membership link. The link is stored both in
// the account tables and in the permission model so that grants propagate.
type MembershipUseCase struct {
	adding      bool
	users       user.Repository
	groups      user.GroupRepository
	teams       user.TeamRepository
	memberships user.MembershipRepository
	permissions permission.Manager
	access      *common.Access
	logger      logger.Interface
}

func NewAddMembershipUseCase(
	users user.Repository,
	groups user.GroupRepository,
	teams user.TeamRepository,
	memberships user.MembershipRepository,
	permissions permission.Manager,
	access *common.Access,
	logger logger.Interface,
) *MembershipUseCase {
	return &MembershipUseCase{
		adding:      true,
		users:       users,
		groups:      groups,
		teams:       teams,
		memberships: memberships,
		permissions: permissions,
		access:      access,
		logger:      logger,
	}
}

func NewRemoveMembershipUseCase(
	users user.Repository,
	groups user.GroupRepository,
	teams user.TeamRepository,
	memberships user.MembershipRepository,
	permissions permission.Manager,
	access *common.Access,
	logger logger.Interface,
) *MembershipUseCase {
	uc := NewAddMembershipUseCase(users, groups, teams, memberships, permissions, access, logger)
	uc.adding = false
	return uc
}

func (uc *MembershipUseCase) Execute(ctx context.Context, cmd MembershipCommand) (*MembershipResult, error) {
	uc.logger.Infow("executing membership use case",
		"adding", uc.adding,
		"member", cmd.Member.String(),
		"container", cmd.Container.String(),
		"actor_id", cmd.ActorID,
	)

	if err := requireAccountManager(ctx, uc.access, cmd.ActorID); err != nil {
		return nil, err
	}
	if !permission.CanContain(cmd.Container, cmd.Member) {
		return nil, errors.NewValidationError(fmt.Sprintf("%s can not contain %s", cmd.Container.Kind, cmd.Member.Kind))
	}
	if err := uc.exists(ctx, cmd.Container); err != nil {
		return nil, err
	}
	if err := uc.exists(ctx, cmd.Member); err != nil {
		return nil, err
	}

	modified, err := uc.apply(ctx, cmd.Member, cmd.Container)
	if err != nil {
		uc.logger.Errorw("failed to change membership", "member", cmd.Member.String(), "container", cmd.Container.String(), "error", err)
		return nil, err
	}

	if uc.adding {
		_, err = uc.permissions.AddMembership(ctx, cmd.Member, cmd.Container)
	} else {
		_, err = uc.permissions.RemoveMembership(ctx, cmd.Member, cmd.Container)
	}
	if err != nil {
		return nil, err
	}

	return &MembershipResult{Modified: modified}, nil
}

func (uc *MembershipUseCase) apply(ctx context.Context, member, container permission.Subject) (bool, error) {
	var (
		changed bool
		err     error
	)
	switch {
	case container.Kind == permission.KindGroup:
		if uc.adding {
			changed, err = uc.memberships.AddUserToGroup(ctx, member.ID, container.ID)
		} else {
			changed, err = uc.memberships.RemoveUserFromGroup(ctx, member.ID, container.ID)
		}
	case member.Kind == permission.KindUser:
		if uc.adding {
			changed, err = uc.memberships.AddUserToTeam(ctx, member.ID, container.ID)
		} else {
			changed, err = uc.memberships.RemoveUserFromTeam(ctx, member.ID, container.ID)
		}
	default:
		if uc.adding {
			changed, err = uc.memberships.AddGroupToTeam(ctx, member.ID, container.ID)
		} else {
			changed, err = uc.memberships.RemoveGroupFromTeam(ctx, member.ID, container.ID)
		}
	}
	if err != nil {
		return false, fmt.Errorf("failed to update membership: %w", err)
	}
	return changed, nil
}

func (uc *MembershipUseCase) exists(ctx context.Context, s permission.Subject) error {
	var err error
	switch s.Kind {
	case permission.KindUser:
		_, err = loadUser(ctx, uc.users, s.ID)
	case permission.KindGroup:
		_, err = loadGroup(ctx, uc.groups, s.ID)
	case permission.KindTeam:
		_, err = loadTeam(ctx, uc.teams, s.ID)
	default:
		err = errors.NewValidationError("unknown subject kind")
	}
	return err
}
