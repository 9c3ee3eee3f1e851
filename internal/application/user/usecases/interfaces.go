package usecases

import (
	"context"

	"github.com/orris-inc/tracker/internal/application/user/dto"
)

type ListUsersExecutor interface {
	Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error)
}

type GetUserExecutor interface {
	Execute(ctx context.Context, query GetUserQuery) (*dto.UserDetailDTO, error)
}

type CreateUserExecutor interface {
	Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserDTO, error)
}

type UpdateUserExecutor interface {
	Execute(ctx context.Context, cmd UpdateUserCommand) (*UpdateUserResult, error)
}

type DeleteUserExecutor interface {
	Execute(ctx context.Context, cmd DeleteUserCommand) error
}

type SetPasswordExecutor interface {
	Execute(ctx context.Context, cmd SetPasswordCommand) error
}

type ChangeUserStateExecutor interface {
	Execute(ctx context.Context, cmd ChangeUserStateCommand) (*ChangeUserStateResult, error)
}

type UpdateProfileExecutor interface {
	Execute(ctx context.Context, cmd UpdateProfileCommand) (*UpdateProfileResult, error)
}

type ChangePasswordExecutor interface {
	Execute(ctx context.Context, cmd ChangePasswordCommand) error
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type ListGroupsExecutor interface {
	Execute(ctx context.Context, actorID uint) ([]*dto.GroupDTO, error)
}

type GetGroupExecutor interface {
	Execute(ctx context.Context, query GetGroupQuery) (*dto.GroupDetailDTO, error)
}

type SaveGroupExecutor interface {
	Execute(ctx context.Context, cmd SaveGroupCommand) (*SaveGroupResult, error)
}

type DeleteGroupExecutor interface {
	Execute(ctx context.Context, cmd DeleteGroupCommand) error
}

type ListTeamsExecutor interface {
	Execute(ctx context.Context, actorID uint) ([]*dto.TeamDTO, error)
}

type GetTeamExecutor interface {
	Execute(ctx context.Context, query GetTeamQuery) (*dto.TeamDetailDTO, error)
}

type SaveTeamExecutor interface {
	Execute(ctx context.Context, cmd SaveTeamCommand) (*SaveTeamResult, error)
}

type DeleteTeamExecutor interface {
	Execute(ctx context.Context, cmd DeleteTeamCommand) error
}

type MembershipExecutor interface {
	Execute(ctx context.Context, cmd MembershipCommand) (*MembershipResult, error)
}
