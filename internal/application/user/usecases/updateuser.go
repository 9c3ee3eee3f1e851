package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/user/dto"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type UpdateUserCommand struct {
	ActorID      uint
	UserID       uint
	Username     string
	FirstName    string
	LastName     string
	Email        string
	Notification string
	Superuser    bool
}

type UpdateUserResult struct {
	User     *dto.UserDTO
	Modified bool
}

// UpdateUserUseCase is the administrator's edit form. The password and the active
// flag have their own use cases.
type UpdateUserUseCase struct {
	users  user.Repository
	access *common.Access
	logger logger.Interface
}

func NewUpdateUserUseCase(users user.Repository, access *common.Access, logger logger.Interface) *UpdateUserUseCase {
	return &UpdateUserUseCase{users: users, access: access, logger: logger}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*UpdateUserResult, error) {
	uc.logger.Infow("executing update user use case", "user_id", cmd.UserID, "actor_id", cmd.ActorID)

	if err := requireAccountManager(ctx, uc.access, cmd.ActorID); err != nil {
		return nil, err
	}
	u, err := loadUser(ctx, uc.users, cmd.UserID)
	if err != nil {
		return nil, err
	}

	addr, pref, err := profileFields(cmd.Email, cmd.Notification)
	if err != nil {
		return nil, err
	}
	if cmd.Notification == "" {
		pref = u.Notification()
	}
	renamed, err := u.Rename(cmd.Username)
	if err != nil {
		return nil, errors.NewFieldError("username", err.Error())
	}
	if renamed {
		taken, err := uc.users.UsernameTaken(ctx, u.Username(), u.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			return nil, usernameTakenError()
		}
	}
	profileChanged, err := u.UpdateProfile(cmd.FirstName, cmd.LastName, addr, pref)
	if err != nil {
		return nil, errors.NewFieldError("notification", err.Error())
	}
	superChanged := u.SetSuperuser(cmd.Superuser)

	if !renamed && !profileChanged && !superChanged {
		return &UpdateUserResult{User: dto.ToUserDTO(u)}, nil
	}
	if err := uc.users.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user", "user_id", u.ID(), "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	uc.logger.Infow("user updated successfully", "user_id", u.ID())
	return &UpdateUserResult{User: dto.ToUserDTO(u), Modified: true}, nil
}
