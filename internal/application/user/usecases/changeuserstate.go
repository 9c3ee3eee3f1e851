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

type ChangeUserStateCommand struct {
	ActorID uint
	UserID  uint
}

type ChangeUserStateResult struct {
	User     *dto.UserDTO
	Modified bool
}

// ChangeUserStateUseCase activates or disables an account. Nobody can disable
// their own account.
type ChangeUserStateUseCase struct {
	activate bool
	users    user.Repository
	access   *common.Access
	logger   logger.Interface
}

func NewActivateUserUseCase(users user.Repository, access *common.Access, logger logger.Interface) *ChangeUserStateUseCase {
	return &ChangeUserStateUseCase{activate: true, users: users, access: access, logger: logger}
}

func NewDisableUserUseCase(users user.Repository, access *common.Access, logger logger.Interface) *ChangeUserStateUseCase {
	return &ChangeUserStateUseCase{activate: false, users: users, access: access, logger: logger}
}

func (uc *ChangeUserStateUseCase) Execute(ctx context.Context, cmd ChangeUserStateCommand) (*ChangeUserStateResult, error) {
	uc.logger.Infow("executing change user state use case", "user_id", cmd.UserID, "activate", uc.activate, "actor_id", cmd.ActorID)

	if err := requireAccountManager(ctx, uc.access, cmd.ActorID); err != nil {
		return nil, err
	}
	if !uc.activate && cmd.ActorID == cmd.UserID {
		return nil, errors.NewValidationError(user.ErrSelfDeactivation.Error())
	}
	u, err := loadUser(ctx, uc.users, cmd.UserID)
	if err != nil {
		return nil, err
	}

	var modified bool
	if uc.activate {
		modified = u.Activate()
	} else {
		modified = u.Disable()
	}
	if !modified {
		return &ChangeUserStateResult{User: dto.ToUserDTO(u)}, nil
	}

	if err := uc.users.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user state", "user_id", u.ID(), "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	uc.logger.Infow("user state changed", "user_id", u.ID(), "active", u.IsActive())
	return &ChangeUserStateResult{User: dto.ToUserDTO(u), Modified: true}, nil
}
