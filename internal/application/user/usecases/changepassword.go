package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type ChangePasswordCommand struct {
	ActorID     uint
	OldPassword string
	NewPassword string
}

// ChangePasswordUseCase replaces the actor's own password after checking the
// current one.
type ChangePasswordUseCase struct {
	users  user.Repository
	hasher user.PasswordHasher
	logger logger.Interface
}

func NewChangePasswordUseCase(users user.Repository, hasher user.PasswordHasher, logger logger.Interface) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{users: users, hasher: hasher, logger: logger}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	uc.logger.Infow("executing change password use case", "user_id", cmd.ActorID)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return err
	}
	u, err := loadUser(ctx, uc.users, cmd.ActorID)
	if err != nil {
		return err
	}
	if err := u.VerifyPassword(cmd.OldPassword, uc.hasher); err != nil {
		uc.logger.Warnw("old password mismatch", "user_id", u.ID())
		return errors.NewFieldError("old_password", "current password is incorrect")
	}

	pw, err := newPassword(cmd.NewPassword)
	if err != nil {
		return err
	}
	if err := u.SetPassword(pw, uc.hasher); err != nil {
		return err
	}
	if err := uc.users.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to save password", "user_id", u.ID(), "error", err)
		return fmt.Errorf("failed to update user: %w", err)
	}

	uc.logger.Infow("password changed successfully", "user_id", u.ID())
	return nil
}
