package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type SetPasswordCommand struct {
	ActorID  uint
	UserID   uint
	Password string
}

// SetPasswordUseCase lets an administrator replace any user's password.
type SetPasswordUseCase struct {
	users  user.Repository
	hasher user.PasswordHasher
	access *common.Access
	logger logger.Interface
}

func NewSetPasswordUseCase(users user.Repository, hasher user.PasswordHasher, access *common.Access, logger logger.Interface) *SetPasswordUseCase {
	return &SetPasswordUseCase{users: users, hasher: hasher, access: access, logger: logger}
}

func (uc *SetPasswordUseCase) Execute(ctx context.Context, cmd SetPasswordCommand) error {
	uc.logger.Infow("executing set password use case", "user_id", cmd.UserID, "actor_id", cmd.ActorID)

	if err := requireAccountManager(ctx, uc.access, cmd.ActorID); err != nil {
		return err
	}
	u, err := loadUser(ctx, uc.users, cmd.UserID)
	if err != nil {
		return err
	}
	pw, err := newPassword(cmd.Password)
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

	uc.logger.Infow("password set successfully", "user_id", u.ID())
	return nil
}
