package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type DeleteUserCommand struct {
	ActorID uint
	UserID  uint
}

// DeleteUserUseCase removes an account, its memberships and its grants. Issues and
// events it authored keep their author id.
type DeleteUserUseCase struct {
	users       user.Repository
	permissions permission.Manager
	access      *common.Access
	txMgr       db.Transactor
	logger      logger.Interface
}

func NewDeleteUserUseCase(
	users user.Repository,
	permissions permission.Manager,
	access *common.Access,
	txMgr db.Transactor,
	logger logger.Interface,
) *DeleteUserUseCase {
	return &DeleteUserUseCase{users: users, permissions: permissions, access: access, txMgr: txMgr, logger: logger}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) error {
	uc.logger.Infow("executing delete user use case", "user_id", cmd.UserID, "actor_id", cmd.ActorID)

	if err := requireAccountManager(ctx, uc.access, cmd.ActorID); err != nil {
		return err
	}
	if cmd.ActorID == cmd.UserID {
		return errors.NewValidationError("you cannot delete your own account")
	}
	u, err := loadUser(ctx, uc.users, cmd.UserID)
	if err != nil {
		return err
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.users.Delete(txCtx, u.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete user", "user_id", u.ID(), "error", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if err := uc.permissions.RemoveSubject(ctx, permission.User(u.ID())); err != nil {
		uc.logger.Errorw("failed to remove user grants", "user_id", u.ID(), "error", err)
		return err
	}

	uc.logger.Infow("user deleted successfully", "user_id", u.ID(), "username", u.Username())
	return nil
}
