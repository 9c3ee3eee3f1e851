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

type CreateUserCommand struct {
	ActorID      uint
	Username     string
	FirstName    string
	LastName     string
	Email        string
	Notification string
	// Password is optional; users without one cannot log in.
	Password  string
	Superuser bool
}

type CreateUserUseCase struct {
	users  user.Repository
	hasher user.PasswordHasher
	access *common.Access
	logger logger.Interface
}

func NewCreateUserUseCase(users user.Repository, hasher user.PasswordHasher, access *common.Access, logger logger.Interface) *CreateUserUseCase {
	return &CreateUserUseCase{users: users, hasher: hasher, access: access, logger: logger}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing create user use case", "username", cmd.Username, "actor_id", cmd.ActorID)

	if err := requireAccountManager(ctx, uc.access, cmd.ActorID); err != nil {
		return nil, err
	}

	addr, pref, err := profileFields(cmd.Email, cmd.Notification)
	if err != nil {
		return nil, err
	}
	u, err := user.NewUser(cmd.Username, cmd.FirstName, cmd.LastName, addr)
	if err != nil {
		return nil, errors.NewFieldError("username", err.Error())
	}
	if _, err := u.UpdateProfile(cmd.FirstName, cmd.LastName, addr, pref); err != nil {
		return nil, errors.NewFieldError("notification", err.Error())
	}
	u.SetSuperuser(cmd.Superuser)

	if cmd.Password != "" {
		pw, err := newPassword(cmd.Password)
		if err != nil {
			return nil, err
		}
		if err := u.SetPassword(pw, uc.hasher); err != nil {
			return nil, err
		}
	}

	taken, err := uc.users.UsernameTaken(ctx, u.Username(), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, usernameTakenError()
	}

	if err := uc.users.Create(ctx, u); err != nil {
		uc.logger.Errorw("failed to create user", "username", u.Username(), "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.logger.Infow("user created successfully", "user_id", u.ID(), "username", u.Username())
	return dto.ToUserDTO(u), nil
}
