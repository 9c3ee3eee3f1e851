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

// UpdateProfileCommand edits the actor's own account.
type UpdateProfileCommand struct {
	ActorID      uint
	FirstName    string
	LastName     string
	Email        string
	Notification string
}

type UpdateProfileResult struct {
	User     *dto.UserDTO
	Modified bool
}

type UpdateProfileUseCase struct {
	users  user.Repository
	logger logger.Interface
}

func NewUpdateProfileUseCase(users user.Repository, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{users: users, logger: logger}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*UpdateProfileResult, error) {
	uc.logger.Infow("executing update profile use case", "user_id", cmd.ActorID)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return nil, err
	}
	u, err := loadUser(ctx, uc.users, cmd.ActorID)
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
	changed, err := u.UpdateProfile(cmd.FirstName, cmd.LastName, addr, pref)
	if err != nil {
		return nil, errors.NewFieldError("notification", err.Error())
	}
	if !changed {
		return &UpdateProfileResult{User: dto.ToUserDTO(u)}, nil
	}

	if err := uc.users.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update profile", "user_id", u.ID(), "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	uc.logger.Infow("profile updated successfully", "user_id", u.ID())
	return &UpdateProfileResult{User: dto.ToUserDTO(u), Modified: true}, nil
}
