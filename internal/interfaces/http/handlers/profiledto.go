package handlers

import (
	"github.com/orris-inc/tracker/internal/application/user/usecases"
)

// UpdateProfileRequest represents HTTP request to update profile
type UpdateProfileRequest struct {
	FirstName    string `json:"first_name" validate:"max=150"`
	LastName     string `json:"last_name" validate:"max=150"`
	Email        string `json:"email" validate:"omitempty,email"`
	Notification string `json:"notification" validate:"omitempty,oneof=NEVER MINE ALWAYS"`
}

func (r UpdateProfileRequest) ToCommand(actorID uint) usecases.UpdateProfileCommand {
	return usecases.UpdateProfileCommand{
		ActorID:      actorID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Notification: r.Notification,
	}
}

// ChangePasswordRequest represents HTTP request to change password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

func (r ChangePasswordRequest) ToCommand(actorID uint) usecases.ChangePasswordCommand {
	return usecases.ChangePasswordCommand{
		ActorID:     actorID,
		OldPassword: r.OldPassword,
		NewPassword: r.NewPassword,
	}
}
