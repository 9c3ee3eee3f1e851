package account

import (
	"github.com/orris-inc/tracker/internal/application/user/usecases"
)

type CreateUserRequest struct {
	Username     string `json:"username" validate:"required,max=150"`
	FirstName    string `json:"first_name" validate:"max=150"`
	LastName     string `json:"last_name" validate:"max=150"`
	Email        string `json:"email" validate:"omitempty,email"`
	Notification string `json:"notification" validate:"omitempty,oneof=NEVER MINE ALWAYS"`
	Password     string `json:"password"`
	Superuser    bool   `json:"superuser"`
}

func (r CreateUserRequest) ToCommand(actorID uint) usecases.CreateUserCommand {
	return usecases.CreateUserCommand{
		ActorID:      actorID,
		Username:     r.Username,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Notification: r.Notification,
		Password:     r.Password,
		Superuser:    r.Superuser,
	}
}

type UpdateUserRequest struct {
	Username     string `json:"username" validate:"required,max=150"`
	FirstName    string `json:"first_name" validate:"max=150"`
	LastName     string `json:"last_name" validate:"max=150"`
	Email        string `json:"email" validate:"omitempty,email"`
	Notification string `json:"notification" validate:"omitempty,oneof=NEVER MINE ALWAYS"`
	Superuser    bool   `json:"superuser"`
}

func (r UpdateUserRequest) ToCommand(userID, actorID uint) usecases.UpdateUserCommand {
	return usecases.UpdateUserCommand{
		ActorID:      actorID,
		UserID:       userID,
		Username:     r.Username,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Notification: r.Notification,
		Superuser:    r.Superuser,
	}
}

type SetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// NameRequest is the body for creating or renaming a group or team.
type NameRequest struct {
	Name string `json:"name" validate:"required,max=150"`
}

// AddMemberRequest names the member as "user:<id>" or "group:<id>".
type AddMemberRequest struct {
	Member string `json:"member" validate:"required"`
}
