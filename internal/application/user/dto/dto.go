package dto

import (
	"time"

	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/mapper"
)

// UserDTO never carries the password hash.
type UserDTO struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email,omitempty"`
	Active       bool      `json:"active"`
	Superuser    bool      `json:"superuser"`
	Notification string    `json:"notification"`
	HasPassword  bool      `json:"has_password"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type GroupDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TeamDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// UserDetailDTO is a user with the groups and teams they belong to directly.
type UserDetailDTO struct {
	*UserDTO
	Groups []*GroupDTO `json:"groups"`
	Teams  []*TeamDTO  `json:"teams"`
}

type GroupDetailDTO struct {
	*GroupDTO
	Users []*UserDTO `json:"users"`
}

type TeamDetailDTO struct {
	*TeamDTO
	Users  []*UserDTO  `json:"users"`
	Groups []*GroupDTO `json:"groups"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:           u.ID(),
		Username:     u.Username(),
		FirstName:    u.FirstName(),
		LastName:     u.LastName(),
		DisplayName:  u.DisplayName(),
		Email:        u.Email().String(),
		Active:       u.IsActive(),
		Superuser:    u.IsSuperuser(),
		Notification: u.Notification().String(),
		HasPassword:  u.HasPassword(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func ToUserDTOs(users []*user.User) []*UserDTO {
	return mapper.MapSlice(users, ToUserDTO)
}

func ToGroupDTO(g *user.Group) *GroupDTO {
	if g == nil {
		return nil
	}
	return &GroupDTO{ID: g.ID(), Name: g.Name()}
}

func ToGroupDTOs(groups []*user.Group) []*GroupDTO {
	return mapper.MapSlice(groups, ToGroupDTO)
}

func ToTeamDTO(t *user.Team) *TeamDTO {
	if t == nil {
		return nil
	}
	return &TeamDTO{ID: t.ID(), Name: t.Name()}
}

func ToTeamDTOs(teams []*user.Team) []*TeamDTO {
	return mapper.MapSlice(teams, ToTeamDTO)
}
