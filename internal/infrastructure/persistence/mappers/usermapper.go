package mappers

import (
	"fmt"

	"github.com/orris-inc/tracker/internal/domain/user"
	vo "github.com/orris-inc/tracker/internal/domain/user/valueobjects"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between user entities and persistence models
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) *models.UserModel
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	var email *vo.Email
	if model.Email != nil {
		var err error
		email, err = vo.NewOptionalEmail(*model.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to create email value object: %w", err)
		}
	}

	return user.ReconstructUser(user.UserData{
		ID:           model.ID,
		Username:     model.Username,
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		Email:        email,
		PasswordHash: model.PasswordHash,
		Active:       model.IsActive,
		Superuser:    model.IsSuperuser,
		Notification: vo.Preference(model.Notification),
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	})
}

func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	model := &models.UserModel{
		ID:           entity.ID(),
		Username:     entity.Username(),
		FirstName:    entity.FirstName(),
		LastName:     entity.LastName(),
		PasswordHash: entity.PasswordHash(),
		IsActive:     entity.IsActive(),
		IsSuperuser:  entity.IsSuperuser(),
		Notification: entity.Notification().String(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
	if entity.Email() != nil {
		email := entity.Email().String()
		model.Email = &email
	}
	return model
}
