package handlers

import (
	"context"

	permissiondto "github.com/orris-inc/tracker/internal/application/permission/dto"
	permissionusecases "github.com/orris-inc/tracker/internal/application/permission/usecases"
	settingdto "github.com/orris-inc/tracker/internal/application/setting/dto"
	settingusecases "github.com/orris-inc/tracker/internal/application/setting/usecases"
	userdto "github.com/orris-inc/tracker/internal/application/user/dto"
	"github.com/orris-inc/tracker/internal/application/user/usecases"
)

// Use case interfaces for the handlers of this package - enables unit testing with mocks.

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error)
}

type getUserUseCase interface {
	Execute(ctx context.Context, query usecases.GetUserQuery) (*userdto.UserDetailDTO, error)
}

type updateProfileUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateProfileCommand) (*usecases.UpdateProfileResult, error)
}

type changePasswordUseCase interface {
	Execute(ctx context.Context, cmd usecases.ChangePasswordCommand) error
}

type listGrantsUseCase interface {
	Execute(ctx context.Context, scope permissionusecases.Scope) ([]*permissiondto.GrantDTO, error)
}

type changeGrantUseCase interface {
	Execute(ctx context.Context, cmd permissionusecases.ChangeGrantCommand) (*permissionusecases.ChangeGrantResult, error)
}

type getSettingsUseCase interface {
	Execute(ctx context.Context, actorID uint) (*settingdto.SettingsDTO, error)
}

type updateSettingsUseCase interface {
	Execute(ctx context.Context, cmd settingusecases.UpdateSettingsCommand) (*settingusecases.UpdateSettingsResult, error)
}
