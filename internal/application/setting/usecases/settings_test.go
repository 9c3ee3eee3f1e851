package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/user"
	infrapermission "github.com/orris-inc/tracker/internal/infrastructure/permission"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/testdb"
	"github.com/orris-inc/tracker/internal/infrastructure/repository"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

func TestSettingsUseCases(t *testing.T) {
	ctx := context.Background()
	gdb := testdb.New(t)
	log := logger.NewLogger()
	users := repository.NewUserRepository(gdb)
	enforcer, err := infrapermission.NewEnforcer(gdb, users, log)
	require.NoError(t, err)
	access := common.NewAccess(repository.NewProjectRepository(gdb), enforcer, log)
	settings := repository.NewSettingRepository(gdb)

	admin, err := user.NewUser("admin", "", "", nil)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, admin))
	_, err = enforcer.Grant(ctx, permission.User(admin.ID()), permission.ManageSettings, nil)
	require.NoError(t, err)
	plain, err := user.NewUser("plain", "", "", nil)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, plain))

	get := NewGetSettingsUseCase(settings, access, log)
	update := NewUpdateSettingsUseCase(settings, access, log)

	current, err := get.Execute(ctx, admin.ID())
	require.NoError(t, err)
	assert.Equal(t, 25, current.ItemsPerPage)

	result, err := update.Execute(ctx, UpdateSettingsCommand{ActorID: admin.ID(), ItemsPerPage: 50})
	require.NoError(t, err)
	assert.True(t, result.Modified)

	result, err = update.Execute(ctx, UpdateSettingsCommand{ActorID: admin.ID(), ItemsPerPage: 50})
	require.NoError(t, err)
	assert.False(t, result.Modified)

	current, err = get.Execute(ctx, admin.ID())
	require.NoError(t, err)
	assert.Equal(t, 50, current.ItemsPerPage)

	_, err = update.Execute(ctx, UpdateSettingsCommand{ActorID: admin.ID(), ItemsPerPage: 500})
	require.Error(t, err)
	assert.Contains(t, errors.GetAppError(err).Fields, "items_per_page")

	_, err = update.Execute(ctx, UpdateSettingsCommand{ActorID: plain.ID(), ItemsPerPage: 10})
	assert.True(t, errors.IsForbiddenError(err))

	_, err = get.Execute(ctx, 0)
	assert.Equal(t, errors.ErrorTypeUnauthorized, errors.GetAppError(err).Type)
}
