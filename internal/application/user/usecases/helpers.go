package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/user"
	vo "github.com/orris-inc/tracker/internal/domain/user/valueobjects"
	"github.com/orris-inc/tracker/internal/shared/errors"
)

// requireAccountManager checks the global manage_accounts permission.
func requireAccountManager(ctx context.Context, access *common.Access, actorID uint) error {
	if err := common.RequireLogin(actorID); err != nil {
		return err
	}
	return access.Require(ctx, actorID, permission.ManageAccounts, nil)
}

func loadUser(ctx context.Context, users user.Repository, id uint) (*user.User, error) {
	u, err := users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}
	return u, nil
}

func loadGroup(ctx context.Context, groups user.GroupRepository, id uint) (*user.Group, error) {
	g, err := groups.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if g == nil {
		return nil, errors.NewNotFoundError("group not found")
	}
	return g, nil
}

func loadTeam(ctx context.Context, teams user.TeamRepository, id uint) (*user.Team, error) {
	t, err := teams.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load team: %w", err)
	}
	if t == nil {
		return nil, errors.NewNotFoundError("team not found")
	}
	return t, nil
}

// profileFields parses the optional email and the notification preference of a
// profile form.
func profileFields(email, notification string) (*vo.Email, vo.Preference, error) {
	addr, err := vo.NewOptionalEmail(email)
	if err != nil {
		return nil, "", errors.NewFieldError("email", err.Error())
	}
	pref := vo.PreferenceMine
	if notification != "" {
		pref, err = vo.ParsePreference(notification)
		if err != nil {
			return nil, "", errors.NewFieldError("notification", err.Error())
		}
	}
	return addr, pref, nil
}

func newPassword(plain string) (*vo.Password, error) {
	pw, err := vo.NewPassword(plain)
	if err != nil {
		return nil, errors.NewFieldError("password", err.Error())
	}
	return pw, nil
}

func usernameTakenError() error {
	return errors.NewFieldError("username", "a user with this username already exists")
}
