package common

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/errors"
)

// RequireSubscriber fails with a validation error unless the actor can receive
// notifications: an email address and a preference other than NEVER.
func RequireSubscriber(ctx context.Context, users user.Repository, actorID uint) error {
	u, err := users.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return errors.NewUnauthorizedError("authentication required")
	}
	if !u.CanSubscribe() {
		return errors.NewValidationError(user.ErrCannotSubscribe.Error())
	}
	return nil
}
