package usecases

import (
	stderrors "errors"

	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/shared/errors"
)

func projectValidationError(err error) error {
	switch {
	case stderrors.Is(err, project.ErrReservedName), stderrors.Is(err, project.ErrInvalidName):
		return errors.NewFieldError("name", err.Error())
	case stderrors.Is(err, project.ErrEmptyDisplayName):
		return errors.NewFieldError("display_name", err.Error())
	}
	return errors.NewValidationError(err.Error())
}

func displayNameTakenError() error {
	return errors.NewFieldError("display_name", "a project with this display name already exists")
}
