// Package common holds the project lookup and permission checks shared by use cases.
package common

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

// Access answers "may this actor do that" for use cases. Missing permissions are
// Forbidden, including on projects the actor cannot see. Only absent projects
// are NotFound.
type Access struct {
	projects project.Repository
	oracle   permission.Oracle
	logger   logger.Interface
}

func NewAccess(projects project.Repository, oracle permission.Oracle, logger logger.Interface) *Access {
	return &Access{projects: projects, oracle: oracle, logger: logger}
}

func (a *Access) Has(ctx context.Context, actorID uint, perm permission.Perm, projectID *uint) (bool, error) {
	ok, err := a.oracle.HasPerm(ctx, actorID, perm, projectID)
	if err != nil {
		return false, fmt.Errorf("failed to check permission %s: %w", perm, err)
	}
	return ok, nil
}

// Require fails with Forbidden unless the actor holds perm.
func (a *Access) Require(ctx context.Context, actorID uint, perm permission.Perm, projectID *uint) error {
	ok, err := a.Has(ctx, actorID, perm, projectID)
	if err != nil {
		return err
	}
	if !ok {
		a.logger.Warnw("permission denied", "user_id", actorID, "perm", perm, "project_id", projectID)
		return errors.NewForbiddenError("permission denied", string(perm))
	}
	return nil
}

// RequireInProject is Require for a project permission.
func (a *Access) RequireInProject(ctx context.Context, actorID uint, perm permission.Perm, projectID uint) error {
	return a.Require(ctx, actorID, perm, &projectID)
}

// CanSee reports whether the actor holds any project permission on the project.
func (a *Access) CanSee(ctx context.Context, actorID, projectID uint) (bool, error) {
	for _, perm := range permission.ProjectPerms {
		ok, err := a.Has(ctx, actorID, perm, &projectID)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Project loads a project by name for the actor. An invisible project asks the
// anonymous actor to log in and is Forbidden for everyone else.
func (a *Access) Project(ctx context.Context, actorID uint, name string) (*project.Project, error) {
	p, err := a.projects.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("project not found")
	}

	visible, err := a.CanSee(ctx, actorID, p.ID())
	if err != nil {
		return nil, err
	}
	if !visible {
		a.logger.Warnw("project access denied", "user_id", actorID, "project_id", p.ID())
		if actorID == 0 {
			return nil, errors.NewUnauthorizedError("authentication required")
		}
		return nil, errors.NewForbiddenError("permission denied")
	}
	return p, nil
}

// RequireLogin fails with Unauthorized for the anonymous actor.
func RequireLogin(actorID uint) error {
	if actorID == 0 {
		return errors.NewUnauthorizedError("authentication required")
	}
	return nil
}
