package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/project/dto"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type CreateProjectCommand struct {
	ActorID     uint
	Name        string
	DisplayName string
}

type CreateProjectResult struct {
	Project *dto.ProjectDTO
}

// CreateProjectUseCase creates a project. The creator is subscribed to it and
// receives every project permission on it.
type CreateProjectUseCase struct {
	projects    project.Repository
	subscribers project.SubscriberRepository
	permissions permission.Manager
	access      *common.Access
	txMgr       db.Transactor
	logger      logger.Interface
}

func NewCreateProjectUseCase(
	projects project.Repository,
	subscribers project.SubscriberRepository,
	permissions permission.Manager,
	access *common.Access,
	txMgr db.Transactor,
	logger logger.Interface,
) *CreateProjectUseCase {
	return &CreateProjectUseCase{
		projects:    projects,
		subscribers: subscribers,
		permissions: permissions,
		access:      access,
		txMgr:       txMgr,
		logger:      logger,
	}
}

func (uc *CreateProjectUseCase) Execute(ctx context.Context, cmd CreateProjectCommand) (*CreateProjectResult, error) {
	uc.logger.Infow("executing create project use case", "name", cmd.Name, "actor_id", cmd.ActorID)

	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return nil, err
	}
	if err := uc.access.Require(ctx, cmd.ActorID, permission.CreateProject, nil); err != nil {
		return nil, err
	}

	p, err := project.NewProject(cmd.Name, cmd.DisplayName)
	if err != nil {
		return nil, projectValidationError(err)
	}

	existing, err := uc.projects.GetByName(ctx, p.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to check project name: %w", err)
	}
	if existing != nil {
		return nil, errors.NewFieldError("name", "a project with this name already exists")
	}
	taken, err := uc.projects.DisplayNameTaken(ctx, p.DisplayName(), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check display name: %w", err)
	}
	if taken {
		return nil, displayNameTakenError()
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.projects.Create(txCtx, p); err != nil {
			uc.logger.Errorw("failed to create project", "name", p.Name(), "error", err)
			return fmt.Errorf("failed to create project: %w", err)
		}
		if _, err := uc.subscribers.Add(txCtx, p.ID(), cmd.ActorID); err != nil {
			return fmt.Errorf("failed to subscribe creator: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	projectID := p.ID()
	for _, perm := range permission.ProjectPerms {
		if _, err := uc.permissions.Grant(ctx, permission.User(cmd.ActorID), perm, &projectID); err != nil {
			uc.logger.Errorw("failed to grant creator permission", "project_id", projectID, "perm", perm, "error", err)
			return nil, fmt.Errorf("failed to grant %s: %w", perm, err)
		}
	}

	uc.logger.Infow("project created successfully", "project_id", projectID, "name", p.Name())
	return &CreateProjectResult{Project: dto.ToProjectDTO(p)}, nil
}
