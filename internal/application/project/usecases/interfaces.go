package usecases

import (
	"context"

	"github.com/orris-inc/tracker/internal/application/project/dto"
)

type ListProjectsExecutor interface {
	Execute(ctx context.Context, query ListProjectsQuery) ([]*dto.ProjectDTO, error)
}

type GetProjectExecutor interface {
	Execute(ctx context.Context, query GetProjectQuery) (*dto.ProjectDetailDTO, error)
}

type CreateProjectExecutor interface {
	Execute(ctx context.Context, cmd CreateProjectCommand) (*CreateProjectResult, error)
}

type UpdateProjectExecutor interface {
	Execute(ctx context.Context, cmd UpdateProjectCommand) (*UpdateProjectResult, error)
}

type DeleteProjectExecutor interface {
	Execute(ctx context.Context, cmd DeleteProjectCommand) error
}

type ArchiveProjectExecutor interface {
	Execute(ctx context.Context, cmd ArchiveProjectCommand) (*dto.ProjectDTO, error)
}

type ProjectSubscriptionExecutor interface {
	Execute(ctx context.Context, cmd ProjectSubscriptionCommand) (*ProjectSubscriptionResult, error)
}

type MarkProjectReadExecutor interface {
	Execute(ctx context.Context, cmd MarkProjectReadCommand) error
}
