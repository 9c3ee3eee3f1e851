package usecases

import (
	"context"

	"github.com/orris-inc/tracker/internal/application/issue/dto"
)

type CreateIssueExecutor interface {
	Execute(ctx context.Context, cmd CreateIssueCommand) (*CreateIssueResult, error)
}

type UpdateIssueExecutor interface {
	Execute(ctx context.Context, cmd UpdateIssueCommand) (*UpdateIssueResult, error)
}

type ChangeIssueStateExecutor interface {
	Execute(ctx context.Context, cmd ChangeIssueStateCommand) (*ChangeIssueStateResult, error)
}

type DeleteIssueExecutor interface {
	Execute(ctx context.Context, cmd DeleteIssueCommand) error
}

type GetIssueExecutor interface {
	Execute(ctx context.Context, query GetIssueQuery) (*dto.IssueDetailDTO, error)
}

type ListIssuesExecutor interface {
	Execute(ctx context.Context, query ListIssuesQuery) (*ListIssuesResult, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error)
}

type EditCommentExecutor interface {
	Execute(ctx context.Context, cmd EditCommentCommand) (*EditCommentResult, error)
}

type DeleteCommentExecutor interface {
	Execute(ctx context.Context, cmd DeleteCommentCommand) error
}

type IssueLabelExecutor interface {
	Execute(ctx context.Context, cmd IssueLabelCommand) (*IssueLabelResult, error)
}

type IssueMilestoneExecutor interface {
	Execute(ctx context.Context, cmd IssueMilestoneCommand) (*IssueMilestoneResult, error)
}

type IssueSubscriptionExecutor interface {
	Execute(ctx context.Context, cmd IssueSubscriptionCommand) (*IssueSubscriptionResult, error)
}
