package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/user/dto"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/query"
)

type ListUsersQuery struct {
	ActorID  uint
	Search   string
	Page     int
	PageSize int
}

type ListUsersResult struct {
	Users    []*dto.UserDTO
	Total    int64
	Page     int
	PageSize int
}

type ListUsersUseCase struct {
	users  user.Repository
	access *common.Access
	logger logger.Interface
}

func NewListUsersUseCase(users user.Repository, access *common.Access, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{users: users, access: access, logger: logger}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, q ListUsersQuery) (*ListUsersResult, error) {
	if err := requireAccountManager(ctx, uc.access, q.ActorID); err != nil {
		return nil, err
	}

	page := query.NewPageFilter(q.Page, q.PageSize)
	users, total, err := uc.users.List(ctx, user.ListFilter{
		Page:     page.CurrentPage(),
		PageSize: page.Limit(),
		Search:   q.Search,
	})
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &ListUsersResult{
		Users:    dto.ToUserDTOs(users),
		Total:    total,
		Page:     page.CurrentPage(),
		PageSize: page.Limit(),
	}, nil
}
