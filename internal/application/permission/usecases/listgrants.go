package usecases

import (
	"context"
	"fmt"
	"sort"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/permission/dto"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type ListGrantsUseCase struct {
	permissions permission.Manager
	subjects    *SubjectDirectory
	access      *common.Access
	logger      logger.Interface
}

func NewListGrantsUseCase(
	permissions permission.Manager,
	subjects *SubjectDirectory,
	access *common.Access,
	logger logger.Interface,
) *ListGrantsUseCase {
	return &ListGrantsUseCase{permissions: permissions, subjects: subjects, access: access, logger: logger}
}

func (uc *ListGrantsUseCase) Execute(ctx context.Context, scope Scope) ([]*dto.GrantDTO, error) {
	projectID, err := resolveScope(ctx, uc.access, scope)
	if err != nil {
		return nil, err
	}

	grants, err := uc.permissions.ListGrants(ctx, projectID)
	if err != nil {
		uc.logger.Errorw("failed to list grants", "project", scope.ProjectName, "error", err)
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}

	names := make(map[permission.Subject]string)
	result := make([]*dto.GrantDTO, 0, len(grants))
	for _, g := range grants {
		name, ok := names[g.Subject]
		if !ok {
			name, err = uc.subjects.Name(ctx, g.Subject)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve %s: %w", g.Subject, err)
			}
			names[g.Subject] = name
		}
		result = append(result, dto.ToGrantDTO(g, name))
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Subject != result[j].Subject {
			return result[i].Subject < result[j].Subject
		}
		return result[i].Perm < result[j].Perm
	})
	return result, nil
}
