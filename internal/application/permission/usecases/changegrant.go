package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

// ChangeGrantCommand grants or revokes Perm for Subject. In the global scope a
// project permission applies to every project.
type ChangeGrantCommand struct {
	Scope
	Subject permission.Subject
	Perm    string
}

type ChangeGrantResult struct {
	Modified bool
}

type ChangeGrantUseCase struct {
	granting    bool
	permissions permission.Manager
	subjects    *SubjectDirectory
	access      *common.Access
	logger      logger.Interface
}

func NewGrantUseCase(permissions permission.Manager, subjects *SubjectDirectory, access *common.Access, logger logger.Interface) *ChangeGrantUseCase {
	return &ChangeGrantUseCase{granting: true, permissions: permissions, subjects: subjects, access: access, logger: logger}
}

func NewRevokeUseCase(permissions permission.Manager, subjects *SubjectDirectory, access *common.Access, logger logger.Interface) *ChangeGrantUseCase {
	return &ChangeGrantUseCase{granting: false, permissions: permissions, subjects: subjects, access: access, logger: logger}
}

func (uc *ChangeGrantUseCase) Execute(ctx context.Context, cmd ChangeGrantCommand) (*ChangeGrantResult, error) {
	uc.logger.Infow("executing change grant use case",
		"granting", uc.granting,
		"subject", cmd.Subject.String(),
		"perm", cmd.Perm,
		"project", cmd.ProjectName,
		"actor_id", cmd.ActorID,
	)

	projectID, err := resolveScope(ctx, uc.access, cmd.Scope)
	if err != nil {
		return nil, err
	}

	perm, err := permission.ParsePerm(cmd.Perm)
	if err != nil {
		return nil, errors.NewFieldError("perm", err.Error())
	}
	if projectID != nil && !perm.IsProjectScoped() {
		return nil, errors.NewFieldError("perm", fmt.Sprintf("%s is not a project permission", perm))
	}
	if perm.IsGlobal() && cmd.Subject.Kind == permission.KindUser && cmd.Subject.ID == 0 {
		return nil, errors.NewFieldError("subject", "global permissions cannot be granted to anonymous users")
	}

	var modified bool
	if uc.granting {
		if err := uc.subjects.require(ctx, cmd.Subject); err != nil {
			return nil, err
		}
		modified, err = uc.permissions.Grant(ctx, cmd.Subject, perm, projectID)
	} else {
		modified, err = uc.permissions.Revoke(ctx, cmd.Subject, perm, projectID)
	}
	if err != nil {
		uc.logger.Errorw("failed to change grant", "subject", cmd.Subject.String(), "perm", perm, "error", err)
		return nil, err
	}

	return &ChangeGrantResult{Modified: modified}, nil
}
