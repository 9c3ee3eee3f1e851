package usecases

import (
	"context"

	"github.com/orris-inc/tracker/internal/application/common"
	issueusecases "github.com/orris-inc/tracker/internal/application/issue/usecases"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type MarkProjectReadCommand struct {
	ProjectName string
	ActorID     uint
}

type MarkProjectReadUseCase struct {
	reads  *issueusecases.ReadTracker
	access *common.Access
	logger logger.Interface
}

func NewMarkProjectReadUseCase(reads *issueusecases.ReadTracker, access *common.Access, logger logger.Interface) *MarkProjectReadUseCase {
	return &MarkProjectReadUseCase{reads: reads, access: access, logger: logger}
}

func (uc *MarkProjectReadUseCase) Execute(ctx context.Context, cmd MarkProjectReadCommand) error {
	if err := common.RequireLogin(cmd.ActorID); err != nil {
		return err
	}
	p, err := uc.access.Project(ctx, cmd.ActorID, cmd.ProjectName)
	if err != nil {
		return err
	}
	return uc.reads.MarkAllAsRead(ctx, cmd.ActorID, p.ID())
}
