package usecases

import (
	"context"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

type StreamAccessQuery struct {
	ProjectName string
	ActorID     uint
}

// StreamAccessUseCase resolves the project a live activity listener asks for. The
// listener sees the same projects as the activity page.
type StreamAccessUseCase struct {
	access *common.Access
	logger logger.Interface
}

func NewStreamAccessUseCase(access *common.Access, logger logger.Interface) *StreamAccessUseCase {
	return &StreamAccessUseCase{access: access, logger: logger}
}

// Execute returns the id of the project to stream.
func (uc *StreamAccessUseCase) Execute(ctx context.Context, q StreamAccessQuery) (uint, error) {
	p, err := uc.access.Project(ctx, q.ActorID, q.ProjectName)
	if err != nil {
		uc.logger.Debugw("activity stream refused", "project", q.ProjectName, "user_id", q.ActorID, "error", err)
		return 0, err
	}
	return p.ID(), nil
}
