package milestone

import (
	"time"

	"github.com/orris-inc/tracker/internal/application/milestone/usecases"
)

type CreateMilestoneRequest struct {
	Name    string     `json:"name" validate:"required,max=100"`
	DueDate *time.Time `json:"due_date"`
}

func (r CreateMilestoneRequest) ToCommand(projectName string, actorID uint) usecases.CreateMilestoneCommand {
	return usecases.CreateMilestoneCommand{
		ProjectName: projectName,
		ActorID:     actorID,
		Name:        r.Name,
		DueDate:     r.DueDate,
	}
}

type EditMilestoneRequest struct {
	Name    string     `json:"name" validate:"required,max=100"`
	DueDate *time.Time `json:"due_date"`
}

func (r EditMilestoneRequest) ToCommand(ref usecases.MilestoneRef, actorID uint) usecases.EditMilestoneCommand {
	return usecases.EditMilestoneCommand{
		MilestoneRef: ref,
		ActorID:      actorID,
		Name:         r.Name,
		DueDate:      r.DueDate,
	}
}
