package label

import "github.com/orris-inc/tracker/internal/application/label/usecases"

// SaveLabelRequest is the body of both create and update.
type SaveLabelRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Color    string `json:"color" validate:"required,hexcolor"`
	Inverted bool   `json:"inverted"`
}

func (r SaveLabelRequest) ToCommand(projectName string, labelID, actorID uint) usecases.SaveLabelCommand {
	return usecases.SaveLabelCommand{
		ProjectName: projectName,
		ActorID:     actorID,
		LabelID:     labelID,
		Name:        r.Name,
		Color:       r.Color,
		Inverted:    r.Inverted,
	}
}
