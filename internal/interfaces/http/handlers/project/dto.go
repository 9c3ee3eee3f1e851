package project

import "github.com/orris-inc/tracker/internal/application/project/usecases"

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	DisplayName string `json:"display_name" validate:"required"`
}

func (r CreateProjectRequest) ToCommand(actorID uint) usecases.CreateProjectCommand {
	return usecases.CreateProjectCommand{ActorID: actorID, Name: r.Name, DisplayName: r.DisplayName}
}

type UpdateProjectRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
}

func (r UpdateProjectRequest) ToCommand(projectName string, actorID uint) usecases.UpdateProjectCommand {
	return usecases.UpdateProjectCommand{ProjectName: projectName, ActorID: actorID, DisplayName: r.DisplayName}
}

type SubscriptionResponse struct {
	Subscribed bool `json:"subscribed"`
}
