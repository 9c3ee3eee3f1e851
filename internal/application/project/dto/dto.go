package dto

import (
	"time"

	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/shared/mapper"
)

type ProjectDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectDetailDTO adds the per-actor state shown on a project page.
type ProjectDetailDTO struct {
	*ProjectDTO
	Subscribed   bool  `json:"subscribed"`
	UnreadIssues int64 `json:"unread_issues"`
}

func ToProjectDTO(p *project.Project) *ProjectDTO {
	if p == nil {
		return nil
	}
	return &ProjectDTO{
		ID:          p.ID(),
		Name:        p.Name(),
		DisplayName: p.DisplayName(),
		Archived:    p.IsArchived(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func ToProjectDTOs(projects []*project.Project) []*ProjectDTO {
	return mapper.MapSlice(projects, ToProjectDTO)
}
