package mappers

import (
	"github.com/orris-inc/tracker/internal/domain/project"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/models"
)

// ProjectMapper converts between project entities and rows. NextIssueID is owned
// by the repository and never written through the mapper.
type ProjectMapper interface {
	ToModel(p *project.Project) *models.ProjectModel
	ToDomain(model *models.ProjectModel) (*project.Project, error)
}

type ProjectMapperImpl struct{}

func NewProjectMapper() ProjectMapper {
	return &ProjectMapperImpl{}
}

func (m *ProjectMapperImpl) ToModel(p *project.Project) *models.ProjectModel {
	return &models.ProjectModel{
		ID:          p.ID(),
		Name:        p.Name(),
		DisplayName: p.DisplayName(),
		DisplayKey:  project.FoldDisplayName(p.DisplayName()),
		Archived:    p.IsArchived(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func (m *ProjectMapperImpl) ToDomain(model *models.ProjectModel) (*project.Project, error) {
	if model == nil {
		return nil, nil
	}
	return project.ReconstructProject(
		model.ID,
		model.Name,
		model.DisplayName,
		model.Archived,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
