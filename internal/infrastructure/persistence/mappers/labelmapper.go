package mappers

import (
	"github.com/orris-inc/tracker/internal/domain/label"
	"github.com/orris-inc/tracker/internal/domain/milestone"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/models"
)

func LabelToModel(l *label.Label) *models.LabelModel {
	return &models.LabelModel{
		ID:        l.ID(),
		ProjectID: l.ProjectID(),
		Name:      l.Name(),
		Color:     l.Color(),
		Inverted:  l.Inverted(),
		Deleted:   l.IsDeleted(),
	}
}

func LabelToDomain(model *models.LabelModel) *label.Label {
	if model == nil {
		return nil
	}
	return label.ReconstructLabel(model.ID, model.ProjectID, model.Name, model.Color, model.Inverted, model.Deleted)
}

func MilestoneToModel(m *milestone.Milestone) *models.MilestoneModel {
	return &models.MilestoneModel{
		ID:        m.ID(),
		ProjectID: m.ProjectID(),
		Name:      m.Name(),
		DueDate:   m.DueDate(),
		Closed:    m.IsClosed(),
		Deleted:   m.IsDeleted(),
	}
}

func MilestoneToDomain(model *models.MilestoneModel) *milestone.Milestone {
	if model == nil {
		return nil
	}
	return milestone.ReconstructMilestone(model.ID, model.ProjectID, model.Name, model.DueDate, model.Closed, model.Deleted)
}
