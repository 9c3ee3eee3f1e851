package dto

import (
	"time"

	"github.com/orris-inc/tracker/internal/domain/milestone"
	"github.com/orris-inc/tracker/internal/shared/mapper"
)

type MilestoneDTO struct {
	ID        uint       `json:"id"`
	ProjectID uint       `json:"project_id"`
	Name      string     `json:"name"`
	DueDate   *time.Time `json:"due_date"`
	Closed    bool       `json:"closed"`
	Deleted   bool       `json:"deleted,omitempty"`
}

func ToMilestoneDTO(m *milestone.Milestone) *MilestoneDTO {
	if m == nil {
		return nil
	}
	return &MilestoneDTO{
		ID:        m.ID(),
		ProjectID: m.ProjectID(),
		Name:      m.Name(),
		DueDate:   m.DueDate(),
		Closed:    m.IsClosed(),
		Deleted:   m.IsDeleted(),
	}
}

func ToMilestoneDTOs(milestones []*milestone.Milestone) []*MilestoneDTO {
	return mapper.MapSlice(milestones, ToMilestoneDTO)
}
