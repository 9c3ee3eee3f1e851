package dto

import (
	"github.com/orris-inc/tracker/internal/domain/label"
	"github.com/orris-inc/tracker/internal/shared/mapper"
)

type LabelDTO struct {
	ID        uint   `json:"id"`
	ProjectID uint   `json:"project_id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Inverted  bool   `json:"inverted"`
	Deleted   bool   `json:"deleted,omitempty"`
}

func ToLabelDTO(l *label.Label) *LabelDTO {
	if l == nil {
		return nil
	}
	return &LabelDTO{
		ID:        l.ID(),
		ProjectID: l.ProjectID(),
		Name:      l.Name(),
		Color:     l.Color(),
		Inverted:  l.Inverted(),
		Deleted:   l.IsDeleted(),
	}
}

func ToLabelDTOs(labels []*label.Label) []*LabelDTO {
	return mapper.MapSlice(labels, ToLabelDTO)
}
