package dto

import "github.com/orris-inc/tracker/internal/domain/permission"

// GrantDTO is one row of a permission table. All marks project permissions
// granted on every project.
type GrantDTO struct {
	Subject     string `json:"subject"`
	SubjectKind string `json:"subject_kind"`
	SubjectID   uint   `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	Perm        string `json:"perm"`
	ProjectID   *uint  `json:"project_id,omitempty"`
	All         bool   `json:"all"`
}

func ToGrantDTO(g permission.Grant, subjectName string) *GrantDTO {
	return &GrantDTO{
		Subject:     g.Subject.String(),
		SubjectKind: string(g.Subject.Kind),
		SubjectID:   g.Subject.ID,
		SubjectName: subjectName,
		Perm:        g.Perm.String(),
		ProjectID:   g.ProjectID,
		All:         g.All,
	}
}
