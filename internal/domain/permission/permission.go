package permission

import (
	"fmt"
	"slices"
)

// Perm names a permission. Project permissions are granted per project (or on
// every project); global permissions are granted once.
type Perm string

const (
	CreateIssue             Perm = "create_issue"
	ModifyIssue             Perm = "modify_issue"
	ManageIssue             Perm = "manage_issue"
	CreateComment           Perm = "create_comment"
	ModifyComment           Perm = "modify_comment"
	DeleteComment           Perm = "delete_comment"
	ManageTags              Perm = "manage_tags"
	DeleteTags              Perm = "delete_tags"
	DeleteIssue             Perm = "delete_issue"
	ModifyProject           Perm = "modify_project"
	ManageProjectPermission Perm = "manage_project_permission"
	DeleteProject           Perm = "delete_project"

	CreateProject  Perm = "create_project"
	ManageAccounts Perm = "manage_accounts"
	ManageSettings Perm = "manage_settings"
)

// ProjectPerms lists the per-project permissions in display order.
var ProjectPerms = []Perm{
	CreateIssue, ModifyIssue, ManageIssue,
	CreateComment, ModifyComment, DeleteComment,
	ManageTags, DeleteTags, DeleteIssue,
	ModifyProject, ManageProjectPermission, DeleteProject,
}

var GlobalPerms = []Perm{CreateProject, ManageAccounts, ManageSettings}

func ParsePerm(s string) (Perm, error) {
	p := Perm(s)
	if !p.IsProjectScoped() && !p.IsGlobal() {
		return "", fmt.Errorf("unknown permission: %s", s)
	}
	return p, nil
}

func (p Perm) IsProjectScoped() bool { return slices.Contains(ProjectPerms, p) }
func (p Perm) IsGlobal() bool        { return slices.Contains(GlobalPerms, p) }
func (p Perm) String() string        { return string(p) }
