package models

// All lists every model owned by the tracker schema, in creation order. The
// casbin_rule table is managed by the casbin adapter.
func All() []any {
	return []any{
		&UserModel{},
		&GroupModel{},
		&TeamModel{},
		&GroupMemberModel{},
		&TeamMemberModel{},
		&TeamGroupModel{},
		&ProjectModel{},
		&ProjectSubscriberModel{},
		&LabelModel{},
		&MilestoneModel{},
		&IssueModel{},
		&IssueLabelModel{},
		&IssueSubscriberModel{},
		&EventModel{},
		&ReadMarkerModel{},
		&SettingsModel{},
	}
}
