package models

import "time"

type ProjectModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:64;not null"`
	DisplayName string `gorm:"size:255;not null"`
	// DisplayKey is the case-folded display name; it carries the uniqueness.
	DisplayKey  string `gorm:"uniqueIndex;size:255;not null"`
	Archived    bool   `gorm:"not null;default:false;index"`
	NextIssueID uint   `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProjectModel) TableName() string {
	return "projects"
}

type ProjectSubscriberModel struct {
	ProjectID uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey;index"`
}

func (ProjectSubscriberModel) TableName() string {
	return "project_subscribers"
}
