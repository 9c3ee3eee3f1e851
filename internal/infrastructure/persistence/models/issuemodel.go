package models

import (
	"time"

	"gorm.io/datatypes"
)

// IssueModel is keyed by (project_id, id); id is local to the project.
type IssueModel struct {
	ProjectID   uint       `gorm:"primaryKey;autoIncrement:false"`
	ID          uint       `gorm:"primaryKey;autoIncrement:false"`
	Title       string     `gorm:"size:255;not null"`
	Description string     `gorm:"type:text;not null"`
	DueDate     *time.Time `gorm:"index"`
	Closed      bool       `gorm:"not null;default:false;index"`
	AuthorID    uint       `gorm:"not null;index"`
	MilestoneID *uint      `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (IssueModel) TableName() string {
	return "issues"
}

type IssueLabelModel struct {
	ProjectID uint `gorm:"primaryKey"`
	IssueID   uint `gorm:"primaryKey"`
	LabelID   uint `gorm:"primaryKey;index"`
}

func (IssueLabelModel) TableName() string {
	return "issue_labels"
}

type IssueSubscriberModel struct {
	ProjectID uint `gorm:"primaryKey"`
	IssueID   uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey;index"`
}

func (IssueSubscriberModel) TableName() string {
	return "issue_subscribers"
}

// EventModel is one entry of an issue history. Args holds the code-specific
// payload; Body is the comment text.
type EventModel struct {
	ID        uint           `gorm:"primaryKey"`
	ProjectID uint           `gorm:"not null;index:idx_events_issue,priority:1"`
	IssueID   uint           `gorm:"not null;index:idx_events_issue,priority:2"`
	AuthorID  uint           `gorm:"not null;index"`
	Code      string         `gorm:"size:32;not null"`
	Args      datatypes.JSON `gorm:"not null"`
	Body      string         `gorm:"column:additionnal_section;type:text;not null"`
	CreatedAt time.Time
}

func (EventModel) TableName() string {
	return "events"
}

type ReadMarkerModel struct {
	UserID          uint `gorm:"primaryKey"`
	ProjectID       uint `gorm:"primaryKey"`
	IssueID         uint `gorm:"primaryKey"`
	LastEventID     uint `gorm:"not null;default:0"`
	PreviousEventID *uint
	UpdatedAt       time.Time
}

func (ReadMarkerModel) TableName() string {
	return "read_markers"
}
