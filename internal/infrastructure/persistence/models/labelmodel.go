package models

import "time"

type LabelModel struct {
	ID        uint   `gorm:"primaryKey"`
	ProjectID uint   `gorm:"not null;index"`
	Name      string `gorm:"size:64;not null"`
	Color     string `gorm:"size:7;not null;default:'#cccccc'"`
	Inverted  bool   `gorm:"not null;default:false"`
	Deleted   bool   `gorm:"not null;default:false"`
}

func (LabelModel) TableName() string {
	return "labels"
}

type MilestoneModel struct {
	ID        uint       `gorm:"primaryKey"`
	ProjectID uint       `gorm:"not null;index"`
	Name      string     `gorm:"size:64;not null"`
	DueDate   *time.Time `gorm:"index"`
	Closed    bool       `gorm:"not null;default:false"`
	Deleted   bool       `gorm:"not null;default:false"`
}

func (MilestoneModel) TableName() string {
	return "milestones"
}
