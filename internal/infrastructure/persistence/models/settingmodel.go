package models

import "time"

// SettingsModel holds the single settings row (ID 1).
type SettingsModel struct {
	ID           uint `gorm:"primaryKey;autoIncrement:false"`
	ItemsPerPage int  `gorm:"not null;default:25"`
	UpdatedAt    time.Time
}

func (SettingsModel) TableName() string {
	return "settings"
}
