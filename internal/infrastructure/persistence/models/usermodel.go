package models

import "time"

type UserModel struct {
	ID           uint    `gorm:"primaryKey"`
	Username     string  `gorm:"uniqueIndex;size:150;not null"`
	FirstName    string  `gorm:"size:150;not null;default:''"`
	LastName     string  `gorm:"size:150;not null;default:''"`
	Email        *string `gorm:"size:254"`
	PasswordHash *string `gorm:"size:255"`
	IsActive     bool    `gorm:"not null"`
	IsSuperuser  bool    `gorm:"not null;default:false"`
	Notification string  `gorm:"size:8;not null;default:'MINE'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// GroupModel uses account_groups since GROUPS is reserved in MySQL 8.
type GroupModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:150;not null"`
}

func (GroupModel) TableName() string {
	return "account_groups"
}

type TeamModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:150;not null"`
}

func (TeamModel) TableName() string {
	return "account_teams"
}

type GroupMemberModel struct {
	GroupID uint `gorm:"primaryKey"`
	UserID  uint `gorm:"primaryKey;index"`
}

func (GroupMemberModel) TableName() string {
	return "group_members"
}

type TeamMemberModel struct {
	TeamID uint `gorm:"primaryKey"`
	UserID uint `gorm:"primaryKey;index"`
}

func (TeamMemberModel) TableName() string {
	return "team_members"
}

type TeamGroupModel struct {
	TeamID  uint `gorm:"primaryKey"`
	GroupID uint `gorm:"primaryKey;index"`
}

func (TeamGroupModel) TableName() string {
	return "team_groups"
}
