package models

import (
	"time"
)

// Role names.
const (
	RoleAdministrator = "administrator"
	RoleViewer        = "viewer"
)

// Role decides what an operator may do through the API.
type Role struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	Name        string `gorm:"size:32;uniqueIndex;not null"`
	Description string `gorm:"size:255"`
	// CanRun allows triggering extraction runs; viewers only read archived runs.
	CanRun bool `gorm:"default:false;not null"`
}

// Operator is an account allowed to use the HTTP API.
type Operator struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time `gorm:"index"`
	Username       string     `gorm:"size:255;not null;unique"`
	HashedPassword []byte     `gorm:"not null" json:"-"`
	RoleID         *uint      `gorm:"index"`
	Role           Role       `gorm:"foreignKey:RoleID;references:ID"`
}
