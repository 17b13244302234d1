package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an operator identity for the admin console. Admins manage the
// console itself; agent identities are created through the agent roster and
// carry a linked AgentProfile row.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Phone        string `gorm:"index"`
	Role         string `gorm:"default:'agent'"`
	Status       string `gorm:"default:'active'"`
	LastLoginAt  time.Time
	TokenVersion int `gorm:"default:1"`
}
