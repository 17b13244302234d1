package models

import "time"

// AgentProfile holds the staff profile linked to an agent identity. The
// identity (User) and the profile are written in two separate steps; a
// profile row without a matching identity never exists, but the reverse can
// after a partial creation.
type AgentProfile struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Phone     string    `json:"phone"`
	AvatarKey string    `json:"avatar_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AgentSummary is a roster row: profile fields joined with the identity
// email plus the derived retailer count. The count is computed per query,
// never stored.
type AgentSummary struct {
	ID            uint   `json:"id"`
	UserID        uint   `json:"user_id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	AvatarKey     string `json:"avatar_key"`
	RetailerCount int64  `json:"retailer_count" gorm:"-"`
}
