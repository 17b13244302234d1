package models

import "time"

const (
	TerminalStatusActive   = "active"
	TerminalStatusInactive = "inactive"
)

// Terminal is a point-of-sale device/session registered under exactly one
// retailer. Terminals are the only entity the console mutates: create,
// status toggle and delete.
type Terminal struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	RetailerID   uint       `gorm:"index;not null" json:"retailer_id"`
	Name         string     `json:"name"`
	Serial       string     `gorm:"uniqueIndex" json:"serial"`
	Status       string     `gorm:"default:'active'" json:"status"`
	LastActiveAt *time.Time `json:"last_active_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// OppositeTerminalStatus flips the two-valued status enum. Anything that is
// not active flips to active.
func OppositeTerminalStatus(status string) string {
	if status == TerminalStatusActive {
		return TerminalStatusInactive
	}
	return TerminalStatusActive
}
