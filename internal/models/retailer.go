package models

import "time"

// CommissionGroup is the commission tier a retailer belongs to.
type CommissionGroup struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	Name      string  `gorm:"uniqueIndex;not null" json:"name"`
	Rate      float64 `gorm:"default:0" json:"rate"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Retailer is a merchant account permitted to sell vouchers through one or
// more terminals. Retailer rows are created and settled by the upstream
// platform; the console only reads them.
type Retailer struct {
	ID                uint             `gorm:"primarykey" json:"id"`
	Name              string           `gorm:"not null;index" json:"name"`
	ContactName       string           `json:"contact_name"`
	ContactEmail      string           `json:"contact_email"`
	Status            string           `gorm:"default:'active'" json:"status"`
	Balance           float64          `gorm:"default:0" json:"balance"`
	CreditUsed        float64          `gorm:"default:0" json:"credit_used"`
	CommissionBalance float64          `gorm:"default:0" json:"commission_balance"`
	CommissionGroupID *uint            `json:"commission_group_id"`
	CommissionGroup   *CommissionGroup `gorm:"foreignKey:CommissionGroupID" json:"commission_group,omitempty"`
	AgentID           *uint            `gorm:"index" json:"agent_id"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// CommissionGroupName resolves the preloaded group name, or "" when the
// retailer has no group assigned.
func (r *Retailer) CommissionGroupName() string {
	if r.CommissionGroup == nil {
		return ""
	}
	return r.CommissionGroup.Name
}

const RetailerStatusActive = "active"
