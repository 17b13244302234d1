package models

import "time"

// Sale is one voucher sale as recorded by the platform. The retailer name is
// denormalized onto the row; retailer-scoped views filter on it directly
// rather than joining by identity.
type Sale struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	SoldAt             time.Time `gorm:"index;not null" json:"sold_at"`
	RetailerName       string    `gorm:"index" json:"retailer_name"`
	VoucherType        string    `json:"voucher_type"`
	Amount             float64   `json:"amount"`
	RetailerCommission float64   `json:"retailer_commission"`
	PlatformCommission float64   `json:"platform_commission"`
}

// EarningsSummary is a precomputed earnings row per voucher type and period.
type EarningsSummary struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	Period             time.Time `gorm:"index" json:"period"`
	VoucherType        string    `gorm:"index" json:"voucher_type"`
	TotalAmount        float64   `json:"total_amount"`
	TotalSales         int64     `json:"total_sales"`
	PlatformCommission float64   `json:"platform_commission"`
}

// InventoryItem is a voucher stock row.
type InventoryItem struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	VoucherType    string    `gorm:"index" json:"voucher_type"`
	Batch          string    `json:"batch"`
	UnitsRemaining int64     `json:"units_remaining"`
	UnitValue      float64   `json:"unit_value"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DateRange bounds a report query. Nil endpoints leave that side unbounded.
type DateRange struct {
	StartDate *time.Time
	EndDate   *time.Time
}
