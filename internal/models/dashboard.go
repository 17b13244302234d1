package models

import "time"

// DashboardStats represents the headline tiles of the admin dashboard.
type DashboardStats struct {
	TodayTotal         float64 `json:"today_total"`
	TodaySales         int     `json:"today_sales"`
	ActiveRetailers    int     `json:"active_retailers"`
	TotalRetailers     int     `json:"total_retailers"`
	PlatformCommission float64 `json:"platform_commission"`
}

// SalesBucket is one calendar-date bucket of sales. Date is the date portion
// of the sale timestamp in UTC, formatted 2006-01-02.
type SalesBucket struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// EarningsPoint is one chart point derived from an earnings row.
type EarningsPoint struct {
	Type  string  `json:"type"`
	Sales float64 `json:"sales"`
	Count int64   `json:"count"`
}

// DashboardSnapshot is the fully derived dashboard payload.
type DashboardSnapshot struct {
	Stats       DashboardStats  `json:"stats"`
	SalesByDate []SalesBucket   `json:"sales_by_date"`
	Earnings    []EarningsPoint `json:"earnings"`
	GeneratedAt time.Time       `json:"generated_at"`
}
