package repositories

import (
	"voucherdesk/internal/models"

	"gorm.io/gorm"
)

// ConsoleReader bundles the read calls the view controllers depend on, so
// they can take one narrow dependency instead of the whole package.
type ConsoleReader struct {
	reports ReportRepository
}

func NewConsoleReader(db *gorm.DB) *ConsoleReader {
	return &ConsoleReader{reports: NewReportRepository(db)}
}

func (r *ConsoleReader) ListRetailers() ([]models.Retailer, error) {
	return ListRetailers()
}

func (r *ConsoleReader) GetRetailer(id uint) (*models.Retailer, error) {
	return GetRetailerByID(id)
}

func (r *ConsoleReader) ListSales(filter models.DateRange) ([]models.Sale, error) {
	return r.reports.ListSales(filter)
}

func (r *ConsoleReader) ListEarnings(filter models.DateRange) ([]models.EarningsSummary, error) {
	return r.reports.ListEarnings(filter)
}
