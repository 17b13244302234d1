package repositories

import (
	"voucherdesk/internal/models"

	"gorm.io/gorm"
)

// ReportRepository serves the read-only report queries. Date-range filters
// bound the query when given; nil endpoints leave that side open.
type ReportRepository interface {
	ListSales(filter models.DateRange) ([]models.Sale, error)
	ListSalesPaginated(filter models.DateRange, limit, offset int) ([]models.Sale, int64, error)
	ListEarnings(filter models.DateRange) ([]models.EarningsSummary, error)
	ListInventory() ([]models.InventoryItem, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func applyDateRange(q *gorm.DB, column string, filter models.DateRange) *gorm.DB {
	if filter.StartDate != nil {
		q = q.Where(column+" >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where(column+" <= ?", *filter.EndDate)
	}
	return q
}

func (r *reportRepository) ListSales(filter models.DateRange) ([]models.Sale, error) {
	var sales []models.Sale
	q := applyDateRange(r.db.Model(&models.Sale{}), "sold_at", filter)
	if err := q.Order("sold_at").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *reportRepository) ListSalesPaginated(filter models.DateRange, limit, offset int) ([]models.Sale, int64, error) {
	q := applyDateRange(r.db.Model(&models.Sale{}), "sold_at", filter)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sales []models.Sale
	if err := q.Order("sold_at DESC").Limit(limit).Offset(offset).Find(&sales).Error; err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

// ListEarnings aggregates the per-period summary rows into one row per
// voucher type over the requested range.
func (r *reportRepository) ListEarnings(filter models.DateRange) ([]models.EarningsSummary, error) {
	var rows []models.EarningsSummary
	q := applyDateRange(r.db.Model(&models.EarningsSummary{}), "period", filter)
	err := q.
		Select("voucher_type, SUM(total_amount) AS total_amount, SUM(total_sales) AS total_sales, SUM(platform_commission) AS platform_commission").
		Group("voucher_type").
		Order("voucher_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) ListInventory() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.Order("voucher_type, batch").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
