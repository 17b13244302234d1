package handlers

import (
	"log"
	"time"

	"voucherdesk/internal/models"
	"voucherdesk/internal/repositories"
	"voucherdesk/internal/services/report"
	"voucherdesk/internal/utils/pagination"
	"voucherdesk/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type ReportHandler struct {
	reports repositories.ReportRepository
}

func NewReportHandler(reports repositories.ReportRepository) *ReportHandler {
	return &ReportHandler{
		reports: reports,
	}
}

// parseDateRange reads optional start_date / end_date query parameters. The
// end date is inclusive of its whole day.
func parseDateRange(c *fiber.Ctx) (models.DateRange, error) {
	var filter models.DateRange

	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return filter, err
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}
	return filter, nil
}

// SalesReport returns sales rows bounded by the optional date filter.
func (h *ReportHandler) SalesReport(c *fiber.Ctx) error {
	filter, err := parseDateRange(c)
	if err != nil {
		return response.BadRequest(c, "Invalid date filter")
	}

	p := pagination.ParseFromRequest(c)
	sales, total, err := h.reports.ListSalesPaginated(filter, p.Limit, p.Offset)
	if err != nil {
		log.Printf("sales report query failed: %v", err)
		return response.ServerError(c, "Failed to fetch sales report")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, sales))
}

// EarningsSummary returns per-voucher-type earnings plus the platform-wide
// commission total and chart points.
func (h *ReportHandler) EarningsSummary(c *fiber.Ctx) error {
	filter, err := parseDateRange(c)
	if err != nil {
		return response.BadRequest(c, "Invalid date filter")
	}

	rows, err := h.reports.ListEarnings(filter)
	if err != nil {
		log.Printf("earnings summary query failed: %v", err)
		return response.ServerError(c, "Failed to fetch earnings summary")
	}

	return response.Success(c, "Earnings summary retrieved", fiber.Map{
		"rows":                rows,
		"chart":               report.ChartPoints(rows),
		"platform_commission": report.SumPlatformCommission(rows),
	})
}

// InventoryReport returns the voucher stock rows.
func (h *ReportHandler) InventoryReport(c *fiber.Ctx) error {
	items, err := h.reports.ListInventory()
	if err != nil {
		log.Printf("inventory report query failed: %v", err)
		return response.ServerError(c, "Failed to fetch inventory report")
	}
	return response.Success(c, "Inventory retrieved", items)
}
