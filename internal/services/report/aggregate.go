// Package report contains the pure aggregation functions the dashboard and
// detail views derive their metrics from. Every function tolerates empty
// input and leaves its input untouched.
package report

import (
	"sort"

	"voucherdesk/internal/models"
)

const dateLayout = "2006-01-02"

// FilterByRetailer returns the sales whose denormalized retailer name
// exactly equals the target. The match is case-sensitive and the function is
// idempotent: filtering its own result changes nothing.
func FilterByRetailer(sales []models.Sale, retailerName string) []models.Sale {
	out := make([]models.Sale, 0, len(sales))
	for _, s := range sales {
		if s.RetailerName == retailerName {
			out = append(out, s)
		}
	}
	return out
}

// SumAmounts totals the sale amounts of a collection.
func SumAmounts(sales []models.Sale) float64 {
	var total float64
	for _, s := range sales {
		total += s.Amount
	}
	return total
}

// CountActive counts retailers whose status is active.
func CountActive(retailers []models.Retailer) int {
	count := 0
	for _, r := range retailers {
		if r.Status == models.RetailerStatusActive {
			count++
		}
	}
	return count
}

// GroupByDate buckets sales by the date portion of their timestamp (UTC, not
// localized). Buckets come back ascending by date string.
func GroupByDate(sales []models.Sale) []models.SalesBucket {
	byDate := make(map[string]*models.SalesBucket)
	for _, s := range sales {
		date := s.SoldAt.UTC().Format(dateLayout)
		bucket, ok := byDate[date]
		if !ok {
			bucket = &models.SalesBucket{Date: date}
			byDate[date] = bucket
		}
		bucket.Total += s.Amount
		bucket.Count++
	}

	out := make([]models.SalesBucket, 0, len(byDate))
	for _, b := range byDate {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ChartPoints maps earnings rows into the triples the charts consume.
func ChartPoints(rows []models.EarningsSummary) []models.EarningsPoint {
	out := make([]models.EarningsPoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.EarningsPoint{
			Type:  r.VoucherType,
			Sales: r.TotalAmount,
			Count: r.TotalSales,
		})
	}
	return out
}

// SumPlatformCommission totals the platform's share across earnings rows.
func SumPlatformCommission(rows []models.EarningsSummary) float64 {
	var total float64
	for _, r := range rows {
		total += r.PlatformCommission
	}
	return total
}
