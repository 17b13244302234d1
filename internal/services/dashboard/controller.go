// Package dashboard drives the admin dashboard view. The controller moves
// through authenticating → loading → {error | ready}; a failure at any fetch
// step aborts the remaining fetches and leaves the data zeroed, so a partial
// load is never exposed as partial success.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"sync"
	"time"

	"voucherdesk/internal/models"
	"voucherdesk/internal/services/guard"
	"voucherdesk/internal/services/report"
)

type State int

const (
	StateAuthenticating State = iota
	StateLoading
	StateError
	StateReady
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAccessDenied     = errors.New("access denied")
	ErrStaleLoad        = errors.New("stale load cycle discarded")
)

// Fetcher is the slice of the data-access layer the dashboard reads.
type Fetcher interface {
	ListRetailers() ([]models.Retailer, error)
	ListSales(filter models.DateRange) ([]models.Sale, error)
	ListEarnings(filter models.DateRange) ([]models.EarningsSummary, error)
}

// SnapshotCache stores the derived snapshot between loads. The Redis cache
// service satisfies it; tests pass nil.
type SnapshotCache interface {
	GetDashboard(ctx context.Context) (*models.DashboardSnapshot, bool)
	CacheDashboard(ctx context.Context, snap *models.DashboardSnapshot, ttl time.Duration) error
}

type Controller struct {
	guard *guard.Guard
	fetch Fetcher
	cache SnapshotCache
	ttl   time.Duration
	now   func() time.Time

	mu          sync.Mutex
	seq         uint64
	state       State
	errMsg      string
	snapshot    models.DashboardSnapshot
	fingerprint string
}

func NewController(g *guard.Guard, fetch Fetcher, cache SnapshotCache) *Controller {
	return &Controller{
		guard: g,
		fetch: fetch,
		cache: cache,
		ttl:   time.Minute,
		now:   time.Now,
		state: StateAuthenticating,
	}
}

// Load runs one full load cycle and returns the derived snapshot. Each cycle
// carries a monotonic sequence number; a completion tagged with a stale
// sequence never overwrites fresher state.
func (c *Controller) Load(ctx context.Context, claims *models.UserClaims) (*models.DashboardSnapshot, error) {
	switch c.guard.Check(claims) {
	case guard.Pending:
		c.mu.Lock()
		c.state = StateAuthenticating
		c.mu.Unlock()
		return nil, ErrNotAuthenticated
	case guard.Denied:
		c.mu.Lock()
		c.state = StateError
		c.errMsg = ErrAccessDenied.Error()
		c.mu.Unlock()
		return nil, ErrAccessDenied
	}

	if c.cache != nil {
		if snap, ok := c.cache.GetDashboard(ctx); ok {
			c.mu.Lock()
			c.state = StateReady
			c.errMsg = ""
			c.snapshot = *snap
			c.mu.Unlock()
			return snap, nil
		}
	}

	c.mu.Lock()
	c.state = StateLoading
	c.seq++
	myseq := c.seq
	c.mu.Unlock()

	retailers, err := c.fetch.ListRetailers()
	if err != nil {
		return nil, c.fail(myseq, fmt.Errorf("failed to load retailers: %w", err))
	}

	today := startOfDay(c.now().UTC())
	sales, err := c.fetch.ListSales(models.DateRange{StartDate: &today})
	if err != nil {
		return nil, c.fail(myseq, fmt.Errorf("failed to load sales: %w", err))
	}

	earnings, err := c.fetch.ListEarnings(models.DateRange{})
	if err != nil {
		return nil, c.fail(myseq, fmt.Errorf("failed to load earnings: %w", err))
	}

	return c.apply(ctx, myseq, retailers, sales, earnings)
}

// fail records the first encountered error and zeroes any previously derived
// data, unless a newer cycle has already taken over.
func (c *Controller) fail(myseq uint64, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != myseq {
		return ErrStaleLoad
	}
	c.state = StateError
	c.errMsg = err.Error()
	c.snapshot = models.DashboardSnapshot{}
	c.fingerprint = ""
	return err
}

func (c *Controller) apply(ctx context.Context, myseq uint64, retailers []models.Retailer, sales []models.Sale, earnings []models.EarningsSummary) (*models.DashboardSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.seq != myseq {
		if c.state == StateReady {
			snap := c.snapshot
			return &snap, nil
		}
		return nil, ErrStaleLoad
	}

	// Derived metrics are memoized on their inputs; identical collections
	// skip the recompute.
	fp := fingerprint(retailers, sales, earnings)
	if fp != c.fingerprint {
		c.snapshot = models.DashboardSnapshot{
			Stats: models.DashboardStats{
				TodayTotal:         report.SumAmounts(sales),
				TodaySales:         len(sales),
				ActiveRetailers:    report.CountActive(retailers),
				TotalRetailers:     len(retailers),
				PlatformCommission: report.SumPlatformCommission(earnings),
			},
			SalesByDate: report.GroupByDate(sales),
			Earnings:    report.ChartPoints(earnings),
			GeneratedAt: c.now().UTC(),
		}
		c.fingerprint = fp
	}
	c.state = StateReady
	c.errMsg = ""

	if c.cache != nil {
		if err := c.cache.CacheDashboard(ctx, &c.snapshot, c.ttl); err != nil {
			log.Printf("failed to cache dashboard snapshot: %v", err)
		}
	}

	snap := c.snapshot
	return &snap, nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// fingerprint hashes the identifying fields of every raw row, so any change
// to the collections forces a recompute of the derived metrics.
func fingerprint(retailers []models.Retailer, sales []models.Sale, earnings []models.EarningsSummary) string {
	h := fnv.New64a()
	for _, r := range retailers {
		fmt.Fprintf(h, "r:%d:%s;", r.ID, r.Status)
	}
	for _, s := range sales {
		fmt.Fprintf(h, "s:%d:%d:%.4f;", s.ID, s.SoldAt.UnixNano(), s.Amount)
	}
	for _, e := range earnings {
		fmt.Fprintf(h, "e:%s:%.4f:%d:%.4f;", e.VoucherType, e.TotalAmount, e.TotalSales, e.PlatformCommission)
	}
	return fmt.Sprintf("%d:%d:%d:%x", len(retailers), len(sales), len(earnings), h.Sum64())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
