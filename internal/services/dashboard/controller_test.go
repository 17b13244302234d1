package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"voucherdesk/internal/models"
	"voucherdesk/internal/services/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) ListRetailers() ([]models.Retailer, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Retailer), args.Error(1)
}

func (m *mockFetcher) ListSales(filter models.DateRange) ([]models.Sale, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sale), args.Error(1)
}

func (m *mockFetcher) ListEarnings(filter models.DateRange) ([]models.EarningsSummary, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EarningsSummary), args.Error(1)
}

func adminClaims() *models.UserClaims {
	return &models.UserClaims{Role: "admin"}
}

func newTestController(fetch Fetcher) *Controller {
	c := NewController(guard.New("admin"), fetch, nil)
	c.now = func() time.Time {
		return time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	}
	return c
}

func TestLoad_NoClaims(t *testing.T) {
	fetch := new(mockFetcher)
	c := newTestController(fetch)

	snap, err := c.Load(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Nil(t, snap)
	assert.Equal(t, StateAuthenticating, c.State())
	fetch.AssertNotCalled(t, "ListRetailers")
}

func TestLoad_Denied(t *testing.T) {
	fetch := new(mockFetcher)
	c := newTestController(fetch)

	snap, err := c.Load(context.Background(), &models.UserClaims{Role: "agent"})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, snap)
	assert.Equal(t, StateError, c.State())
	fetch.AssertNotCalled(t, "ListRetailers")
}

func TestLoad_DerivesStats(t *testing.T) {
	fetch := new(mockFetcher)
	c := newTestController(fetch)

	fetch.On("ListRetailers").Return([]models.Retailer{
		{Name: "Acme", Status: "active"},
		{Name: "Globex", Status: "inactive"},
		{Name: "Initech", Status: "active"},
	}, nil)
	fetch.On("ListSales", mock.MatchedBy(func(f models.DateRange) bool {
		// Today's sales only: the range starts at midnight UTC of "now".
		return f.StartDate != nil && f.StartDate.Equal(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)) && f.EndDate == nil
	})).Return([]models.Sale{
		{SoldAt: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC), Amount: 50},
		{SoldAt: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), Amount: 30},
	}, nil)
	fetch.On("ListEarnings", models.DateRange{}).Return([]models.EarningsSummary{
		{VoucherType: "airtime", TotalAmount: 900, TotalSales: 18, PlatformCommission: 45},
	}, nil)

	snap, err := c.Load(context.Background(), adminClaims())
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, 80.0, snap.Stats.TodayTotal)
	assert.Equal(t, 2, snap.Stats.TodaySales)
	assert.Equal(t, 2, snap.Stats.ActiveRetailers)
	assert.Equal(t, 3, snap.Stats.TotalRetailers)
	assert.Equal(t, 45.0, snap.Stats.PlatformCommission)

	require.Len(t, snap.SalesByDate, 1)
	assert.Equal(t, "2026-03-15", snap.SalesByDate[0].Date)
	assert.Equal(t, 80.0, snap.SalesByDate[0].Total)

	require.Len(t, snap.Earnings, 1)
	assert.Equal(t, "airtime", snap.Earnings[0].Type)

	assert.Equal(t, StateReady, c.State())
	assert.Empty(t, c.Err())
	fetch.AssertExpectations(t)
}

func TestLoad_SalesFailureSkipsEarnings(t *testing.T) {
	fetch := new(mockFetcher)
	c := newTestController(fetch)

	fetch.On("ListRetailers").Return([]models.Retailer{{Name: "Acme", Status: "active"}}, nil)
	fetch.On("ListSales", mock.Anything).Return(nil, errors.New("sales query failed"))

	snap, err := c.Load(context.Background(), adminClaims())
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.Equal(t, StateError, c.State())
	assert.Contains(t, c.Err(), "failed to load sales")

	// Fail-fast: the earnings fetch is never attempted.
	fetch.AssertNotCalled(t, "ListEarnings", mock.Anything)
}

func TestLoad_FailureZeroesPreviousSnapshot(t *testing.T) {
	fetch := new(mockFetcher)
	c := newTestController(fetch)

	fetch.On("ListRetailers").Return([]models.Retailer{{Name: "Acme", Status: "active"}}, nil).Once()
	fetch.On("ListSales", mock.Anything).Return([]models.Sale{{Amount: 10}}, nil).Once()
	fetch.On("ListEarnings", mock.Anything).Return([]models.EarningsSummary{}, nil).Once()

	snap, err := c.Load(context.Background(), adminClaims())
	require.NoError(t, err)
	assert.Equal(t, 10.0, snap.Stats.TodayTotal)

	fetch.On("ListRetailers").Return(nil, errors.New("connection refused")).Once()

	snap, err = c.Load(context.Background(), adminClaims())
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.Equal(t, StateError, c.State())

	// A later recovery recomputes from scratch rather than reviving stale data.
	fetch.On("ListRetailers").Return([]models.Retailer{}, nil).Once()
	fetch.On("ListSales", mock.Anything).Return([]models.Sale{}, nil).Once()
	fetch.On("ListEarnings", mock.Anything).Return([]models.EarningsSummary{}, nil).Once()

	snap, err = c.Load(context.Background(), adminClaims())
	require.NoError(t, err)
	assert.Zero(t, snap.Stats.TodayTotal)
	assert.Zero(t, snap.Stats.TotalRetailers)
}

type fakeSnapshotCache struct {
	snap   *models.DashboardSnapshot
	stores int
}

func (f *fakeSnapshotCache) GetDashboard(ctx context.Context) (*models.DashboardSnapshot, bool) {
	if f.snap == nil {
		return nil, false
	}
	return f.snap, true
}

func (f *fakeSnapshotCache) CacheDashboard(ctx context.Context, snap *models.DashboardSnapshot, ttl time.Duration) error {
	f.snap = snap
	f.stores++
	return nil
}

func TestLoad_CacheHitSkipsFetches(t *testing.T) {
	fetch := new(mockFetcher)
	cache := &fakeSnapshotCache{snap: &models.DashboardSnapshot{
		Stats: models.DashboardStats{TodayTotal: 123},
	}}
	c := NewController(guard.New("admin"), fetch, cache)

	snap, err := c.Load(context.Background(), adminClaims())
	require.NoError(t, err)
	assert.Equal(t, 123.0, snap.Stats.TodayTotal)
	assert.Equal(t, StateReady, c.State())
	fetch.AssertNotCalled(t, "ListRetailers")
}

func TestLoad_CachesDerivedSnapshot(t *testing.T) {
	fetch := new(mockFetcher)
	cache := &fakeSnapshotCache{}
	c := NewController(guard.New("admin"), fetch, cache)
	c.now = func() time.Time {
		return time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	}

	fetch.On("ListRetailers").Return([]models.Retailer{}, nil)
	fetch.On("ListSales", mock.Anything).Return([]models.Sale{{Amount: 5}}, nil)
	fetch.On("ListEarnings", mock.Anything).Return([]models.EarningsSummary{}, nil)

	_, err := c.Load(context.Background(), adminClaims())
	require.NoError(t, err)
	require.Equal(t, 1, cache.stores)
	assert.Equal(t, 5.0, cache.snap.Stats.TodayTotal)

	// The next load is served from the cache.
	snap, err := c.Load(context.Background(), adminClaims())
	require.NoError(t, err)
	assert.Equal(t, 5.0, snap.Stats.TodayTotal)
	fetch.AssertNumberOfCalls(t, "ListRetailers", 1)
}

func TestLoad_RecomputesWhenRowsChangeButSumsDoNot(t *testing.T) {
	fetch := new(mockFetcher)
	c := newTestController(fetch)

	// First cycle: one active retailer, both sales on the same day.
	fetch.On("ListRetailers").Return([]models.Retailer{
		{ID: 1, Name: "Acme", Status: "active"},
	}, nil).Once()
	fetch.On("ListSales", mock.Anything).Return([]models.Sale{
		{ID: 1, SoldAt: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC), Amount: 20},
		{ID: 2, SoldAt: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), Amount: 10},
	}, nil).Once()
	fetch.On("ListEarnings", mock.Anything).Return([]models.EarningsSummary{}, nil).Once()

	snap, err := c.Load(context.Background(), adminClaims())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Stats.ActiveRetailers)
	require.Len(t, snap.SalesByDate, 1)

	// Second cycle: same lengths and same totals, but the retailer went
	// inactive and the sales redistributed across two days.
	fetch.On("ListRetailers").Return([]models.Retailer{
		{ID: 1, Name: "Acme", Status: "inactive"},
	}, nil).Once()
	fetch.On("ListSales", mock.Anything).Return([]models.Sale{
		{ID: 1, SoldAt: time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC), Amount: 20},
		{ID: 2, SoldAt: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), Amount: 10},
	}, nil).Once()
	fetch.On("ListEarnings", mock.Anything).Return([]models.EarningsSummary{}, nil).Once()

	snap, err = c.Load(context.Background(), adminClaims())
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Stats.ActiveRetailers)
	require.Len(t, snap.SalesByDate, 2)
	assert.Equal(t, "2026-03-14", snap.SalesByDate[0].Date)
	assert.Equal(t, "2026-03-15", snap.SalesByDate[1].Date)
}

func TestLoad_MemoizesDerivedMetrics(t *testing.T) {
	fetch := new(mockFetcher)
	c := newTestController(fetch)

	fetch.On("ListRetailers").Return([]models.Retailer{{Name: "Acme", Status: "active"}}, nil)
	fetch.On("ListSales", mock.Anything).Return([]models.Sale{
		{SoldAt: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC), Amount: 50},
	}, nil)
	fetch.On("ListEarnings", mock.Anything).Return([]models.EarningsSummary{}, nil)

	first, err := c.Load(context.Background(), adminClaims())
	require.NoError(t, err)

	second, err := c.Load(context.Background(), adminClaims())
	require.NoError(t, err)

	// Identical inputs keep the memoized snapshot, GeneratedAt included.
	assert.Equal(t, first.GeneratedAt, second.GeneratedAt)
	assert.Equal(t, first, second)
}
