package retailerview

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	domainerrors "voucherdesk/internal/errors"
	"voucherdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	retailer    *models.Retailer
	retailerErr error
	sales       []models.Sale
	salesErr    error
}

func (f *fakeFetcher) GetRetailer(id uint) (*models.Retailer, error) {
	if f.retailerErr != nil {
		return nil, f.retailerErr
	}
	return f.retailer, nil
}

func (f *fakeFetcher) ListSales(filter models.DateRange) ([]models.Sale, error) {
	if f.salesErr != nil {
		return nil, f.salesErr
	}
	return f.sales, nil
}

// fakeTerminalStore is an in-memory terminal store so list-after-mutation
// behavior can be asserted end to end.
type fakeTerminalStore struct {
	rows      []models.Terminal
	nextID    uint
	listErr   error
	createErr error
	toggleErr error
	deleteErr error

	creates int
	toggles int
	deletes int
}

func (f *fakeTerminalStore) List(retailerID uint) ([]models.Terminal, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Terminal(nil), f.rows...), nil
}

func (f *fakeTerminalStore) Create(retailerID uint, name string) (uint, error) {
	f.creates++
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	f.rows = append(f.rows, models.Terminal{
		ID:         f.nextID,
		RetailerID: retailerID,
		Name:       name,
		Status:     models.TerminalStatusActive,
	})
	return f.nextID, nil
}

func (f *fakeTerminalStore) Toggle(terminalID uint) (string, error) {
	f.toggles++
	if f.toggleErr != nil {
		return "", f.toggleErr
	}
	for i := range f.rows {
		if f.rows[i].ID == terminalID {
			f.rows[i].Status = models.OppositeTerminalStatus(f.rows[i].Status)
			return f.rows[i].Status, nil
		}
	}
	return "", domainerrors.ErrTerminalNotFound
}

func (f *fakeTerminalStore) Delete(terminalID uint) error {
	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.rows {
		if f.rows[i].ID == terminalID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return domainerrors.ErrTerminalNotFound
}

func acme() *models.Retailer {
	return &models.Retailer{ID: 1, Name: "Acme", Status: "active", Balance: 100}
}

func loadedController(t *testing.T, fetch *fakeFetcher, store TerminalMutator) *Controller {
	t.Helper()
	c := NewController(1, fetch, store)
	require.NoError(t, c.Load())
	return c
}

func TestLoad_EmptyTerminals(t *testing.T) {
	c := loadedController(t, &fakeFetcher{retailer: acme()}, &fakeTerminalStore{})

	v := c.View()
	assert.Equal(t, "ready", v.Status)
	require.NotNil(t, v.Retailer)
	assert.Equal(t, "Acme", v.Retailer.Name)
	assert.Equal(t, 100.0, v.Retailer.Balance)
	assert.Zero(t, v.TerminalCount)
	assert.Equal(t, "No terminals found for this retailer", v.TerminalsMessage)
	assert.Equal(t, SectionTerminals, v.Expanded)
}

func TestLoad_FiltersSalesByRetailerName(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	fetch := &fakeFetcher{
		retailer: acme(),
		sales: []models.Sale{
			{SoldAt: now, RetailerName: "Acme", Amount: 40},
			{SoldAt: now, RetailerName: "Globex", Amount: 99},
			{SoldAt: now.Add(time.Hour), RetailerName: "Acme", Amount: 10},
		},
	}
	c := loadedController(t, fetch, &fakeTerminalStore{})

	v := c.View()
	require.Len(t, v.Sales, 2)
	assert.Equal(t, 50.0, v.SalesTotal)
	require.Len(t, v.SalesByDate, 1)
	assert.Equal(t, "2026-03-10", v.SalesByDate[0].Date)
}

func TestLoad_RetailerNotFound(t *testing.T) {
	fetch := &fakeFetcher{retailerErr: domainerrors.ErrRetailerNotFound}
	c := NewController(1, fetch, &fakeTerminalStore{})

	err := c.Load()
	assert.ErrorIs(t, err, domainerrors.ErrRetailerNotFound)

	v := c.View()
	assert.Equal(t, "not-found", v.Status)
	assert.Nil(t, v.Retailer)
	// Not-found carries no error message; it is its own terminal state.
	assert.Empty(t, v.Error)
}

func TestLoad_PrimaryFetchFailure(t *testing.T) {
	fetch := &fakeFetcher{retailerErr: errors.New("connection refused")}
	c := NewController(1, fetch, &fakeTerminalStore{})

	err := c.Load()
	require.Error(t, err)

	v := c.View()
	assert.Equal(t, "error", v.Status)
	assert.Contains(t, v.Error, "connection refused")
	assert.Nil(t, v.Retailer)
}

func TestLoad_SecondaryFailuresDegrade(t *testing.T) {
	fetch := &fakeFetcher{retailer: acme(), salesErr: errors.New("sales down")}
	store := &fakeTerminalStore{listErr: errors.New("terminals down")}
	c := NewController(1, fetch, store)

	// Secondary fetch failures never fail the load.
	require.NoError(t, c.Load())

	v := c.View()
	assert.Equal(t, "ready", v.Status)
	assert.Empty(t, v.Error)
	assert.Zero(t, v.TerminalCount)
	assert.Empty(t, v.Sales)
	assert.Zero(t, v.SalesTotal)
}

func TestExpandSection(t *testing.T) {
	c := loadedController(t, &fakeFetcher{retailer: acme()}, &fakeTerminalStore{})

	c.ExpandSection(SectionSales)
	assert.Equal(t, SectionSales, c.View().Expanded)

	// Unknown sections are ignored.
	c.ExpandSection(Section("billing"))
	assert.Equal(t, SectionSales, c.View().Expanded)
}

func TestSubmitAddTerminal(t *testing.T) {
	store := &fakeTerminalStore{}
	c := loadedController(t, &fakeFetcher{retailer: acme()}, store)

	c.OpenAddModal()
	c.SetTerminalName("Back office")
	require.NoError(t, c.SubmitAddTerminal())

	v := c.View()
	assert.False(t, v.AddModalOpen)
	assert.Empty(t, v.FormName)
	assert.Empty(t, v.FormError)
	assert.False(t, v.Busy)
	require.Equal(t, 1, v.TerminalCount)
	assert.Equal(t, "Back office", v.Terminals[0].Name)
	assert.Empty(t, v.TerminalsMessage)
}

func TestSubmitAddTerminal_EmptyNameNeverReachesStore(t *testing.T) {
	store := &fakeTerminalStore{}
	c := loadedController(t, &fakeFetcher{retailer: acme()}, store)

	c.OpenAddModal()
	c.SetTerminalName("   ")
	require.NoError(t, c.SubmitAddTerminal())

	v := c.View()
	assert.Equal(t, "Terminal name is required", v.FormError)
	assert.True(t, v.AddModalOpen)
	assert.Zero(t, store.creates)
}

func TestSubmitAddTerminal_CreateFailure(t *testing.T) {
	store := &fakeTerminalStore{createErr: errors.New("insert failed")}
	c := loadedController(t, &fakeFetcher{retailer: acme()}, store)

	c.OpenAddModal()
	c.SetTerminalName("Back office")
	require.NoError(t, c.SubmitAddTerminal())

	v := c.View()
	assert.Equal(t, "Failed to create terminal", v.FormError)
	assert.True(t, v.AddModalOpen)
	assert.False(t, v.Busy)
	assert.Zero(t, v.TerminalCount)
}

// gatedTerminalStore parks Create until released so a second interaction can
// arrive while the first mutation is in flight.
type gatedTerminalStore struct {
	fakeTerminalStore
	entered chan struct{}
	gate    chan struct{}
}

func (g *gatedTerminalStore) Create(retailerID uint, name string) (uint, error) {
	close(g.entered)
	<-g.gate
	return g.fakeTerminalStore.Create(retailerID, name)
}

func TestBeginAdd_RefusedWhileMutationInFlight(t *testing.T) {
	store := &gatedTerminalStore{entered: make(chan struct{}), gate: make(chan struct{})}
	c := loadedController(t, &fakeFetcher{retailer: acme()}, store)

	require.NoError(t, c.BeginAdd("Front counter"))
	done := make(chan error, 1)
	go func() { done <- c.SubmitAddTerminal() }()
	<-store.entered

	// The refused interaction must not clobber the in-flight form.
	err := c.BeginAdd("Back office")
	assert.ErrorIs(t, err, domainerrors.ErrMutationInFlight)
	assert.Equal(t, "Front counter", c.View().FormName)

	close(store.gate)
	require.NoError(t, <-done)

	v := c.View()
	assert.False(t, v.AddModalOpen)
	require.Equal(t, 1, v.TerminalCount)
	assert.Equal(t, "Front counter", v.Terminals[0].Name)
}

func TestToggleTerminal(t *testing.T) {
	store := &fakeTerminalStore{rows: []models.Terminal{
		{ID: 5, RetailerID: 1, Name: "Front", Status: models.TerminalStatusActive},
	}, nextID: 5}
	c := loadedController(t, &fakeFetcher{retailer: acme()}, store)

	require.NoError(t, c.ToggleTerminal(5))

	v := c.View()
	require.Equal(t, 1, v.TerminalCount)
	assert.Equal(t, models.TerminalStatusInactive, v.Terminals[0].Status)
	assert.False(t, v.Busy)
}

func TestToggleTerminal_FailureAbsorbed(t *testing.T) {
	store := &fakeTerminalStore{
		rows:      []models.Terminal{{ID: 5, RetailerID: 1, Status: models.TerminalStatusActive}},
		toggleErr: errors.New("write timeout"),
	}
	c := loadedController(t, &fakeFetcher{retailer: acme()}, store)

	// The failure is logged, not surfaced.
	require.NoError(t, c.ToggleTerminal(5))

	v := c.View()
	assert.Empty(t, v.Error)
	assert.Empty(t, v.FormError)
	assert.False(t, v.Busy)
	assert.Equal(t, models.TerminalStatusActive, v.Terminals[0].Status)
}

func TestConfirmDelete(t *testing.T) {
	store := &fakeTerminalStore{rows: []models.Terminal{
		{ID: 5, RetailerID: 1, Name: "Front", Status: models.TerminalStatusActive},
		{ID: 6, RetailerID: 1, Name: "Back", Status: models.TerminalStatusActive},
	}, nextID: 6}
	c := loadedController(t, &fakeFetcher{retailer: acme()}, store)

	c.RequestDelete(5)
	v := c.View()
	assert.True(t, v.DeleteModalOpen)
	assert.Equal(t, uint(5), v.DeleteTarget)

	require.NoError(t, c.ConfirmDelete())

	v = c.View()
	assert.False(t, v.DeleteModalOpen)
	assert.Zero(t, v.DeleteTarget)
	require.Equal(t, 1, v.TerminalCount)
	assert.Equal(t, uint(6), v.Terminals[0].ID)
}

func TestConfirmDelete_FailureKeepsModalOpen(t *testing.T) {
	store := &fakeTerminalStore{
		rows:      []models.Terminal{{ID: 5, RetailerID: 1}},
		deleteErr: errors.New("delete failed"),
	}
	c := loadedController(t, &fakeFetcher{retailer: acme()}, store)

	c.RequestDelete(5)
	require.NoError(t, c.ConfirmDelete())

	v := c.View()
	assert.True(t, v.DeleteModalOpen)
	assert.Equal(t, uint(5), v.DeleteTarget)
	assert.False(t, v.Busy)
	assert.Equal(t, 1, v.TerminalCount)
}

func TestCancelDelete(t *testing.T) {
	c := loadedController(t, &fakeFetcher{retailer: acme()}, &fakeTerminalStore{})

	c.RequestDelete(5)
	c.CancelDelete()

	v := c.View()
	assert.False(t, v.DeleteModalOpen)
	assert.Zero(t, v.DeleteTarget)
}

func TestConfirmDelete_NoTarget(t *testing.T) {
	store := &fakeTerminalStore{}
	c := loadedController(t, &fakeFetcher{retailer: acme()}, store)

	require.NoError(t, c.ConfirmDelete())
	assert.Zero(t, store.deletes)
	assert.False(t, c.View().DeleteModalOpen)
}

// blockingFetcher parks GetRetailer until released so two load cycles can be
// interleaved deterministically.
type blockingFetcher struct {
	retailer *models.Retailer
	gate     chan struct{}
	calls    atomic.Int32
}

func (f *blockingFetcher) GetRetailer(id uint) (*models.Retailer, error) {
	if f.calls.Add(1) == 1 {
		<-f.gate
	}
	return f.retailer, nil
}

func (f *blockingFetcher) ListSales(filter models.DateRange) ([]models.Sale, error) {
	return nil, nil
}

func TestLoad_StaleCycleDiscarded(t *testing.T) {
	fetch := &blockingFetcher{retailer: acme(), gate: make(chan struct{})}
	store := &fakeTerminalStore{}
	c := NewController(1, fetch, store)

	first := make(chan error, 1)
	go func() { first <- c.Load() }()

	// Wait for the first cycle to reach its primary fetch, then run a full
	// second cycle while the first is parked.
	for fetch.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	require.NoError(t, c.Load())

	// New terminal arrives between the cycles. When the stale first cycle
	// finally concludes it must not overwrite the fresher result.
	_, err := store.Create(1, "Front")
	require.NoError(t, err)
	close(fetch.gate)
	require.NoError(t, <-first)

	v := c.View()
	assert.Equal(t, "ready", v.Status)
	assert.Zero(t, v.TerminalCount, "stale cycle must not replace the fresh terminal list")
}
