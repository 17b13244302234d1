// Package retailerview drives the retailer detail page. One controller per
// retailer holds the page state: load status, the expanded section, modal
// flags, the add-terminal form and the in-flight guard around terminal
// mutations.
//
// Fetch severity is split deliberately: the retailer lookup failing is fatal
// to the view, while a failed terminals or sales fetch only logs and
// degrades to an empty collection so the page still renders.
package retailerview

import (
	"errors"
	"log"
	"strings"
	"sync"

	domainerrors "voucherdesk/internal/errors"
	"voucherdesk/internal/models"
	"voucherdesk/internal/services/report"
)

type State int

const (
	StateLoading State = iota
	StateError
	StateNotFound
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateNotFound:
		return "not-found"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// Section identifies the accordion sections; exactly one is expanded.
type Section string

const (
	SectionTerminals  Section = "terminals"
	SectionSales      Section = "sales"
	SectionCommission Section = "commission"
)

func ValidSection(s Section) bool {
	return s == SectionTerminals || s == SectionSales || s == SectionCommission
}

const emptyTerminalsMessage = "No terminals found for this retailer"

// Fetcher is the read side the view depends on.
type Fetcher interface {
	GetRetailer(id uint) (*models.Retailer, error)
	ListSales(filter models.DateRange) ([]models.Sale, error)
}

// TerminalMutator is the terminal lifecycle the view mutates through.
type TerminalMutator interface {
	List(retailerID uint) ([]models.Terminal, error)
	Create(retailerID uint, name string) (uint, error)
	Toggle(terminalID uint) (string, error)
	Delete(terminalID uint) error
}

type Controller struct {
	retailerID uint
	fetch      Fetcher
	terminals  TerminalMutator

	mu  sync.Mutex
	seq uint64 // load-cycle tag, stale completions are discarded

	state    State
	errMsg   string
	retailer *models.Retailer
	rows     []models.Terminal
	sales    []models.Sale

	expanded     Section
	addOpen      bool
	deleteOpen   bool
	deleteTarget uint
	busy         bool // guards terminal mutations against concurrent re-entry
	formName     string
	formErr      string
}

func NewController(retailerID uint, fetch Fetcher, terminals TerminalMutator) *Controller {
	return &Controller{
		retailerID: retailerID,
		fetch:      fetch,
		terminals:  terminals,
		state:      StateLoading,
		expanded:   SectionTerminals,
	}
}

// Load runs one load cycle. The retailer lookup is the primary fetch: a not
// found puts the view in not-found, any other failure in error. Terminals
// and sales are secondary; their failures log and leave empty collections.
func (c *Controller) Load() error {
	c.mu.Lock()
	c.state = StateLoading
	c.seq++
	myseq := c.seq
	c.mu.Unlock()

	retailer, err := c.fetch.GetRetailer(c.retailerID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrRetailerNotFound) {
			c.conclude(myseq, StateNotFound, nil, nil, nil, "")
			return err
		}
		c.conclude(myseq, StateError, nil, nil, nil, err.Error())
		return err
	}

	rows, err := c.terminals.List(c.retailerID)
	if err != nil {
		log.Printf("failed to load terminals for retailer %d: %v", c.retailerID, err)
		rows = nil
	}

	sales, err := c.fetch.ListSales(models.DateRange{})
	if err != nil {
		log.Printf("failed to load sales for retailer %d: %v", c.retailerID, err)
		sales = nil
	} else {
		// Scoped by the denormalized name, not by identity.
		sales = report.FilterByRetailer(sales, retailer.Name)
	}

	c.conclude(myseq, StateReady, retailer, rows, sales, "")
	return nil
}

// conclude applies a load result unless a newer cycle started meanwhile.
func (c *Controller) conclude(myseq uint64, state State, retailer *models.Retailer, rows []models.Terminal, sales []models.Sale, errMsg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != myseq {
		log.Printf("discarding stale load cycle %d for retailer %d", myseq, c.retailerID)
		return
	}
	c.state = state
	c.retailer = retailer
	c.rows = rows
	c.sales = sales
	c.errMsg = errMsg
}

// ExpandSection selects the expanded accordion section; exactly one section
// is expanded at a time. Unknown sections are ignored.
func (c *Controller) ExpandSection(s Section) {
	if !ValidSection(s) {
		return
	}
	c.mu.Lock()
	c.expanded = s
	c.mu.Unlock()
}

// BeginAdd opens the add-terminal modal with the given form value. It runs
// the in-flight check before touching any form state, so a refused request
// cannot clobber the form of the mutation already in progress.
func (c *Controller) BeginAdd(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return domainerrors.ErrMutationInFlight
	}
	c.addOpen = true
	c.formName = name
	c.formErr = ""
	return nil
}

func (c *Controller) OpenAddModal() {
	c.mu.Lock()
	c.addOpen = true
	c.mu.Unlock()
}

func (c *Controller) CloseAddModal() {
	c.mu.Lock()
	c.addOpen = false
	c.formName = ""
	c.formErr = ""
	c.mu.Unlock()
}

func (c *Controller) SetTerminalName(name string) {
	c.mu.Lock()
	c.formName = name
	c.mu.Unlock()
}

// SubmitAddTerminal validates and submits the add-terminal form. An empty
// name never reaches the store; a create failure surfaces as the form error.
// On success the terminal list is re-fetched wholesale, the modal closes and
// the form resets.
func (c *Controller) SubmitAddTerminal() error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return domainerrors.ErrMutationInFlight
	}
	name := strings.TrimSpace(c.formName)
	if name == "" {
		c.formErr = "Terminal name is required"
		c.mu.Unlock()
		return nil
	}
	c.busy = true
	c.mu.Unlock()

	_, err := c.terminals.Create(c.retailerID, name)
	if err != nil {
		log.Printf("failed to create terminal for retailer %d: %v", c.retailerID, err)
		c.mu.Lock()
		c.formErr = "Failed to create terminal"
		c.busy = false
		c.mu.Unlock()
		return nil
	}

	c.refreshTerminals()

	c.mu.Lock()
	c.busy = false
	c.addOpen = false
	c.formName = ""
	c.formErr = ""
	c.mu.Unlock()
	return nil
}

// ToggleTerminal flips a terminal's status. Failures are absorbed: logged,
// no re-fetch, no user-visible message; only the in-flight flag clears.
func (c *Controller) ToggleTerminal(terminalID uint) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return domainerrors.ErrMutationInFlight
	}
	c.busy = true
	c.mu.Unlock()

	if _, err := c.terminals.Toggle(terminalID); err != nil {
		log.Printf("failed to toggle terminal %d: %v", terminalID, err)
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
		return nil
	}

	c.refreshTerminals()

	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
	return nil
}

// RequestDelete opens the delete confirmation for one terminal.
func (c *Controller) RequestDelete(terminalID uint) {
	c.mu.Lock()
	c.deleteOpen = true
	c.deleteTarget = terminalID
	c.mu.Unlock()
}

func (c *Controller) CancelDelete() {
	c.mu.Lock()
	c.deleteOpen = false
	c.deleteTarget = 0
	c.mu.Unlock()
}

// ConfirmDelete deletes the selected terminal. On success the list is
// re-fetched, the modal closes and the selection clears. A failure is
// absorbed like toggle failures; the modal stays open.
func (c *Controller) ConfirmDelete() error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return domainerrors.ErrMutationInFlight
	}
	target := c.deleteTarget
	if target == 0 {
		c.deleteOpen = false
		c.mu.Unlock()
		return nil
	}
	c.busy = true
	c.mu.Unlock()

	if err := c.terminals.Delete(target); err != nil {
		log.Printf("failed to delete terminal %d: %v", target, err)
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
		return nil
	}

	c.refreshTerminals()

	c.mu.Lock()
	c.busy = false
	c.deleteOpen = false
	c.deleteTarget = 0
	c.mu.Unlock()
	return nil
}

// refreshTerminals replaces the terminal collection wholesale; there is no
// optimistic merge. A refresh failure logs and keeps the previous rows.
func (c *Controller) refreshTerminals() {
	rows, err := c.terminals.List(c.retailerID)
	if err != nil {
		log.Printf("failed to refresh terminals for retailer %d: %v", c.retailerID, err)
		return
	}
	c.mu.Lock()
	c.rows = rows
	c.mu.Unlock()
}

// View is an immutable copy of the page state for rendering.
type View struct {
	Status           string               `json:"status"`
	Error            string               `json:"error,omitempty"`
	Retailer         *models.Retailer     `json:"retailer,omitempty"`
	CommissionGroup  string               `json:"commission_group,omitempty"`
	Terminals        []models.Terminal    `json:"terminals"`
	TerminalCount    int                  `json:"terminal_count"`
	TerminalsMessage string               `json:"terminals_message,omitempty"`
	Sales            []models.Sale        `json:"sales"`
	SalesTotal       float64              `json:"sales_total"`
	SalesByDate      []models.SalesBucket `json:"sales_by_date"`
	Expanded         Section              `json:"expanded"`
	AddModalOpen     bool                 `json:"add_modal_open"`
	DeleteModalOpen  bool                 `json:"delete_modal_open"`
	DeleteTarget     uint                 `json:"delete_target,omitempty"`
	Busy             bool                 `json:"busy"`
	FormName         string               `json:"form_name"`
	FormError        string               `json:"form_error,omitempty"`
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Status:          c.state.String(),
		Error:           c.errMsg,
		Terminals:       append([]models.Terminal(nil), c.rows...),
		TerminalCount:   len(c.rows),
		Sales:           append([]models.Sale(nil), c.sales...),
		Expanded:        c.expanded,
		AddModalOpen:    c.addOpen,
		DeleteModalOpen: c.deleteOpen,
		DeleteTarget:    c.deleteTarget,
		Busy:            c.busy,
		FormName:        c.formName,
		FormError:       c.formErr,
	}
	if c.retailer != nil {
		retailer := *c.retailer
		v.Retailer = &retailer
		v.CommissionGroup = c.retailer.CommissionGroupName()
	}
	v.SalesTotal = report.SumAmounts(c.sales)
	v.SalesByDate = report.GroupByDate(c.sales)
	if c.state == StateReady && len(c.rows) == 0 {
		v.TerminalsMessage = emptyTerminalsMessage
	}
	return v
}
