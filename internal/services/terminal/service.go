// Package terminal implements the terminal lifecycle: create, status toggle
// and delete. These are the only mutations the console originates.
package terminal

import (
	"fmt"

	"voucherdesk/internal/models"
	"voucherdesk/internal/repositories"

	"github.com/google/uuid"
)

// Phase names how far a status toggle got. The toggle is two sequential
// operations, read then write, and is not atomic: concurrent toggles can
// race, and a write failure leaves the terminal in its read state.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseRead
	PhaseWrite
)

func (p Phase) String() string {
	switch p {
	case PhaseRead:
		return "read"
	case PhaseWrite:
		return "write"
	}
	return "none"
}

// PhaseError reports which phase of a two-step mutation failed, so a partial
// application is a representable condition rather than an implicit risk.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("terminal %s phase: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

type Service struct {
	repo repositories.TerminalRepository
}

func NewService(repo repositories.TerminalRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(retailerID uint) ([]models.Terminal, error) {
	return s.repo.ListByRetailer(retailerID)
}

// Create registers a terminal under the retailer with status defaulted to
// active and a fresh serial. The name is stored as given; non-emptiness is
// the caller's responsibility.
func (s *Service) Create(retailerID uint, name string) (uint, error) {
	t := &models.Terminal{
		RetailerID: retailerID,
		Name:       name,
		Serial:     uuid.NewString(),
		Status:     models.TerminalStatusActive,
	}
	if err := s.repo.Create(t); err != nil {
		return 0, err
	}
	return t.ID, nil
}

// Toggle reads the current status and writes the opposite value. If the
// read fails the write is never attempted; the returned PhaseError names
// the phase that failed.
func (s *Service) Toggle(terminalID uint) (string, error) {
	t, err := s.repo.GetByID(terminalID)
	if err != nil {
		return "", &PhaseError{Phase: PhaseRead, Err: err}
	}

	next := models.OppositeTerminalStatus(t.Status)
	if err := s.repo.UpdateStatus(terminalID, next); err != nil {
		return "", &PhaseError{Phase: PhaseWrite, Err: err}
	}
	return next, nil
}

func (s *Service) Delete(terminalID uint) error {
	return s.repo.Delete(terminalID)
}
