// Package agent manages the agent roster: listing agents with their derived
// retailer counts and creating new agent accounts.
package agent

import (
	"context"
	"fmt"
	"log"
	"sync"

	"voucherdesk/internal/models"
	"voucherdesk/internal/repositories"
	"voucherdesk/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CreatePhase names how far a two-step agent creation got. The identity is
// written first; the profile only after the identity returned an ID. There
// is no compensating action: a profile failure leaves the identity behind.
type CreatePhase int

const (
	PhaseIdentity CreatePhase = iota
	PhaseProfile
)

func (p CreatePhase) String() string {
	if p == PhaseProfile {
		return "profile"
	}
	return "identity"
}

// CreateError carries the phase that failed. After a profile failure UserID
// holds the orphaned identity so operators can reconcile it.
type CreateError struct {
	Phase  CreatePhase
	UserID uint
	Err    error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("agent creation failed at %s phase: %v", e.Phase, e.Err)
}

func (e *CreateError) Unwrap() error {
	return e.Err
}

// InvalidInputError reports pre-write validation failures per field.
type InvalidInputError struct {
	Fields map[string]string
}

func (e *InvalidInputError) Error() string {
	return "invalid agent input"
}

type CreateInput struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type Service struct {
	repo repositories.AgentRepository
}

func NewService(repo repositories.AgentRepository) *Service {
	return &Service{repo: repo}
}

// ListAgents returns the roster with per-agent retailer counts. The outer
// query failing fails the call; a failed count query only logs and leaves
// that agent's count at zero, so one bad count never hides the roster.
func (s *Service) ListAgents(ctx context.Context) ([]models.AgentSummary, error) {
	rows, err := s.repo.ListAgentRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	// One count query per agent, fanned out and awaited. No per-item
	// timeout; cancellation rides on the request context. Each row is owned
	// by exactly one goroutine.
	var wg sync.WaitGroup
	for i := range rows {
		wg.Add(1)
		go func(row *models.AgentSummary) {
			defer wg.Done()
			count, err := s.repo.CountRetailers(ctx, row.UserID)
			if err != nil {
				log.Printf("retailer count failed for agent %d: %v", row.UserID, err)
				return
			}
			row.RetailerCount = count
		}(&rows[i])
	}
	wg.Wait()

	return rows, nil
}

// CreateAgent validates the input, then writes the identity and the profile
// in sequence.
func (s *Service) CreateAgent(ctx context.Context, in CreateInput) (*models.AgentSummary, error) {
	v := validation.New()
	v.AgentSignup(in.Email, in.FullName, in.Password, in.Phone)
	if !v.Valid() {
		return nil, &InvalidInputError{Fields: v.FieldErrors()}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    in.Email,
		Password: string(hashed),
		Name:     in.FullName,
		Phone:    in.Phone,
		Role:     "agent",
	}
	if err := s.repo.CreateIdentity(ctx, user); err != nil {
		return nil, &CreateError{Phase: PhaseIdentity, Err: err}
	}

	profile := &models.AgentProfile{
		UserID:    user.ID,
		FullName:  in.FullName,
		Phone:     in.Phone,
		AvatarKey: uuid.NewString(),
	}
	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		return nil, &CreateError{Phase: PhaseProfile, UserID: user.ID, Err: err}
	}

	return &models.AgentSummary{
		ID:        profile.ID,
		UserID:    user.ID,
		FullName:  profile.FullName,
		Email:     user.Email,
		Phone:     profile.Phone,
		AvatarKey: profile.AvatarKey,
	}, nil
}
