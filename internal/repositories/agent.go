package repositories

import (
	"context"
	"errors"

	domainerrors "voucherdesk/internal/errors"
	"voucherdesk/internal/models"

	"gorm.io/gorm"
)

type AgentRepository interface {
	ListAgentRows(ctx context.Context) ([]models.AgentSummary, error)
	CountRetailers(ctx context.Context, agentUserID uint) (int64, error)
	CreateIdentity(ctx context.Context, user *models.User) error
	CreateProfile(ctx context.Context, profile *models.AgentProfile) error
}

type agentRepository struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) AgentRepository {
	return &agentRepository{db: db}
}

// ListAgentRows joins agent profiles with their identities. Retailer counts
// are filled in separately by the service layer.
func (r *agentRepository) ListAgentRows(ctx context.Context) ([]models.AgentSummary, error) {
	var rows []models.AgentSummary
	err := r.db.WithContext(ctx).Model(&models.AgentProfile{}).
		Select("agent_profiles.id AS id, agent_profiles.user_id AS user_id, agent_profiles.full_name, users.email, agent_profiles.phone, agent_profiles.avatar_key").
		Joins("JOIN users ON users.id = agent_profiles.user_id AND users.deleted_at IS NULL").
		Where("users.role = ?", "agent").
		Order("agent_profiles.full_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *agentRepository) CountRetailers(ctx context.Context, agentUserID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Retailer{}).Where("agent_id = ?", agentUserID).Count(&count).Error
	return count, err
}

func (r *agentRepository) CreateIdentity(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAgentExists
		}
		return err
	}
	return nil
}

func (r *agentRepository) CreateProfile(ctx context.Context, profile *models.AgentProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}
