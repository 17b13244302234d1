package repositories

import (
	"errors"

	domainerrors "voucherdesk/internal/errors"
	"voucherdesk/internal/models"

	"gorm.io/gorm"
)

type TerminalRepository interface {
	ListByRetailer(retailerID uint) ([]models.Terminal, error)
	GetByID(id uint) (*models.Terminal, error)
	Create(terminal *models.Terminal) error
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
}

type terminalRepository struct {
	db *gorm.DB
}

func NewTerminalRepository(db *gorm.DB) TerminalRepository {
	return &terminalRepository{db: db}
}

func (r *terminalRepository) ListByRetailer(retailerID uint) ([]models.Terminal, error) {
	var terminals []models.Terminal
	err := r.db.Where("retailer_id = ?", retailerID).Order("created_at").Find(&terminals).Error
	if err != nil {
		return nil, err
	}
	// Legacy rows can carry values outside the two-valued enum.
	for i := range terminals {
		if terminals[i].Status != models.TerminalStatusActive &&
			terminals[i].Status != models.TerminalStatusInactive {
			terminals[i].Status = models.TerminalStatusInactive
		}
	}
	return terminals, nil
}

func (r *terminalRepository) GetByID(id uint) (*models.Terminal, error) {
	var terminal models.Terminal
	if err := r.db.First(&terminal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrTerminalNotFound
		}
		return nil, err
	}
	return &terminal, nil
}

func (r *terminalRepository) Create(terminal *models.Terminal) error {
	return r.db.Create(terminal).Error
}

func (r *terminalRepository) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&models.Terminal{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTerminalNotFound
	}
	return nil
}

func (r *terminalRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Terminal{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTerminalNotFound
	}
	return nil
}
