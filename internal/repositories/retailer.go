package repositories

import (
	"errors"

	domainerrors "voucherdesk/internal/errors"
	"voucherdesk/internal/models"

	"gorm.io/gorm"
)

// ListRetailers returns every retailer with its commission group resolved.
// An empty slice is a valid result, not an error.
func ListRetailers() ([]models.Retailer, error) {
	var retailers []models.Retailer
	if err := DB.Preload("CommissionGroup").Order("name").Find(&retailers).Error; err != nil {
		return nil, err
	}
	return retailers, nil
}

// GetRetailerByID returns one retailer or ErrRetailerNotFound.
func GetRetailerByID(id uint) (*models.Retailer, error) {
	var retailer models.Retailer
	err := DB.Preload("CommissionGroup").First(&retailer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrRetailerNotFound
		}
		return nil, err
	}
	return &retailer, nil
}
