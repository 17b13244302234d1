package repositories

import (
	"context"
	"log"

	"voucherdesk/internal/models"

	"gorm.io/gorm"
)

func getUserCacheKeyByID(id uint) string {
	return CacheService.GenerateKey("user", "id", id)
}

func GetUserCacheKeyByEmail(email string) string {
	return CacheService.GenerateKey("user", "email", email)
}

// GetUserByEmail returns a user, preferring the cache when warm.
func GetUserByEmail(email string) (*models.User, error) {
	ctx := context.Background()

	if CacheService != nil {
		if user, err := CacheService.GetUser(ctx, GetUserCacheKeyByEmail(email)); err == nil {
			return user, nil
		}
	}

	var user models.User
	if err := DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}

	if CacheService != nil {
		if err := CacheService.CacheUser(ctx, &user); err != nil {
			log.Printf("failed to cache user %d: %v", user.ID, err)
		}
	}
	return &user, nil
}

// GetUserByID returns a user, preferring the cache when warm.
func GetUserByID(userID uint) (*models.User, error) {
	ctx := context.Background()

	if CacheService != nil {
		if user, err := CacheService.GetUser(ctx, getUserCacheKeyByID(userID)); err == nil {
			return user, nil
		}
	}

	var user models.User
	if err := DB.First(&user, userID).Error; err != nil {
		return nil, err
	}

	if CacheService != nil {
		if err := CacheService.CacheUser(ctx, &user); err != nil {
			log.Printf("failed to cache user %d: %v", user.ID, err)
		}
	}
	return &user, nil
}

func CreateUser(user *models.User) error {
	return DB.Create(user).Error
}

func UpdateUser(user *models.User) error {
	if err := DB.Save(user).Error; err != nil {
		return err
	}
	InvalidateUserCache(user.ID, user.Email)
	return nil
}

// GetUserTokenVersion reads the current token version for session checks.
func GetUserTokenVersion(userID uint) (int, error) {
	user, err := GetUserByID(userID)
	if err != nil {
		return 0, err
	}
	return user.TokenVersion, nil
}

// IncrementUserTokenVersion invalidates all outstanding tokens for a user.
func IncrementUserTokenVersion(userID uint) error {
	if err := DB.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error; err != nil {
		return err
	}
	var user models.User
	if err := DB.First(&user, userID).Error; err == nil {
		InvalidateUserCache(user.ID, user.Email)
	}
	return nil
}

func InvalidateUserCache(userID uint, email string) {
	if CacheService == nil {
		return
	}
	keys := []string{getUserCacheKeyByID(userID)}
	if email != "" {
		keys = append(keys, GetUserCacheKeyByEmail(email))
	}
	if err := CacheService.Delete(context.Background(), keys...); err != nil {
		log.Printf("failed to invalidate user cache for %d: %v", userID, err)
	}
}
