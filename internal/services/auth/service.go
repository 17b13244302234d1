package auth

import (
	"errors"
	"log"
	"time"

	"voucherdesk/internal/models"
	"voucherdesk/internal/repositories"
	"voucherdesk/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service interface {
	Login(email, password string) (*models.User, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(userID uint) error
	GetUserTokenVersion(userID uint) (int, error)
	GetUserByID(userID uint) (*models.User, error)
}

type service struct{}

func NewService() Service {
	return &service{}
}

func (s *service) Login(email, password string) (*models.User, string, string, error) {
	user, err := repositories.GetUserByEmail(email)
	if err != nil {
		log.Printf("login failed: no user for %s", email)
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("login failed: bad password for user %d", user.ID)
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
	if err != nil {
		log.Println("error generating tokens:", err)
		return nil, "", "", errors.New("error generating tokens")
	}

	user.LastLoginAt = time.Now()
	if err := repositories.UpdateUser(user); err != nil {
		log.Printf("failed to record login time for user %d: %v", user.ID, err)
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	user, err := repositories.GetUserByID(claims.UserID)
	if err != nil {
		return "", "", errors.New("user not found")
	}

	if user.TokenVersion != claims.TokenVersion {
		return "", "", errors.New("token version mismatch")
	}

	return utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
}

// Logout bumps the token version so every outstanding token is rejected.
func (s *service) Logout(userID uint) error {
	return repositories.IncrementUserTokenVersion(userID)
}

func (s *service) GetUserTokenVersion(userID uint) (int, error) {
	return repositories.GetUserTokenVersion(userID)
}

func (s *service) GetUserByID(userID uint) (*models.User, error) {
	return repositories.GetUserByID(userID)
}
