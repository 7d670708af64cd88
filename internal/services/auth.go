package services

import (
	"time"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/config"
	"househand/backend/internal/models"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	LoginUser(db *gorm.DB, email, password string) (*models.Profile, error)
	GenerateToken(db *gorm.DB, user *models.Profile) (string, string, error)
	RefreshToken(db *gorm.DB, refreshToken string) (string, string, error)
	Logout(db *gorm.DB, userID uuid.UUID) error
}

type AuthServiceImpl struct {
	cfg config.AuthConfig
}

func NewAuthService(cfg config.AuthConfig) *AuthServiceImpl {
	return &AuthServiceImpl{cfg: cfg}
}

func VerifyPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

func (s *AuthServiceImpl) LoginUser(db *gorm.DB, email, password string) (*models.Profile, error) {
	var user models.Profile
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.Authentication("invalid email or password")
		}
		return nil, apperrors.Storage("loading profile", err)
	}
	if !VerifyPassword(user.Password, password) {
		return nil, apperrors.Authentication("invalid email or password")
	}
	return &user, nil
}

// GenerateToken issues a signed access token carrying the user id and
// type, plus a refresh token row.
func (s *AuthServiceImpl) GenerateToken(db *gorm.DB, user *models.Profile) (string, string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.ID.String(),
		"user_type": user.UserType,
		"exp":       time.Now().Add(s.cfg.AccessTokenTTL).Unix(),
	}
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", err
	}

	refreshTokenUUID, err := uuid.NewV4()
	if err != nil {
		return "", "", err
	}

	token := models.Token{
		ID:           uuid.Must(uuid.NewV4()),
		UserID:       user.ID,
		RefreshToken: refreshTokenUUID,
		ExpiresAt:    time.Now().Add(s.cfg.RefreshTokenTTL),
	}
	if err := db.Create(&token).Error; err != nil {
		return "", "", apperrors.Storage("storing refresh token", err)
	}

	return accessTokenString, refreshTokenUUID.String(), nil
}

func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (string, string, error) {
	tokenUUID, err := uuid.FromString(refreshToken)
	if err != nil {
		return "", "", apperrors.Authentication("invalid refresh token")
	}

	var token models.Token
	err = db.Where("refresh_token = ? AND expires_at > ?", tokenUUID, time.Now()).
		First(&token).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", "", apperrors.Authentication("refresh token is expired or unknown")
		}
		return "", "", apperrors.Storage("loading refresh token", err)
	}

	var user models.Profile
	if err := db.First(&user, "id = ?", token.UserID).Error; err != nil {
		return "", "", apperrors.Storage("loading profile", err)
	}

	accessToken, newRefreshToken, err := s.GenerateToken(db, &user)
	if err != nil {
		return "", "", err
	}

	// rotate: the old refresh token is single use
	db.Delete(&token)

	return accessToken, newRefreshToken, nil
}

func (s *AuthServiceImpl) Logout(db *gorm.DB, userID uuid.UUID) error {
	if err := db.Where("user_id = ?", userID).Delete(&models.Token{}).Error; err != nil {
		return apperrors.Storage("revoking refresh tokens", err)
	}
	return nil
}
