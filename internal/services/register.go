package services

import (
	"strings"
	"time"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/models"

	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegistrationRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required,min=1,max=100"`
	UserType string `json:"user_type" binding:"required"`
}

type RegisterService interface {
	RegisterUser(db *gorm.DB, req RegistrationRequest) (*models.Profile, error)
}

type RegisterServiceImpl struct {
	bcryptCost int
}

func NewRegisterService(bcryptCost int) *RegisterServiceImpl {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &RegisterServiceImpl{bcryptCost: bcryptCost}
}

func (s *RegisterServiceImpl) RegisterUser(db *gorm.DB, req RegistrationRequest) (*models.Profile, error) {
	if !models.ValidUserType(req.UserType) {
		return nil, apperrors.Validation("user type must be client or helper")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.Profile
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, apperrors.Conflict("email already registered")
	} else if err != gorm.ErrRecordNotFound {
		return nil, apperrors.Storage("checking existing email", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.Profile{
		ID:        uuid.Must(uuid.NewV4()),
		Email:     email,
		Password:  string(hashedPassword),
		FullName:  req.FullName,
		UserType:  req.UserType,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, apperrors.Storage("creating profile", err)
	}

	return &user, nil
}
