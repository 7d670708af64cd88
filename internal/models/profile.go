package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	UserTypeClient = "client"
	UserTypeHelper = "helper"
)

type Profile struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	Email       string     `json:"email" gorm:"unique;not null"`
	Password    string     `json:"-" gorm:"not null"`
	FullName    string     `json:"full_name" gorm:"not null"`
	AvatarURL   string     `json:"avatar_url"`
	UserType    string     `json:"user_type" gorm:"not null"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Profile) IsClient() bool {
	return p.UserType == UserTypeClient
}

func (p *Profile) IsHelper() bool {
	return p.UserType == UserTypeHelper
}

func ValidUserType(userType string) bool {
	return userType == UserTypeClient || userType == UserTypeHelper
}
