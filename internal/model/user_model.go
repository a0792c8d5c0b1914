package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Registration string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:user_role;not null;default:'student'"`
	AccessStatus string    `gorm:"type:access_status;not null;default:'active'"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

type Session struct {
	Token          string    `gorm:"type:varchar(500);primaryKey"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	User           User      `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	StartDate      time.Time `gorm:"not null"`
	ExpirationDate time.Time `gorm:"not null"`
}

func (Session) TableName() string {
	return "sessions"
}
