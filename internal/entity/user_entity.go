package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type AccessStatus string

const (
	UserRoleStudent     UserRole = "student"
	UserRoleTeacher     UserRole = "teacher"
	UserRoleCoordinator UserRole = "coordinator"
	UserRoleAdmin       UserRole = "admin"

	AccessStatusActive    AccessStatus = "active"
	AccessStatusInactive  AccessStatus = "inactive"
	AccessStatusSuspended AccessStatus = "suspended"
)

type User struct {
	Id           uuid.UUID
	Registration string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	AccessStatus AccessStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is the only server-side representation of "logged in".
// ExpirationDate is always later than StartDate at creation; an expired
// session is deleted the first time it is observed (lazy cleanup).
type Session struct {
	Token          string
	UserId         uuid.UUID
	StartDate      time.Time
	ExpirationDate time.Time
}
