package dto

import (
	"time"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Registration string `json:"registration" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

type UserDTO struct {
	Id           uuid.UUID `json:"id"`
	Registration string    `json:"registration"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	AccessStatus string    `json:"access_status"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}

type ValidateResponse struct {
	Valid bool    `json:"valid"`
	User  UserDTO `json:"user"`
}
