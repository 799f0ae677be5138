package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterRequest struct {
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=6"`
	FirstName      string  `json:"firstName" validate:"required,max=100"`
	LastName       string  `json:"lastName" validate:"required,max=100"`
	Role           string  `json:"role" validate:"required,oneof=patient doctor"`
	Phone          *string `json:"phone" validate:"omitempty,max=30"`
	Specialization *string `json:"specialization" validate:"omitempty,max=150"`
	DateOfBirth    *string `json:"dateOfBirth" validate:"omitempty,date"`
	Gender         *string `json:"gender" validate:"omitempty,oneof=male female other"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UpdateProfileRequest is decoded strictly: any key not listed here is rejected.
// Specialization is doctor-only; DateOfBirth and Gender are patient-only.
type UpdateProfileRequest struct {
	FirstName      *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName       *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Phone          *string `json:"phone" validate:"omitempty,max=30"`
	Specialization *string `json:"specialization" validate:"omitempty,min=1,max=150"`
	DateOfBirth    *string `json:"dateOfBirth" validate:"omitempty,date"`
	Gender         *string `json:"gender" validate:"omitempty,oneof=male female other"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type AuthResponse struct {
	User *UserResponse `json:"user"`
	TokenResponse
}

type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Role           string    `json:"role"`
	Phone          *string   `json:"phone,omitempty"`
	Specialization *string   `json:"specialization,omitempty"`
	DateOfBirth    *string   `json:"dateOfBirth,omitempty"`
	Gender         *string   `json:"gender,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
