package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterPatientRequest creates a user with the patient role together with
// its patient profile. Profile fields beyond the account basics are optional
// at registration and can be filled in later.
type RegisterPatientRequest struct {
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=6"`
	FullName       string   `json:"full_name" validate:"required,min=2"`
	Age            int      `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender         string   `json:"gender" validate:"omitempty,oneof=male female other"`
	Phone          string   `json:"phone" validate:"omitempty,min=7,max=20"`
	Address        string   `json:"address" validate:"omitempty"`
	BloodGroup     string   `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- O+ O- AB+ AB-"`
	MedicalHistory []string `json:"medical_history" validate:"omitempty,dive,required"`
	Allergies      []string `json:"allergies" validate:"omitempty,dive,required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
