package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDoctorRequest struct {
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=6"`
	FullName        string   `json:"full_name" validate:"required,min=2"`
	Specialization  string   `json:"specialization" validate:"required"`
	Experience      int      `json:"experience" validate:"gte=0"`
	Availability    []string `json:"availability" validate:"omitempty,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Qualifications  string   `json:"qualifications" validate:"omitempty"`
	ConsultationFee float64  `json:"consultation_fee" validate:"omitempty,gte=0"`
	Bio             string   `json:"bio" validate:"omitempty"`
}

type UpdateDoctorRequest struct {
	Specialization  string   `json:"specialization" validate:"omitempty"`
	Experience      *int     `json:"experience" validate:"omitempty,gte=0"`
	Availability    []string `json:"availability" validate:"omitempty,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Qualifications  *string  `json:"qualifications" validate:"omitempty"`
	ConsultationFee *float64 `json:"consultation_fee" validate:"omitempty,gte=0"`
	Bio             *string  `json:"bio" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Email           string          `json:"email"`
	FullName        string          `json:"full_name"`
	Specialization  string          `json:"specialization"`
	Experience      int             `json:"experience"`
	Availability    []string        `json:"availability"`
	Qualifications  string          `json:"qualifications,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Bio             string          `json:"bio,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
