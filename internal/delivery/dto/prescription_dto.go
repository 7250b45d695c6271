package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type MedicineRequest struct {
	Name      string `json:"name" validate:"required"`
	Dosage    string `json:"dosage" validate:"required"`
	Frequency string `json:"frequency" validate:"required"`
	Duration  string `json:"duration" validate:"required"`
}

type CreatePrescriptionRequest struct {
	AppointmentID uuid.UUID         `json:"appointment_id" validate:"required"`
	Medicines     []MedicineRequest `json:"medicines" validate:"omitempty,dive"`
	Diagnosis     string            `json:"diagnosis" validate:"omitempty"`
	Notes         string            `json:"notes" validate:"omitempty"`
	FollowUpDate  string            `json:"follow_up_date" validate:"omitempty"` // Format: YYYY-MM-DD
}

type UpdatePrescriptionRequest struct {
	Medicines    []MedicineRequest `json:"medicines" validate:"omitempty,dive"`
	Diagnosis    *string           `json:"diagnosis" validate:"omitempty"`
	Notes        *string           `json:"notes" validate:"omitempty"`
	FollowUpDate *string           `json:"follow_up_date" validate:"omitempty"` // Format: YYYY-MM-DD
}

// Response DTOs

type MedicineResponse struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

type PrescriptionResponse struct {
	ID            uuid.UUID            `json:"id"`
	AppointmentID uuid.UUID            `json:"appointment_id"`
	Medicines     []MedicineResponse   `json:"medicines"`
	Diagnosis     string               `json:"diagnosis,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	FollowUpDate  *time.Time           `json:"follow_up_date,omitempty"`
	Appointment   *AppointmentResponse `json:"appointment,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}
