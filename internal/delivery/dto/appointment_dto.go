package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"required"` // Format: YYYY-MM-DD
	TimeSlot string    `json:"time_slot" validate:"required"`
	Reason   string    `json:"reason" validate:"omitempty"`
}

type UpdateAppointmentRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Notes  string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID        uuid.UUID        `json:"id"`
	PatientID uuid.UUID        `json:"patient_id"`
	DoctorID  uuid.UUID        `json:"doctor_id"`
	Date      time.Time        `json:"date"`
	TimeSlot  string           `json:"time_slot"`
	Status    string           `json:"status"`
	Reason    string           `json:"reason,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	Patient   *PatientResponse `json:"patient,omitempty"`
	Doctor    *DoctorResponse  `json:"doctor,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
