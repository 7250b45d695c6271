package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type UpdatePatientRequest struct {
	Age            *int     `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender         string   `json:"gender" validate:"omitempty,oneof=male female other"`
	Phone          *string  `json:"phone" validate:"omitempty"`
	Address        *string  `json:"address" validate:"omitempty"`
	// Empty string clears the recorded blood group; membership in the
	// accepted set is checked in the usecase.
	BloodGroup     *string  `json:"blood_group"`
	MedicalHistory []string `json:"medical_history" validate:"omitempty,dive,required"`
	Allergies      []string `json:"allergies" validate:"omitempty,dive,required"`
}

// Response DTOs

type PatientResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Age            int       `json:"age"`
	Gender         string    `json:"gender,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	BloodGroup     string    `json:"blood_group,omitempty"`
	MedicalHistory []string  `json:"medical_history"`
	Allergies      []string  `json:"allergies"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
