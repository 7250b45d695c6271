package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// PatientToResponse converts a PatientProfile entity to PatientResponse DTO.
// Email and full name come from the preloaded User.
func PatientToResponse(profile *entity.PatientProfile) *dto.PatientResponse {
	if profile == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:             profile.ID,
		UserID:         profile.UserID,
		Age:            profile.Age,
		Gender:         profile.Gender,
		Phone:          profile.Phone,
		Address:        profile.Address,
		BloodGroup:     profile.BloodGroup,
		MedicalHistory: profile.MedicalHistory,
		Allergies:      profile.Allergies,
	}

	if profile.User.ID != uuid.Nil {
		response.Email = profile.User.Email
		response.FullName = profile.User.FullName
	}

	if response.MedicalHistory == nil {
		response.MedicalHistory = []string{}
	}
	if response.Allergies == nil {
		response.Allergies = []string{}
	}

	return response
}

// PatientsToResponses converts a slice of PatientProfile entities to slice of PatientResponse DTOs
func PatientsToResponses(profiles []entity.PatientProfile) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(profiles))
	for i, profile := range profiles {
		resp := PatientToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
