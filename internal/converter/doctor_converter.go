package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// DoctorToResponse converts a DoctorProfile entity to DoctorResponse DTO.
// Email and full name come from the preloaded User.
func DoctorToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:              profile.ID,
		UserID:          profile.UserID,
		Specialization:  profile.Specialization,
		Experience:      profile.Experience,
		Availability:    profile.Availability,
		Qualifications:  profile.Qualifications,
		ConsultationFee: profile.ConsultationFee,
		Bio:             profile.Bio,
	}

	if profile.User.ID != uuid.Nil {
		response.Email = profile.User.Email
		response.FullName = profile.User.FullName
	}

	if response.Availability == nil {
		response.Availability = []string{}
	}

	return response
}

// DoctorsToResponses converts a slice of DoctorProfile entities to slice of DoctorResponse DTOs
func DoctorsToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i, profile := range profiles {
		resp := DoctorToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
