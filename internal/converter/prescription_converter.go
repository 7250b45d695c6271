package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// PrescriptionToResponse converts a Prescription entity to PrescriptionResponse DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	medicines := make([]dto.MedicineResponse, len(prescription.Medicines))
	for i, medicine := range prescription.Medicines {
		medicines[i] = dto.MedicineResponse{
			Name:      medicine.Name,
			Dosage:    medicine.Dosage,
			Frequency: medicine.Frequency,
			Duration:  medicine.Duration,
		}
	}

	response := &dto.PrescriptionResponse{
		ID:            prescription.ID,
		AppointmentID: prescription.AppointmentID,
		Medicines:     medicines,
		Diagnosis:     prescription.Diagnosis,
		Notes:         prescription.Notes,
		FollowUpDate:  prescription.FollowUpDate,
		CreatedAt:     prescription.CreatedAt,
		UpdatedAt:     prescription.UpdatedAt,
	}

	if prescription.Appointment.ID != uuid.Nil {
		response.Appointment = AppointmentToResponse(&prescription.Appointment)
	}

	return response
}

// PrescriptionsToResponses converts a slice of Prescription entities to slice of PrescriptionResponse DTOs
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i, prescription := range prescriptions {
		resp := PrescriptionToResponse(&prescription)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
