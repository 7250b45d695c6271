package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

// ContactToResponse converts a ContactMessage entity to ContactResponse DTO
func ContactToResponse(message *entity.ContactMessage) *dto.ContactResponse {
	if message == nil {
		return nil
	}

	return &dto.ContactResponse{
		ID:        message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Subject:   message.Subject,
		Message:   message.Message,
		Status:    string(message.Status),
		CreatedAt: message.CreatedAt,
	}
}

// ContactsToResponses converts a slice of ContactMessage entities to slice of ContactResponse DTOs
func ContactsToResponses(messages []entity.ContactMessage) []dto.ContactResponse {
	responses := make([]dto.ContactResponse, len(messages))
	for i, message := range messages {
		resp := ContactToResponse(&message)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
