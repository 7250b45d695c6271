package handler

import (
	"encoding/json"
	"net/http"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ContactHandler struct {
	contactUsecase usecase.ContactUsecase
	validator      *validator.CustomValidator
}

func NewContactHandler(contactUsecase usecase.ContactUsecase, validator *validator.CustomValidator) *ContactHandler {
	return &ContactHandler{
		contactUsecase: contactUsecase,
		validator:      validator,
	}
}

// SubmitContact accepts a public contact-form submission
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	contact, err := h.contactUsecase.Submit(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to submit message")
		return
	}

	response.Success(w, http.StatusCreated, "Message submitted successfully", contact)
}

func (h *ContactHandler) GetAllContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contactUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get messages")
		return
	}

	response.Success(w, http.StatusOK, "Messages retrieved successfully", contacts)
}

func (h *ContactHandler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	contactID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid message ID", nil)
		return
	}

	var req dto.UpdateContactStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	contact, err := h.contactUsecase.UpdateStatus(r.Context(), contactID, &req)
	if err != nil {
		if err == usecase.ErrContactNotFound {
			response.NotFound(w, "Message not found")
			return
		}
		response.InternalServerError(w, "Failed to update message")
		return
	}

	response.Success(w, http.StatusOK, "Message updated successfully", contact)
}

func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	contactID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid message ID", nil)
		return
	}

	if err := h.contactUsecase.Delete(r.Context(), contactID); err != nil {
		if err == usecase.ErrContactNotFound {
			response.NotFound(w, "Message not found")
			return
		}
		response.InternalServerError(w, "Failed to delete message")
		return
	}

	response.Success(w, http.StatusOK, "Message deleted successfully", nil)
}
