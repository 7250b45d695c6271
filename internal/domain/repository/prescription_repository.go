package repository

import (
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error)
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Prescription, error)
	FindByAppointmentIDs(db *gorm.DB, appointmentIDs []uuid.UUID) ([]entity.Prescription, error)
	Update(db *gorm.DB, prescription *entity.Prescription) error
}
