package repository

import (
	"time"

	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindAllInScope lists appointments visible inside the given ownership
	// scope, newest date first, with patient and doctor users preloaded.
	FindAllInScope(db *gorm.DB, scope entity.AppointmentScope) ([]entity.Appointment, error)
	// FindConflict returns the non-cancelled appointment occupying the given
	// doctor/date/slot triple, or nil if the slot is free.
	FindConflict(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error)
	FindCompletedByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	Count(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB, status entity.AppointmentStatus) (int64, error)
}
