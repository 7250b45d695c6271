package repository

import (
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactMessageRepository interface {
	Create(db *gorm.DB, message *entity.ContactMessage) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ContactMessage, error)
	FindAll(db *gorm.DB) ([]entity.ContactMessage, error)
	Update(db *gorm.DB, message *entity.ContactMessage) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	CountByStatus(db *gorm.DB, status entity.ContactStatus) (int64, error)
}
