package repository

import (
	"errors"

	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type contactMessageRepository struct{}

func NewContactMessageRepository() domainRepo.ContactMessageRepository {
	return &contactMessageRepository{}
}

func (r *contactMessageRepository) Create(db *gorm.DB, message *entity.ContactMessage) error {
	return db.Create(message).Error
}

func (r *contactMessageRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ContactMessage, error) {
	var message entity.ContactMessage
	err := db.Where("id = ?", id).First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *contactMessageRepository) FindAll(db *gorm.DB) ([]entity.ContactMessage, error) {
	var messages []entity.ContactMessage
	err := db.Order("created_at DESC").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *contactMessageRepository) Update(db *gorm.DB, message *entity.ContactMessage) error {
	return db.Save(message).Error
}

func (r *contactMessageRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.ContactMessage{})
	return result.RowsAffected, result.Error
}

func (r *contactMessageRepository) CountByStatus(db *gorm.DB, status entity.ContactStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.ContactMessage{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
