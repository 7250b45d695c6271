package usecase

import (
	"context"
	"errors"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrContactNotFound = errors.New("contact message not found")

type ContactUsecase interface {
	// Submit accepts a public contact-form message; no authentication.
	Submit(ctx context.Context, req *dto.SubmitContactRequest) (*dto.ContactResponse, error)
	List(ctx context.Context) (*dto.ContactListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateContactStatusRequest) (*dto.ContactResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contactUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	contactRepo    repository.ContactMessageRepository
	auditService   service.AuditService
	analyticsCache *service.AnalyticsCacheService
}

func NewContactUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	contactRepo repository.ContactMessageRepository,
	auditService service.AuditService,
	analyticsCache *service.AnalyticsCacheService,
) ContactUsecase {
	return &contactUsecase{
		db:             db,
		log:            log,
		contactRepo:    contactRepo,
		auditService:   auditService,
		analyticsCache: analyticsCache,
	}
}

func (u *contactUsecase) Submit(ctx context.Context, req *dto.SubmitContactRequest) (*dto.ContactResponse, error) {
	message := &entity.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  entity.ContactStatusUnread,
	}

	if err := u.contactRepo.Create(u.db.WithContext(ctx), message); err != nil {
		u.log.Warnf("Failed to create contact message: %+v", err)
		return nil, err
	}

	u.analyticsCache.Invalidate(ctx)

	u.log.Infof("Contact message received: id=%s, subject=%q", message.ID, message.Subject)
	return converter.ContactToResponse(message), nil
}

func (u *contactUsecase) List(ctx context.Context) (*dto.ContactListResponse, error) {
	messages, err := u.contactRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list contact messages: %+v", err)
		return nil, err
	}

	return &dto.ContactListResponse{
		Contacts: converter.ContactsToResponses(messages),
		Total:    len(messages),
	}, nil
}

func (u *contactUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateContactStatusRequest) (*dto.ContactResponse, error) {
	adminID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	message, err := u.contactRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find contact message %s: %+v", id, err)
		return nil, err
	}
	if message == nil {
		return nil, ErrContactNotFound
	}

	oldStatus := message.Status
	if req.Status != "" {
		message.Status = entity.ContactStatus(req.Status)
	} else {
		// A bare status update marks the message as read
		message.Status = entity.ContactStatusRead
	}

	if err := u.contactRepo.Update(tx, message); err != nil {
		u.log.Warnf("Failed to update contact message %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionContactUpdate, "contact_message", id.String(),
		map[string]interface{}{"status": string(oldStatus)},
		map[string]interface{}{"status": string(message.Status)},
	)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.analyticsCache.Invalidate(ctx)

	return converter.ContactToResponse(message), nil
}

func (u *contactUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	adminID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	message, err := u.contactRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find contact message %s: %+v", id, err)
		return err
	}
	if message == nil {
		return ErrContactNotFound
	}

	rows, err := u.contactRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete contact message %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrContactNotFound
	}

	u.auditService.LogDelete(ctx, tx, &adminID, entity.AuditActionContactDelete, "contact_message", id.String(), map[string]interface{}{
		"email":   message.Email,
		"subject": message.Subject,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.analyticsCache.Invalidate(ctx)

	return nil
}
