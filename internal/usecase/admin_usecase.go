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

var ErrCannotDeleteSelf = errors.New("cannot delete your own account")

type AdminUsecase interface {
	Analytics(ctx context.Context) (*dto.AnalyticsResponse, error)
	ListUsers(ctx context.Context) (*dto.UserListResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type adminUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	appointmentRepo    repository.AppointmentRepository
	contactRepo        repository.ContactMessageRepository
	auditService       service.AuditService
	analyticsCache     *service.AnalyticsCacheService
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	contactRepo repository.ContactMessageRepository,
	auditService service.AuditService,
	analyticsCache *service.AnalyticsCacheService,
) AdminUsecase {
	return &adminUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		appointmentRepo:    appointmentRepo,
		contactRepo:        contactRepo,
		auditService:       auditService,
		analyticsCache:     analyticsCache,
	}
}

// Analytics returns the dashboard counters, served from the Redis cache when
// fresh and recomputed from the database otherwise.
func (u *adminUsecase) Analytics(ctx context.Context) (*dto.AnalyticsResponse, error) {
	var cached dto.AnalyticsResponse
	hit, err := u.analyticsCache.Get(ctx, &cached)
	if err == nil && hit {
		return &cached, nil
	}

	db := u.db.WithContext(ctx)
	result := &dto.AnalyticsResponse{}

	if result.TotalUsers, err = u.userRepo.Count(db); err != nil {
		u.log.Warnf("Failed to count users: %+v", err)
		return nil, err
	}
	if result.TotalDoctors, err = u.doctorProfileRepo.Count(db); err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}
	if result.TotalPatients, err = u.patientProfileRepo.Count(db); err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}
	if result.TotalAppointments, err = u.appointmentRepo.Count(db); err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}
	if result.PendingAppointments, err = u.appointmentRepo.CountByStatus(db, entity.AppointmentStatusPending); err != nil {
		u.log.Warnf("Failed to count pending appointments: %+v", err)
		return nil, err
	}
	if result.CompletedAppointments, err = u.appointmentRepo.CountByStatus(db, entity.AppointmentStatusCompleted); err != nil {
		u.log.Warnf("Failed to count completed appointments: %+v", err)
		return nil, err
	}
	if result.UnreadMessages, err = u.contactRepo.CountByStatus(db, entity.ContactStatusUnread); err != nil {
		u.log.Warnf("Failed to count unread messages: %+v", err)
		return nil, err
	}

	u.analyticsCache.Set(ctx, result)

	return result, nil
}

func (u *adminUsecase) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

// DeleteUser removes a user account together with its role profile. Admins
// cannot delete themselves; demoting the last admin by accident would brick
// the instance.
func (u *adminUsecase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	adminID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}
	if adminID == id {
		return ErrCannotDeleteSelf
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	switch user.RoleID {
	case entity.RoleIDDoctor:
		if err := u.doctorProfileRepo.DeleteByUserID(tx, id); err != nil {
			u.log.Warnf("Failed to delete doctor profile for user %s: %+v", id, err)
			return err
		}
	case entity.RoleIDPatient:
		if err := u.patientProfileRepo.DeleteByUserID(tx, id); err != nil {
			u.log.Warnf("Failed to delete patient profile for user %s: %+v", id, err)
			return err
		}
	}

	rows, err := u.userRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete user %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	u.auditService.LogDelete(ctx, tx, &adminID, entity.AuditActionUserDelete, "user", id.String(), map[string]interface{}{
		"email": user.Email,
		"role":  entity.RoleName(user.RoleID),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.analyticsCache.Invalidate(ctx)

	u.log.Infof("User deleted: id=%s, role=%s", id, entity.RoleName(user.RoleID))
	return nil
}
