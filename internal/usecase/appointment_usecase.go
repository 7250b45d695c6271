package usecase

import (
	"context"
	"errors"
	"time"

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

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrDoctorNotFound          = errors.New("doctor not found")
	ErrPatientProfileNotFound  = errors.New("patient profile not found")
	ErrDoctorProfileNotFound   = errors.New("doctor profile not found")
	ErrSlotAlreadyBooked       = errors.New("doctor is not available at this time slot")
	ErrAppointmentNotOwned     = errors.New("appointment does not belong to you")
	ErrPatientStatusRestricted = errors.New("patients may only cancel appointments")
	ErrInvalidStatusTransition = errors.New("invalid appointment status transition")
)

type AppointmentUsecase interface {
	List(ctx context.Context) (*dto.AppointmentListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	appointmentRepo    repository.AppointmentRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
	analyticsCache     *service.AnalyticsCacheService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
	analyticsCache *service.AnalyticsCacheService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                 db,
		log:                log,
		appointmentRepo:    appointmentRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
		analyticsCache:     analyticsCache,
	}
}

// resolveScope maps the requester's role to the appointment rows they may
// see: admins see everything, doctors see appointments assigned to their
// profile, patients see appointments they own. A doctor or patient without a
// profile row gets a not-found error rather than an empty, unfiltered list.
func (u *appointmentUsecase) resolveScope(ctx context.Context, db *gorm.DB) (entity.AppointmentScope, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return entity.AppointmentScope{}, errors.New("user not found in context")
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return entity.AppointmentScope{}, errors.New("role not found in context")
	}

	switch roleID {
	case entity.RoleIDAdmin:
		return entity.AdminScope(), nil
	case entity.RoleIDDoctor:
		profile, err := u.doctorProfileRepo.FindByUserID(db, userID)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile for user %s: %+v", userID, err)
			return entity.AppointmentScope{}, err
		}
		if profile == nil {
			return entity.AppointmentScope{}, ErrDoctorProfileNotFound
		}
		return entity.DoctorScope(profile.ID), nil
	default:
		profile, err := u.patientProfileRepo.FindByUserID(db, userID)
		if err != nil {
			u.log.Warnf("Failed to find patient profile for user %s: %+v", userID, err)
			return entity.AppointmentScope{}, err
		}
		if profile == nil {
			return entity.AppointmentScope{}, ErrPatientProfileNotFound
		}
		return entity.PatientScope(profile.ID), nil
	}
}

// inScope reports whether the appointment is visible inside the scope.
func inScope(scope entity.AppointmentScope, appointment *entity.Appointment) bool {
	if scope.PatientID != nil && appointment.PatientID != *scope.PatientID {
		return false
	}
	if scope.DoctorID != nil && appointment.DoctorID != *scope.DoctorID {
		return false
	}
	return true
}

func (u *appointmentUsecase) List(ctx context.Context) (*dto.AppointmentListResponse, error) {
	db := u.db.WithContext(ctx)

	scope, err := u.resolveScope(ctx, db)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindAllInScope(db, scope)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	scope, err := u.resolveScope(ctx, db)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil || !inScope(scope, appointment) {
		// Hidden rows are indistinguishable from missing ones
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Appointments are booked by the requesting patient for themselves
	patientProfile, err := u.patientProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile for user %s: %+v", userID, err)
		return nil, err
	}
	if patientProfile == nil {
		return nil, ErrPatientProfileNotFound
	}

	doctorProfile, err := u.doctorProfileRepo.FindByID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctorProfile == nil {
		return nil, ErrDoctorNotFound
	}

	// Pre-check for a readable error; the partial unique index on
	// (doctor_id, date, time_slot) closes the race between two bookings.
	conflict, err := u.appointmentRepo.FindConflict(tx, doctorProfile.ID, date, req.TimeSlot)
	if err != nil {
		u.log.Warnf("Failed to check slot conflict: %+v", err)
		return nil, err
	}
	if conflict != nil {
		return nil, ErrSlotAlreadyBooked
	}

	appointment := &entity.Appointment{
		PatientID: patientProfile.ID,
		DoctorID:  doctorProfile.ID,
		Date:      date,
		TimeSlot:  req.TimeSlot,
		Status:    entity.AppointmentStatusPending,
		Reason:    req.Reason,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "appointments") {
			return nil, ErrSlotAlreadyBooked
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), map[string]interface{}{
		"doctor_id": doctorProfile.ID.String(),
		"date":      req.Date,
		"time_slot": req.TimeSlot,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.analyticsCache.Invalidate(ctx)

	// Reload with patient and doctor info for response
	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	if full == nil {
		return converter.AppointmentToResponse(appointment), nil
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, date=%s, slot=%s", appointment.ID, doctorProfile.ID, req.Date, req.TimeSlot)
	return converter.AppointmentToResponse(full), nil
}

func (u *appointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return nil, errors.New("role not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	scope, err := u.resolveScope(ctx, tx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil || !inScope(scope, appointment) {
		return nil, ErrAppointmentNotFound
	}

	oldStatus := appointment.Status

	if req.Status != "" {
		next := entity.AppointmentStatus(req.Status)
		// Patients may only cancel their own appointments; the other
		// transitions belong to doctors and admins.
		if roleID == entity.RoleIDPatient && next != entity.AppointmentStatusCancelled {
			return nil, ErrPatientStatusRestricted
		}
		if next != appointment.Status {
			if !appointment.Status.CanTransitionTo(next) {
				return nil, ErrInvalidStatusTransition
			}
			appointment.Status = next
		}
	}

	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentUpdate, "appointment", appointment.ID.String(),
		map[string]interface{}{"status": string(oldStatus)},
		map[string]interface{}{"status": string(appointment.Status)},
	)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.analyticsCache.Invalidate(ctx)

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	rows, err := u.appointmentRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotFound
	}

	u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionAppointmentDelete, "appointment", id.String(), map[string]interface{}{
		"status":    string(appointment.Status),
		"date":      appointment.Date.Format("2006-01-02"),
		"time_slot": appointment.TimeSlot,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.analyticsCache.Invalidate(ctx)

	u.log.Infof("Appointment deleted: id=%s", id)
	return nil
}
