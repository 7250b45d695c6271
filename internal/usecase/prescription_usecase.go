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
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrPrescriptionExists   = errors.New("prescription already exists for this appointment")
	ErrNotAppointmentDoctor = errors.New("only the appointment's doctor may manage its prescription")
	ErrAppointmentCancelled = errors.New("cannot prescribe on a cancelled appointment")
)

type PrescriptionUsecase interface {
	Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.PrescriptionResponse, error)
	// ListMine returns the prescriptions issued on the requesting patient's
	// completed appointments.
	ListMine(ctx context.Context) (*dto.PrescriptionListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePrescriptionRequest) (*dto.PrescriptionResponse, error)
}

type prescriptionUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	prescriptionRepo   repository.PrescriptionRepository
	appointmentRepo    repository.AppointmentRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
	analyticsCache     *service.AnalyticsCacheService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
	analyticsCache *service.AnalyticsCacheService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:                 db,
		log:                log,
		prescriptionRepo:   prescriptionRepo,
		appointmentRepo:    appointmentRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
		analyticsCache:     analyticsCache,
	}
}

func medicinesFromRequests(reqs []dto.MedicineRequest) entity.MedicineList {
	medicines := make(entity.MedicineList, len(reqs))
	for i, m := range reqs {
		medicines[i] = entity.Medicine{
			Name:      m.Name,
			Dosage:    m.Dosage,
			Frequency: m.Frequency,
			Duration:  m.Duration,
		}
	}
	return medicines
}

// Create issues a prescription for an appointment. Only the doctor the
// appointment is assigned to may issue one, and issuing it moves the
// appointment to completed in the same transaction. Cancelled appointments
// cannot be prescribed on.
func (u *prescriptionUsecase) Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	var followUp *time.Time
	if req.FollowUpDate != "" {
		parsed, err := time.Parse("2006-01-02", req.FollowUpDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		followUp = &parsed
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctorProfile, err := u.doctorProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile for user %s: %+v", userID, err)
		return nil, err
	}
	if doctorProfile == nil {
		return nil, ErrDoctorProfileNotFound
	}

	appointment, err := u.appointmentRepo.FindByID(tx, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", req.AppointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctorProfile.ID {
		return nil, ErrNotAppointmentDoctor
	}
	if appointment.Status == entity.AppointmentStatusCancelled {
		return nil, ErrAppointmentCancelled
	}

	existing, err := u.prescriptionRepo.FindByAppointmentID(tx, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to check existing prescription: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrPrescriptionExists
	}

	prescription := &entity.Prescription{
		AppointmentID: req.AppointmentID,
		Medicines:     medicinesFromRequests(req.Medicines),
		Diagnosis:     req.Diagnosis,
		Notes:         req.Notes,
		FollowUpDate:  followUp,
	}

	if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
		if isDuplicateKeyError(err, "appointment") {
			return nil, ErrPrescriptionExists
		}
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	// Issuing the prescription completes the appointment
	if !appointment.IsCompleted() {
		appointment.Status = entity.AppointmentStatusCompleted
		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			u.log.Warnf("Failed to complete appointment %s: %+v", appointment.ID, err)
			return nil, err
		}
	}

	u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionPrescriptionCreate, "prescription", prescription.ID.String(), map[string]interface{}{
		"appointment_id": req.AppointmentID.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.analyticsCache.Invalidate(ctx)

	u.log.Infof("Prescription created: id=%s, appointment=%s", prescription.ID, req.AppointmentID)
	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.PrescriptionResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return nil, errors.New("role not found in context")
	}

	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	// Admins see everything; doctors and patients only their own appointment
	switch roleID {
	case entity.RoleIDAdmin:
	case entity.RoleIDDoctor:
		profile, err := u.doctorProfileRepo.FindByUserID(db, userID)
		if err != nil {
			return nil, err
		}
		if profile == nil || appointment.DoctorID != profile.ID {
			return nil, ErrAppointmentNotFound
		}
	default:
		profile, err := u.patientProfileRepo.FindByUserID(db, userID)
		if err != nil {
			return nil, err
		}
		if profile == nil || appointment.PatientID != profile.ID {
			return nil, ErrAppointmentNotFound
		}
	}

	prescription, err := u.prescriptionRepo.FindByAppointmentID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find prescription for appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) ListMine(ctx context.Context) (*dto.PrescriptionListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	db := u.db.WithContext(ctx)

	profile, err := u.patientProfileRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile for user %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientProfileNotFound
	}

	appointments, err := u.appointmentRepo.FindCompletedByPatientID(db, profile.ID)
	if err != nil {
		u.log.Warnf("Failed to list completed appointments for patient %s: %+v", profile.ID, err)
		return nil, err
	}

	appointmentIDs := make([]uuid.UUID, len(appointments))
	for i, appointment := range appointments {
		appointmentIDs[i] = appointment.ID
	}

	prescriptions, err := u.prescriptionRepo.FindByAppointmentIDs(db, appointmentIDs)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions for patient %s: %+v", profile.ID, err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

func (u *prescriptionUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctorProfile, err := u.doctorProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile for user %s: %+v", userID, err)
		return nil, err
	}
	if doctorProfile == nil {
		return nil, ErrDoctorProfileNotFound
	}

	prescription, err := u.prescriptionRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find prescription %s: %+v", id, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	appointment, err := u.appointmentRepo.FindByID(tx, prescription.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil || appointment.DoctorID != doctorProfile.ID {
		return nil, ErrNotAppointmentDoctor
	}

	if req.Medicines != nil {
		prescription.Medicines = medicinesFromRequests(req.Medicines)
	}
	if req.Diagnosis != nil {
		prescription.Diagnosis = *req.Diagnosis
	}
	if req.Notes != nil {
		prescription.Notes = *req.Notes
	}
	if req.FollowUpDate != nil {
		if *req.FollowUpDate == "" {
			prescription.FollowUpDate = nil
		} else {
			parsed, err := time.Parse("2006-01-02", *req.FollowUpDate)
			if err != nil {
				return nil, ErrInvalidDateFormat
			}
			prescription.FollowUpDate = &parsed
		}
	}

	if err := u.prescriptionRepo.Update(tx, prescription); err != nil {
		u.log.Warnf("Failed to update prescription %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionPrescriptionUpdate, "prescription", id.String(), nil, map[string]interface{}{
		"appointment_id": prescription.AppointmentID.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}
