package usecase

import (
	"context"
	"errors"
	"strings"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrProfileNotOwned = errors.New("profile does not belong to you")

type DoctorProfileUsecase interface {
	List(ctx context.Context) (*dto.DoctorListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type doctorProfileUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
	analyticsCache    *service.AnalyticsCacheService
}

func NewDoctorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	analyticsCache *service.AnalyticsCacheService,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
		analyticsCache:    analyticsCache,
	}
}

// List returns all doctor profiles. The endpoint is public so patients can
// browse before registering.
func (u *doctorProfileUsecase) List(ctx context.Context) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorProfileUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(profile), nil
}

// Create provisions a doctor account: the user record and its doctor profile
// in one transaction. Admin only.
func (u *doctorProfileUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	adminID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:    strings.ToLower(req.Email),
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDDoctor,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	profile := &entity.DoctorProfile{
		UserID:          user.ID,
		Specialization:  req.Specialization,
		Experience:      req.Experience,
		Availability:    entity.StringList(req.Availability),
		Qualifications:  req.Qualifications,
		ConsultationFee: decimal.NewFromFloat(req.ConsultationFee),
		Bio:             req.Bio,
	}

	if err := u.doctorProfileRepo.Create(tx, profile); err != nil {
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &adminID, entity.AuditActionDoctorCreate, "doctor_profile", profile.ID.String(), map[string]interface{}{
		"email":          user.Email,
		"specialization": profile.Specialization,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.analyticsCache.Invalidate(ctx)

	profile.User = *user
	u.log.Infof("Doctor created: id=%s, email=%s", profile.ID, user.Email)
	return converter.DoctorToResponse(profile), nil
}

// Update edits a doctor profile. Admins may edit any profile; a doctor may
// edit only their own.
func (u *doctorProfileUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
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

	profile, err := u.doctorProfileRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	if roleID != entity.RoleIDAdmin && profile.UserID != userID {
		return nil, ErrProfileNotOwned
	}

	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.Experience != nil {
		profile.Experience = *req.Experience
	}
	if req.Availability != nil {
		profile.Availability = entity.StringList(req.Availability)
	}
	if req.Qualifications != nil {
		profile.Qualifications = *req.Qualifications
	}
	if req.ConsultationFee != nil {
		profile.ConsultationFee = decimal.NewFromFloat(*req.ConsultationFee)
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}

	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionDoctorUpdate, "doctor_profile", id.String(), nil, map[string]interface{}{
		"specialization": profile.Specialization,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(profile), nil
}

// Delete removes a doctor profile together with its user account. Admin only.
func (u *doctorProfileUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	adminID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return err
	}
	if profile == nil {
		return ErrDoctorNotFound
	}

	if err := u.doctorProfileRepo.DeleteByUserID(tx, profile.UserID); err != nil {
		u.log.Warnf("Failed to delete doctor profile %s: %+v", id, err)
		return err
	}

	if _, err := u.userRepo.Delete(tx, profile.UserID); err != nil {
		u.log.Warnf("Failed to delete user %s: %+v", profile.UserID, err)
		return err
	}

	u.auditService.LogDelete(ctx, tx, &adminID, entity.AuditActionDoctorDelete, "doctor_profile", id.String(), map[string]interface{}{
		"user_id":        profile.UserID.String(),
		"specialization": profile.Specialization,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.analyticsCache.Invalidate(ctx)

	u.log.Infof("Doctor deleted: id=%s, user=%s", id, profile.UserID)
	return nil
}
