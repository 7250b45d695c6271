package usecase_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	appconfig "hospital-management-api/config"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/repository"
	"hospital-management-api/internal/service"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// env holds the wired usecases against a real database. Tests are skipped
// unless DATABASE_URL points at a migrated test database.
type env struct {
	db                  *gorm.DB
	userRepo            domainRepo.UserRepository
	patientProfileRepo  domainRepo.PatientProfileRepository
	doctorProfileRepo   domainRepo.DoctorProfileRepository
	appointmentRepo     domainRepo.AppointmentRepository
	authUsecase         usecase.AuthUsecase
	doctorUsecase       usecase.DoctorProfileUsecase
	patientUsecase      usecase.PatientProfileUsecase
	appointmentUsecase  usecase.AppointmentUsecase
	prescriptionUsecase usecase.PrescriptionUsecase
	adminUsecase        usecase.AdminUsecase
	adminID             uuid.UUID
}

func setup(t *testing.T) *env {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	mr := miniredis.RunT(t)
	redisClient := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	jwtService := jwt.NewJWTService(appconfig.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})

	userRepo := repository.NewUserRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	contactRepo := repository.NewContactMessageRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(db, log, auditLogRepo)
	analyticsCache := service.NewAnalyticsCacheService(redisClient, log)

	e := &env{
		db:                 db,
		userRepo:           userRepo,
		patientProfileRepo: patientProfileRepo,
		doctorProfileRepo:  doctorProfileRepo,
		appointmentRepo:    appointmentRepo,
	}
	e.authUsecase = usecase.NewAuthUsecase(db, log, userRepo, patientProfileRepo, auditService, jwtService, redisClient)
	e.doctorUsecase = usecase.NewDoctorProfileUsecase(db, log, userRepo, doctorProfileRepo, auditService, analyticsCache)
	e.patientUsecase = usecase.NewPatientProfileUsecase(db, log, patientProfileRepo, auditService)
	e.appointmentUsecase = usecase.NewAppointmentUsecase(db, log, appointmentRepo, doctorProfileRepo, patientProfileRepo, auditService, analyticsCache)
	e.prescriptionUsecase = usecase.NewPrescriptionUsecase(db, log, prescriptionRepo, appointmentRepo, doctorProfileRepo, patientProfileRepo, auditService, analyticsCache)
	e.adminUsecase = usecase.NewAdminUsecase(db, log, userRepo, doctorProfileRepo, patientProfileRepo, appointmentRepo, contactRepo, auditService, analyticsCache)

	e.adminID = e.createAdmin(t)
	return e
}

func ctxFor(userID uuid.UUID, roleID int) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, userID)
	return context.WithValue(ctx, middleware.RoleIDKey, roleID)
}

func testEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@test.com", prefix, uuid.New().String()[:8])
}

func (e *env) createAdmin(t *testing.T) uuid.UUID {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := &entity.User{
		Email:    testEmail("admin"),
		Password: string(hash),
		FullName: "Test Admin",
		RoleID:   entity.RoleIDAdmin,
	}
	if err := e.userRepo.Create(e.db, admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return admin.ID
}

// registerPatient returns the user id and patient profile id.
func (e *env) registerPatient(t *testing.T) (uuid.UUID, uuid.UUID) {
	t.Helper()
	resp, err := e.authUsecase.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		Email:    testEmail("patient"),
		Password: "patientpass123",
		FullName: "Test Patient",
		Age:      30,
	})
	if err != nil {
		t.Fatalf("register patient: %v", err)
	}
	profile, err := e.patientProfileRepo.FindByUserID(e.db, resp.ID)
	if err != nil || profile == nil {
		t.Fatalf("patient profile missing after registration: %v", err)
	}
	return resp.ID, profile.ID
}

// createDoctor returns the user id and doctor profile id.
func (e *env) createDoctor(t *testing.T) (uuid.UUID, uuid.UUID) {
	t.Helper()
	resp, err := e.doctorUsecase.Create(ctxFor(e.adminID, entity.RoleIDAdmin), &dto.CreateDoctorRequest{
		Email:          testEmail("doctor"),
		Password:       "doctorpass123",
		FullName:       "Test Doctor",
		Specialization: "Cardiology",
		Experience:     5,
	})
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	return resp.UserID, resp.ID
}

func (e *env) book(t *testing.T, patientUserID, doctorProfileID uuid.UUID, date, slot string) *dto.AppointmentResponse {
	t.Helper()
	resp, err := e.appointmentUsecase.Create(ctxFor(patientUserID, entity.RoleIDPatient), &dto.CreateAppointmentRequest{
		DoctorID: doctorProfileID,
		Date:     date,
		TimeSlot: slot,
		Reason:   "checkup",
	})
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	return resp
}

func futureDate(daysAhead int) string {
	return time.Now().AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func TestAppointmentListScoping(t *testing.T) {
	e := setup(t)

	_, doctorProfileID := e.createDoctor(t)
	patientA, profileA := e.registerPatient(t)
	patientB, _ := e.registerPatient(t)

	apptA := e.book(t, patientA, doctorProfileID, futureDate(7), "09:00-09:30")
	apptB := e.book(t, patientB, doctorProfileID, futureDate(7), "10:00-10:30")

	// Patient A sees only their own appointment
	listA, err := e.appointmentUsecase.List(ctxFor(patientA, entity.RoleIDPatient))
	if err != nil {
		t.Fatalf("patient list: %v", err)
	}
	for _, a := range listA.Appointments {
		if a.PatientID != profileA {
			t.Errorf("patient list leaked appointment of patient %s", a.PatientID)
		}
	}
	if len(listA.Appointments) != 1 || listA.Appointments[0].ID != apptA.ID {
		t.Errorf("patient list = %d appointments, want exactly own", len(listA.Appointments))
	}

	// Patient B cannot read A's appointment by id
	if _, err := e.appointmentUsecase.Get(ctxFor(patientB, entity.RoleIDPatient), apptA.ID); err != usecase.ErrAppointmentNotFound {
		t.Errorf("cross-patient get: err = %v, want ErrAppointmentNotFound", err)
	}

	// The doctor sees both
	doctorUserID := e.doctorUserID(t, doctorProfileID)
	listD, err := e.appointmentUsecase.List(ctxFor(doctorUserID, entity.RoleIDDoctor))
	if err != nil {
		t.Fatalf("doctor list: %v", err)
	}
	if !containsAppointment(listD.Appointments, apptA.ID) || !containsAppointment(listD.Appointments, apptB.ID) {
		t.Error("doctor list missing assigned appointments")
	}

	// Admin sees both too
	listAdm, err := e.appointmentUsecase.List(ctxFor(e.adminID, entity.RoleIDAdmin))
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if !containsAppointment(listAdm.Appointments, apptA.ID) || !containsAppointment(listAdm.Appointments, apptB.ID) {
		t.Error("admin list missing appointments")
	}
}

func (e *env) doctorUserID(t *testing.T, doctorProfileID uuid.UUID) uuid.UUID {
	t.Helper()
	profile, err := e.doctorProfileRepo.FindByID(e.db, doctorProfileID)
	if err != nil || profile == nil {
		t.Fatalf("doctor profile lookup: %v", err)
	}
	return profile.UserID
}

func containsAppointment(list []dto.AppointmentResponse, id uuid.UUID) bool {
	for _, a := range list {
		if a.ID == id {
			return true
		}
	}
	return false
}

func TestDoubleBookingRejected(t *testing.T) {
	e := setup(t)

	_, doctorProfileID := e.createDoctor(t)
	patientA, _ := e.registerPatient(t)
	patientB, _ := e.registerPatient(t)

	date := futureDate(14)
	appt := e.book(t, patientA, doctorProfileID, date, "11:00-11:30")

	// Same doctor, date, and slot is rejected
	_, err := e.appointmentUsecase.Create(ctxFor(patientB, entity.RoleIDPatient), &dto.CreateAppointmentRequest{
		DoctorID: doctorProfileID,
		Date:     date,
		TimeSlot: "11:00-11:30",
	})
	if err != usecase.ErrSlotAlreadyBooked {
		t.Fatalf("double booking: err = %v, want ErrSlotAlreadyBooked", err)
	}

	// Cancelling releases the slot
	if _, err := e.appointmentUsecase.Update(ctxFor(patientA, entity.RoleIDPatient), appt.ID, &dto.UpdateAppointmentRequest{
		Status: "cancelled",
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := e.appointmentUsecase.Create(ctxFor(patientB, entity.RoleIDPatient), &dto.CreateAppointmentRequest{
		DoctorID: doctorProfileID,
		Date:     date,
		TimeSlot: "11:00-11:30",
	}); err != nil {
		t.Fatalf("rebooking a released slot: %v", err)
	}
}

func TestPatientStatusRules(t *testing.T) {
	e := setup(t)

	_, doctorProfileID := e.createDoctor(t)
	patientA, _ := e.registerPatient(t)
	appt := e.book(t, patientA, doctorProfileID, futureDate(21), "09:00-09:30")

	// Patients cannot confirm
	_, err := e.appointmentUsecase.Update(ctxFor(patientA, entity.RoleIDPatient), appt.ID, &dto.UpdateAppointmentRequest{
		Status: "confirmed",
	})
	if err != usecase.ErrPatientStatusRestricted {
		t.Errorf("patient confirm: err = %v, want ErrPatientStatusRestricted", err)
	}

	// Patients can cancel
	updated, err := e.appointmentUsecase.Update(ctxFor(patientA, entity.RoleIDPatient), appt.ID, &dto.UpdateAppointmentRequest{
		Status: "cancelled",
	})
	if err != nil {
		t.Fatalf("patient cancel: %v", err)
	}
	if updated.Status != "cancelled" {
		t.Errorf("status = %q after cancel", updated.Status)
	}

	// Cancelled is terminal, even for admins
	_, err = e.appointmentUsecase.Update(ctxFor(e.adminID, entity.RoleIDAdmin), appt.ID, &dto.UpdateAppointmentRequest{
		Status: "confirmed",
	})
	if err != usecase.ErrInvalidStatusTransition {
		t.Errorf("reviving cancelled appointment: err = %v, want ErrInvalidStatusTransition", err)
	}
}

func TestPrescriptionFlow(t *testing.T) {
	e := setup(t)

	doctorUser1, doctorProfile1 := e.createDoctor(t)
	doctorUser2, _ := e.createDoctor(t)
	patientA, _ := e.registerPatient(t)
	patientB, _ := e.registerPatient(t)

	appt := e.book(t, patientA, doctorProfile1, futureDate(28), "14:00-14:30")

	req := &dto.CreatePrescriptionRequest{
		AppointmentID: appt.ID,
		Medicines: []dto.MedicineRequest{
			{Name: "Ibuprofen", Dosage: "200mg", Frequency: "2x daily", Duration: "5 days"},
		},
		Diagnosis: "Tension headache",
	}

	// A different doctor cannot prescribe on this appointment
	if _, err := e.prescriptionUsecase.Create(ctxFor(doctorUser2, entity.RoleIDDoctor), req); err != usecase.ErrNotAppointmentDoctor {
		t.Fatalf("foreign doctor prescription: err = %v, want ErrNotAppointmentDoctor", err)
	}

	// The assigned doctor can, and the appointment completes
	created, err := e.prescriptionUsecase.Create(ctxFor(doctorUser1, entity.RoleIDDoctor), req)
	if err != nil {
		t.Fatalf("create prescription: %v", err)
	}

	stored, err := e.appointmentRepo.FindByID(e.db, appt.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload appointment: %v", err)
	}
	if stored.Status != entity.AppointmentStatusCompleted {
		t.Errorf("appointment status = %s, want completed", stored.Status)
	}

	// One prescription per appointment
	if _, err := e.prescriptionUsecase.Create(ctxFor(doctorUser1, entity.RoleIDDoctor), req); err != usecase.ErrPrescriptionExists {
		t.Errorf("duplicate prescription: err = %v, want ErrPrescriptionExists", err)
	}

	// The patient sees it in their own listing
	mine, err := e.prescriptionUsecase.ListMine(ctxFor(patientA, entity.RoleIDPatient))
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	found := false
	for _, p := range mine.Prescriptions {
		if p.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Error("patient listing missing own prescription")
	}

	// Another patient does not
	other, err := e.prescriptionUsecase.ListMine(ctxFor(patientB, entity.RoleIDPatient))
	if err != nil {
		t.Fatalf("list mine (other): %v", err)
	}
	for _, p := range other.Prescriptions {
		if p.ID == created.ID {
			t.Error("prescription leaked to another patient")
		}
	}
}

func TestPrescriptionOnCancelledAppointment(t *testing.T) {
	e := setup(t)

	doctorUser, doctorProfile := e.createDoctor(t)
	patientA, _ := e.registerPatient(t)

	appt := e.book(t, patientA, doctorProfile, futureDate(35), "15:00-15:30")
	if _, err := e.appointmentUsecase.Update(ctxFor(patientA, entity.RoleIDPatient), appt.ID, &dto.UpdateAppointmentRequest{
		Status: "cancelled",
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err := e.prescriptionUsecase.Create(ctxFor(doctorUser, entity.RoleIDDoctor), &dto.CreatePrescriptionRequest{
		AppointmentID: appt.ID,
		Diagnosis:     "should not be recorded",
	})
	if err != usecase.ErrAppointmentCancelled {
		t.Fatalf("prescribing on cancelled appointment: err = %v, want ErrAppointmentCancelled", err)
	}

	// The cancelled appointment must not have been resurrected
	stored, err := e.appointmentRepo.FindByID(e.db, appt.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload appointment: %v", err)
	}
	if stored.Status != entity.AppointmentStatusCancelled {
		t.Errorf("appointment status = %s, want cancelled", stored.Status)
	}
}

func TestCrossPatientProfileRead(t *testing.T) {
	e := setup(t)

	patientA, _ := e.registerPatient(t)
	_, profileB := e.registerPatient(t)

	if _, err := e.patientUsecase.Get(ctxFor(patientA, entity.RoleIDPatient), profileB); err != usecase.ErrProfileNotOwned {
		t.Errorf("cross-patient profile read: err = %v, want ErrProfileNotOwned", err)
	}

	// A missing profile is still a plain not-found
	if _, err := e.patientUsecase.Get(ctxFor(patientA, entity.RoleIDPatient), uuid.New()); err != usecase.ErrPatientProfileNotFound {
		t.Errorf("missing profile read: err = %v, want ErrPatientProfileNotFound", err)
	}

	// A doctor may read any patient profile
	doctorUser, _ := e.createDoctor(t)
	if _, err := e.patientUsecase.Get(ctxFor(doctorUser, entity.RoleIDDoctor), profileB); err != nil {
		t.Errorf("doctor profile read: %v", err)
	}
}

func TestDeleteUserCascadesProfile(t *testing.T) {
	e := setup(t)

	patientUser, _ := e.registerPatient(t)

	if err := e.adminUsecase.DeleteUser(ctxFor(e.adminID, entity.RoleIDAdmin), patientUser); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	user, err := e.userRepo.FindByID(e.db, patientUser)
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if user != nil {
		t.Error("user still present after deletion")
	}

	profile, err := e.patientProfileRepo.FindByUserID(e.db, patientUser)
	if err != nil {
		t.Fatalf("find profile: %v", err)
	}
	if profile != nil {
		t.Error("patient profile still present after user deletion")
	}

	// Admins cannot delete themselves
	if err := e.adminUsecase.DeleteUser(ctxFor(e.adminID, entity.RoleIDAdmin), e.adminID); err != usecase.ErrCannotDeleteSelf {
		t.Errorf("self delete: err = %v, want ErrCannotDeleteSelf", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := setup(t)

	email := testEmail("dup")
	req := &dto.RegisterPatientRequest{Email: email, Password: "somepass123", FullName: "First"}
	if _, err := e.authUsecase.RegisterPatient(context.Background(), req); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	req2 := &dto.RegisterPatientRequest{Email: email, Password: "otherpass123", FullName: "Second"}
	if _, err := e.authUsecase.RegisterPatient(context.Background(), req2); err != usecase.ErrEmailAlreadyExists {
		t.Errorf("duplicate email: err = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestLoginAndRefresh(t *testing.T) {
	e := setup(t)

	email := testEmail("login")
	if _, err := e.authUsecase.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		Email: email, Password: "loginpass123", FullName: "Login Test",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	tokens, err := e.authUsecase.Login(context.Background(), &dto.LoginRequest{Email: email, Password: "loginpass123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("empty tokens")
	}

	if _, err := e.authUsecase.Login(context.Background(), &dto.LoginRequest{Email: email, Password: "wrongpass"}); err != usecase.ErrInvalidCredentials {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}

	refreshed, err := e.authUsecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatal("empty refreshed access token")
	}

	// Refresh tokens are single use
	if _, err := e.authUsecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken}); err != usecase.ErrTokenRevoked {
		t.Errorf("reused refresh token: err = %v, want ErrTokenRevoked", err)
	}
}
