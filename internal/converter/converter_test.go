package converter

import (
	"testing"
	"time"

	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

func TestDoctorToResponseIncludesUser(t *testing.T) {
	userID := uuid.New()
	profile := &entity.DoctorProfile{
		ID:             uuid.New(),
		UserID:         userID,
		Specialization: "Cardiology",
		Experience:     8,
		Availability:   entity.StringList{"Monday", "Wednesday"},
		User: entity.User{
			ID:       userID,
			Email:    "doc@example.com",
			FullName: "Dr. Example",
			RoleID:   entity.RoleIDDoctor,
		},
	}

	resp := DoctorToResponse(profile)
	if resp.Email != "doc@example.com" || resp.FullName != "Dr. Example" {
		t.Errorf("user fields not mapped: %+v", resp)
	}
	if resp.Specialization != "Cardiology" {
		t.Errorf("specialization = %q", resp.Specialization)
	}
	if len(resp.Availability) != 2 {
		t.Errorf("availability = %v", resp.Availability)
	}
}

func TestDoctorToResponseWithoutUser(t *testing.T) {
	resp := DoctorToResponse(&entity.DoctorProfile{ID: uuid.New(), Specialization: "Dermatology"})
	if resp.Email != "" || resp.FullName != "" {
		t.Error("user fields should be empty without a preloaded user")
	}
	if resp.Availability == nil {
		t.Error("availability should be an empty slice, not nil")
	}
}

func TestPatientToResponseDefaults(t *testing.T) {
	resp := PatientToResponse(&entity.PatientProfile{ID: uuid.New(), UserID: uuid.New()})
	if resp.MedicalHistory == nil || resp.Allergies == nil {
		t.Error("list fields should be empty slices, not nil")
	}
}

func TestAppointmentToResponseNesting(t *testing.T) {
	patientID := uuid.New()
	doctorID := uuid.New()
	appointment := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:  "10:00-10:30",
		Status:    entity.AppointmentStatusPending,
		Patient:   entity.PatientProfile{ID: patientID},
		Doctor:    entity.DoctorProfile{ID: doctorID, Specialization: "Neurology"},
	}

	resp := AppointmentToResponse(appointment)
	if resp.Status != "pending" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Patient == nil || resp.Doctor == nil {
		t.Fatal("nested payloads missing")
	}
	if resp.Doctor.Specialization != "Neurology" {
		t.Errorf("nested doctor = %+v", resp.Doctor)
	}
}

func TestAppointmentToResponseWithoutPreloads(t *testing.T) {
	resp := AppointmentToResponse(&entity.Appointment{ID: uuid.New(), Status: entity.AppointmentStatusConfirmed})
	if resp.Patient != nil || resp.Doctor != nil {
		t.Error("nested payloads should be nil without preloads")
	}
}

func TestPrescriptionToResponseMedicines(t *testing.T) {
	prescription := &entity.Prescription{
		ID:            uuid.New(),
		AppointmentID: uuid.New(),
		Medicines: entity.MedicineList{
			{Name: "Amoxicillin", Dosage: "500mg", Frequency: "3x daily", Duration: "7 days"},
		},
		Diagnosis: "Bacterial infection",
	}

	resp := PrescriptionToResponse(prescription)
	if len(resp.Medicines) != 1 {
		t.Fatalf("medicines = %v", resp.Medicines)
	}
	if resp.Medicines[0].Name != "Amoxicillin" {
		t.Errorf("medicine = %+v", resp.Medicines[0])
	}
}

func TestNilConverters(t *testing.T) {
	if UserToResponse(nil) != nil || DoctorToResponse(nil) != nil ||
		PatientToResponse(nil) != nil || AppointmentToResponse(nil) != nil ||
		PrescriptionToResponse(nil) != nil || ContactToResponse(nil) != nil ||
		AuditLogToResponse(nil) != nil {
		t.Error("nil entities must convert to nil responses")
	}
}
