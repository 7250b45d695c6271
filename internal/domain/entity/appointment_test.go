package entity

import "testing"

func TestAppointmentStatusIsValid(t *testing.T) {
	valid := []AppointmentStatus{
		AppointmentStatusPending,
		AppointmentStatusConfirmed,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if AppointmentStatus("rescheduled").IsValid() {
		t.Error("unknown status should be invalid")
	}
}

func TestAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusCompleted, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	if AppointmentStatusPending.IsTerminal() || AppointmentStatusConfirmed.IsTerminal() {
		t.Error("pending and confirmed are not terminal")
	}
	if !AppointmentStatusCompleted.IsTerminal() || !AppointmentStatusCancelled.IsTerminal() {
		t.Error("completed and cancelled are terminal")
	}
}

func TestAppointmentScopes(t *testing.T) {
	admin := AdminScope()
	if admin.PatientID != nil || admin.DoctorID != nil {
		t.Error("admin scope must be unfiltered")
	}
}
