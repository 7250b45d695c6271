package entity

import "testing"

func TestRoleName(t *testing.T) {
	tests := []struct {
		roleID int
		want   string
	}{
		{RoleIDAdmin, RoleAdmin},
		{RoleIDDoctor, RoleDoctor},
		{RoleIDPatient, RolePatient},
		{0, ""},
		{99, ""},
	}

	for _, tt := range tests {
		if got := RoleName(tt.roleID); got != tt.want {
			t.Errorf("RoleName(%d) = %q, want %q", tt.roleID, got, tt.want)
		}
	}
}

func TestIsValidRoleID(t *testing.T) {
	for _, id := range []int{RoleIDAdmin, RoleIDDoctor, RoleIDPatient} {
		if !IsValidRoleID(id) {
			t.Errorf("role id %d should be valid", id)
		}
	}
	for _, id := range []int{0, 4, -1} {
		if IsValidRoleID(id) {
			t.Errorf("role id %d should be invalid", id)
		}
	}
}

func TestUserRoleHelpers(t *testing.T) {
	admin := User{RoleID: RoleIDAdmin}
	if !admin.IsAdmin() || admin.IsDoctor() || admin.IsPatient() {
		t.Error("admin role helpers wrong")
	}

	doctor := User{RoleID: RoleIDDoctor}
	if !doctor.IsDoctor() || doctor.IsAdmin() {
		t.Error("doctor role helpers wrong")
	}

	patient := User{RoleID: RoleIDPatient}
	if !patient.IsPatient() || patient.IsAdmin() {
		t.Error("patient role helpers wrong")
	}
}
