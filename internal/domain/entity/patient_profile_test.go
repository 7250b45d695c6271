package entity

import "testing"

func TestIsValidBloodGroup(t *testing.T) {
	for _, bg := range []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-", ""} {
		if !IsValidBloodGroup(bg) {
			t.Errorf("%q should be a valid blood group", bg)
		}
	}
	for _, bg := range []string{"C+", "ab+", "A", "O"} {
		if IsValidBloodGroup(bg) {
			t.Errorf("%q should be invalid", bg)
		}
	}
}
