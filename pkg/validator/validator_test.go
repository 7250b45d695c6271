package validator

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Email      string `validate:"required,email"`
	Password   string `validate:"required,min=6"`
	BloodGroup string `validate:"omitempty,oneof=A+ A- B+ B- O+ O- AB+ AB-"`
}

func TestValidatePasses(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&sampleRequest{Email: "user@test.com", Password: "secret1", BloodGroup: "O+"})
	if err != nil {
		t.Fatalf("valid struct rejected: %v", err)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&sampleRequest{Email: "not-an-email", Password: "abc", BloodGroup: "C+"})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	formatted := cv.FormatValidationErrors(err)
	if len(formatted) != 3 {
		t.Fatalf("formatted %d errors, want 3: %v", len(formatted), formatted)
	}
	if msg := formatted["Email"]; !strings.Contains(msg, "valid email") {
		t.Errorf("Email message = %q", msg)
	}
	if msg := formatted["Password"]; !strings.Contains(msg, "at least 6") {
		t.Errorf("Password message = %q", msg)
	}
	if msg := formatted["BloodGroup"]; !strings.Contains(msg, "must be one of") {
		t.Errorf("BloodGroup message = %q", msg)
	}
}

func TestFormatValidationErrorsNonValidationError(t *testing.T) {
	cv := NewValidator()
	formatted := cv.FormatValidationErrors(errFake{})
	if len(formatted) != 0 {
		t.Errorf("unexpected entries for a non-validation error: %v", formatted)
	}
}

type errFake struct{}

func (errFake) Error() string { return "boom" }
