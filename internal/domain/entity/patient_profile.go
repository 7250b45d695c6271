package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientProfile represents patient-specific profile data.
// Created at patient self-registration; removed only by an admin-initiated
// user deletion cascade.
type PatientProfile struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Age            int        `gorm:"not null;default:0" json:"age"`
	Gender         string     `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Phone          string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address        string     `gorm:"type:text" json:"address,omitempty"`
	BloodGroup     string     `gorm:"type:varchar(5);default:''" json:"blood_group,omitempty"`
	MedicalHistory StringList `gorm:"type:jsonb" json:"medical_history"`
	Allergies      StringList `gorm:"type:jsonb" json:"allergies"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

// Gender constants
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// BloodGroups is the accepted set of blood group labels. The empty string
// means "not recorded".
var BloodGroups = []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-", ""}

// IsValidBloodGroup reports whether bg is an accepted blood group label.
func IsValidBloodGroup(bg string) bool {
	for _, b := range BloodGroups {
		if bg == b {
			return true
		}
	}
	return false
}
