package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Medicine is a single entry on a prescription
type Medicine struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// MedicineList type for GORM JSONB support. Order of entries is preserved.
type MedicineList []Medicine

// Value returns json value, implement driver.Valuer interface
func (m MedicineList) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal([]Medicine{})
	}
	return json.Marshal(m)
}

// Scan scan value into MedicineList, implements sql.Scanner interface
func (m *MedicineList) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := []Medicine{}
	err := json.Unmarshal(bytes, &result)
	*m = MedicineList(result)
	return err
}

// Prescription is issued by a doctor for exactly one appointment. Creating
// one is the sole trigger that moves the appointment to completed.
type Prescription struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID    `gorm:"type:uuid;uniqueIndex;not null" json:"appointment_id"`
	Medicines     MedicineList `gorm:"type:jsonb" json:"medicines"`
	Diagnosis     string       `gorm:"type:text" json:"diagnosis,omitempty"`
	Notes         string       `gorm:"type:text" json:"notes,omitempty"`
	FollowUpDate  *time.Time   `gorm:"type:date" json:"follow_up_date,omitempty"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}
