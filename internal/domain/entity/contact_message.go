package entity

import (
	"time"

	"github.com/google/uuid"
)

// ContactStatus represents the read state of a contact message
type ContactStatus string

const (
	ContactStatusUnread ContactStatus = "unread"
	ContactStatusRead   ContactStatus = "read"
)

// ContactMessage is a public contact-form submission; unrelated to the role
// model and managed by admins only.
type ContactMessage struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string        `gorm:"type:varchar(255);not null" json:"name"`
	Email     string        `gorm:"type:varchar(255);not null" json:"email"`
	Subject   string        `gorm:"type:varchar(255);not null" json:"subject"`
	Message   string        `gorm:"type:text;not null" json:"message"`
	Status    ContactStatus `gorm:"type:varchar(10);not null;default:'unread';index" json:"status"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
