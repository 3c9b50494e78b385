package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscriber represents a participant who may enroll in one or more groups.
// Phone numbers must be unique among active subscribers; deactivating a
// subscriber frees the number for reuse, so uniqueness is enforced by the
// handlers rather than a database index.
type Subscriber struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"not null" json:"name"`
	PhoneNumber string    `gorm:"not null;index" json:"phone_number"`
	Address     string    `json:"address,omitempty"`
	IsActive    bool      `gorm:"not null" json:"is_active"`

	// Relationships
	Enrollments []Enrollment         `gorm:"foreignKey:SubscriberID" json:"enrollments,omitempty"`
	Payments    []InstallmentPayment `gorm:"foreignKey:SubscriberID" json:"payments,omitempty"`
}

// BeforeCreate assigns a UUID primary key if one was not supplied.
func (s *Subscriber) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
