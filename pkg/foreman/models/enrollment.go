package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment binds a subscriber to a chit group with an assigned chit number
// (the subscriber's slot in the rotation). A subscriber enrolls in a group at
// most once, and a chit number is assigned at most once per group; both rules
// are pre-checked in the handler and backed by the unique indexes below so a
// racing insert still fails with a constraint error.
type Enrollment struct {
	ID                 uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	SubscriberID       uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_enrollment_subscriber_group,priority:1" json:"subscriber_id"`
	GroupID            uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_enrollment_subscriber_group,priority:2;uniqueIndex:idx_enrollment_group_chit,priority:1" json:"group_id"`
	AssignedChitNumber int       `gorm:"not null;uniqueIndex:idx_enrollment_group_chit,priority:2" json:"assigned_chit_number"`
	JoinDate           time.Time `gorm:"not null" json:"join_date"`

	// Relationships
	Subscriber Subscriber `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
	Group      ChitGroup  `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

// BeforeCreate assigns a UUID primary key if one was not supplied.
func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
