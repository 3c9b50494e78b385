package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InstallmentPayment records money received from a subscriber against an
// installment. Records are append-only and carry no uniqueness constraint:
// a subscriber may pay an installment in several partial amounts.
type InstallmentPayment struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	InstallmentID uuid.UUID `gorm:"type:char(36);not null;index" json:"installment_id"`
	SubscriberID  uuid.UUID `gorm:"type:char(36);not null;index" json:"subscriber_id"`
	PaymentDate   time.Time `gorm:"not null" json:"payment_date"`
	AmountPaid    float64   `gorm:"not null" json:"amount_paid"`
	Notes         string    `json:"notes,omitempty"`

	// Relationships
	Installment Installment `gorm:"foreignKey:InstallmentID" json:"installment,omitempty"`
	Subscriber  Subscriber  `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
}

// BeforeCreate assigns a UUID primary key if one was not supplied.
func (p *InstallmentPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
