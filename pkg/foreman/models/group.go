package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChitGroup represents a fixed-membership rotating savings pool with a
// defined value, duration, and subscriber count.
// Groups are never hard-deleted; closing one flips IsActive off.
type ChitGroup struct {
	ID                          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt                   time.Time  `json:"created_at"`
	UpdatedAt                   time.Time  `json:"updated_at"`
	Name                        string     `gorm:"not null" json:"name"`
	Value                       float64    `gorm:"not null" json:"value"`
	NumberOfSubscribers         int        `gorm:"not null" json:"number_of_subscribers"`
	Duration                    int        `gorm:"not null" json:"duration"` // months
	StartDate                   time.Time  `gorm:"not null" json:"start_date"`
	ForemanCommissionPercentage *float64   `json:"foreman_commission_percentage,omitempty"`
	IsActive                    bool       `gorm:"not null" json:"is_active"`

	// Relationships
	Enrollments  []Enrollment  `gorm:"foreignKey:GroupID" json:"enrollments,omitempty"`
	Installments []Installment `gorm:"foreignKey:GroupID" json:"installments,omitempty"`
}

// BeforeCreate assigns a UUID primary key if one was not supplied.
func (g *ChitGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
