package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Installment represents one monthly cycle of a chit group. Exactly one
// installment exists per (group, month number); the full schedule for a group
// is generated in a single batch and never regenerated.
type Installment struct {
	ID                 uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	GroupID            uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:idx_installment_group_month,priority:1" json:"group_id"`
	MonthNumber        int        `gorm:"not null;uniqueIndex:idx_installment_group_month,priority:2" json:"month_number"` // 1..group duration
	DueDate            time.Time  `gorm:"not null" json:"due_date"`
	IsAuctionConducted bool       `gorm:"default:false" json:"is_auction_conducted"`
	AuctionPrizeAmount *float64   `json:"auction_prize_amount,omitempty"`
	AuctionWinnerID    *uuid.UUID `gorm:"type:char(36)" json:"auction_winner_id,omitempty"`
	IsCompleted        bool       `gorm:"default:false" json:"is_completed"`

	// Relationships
	Group         ChitGroup            `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	AuctionWinner *Subscriber          `gorm:"foreignKey:AuctionWinnerID" json:"auction_winner,omitempty"`
	Payments      []InstallmentPayment `gorm:"foreignKey:InstallmentID" json:"payments,omitempty"`
}

// BeforeCreate assigns a UUID primary key if one was not supplied.
func (i *Installment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
