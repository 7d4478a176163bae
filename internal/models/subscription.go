package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription records a paid plan purchase made at signup.
type Subscription struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	PlanType      string    `gorm:"size:20;not null" json:"plan_type"`
	StartDate     time.Time `gorm:"not null" json:"start_date"`
	EndDate       time.Time `gorm:"not null" json:"end_date"`
	AmountPaid    int       `gorm:"not null" json:"amount_paid"`
	PaymentStatus string    `gorm:"size:20;not null;default:'COMPLETED'" json:"payment_status"`
	AutoRenew     bool      `gorm:"not null;default:true" json:"auto_renew"`
	CreatedAt     time.Time `json:"created_at"`
	User          User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
