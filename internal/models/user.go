package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription tiers a user can sign up with.
const (
	TierFree    = "FREE"
	TierBasic   = "BASIC"
	TierPremium = "PREMIUM"
)

// User is hard-deleted on account removal; dependent rows are removed through
// ON DELETE CASCADE constraints, so there is no soft-delete column.
type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username         string    `gorm:"size:100;not null" json:"username"`
	Email            string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone            string    `gorm:"size:20;not null;uniqueIndex" json:"phone"`
	Password         string    `gorm:"not null" json:"-"`
	SubscriptionTier string    `gorm:"size:20;not null;default:'FREE'" json:"subscription_tier"`
	Role             string    `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
