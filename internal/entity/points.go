package entity

import (
	"time"

	"github.com/google/uuid"
)

// PointLog records every delta applied to a profile's points balance,
// written in the same transaction as the balance update.
type PointLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        Profile   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Action      string    `gorm:"size:50;not null" json:"action"`
	Points      int       `gorm:"not null" json:"points"`
	ReferenceID uuid.UUID `gorm:"type:uuid" json:"reference_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
