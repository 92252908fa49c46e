package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	QueryStatusOpen       = "open"
	QueryStatusInProgress = "in_progress"
	QueryStatusResolved   = "resolved"
)

type Query struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Type        string     `gorm:"size:100;not null" json:"type"`
	Status      string     `gorm:"size:20;not null;default:open" json:"status"`
	Response    *string    `gorm:"type:text" json:"response,omitempty"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;not null" json:"author_id"`
	Author      Profile    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ResponderID *uuid.UUID `gorm:"type:uuid" json:"responder_id,omitempty"`
	Responder   *Profile   `gorm:"foreignKey:ResponderID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (q *Query) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID, err = uuid.NewV7()
	}
	return
}
