package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recommendation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Category    string    `gorm:"size:100;not null" json:"category"`
	Rating      int       `gorm:"not null;default:5" json:"rating"`
	Location    *string   `gorm:"size:255" json:"location,omitempty"`
	Description string    `gorm:"type:text;not null" json:"description"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Author      Profile   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Recommendation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

type Comment struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Content          string         `gorm:"type:text;not null" json:"content"`
	AuthorID         uuid.UUID      `gorm:"type:uuid;not null" json:"author_id"`
	Author           Profile        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	RecommendationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"recommendation_id"`
	Recommendation   Recommendation `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Comment) TableName() string {
	return "recommendation_comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

// Upvote rows are unique per (user, recommendation) pair; the toggle
// logic relies on the storage layer rejecting duplicates.
type Upvote struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_upvote_pair,priority:1" json:"user_id"`
	User             Profile        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	RecommendationID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_upvote_pair,priority:2" json:"recommendation_id"`
	Recommendation   Recommendation `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (u *Upvote) TableName() string {
	return "recommendation_upvotes"
}

func (u *Upvote) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID, err = uuid.NewV7()
	}
	return
}
