package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FacultyCalendar holds one uploaded calendar image per row. Image is
// the storage URL when Cloudinary is configured, otherwise the raw
// data URI submitted by the client.
type FacultyCalendar struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FacultyID  uuid.UUID `gorm:"type:uuid;not null;index" json:"faculty_id"`
	Faculty    Profile   `gorm:"foreignKey:FacultyID;constraint:OnDelete:CASCADE" json:"-"`
	Image      string    `gorm:"type:text;not null" json:"image"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (f *FacultyCalendar) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID, err = uuid.NewV7()
	}
	return
}

type FacultyEvent struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FacultyID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"faculty_id"`
	Faculty      Profile    `gorm:"foreignKey:FacultyID;constraint:OnDelete:CASCADE" json:"-"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  *string    `gorm:"type:text" json:"description,omitempty"`
	EventDate    time.Time  `gorm:"type:date;not null" json:"event_date"`
	ReminderDate *time.Time `gorm:"type:date" json:"reminder_date,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (f *FacultyEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID, err = uuid.NewV7()
	}
	return
}

type AcademicEvent struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	StartDate   time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Category    string     `gorm:"size:100;not null" json:"category"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	Creator     Profile    `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (a *AcademicEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return
}
