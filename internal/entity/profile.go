package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleFaculty    = "faculty"
	RoleHOD        = "hod"
	RoleDean       = "dean"
	RoleSuperadmin = "superadmin"
)

// ResponderRoles are the roles allowed to respond to queries.
var ResponderRoles = []string{RoleHOD, RoleDean, RoleSuperadmin}

type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName     string    `gorm:"size:255;not null" json:"full_name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:faculty" json:"role"`
	Points       int       `gorm:"not null;default:0" json:"points"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func ValidRole(role string) bool {
	switch role {
	case RoleFaculty, RoleHOD, RoleDean, RoleSuperadmin:
		return true
	}
	return false
}
