package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role distinguishes the two sides of the marketplace.
type Role string

const (
	RoleTourist Role = "tourist"
	RoleAgency  Role = "agency"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleTourist || r == RoleAgency
}

// User represents a registered tourist or agency account.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Phone        string    `json:"phone,omitempty" gorm:"size:20"`
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	AgencyProfile *AgencyProfile `json:"agency_profile,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// AgencyProfile carries the public-facing details of an agency account.
// At most one profile exists per user; it is created lazily on registration
// or first profile update when the role is agency.
type AgencyProfile struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	AgencyName  string    `json:"agency_name" gorm:"size:200;not null"`
	Description string    `json:"description,omitempty" gorm:"size:1000"`
	Services    string    `json:"services,omitempty" gorm:"size:1000"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *AgencyProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
