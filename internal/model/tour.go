package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TourStatus is the lifecycle state of a tour. Tours are never hard-deleted:
// a deactivated tour stops accepting bookings but keeps its historical
// bookings and reviews valid.
type TourStatus string

const (
	TourStatusActive      TourStatus = "active"
	TourStatusDeactivated TourStatus = "deactivated"
)

// Tour is a bookable product owned by one agency. The owning agency id is
// immutable once the tour is created.
type Tour struct {
	ID           uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	AgencyUserID uuid.UUID       `json:"agency_user_id" gorm:"type:char(36);not null;index"`
	Title        string          `json:"title" gorm:"size:200;not null"`
	Description  string          `json:"description" gorm:"size:500;not null"`
	Destination  string          `json:"destination" gorm:"size:100;not null;index"`
	Category     string          `json:"category" gorm:"size:50;not null;index"`
	Duration     int             `json:"duration" gorm:"not null"` // days
	MaxGroupSize int             `json:"max_group_size" gorm:"not null;default:10"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL     string          `json:"image_url,omitempty" gorm:"size:500"`
	Itinerary    string          `json:"itinerary,omitempty" gorm:"size:1000"`
	Inclusions   string          `json:"inclusions,omitempty" gorm:"size:500"`
	Exclusions   string          `json:"exclusions,omitempty" gorm:"size:500"`
	Status       TourStatus      `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations
	AgencyUser *User `json:"agency_user,omitempty" gorm:"foreignKey:AgencyUserID"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Tour) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsActive reports whether the tour accepts new bookings.
func (t *Tour) IsActive() bool {
	return t.Status == TourStatusActive
}
