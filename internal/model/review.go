package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a tourist's 1-5 rating plus optional comment for a tour. The
// composite unique index is the authoritative guarantee that a tourist
// reviews a tour at most once; the service layer translates the constraint
// violation into a typed duplicate error.
type Review struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	TourID        uuid.UUID `json:"tour_id" gorm:"type:char(36);not null;uniqueIndex:idx_reviews_tour_tourist"`
	TouristUserID uuid.UUID `json:"tourist_user_id" gorm:"type:char(36);not null;uniqueIndex:idx_reviews_tour_tourist"`
	Rating        int       `json:"rating" gorm:"not null"`
	Comment       string    `json:"comment,omitempty" gorm:"size:1000"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Tour        *Tour `json:"tour,omitempty" gorm:"foreignKey:TourID"`
	TouristUser *User `json:"tourist_user,omitempty" gorm:"foreignKey:TouristUserID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
