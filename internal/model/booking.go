package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BookingStatus represents the status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo reports whether next is a legal transition from s.
// Repeating the current status is allowed and treated as a no-op write that
// only bumps the timestamp.
//
//	pending   -> confirmed | cancelled
//	confirmed -> completed | cancelled
//	completed, cancelled -> (terminal)
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCompleted || next == BookingStatusCancelled
	}
	return false
}

// Booking is a tourist's reservation against a tour. TotalAmount is computed
// once at creation (tour price at that moment times party size) and never
// recomputed, even if the tour's price changes later.
type Booking struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	TourID          uuid.UUID       `json:"tour_id" gorm:"type:char(36);not null;index"`
	TouristUserID   uuid.UUID       `json:"tourist_user_id" gorm:"type:char(36);not null;index"`
	NumberOfPeople  int             `json:"number_of_people" gorm:"not null"`
	StartDate       time.Time       `json:"start_date" gorm:"not null"`
	EndDate         time.Time       `json:"end_date" gorm:"not null"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status          BookingStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	SpecialRequests string          `json:"special_requests,omitempty" gorm:"size:500"`
	ContactPhone    string          `json:"contact_phone,omitempty" gorm:"size:100"`
	ContactEmail    string          `json:"contact_email,omitempty" gorm:"size:255"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relations
	Tour        *Tour `json:"tour,omitempty" gorm:"foreignKey:TourID"`
	TouristUser *User `json:"tourist_user,omitempty" gorm:"foreignKey:TouristUserID"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
