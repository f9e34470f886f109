package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tourhub/internal/cache"
	"tourhub/internal/errors"
	"tourhub/internal/model"
	"tourhub/internal/repository"
)

const statsCacheTTL = time.Minute

// CreateBookingInput carries the caller-supplied fields of a new booking.
type CreateBookingInput struct {
	TourID          uuid.UUID
	NumberOfPeople  int
	StartDate       time.Time
	EndDate         time.Time
	SpecialRequests string
	ContactPhone    string
	ContactEmail    string
}

// BookingStats aggregates an agency's bookings, tours and ratings for the
// dashboard. An agency with no activity gets the zero struct, not an error.
type BookingStats struct {
	TotalBookings     int64           `json:"total_bookings"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	ConfirmedBookings int64           `json:"confirmed_bookings"`
	PendingBookings   int64           `json:"pending_bookings"`
	ActiveTours       int64           `json:"active_tours"`
	AverageRating     float64         `json:"average_rating"`
}

// AgencyRatingSource provides the agency-wide rating consumed by the stats
// aggregation. Implemented by ReviewService.
type AgencyRatingSource interface {
	AgencyRating(ctx context.Context, agencyUserID uuid.UUID) (*AgencyRating, error)
}

// BookingService handles the booking lifecycle. Every operation receives the
// acting identity explicitly; nothing is read from ambient request state.
type BookingService interface {
	Create(ctx context.Context, touristUserID uuid.UUID, in CreateBookingInput) (*model.Booking, error)
	GetByID(ctx context.Context, bookingID, actorID uuid.UUID, role model.Role) (*model.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, actorID uuid.UUID, role model.Role, status model.BookingStatus) (*model.Booking, error)
	Cancel(ctx context.Context, bookingID, touristUserID uuid.UUID) (*model.Booking, error)
	ListByTourist(ctx context.Context, touristUserID uuid.UUID) ([]model.Booking, error)
	ListByAgency(ctx context.Context, agencyUserID uuid.UUID, limit int) ([]model.Booking, error)
	Stats(ctx context.Context, agencyUserID uuid.UUID) (*BookingStats, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	tourRepo    repository.TourRepository
	ratings     AgencyRatingSource
	cache       *cache.Client
}

// NewBookingService creates a new booking service.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	tourRepo repository.TourRepository,
	ratings AgencyRatingSource,
	cache *cache.Client,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		tourRepo:    tourRepo,
		ratings:     ratings,
		cache:       cache,
	}
}

func statsCacheKey(agencyUserID uuid.UUID) string {
	return fmt.Sprintf("agency_stats:%s", agencyUserID)
}

// Create validates the request against the tour and persists a pending
// booking. The total amount is the tour's price at this moment times the
// party size and is never recomputed afterwards.
func (s *bookingService) Create(ctx context.Context, touristUserID uuid.UUID, in CreateBookingInput) (*model.Booking, error) {
	if in.NumberOfPeople < 1 {
		return nil, fmt.Errorf("%w: number of people must be at least 1", errors.ErrInvalidInput)
	}

	tour, err := s.tourRepo.FindByID(ctx, in.TourID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTourNotFound
		}
		return nil, fmt.Errorf("load tour: %w", err)
	}

	if !tour.IsActive() {
		return nil, errors.ErrTourInactive
	}
	if in.NumberOfPeople > tour.MaxGroupSize {
		return nil, errors.ErrCapacityExceeded
	}
	if err := validateBookingDates(in.StartDate, in.EndDate, tour.Duration); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		TourID:          tour.ID,
		TouristUserID:   touristUserID,
		NumberOfPeople:  in.NumberOfPeople,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		TotalAmount:     tour.Price.Mul(decimal.NewFromInt(int64(in.NumberOfPeople))),
		Status:          model.BookingStatusPending,
		SpecialRequests: in.SpecialRequests,
		ContactPhone:    in.ContactPhone,
		ContactEmail:    in.ContactEmail,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	_ = s.cache.Delete(ctx, statsCacheKey(tour.AgencyUserID))

	return s.bookingRepo.FindByID(ctx, booking.ID)
}

// validateBookingDates enforces the date policy: the start must precede the
// end and the span in whole days must equal the tour's fixed duration.
func validateBookingDates(start, end time.Time, durationDays int) error {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return fmt.Errorf("%w: start date must be before end date", errors.ErrInvalidDates)
	}
	span := int(end.Sub(start).Hours() / 24)
	if span != durationDays {
		return fmt.Errorf("%w: tour lasts %d days", errors.ErrInvalidDates, durationDays)
	}
	return nil
}

// GetByID loads one booking for either party: the tourist who made it or the
// agency owning the booked tour. Anyone else reads not found.
func (s *bookingService) GetByID(ctx context.Context, bookingID, actorID uuid.UUID, role model.Role) (*model.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking: %w", err)
	}

	switch role {
	case model.RoleTourist:
		if booking.TouristUserID != actorID {
			return nil, errors.ErrBookingNotFound
		}
	case model.RoleAgency:
		if booking.Tour == nil || booking.Tour.AgencyUserID != actorID {
			return nil, errors.ErrBookingNotFound
		}
	default:
		return nil, errors.ErrForbidden
	}

	return booking, nil
}

// UpdateStatus advances a booking along the status state machine. Only the
// agency owning the booked tour may call this; tourists go through Cancel.
// Repeating the current status is a permitted no-op write.
func (s *bookingService) UpdateStatus(ctx context.Context, bookingID, actorID uuid.UUID, role model.Role, status model.BookingStatus) (*model.Booking, error) {
	if !status.Valid() {
		return nil, errors.ErrInvalidStatus
	}
	if role != model.RoleAgency {
		return nil, errors.ErrForbidden
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking: %w", err)
	}

	// Missing and not-owned are indistinguishable to the caller.
	if booking.Tour == nil || booking.Tour.AgencyUserID != actorID {
		return nil, errors.ErrBookingNotFound
	}

	if !booking.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot move booking from %s to %s", errors.ErrForbidden, booking.Status, status)
	}

	rows, err := s.bookingRepo.UpdateStatusByAgency(ctx, bookingID, actorID, status)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	if rows == 0 {
		return nil, errors.ErrBookingNotFound
	}

	_ = s.cache.Delete(ctx, statsCacheKey(actorID))

	return s.bookingRepo.FindByID(ctx, bookingID)
}

// Cancel is the tourist-side shorthand for moving an own booking to
// cancelled. Completed and cancelled bookings are terminal, also for the
// tourist. The state guard lives in the conditional UPDATE, so a concurrent
// agency transition wins over a late cancel.
func (s *bookingService) Cancel(ctx context.Context, bookingID, touristUserID uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking.TouristUserID != touristUserID {
		return nil, errors.ErrBookingNotFound
	}
	if booking.Status.Terminal() {
		return nil, fmt.Errorf("%w: booking is already %s", errors.ErrForbidden, booking.Status)
	}

	rows, err := s.bookingRepo.CancelByTourist(ctx, bookingID, touristUserID)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	if rows == 0 {
		// Lost the race against an agency transition.
		return nil, errors.ErrForbidden
	}

	if booking.Tour != nil {
		_ = s.cache.Delete(ctx, statsCacheKey(booking.Tour.AgencyUserID))
	}

	return s.bookingRepo.FindByID(ctx, bookingID)
}

func (s *bookingService) ListByTourist(ctx context.Context, touristUserID uuid.UUID) ([]model.Booking, error) {
	return s.bookingRepo.ListByTourist(ctx, touristUserID)
}

func (s *bookingService) ListByAgency(ctx context.Context, agencyUserID uuid.UUID, limit int) ([]model.Booking, error) {
	return s.bookingRepo.ListByAgency(ctx, agencyUserID, limit)
}

// Stats aggregates bookings, active tours and the agency rating. The result
// is cached briefly; aggregation reads do not need to be transactionally
// consistent with concurrent writes.
func (s *bookingService) Stats(ctx context.Context, agencyUserID uuid.UUID) (*BookingStats, error) {
	var cached BookingStats
	if s.cache.GetJSON(ctx, statsCacheKey(agencyUserID), &cached) {
		return &cached, nil
	}

	agg, err := s.bookingRepo.AggregateByAgency(ctx, agencyUserID)
	if err != nil {
		return nil, fmt.Errorf("aggregate bookings: %w", err)
	}

	activeTours, err := s.tourRepo.CountActiveByAgency(ctx, agencyUserID)
	if err != nil {
		return nil, fmt.Errorf("count active tours: %w", err)
	}

	rating, err := s.ratings.AgencyRating(ctx, agencyUserID)
	if err != nil {
		return nil, fmt.Errorf("agency rating: %w", err)
	}

	stats := &BookingStats{
		TotalBookings:     agg.TotalBookings,
		TotalRevenue:      agg.TotalRevenue,
		ConfirmedBookings: agg.ConfirmedBookings,
		PendingBookings:   agg.PendingBookings,
		ActiveTours:       activeTours,
		AverageRating:     rating.Average,
	}

	s.cache.SetJSON(ctx, statsCacheKey(agencyUserID), stats, statsCacheTTL)

	return stats, nil
}
