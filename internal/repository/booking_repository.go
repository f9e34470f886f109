package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tourhub/internal/model"
)

// BookingAggregate holds the per-agency booking counters computed in SQL.
type BookingAggregate struct {
	TotalBookings     int64           `gorm:"column:total_bookings"`
	TotalRevenue      decimal.Decimal `gorm:"column:total_revenue"`
	ConfirmedBookings int64           `gorm:"column:confirmed_bookings"`
	PendingBookings   int64           `gorm:"column:pending_bookings"`
}

// BookingRepository defines booking persistence operations.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	ListByTourist(ctx context.Context, touristUserID uuid.UUID) ([]model.Booking, error)
	ListByAgency(ctx context.Context, agencyUserID uuid.UUID, limit int) ([]model.Booking, error)
	UpdateStatusByAgency(ctx context.Context, id uuid.UUID, agencyUserID uuid.UUID, status model.BookingStatus) (int64, error)
	CancelByTourist(ctx context.Context, id uuid.UUID, touristUserID uuid.UUID) (int64, error)
	AggregateByAgency(ctx context.Context, agencyUserID uuid.UUID) (*BookingAggregate, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// FindByID loads a booking with its tour (incl. the owning agency and its
// profile) and the tourist, the shape booking responses are built from.
func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).
		Preload("Tour").
		Preload("Tour.AgencyUser").
		Preload("Tour.AgencyUser.AgencyProfile").
		Preload("TouristUser").
		Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListByTourist(ctx context.Context, touristUserID uuid.UUID) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.WithContext(ctx).
		Preload("Tour").
		Preload("Tour.AgencyUser").
		Preload("Tour.AgencyUser.AgencyProfile").
		Where("tourist_user_id = ?", touristUserID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByAgency joins through the tour's owning agency id; there is no
// denormalized agency column on bookings. A limit of zero returns everything.
func (r *bookingRepository) ListByAgency(ctx context.Context, agencyUserID uuid.UUID, limit int) ([]model.Booking, error) {
	q := r.db.WithContext(ctx).
		Preload("Tour").
		Preload("TouristUser").
		Joins("JOIN tours ON tours.id = bookings.tour_id").
		Where("tours.agency_user_id = ?", agencyUserID).
		Order("bookings.created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var bookings []model.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatusByAgency performs the status write as a single conditional
// UPDATE with the ownership constraint in the WHERE clause, so concurrent
// writers serialize at the database. Zero rows means the booking is missing
// or owned by another agency.
func (r *bookingRepository) UpdateStatusByAgency(ctx context.Context, id uuid.UUID, agencyUserID uuid.UUID, status model.BookingStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ? AND tour_id IN (?)", id,
			r.db.Model(&model.Tour{}).Select("id").Where("agency_user_id = ?", agencyUserID)).
		Update("status", status)
	return res.RowsAffected, res.Error
}

// CancelByTourist cancels the tourist's own booking while it is still pending
// or confirmed. The state guard sits in the WHERE clause, so a concurrent
// completion by the agency wins over a late cancel.
func (r *bookingRepository) CancelByTourist(ctx context.Context, id uuid.UUID, touristUserID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ? AND tourist_user_id = ? AND status IN ?", id, touristUserID,
			[]model.BookingStatus{model.BookingStatusPending, model.BookingStatusConfirmed}).
		Update("status", model.BookingStatusCancelled)
	return res.RowsAffected, res.Error
}

// AggregateByAgency computes the booking counters for the agency dashboard in
// one query. An agency with no bookings scans into the zero aggregate.
func (r *bookingRepository) AggregateByAgency(ctx context.Context, agencyUserID uuid.UUID) (*BookingAggregate, error) {
	var agg BookingAggregate
	err := r.db.WithContext(ctx).Model(&model.Booking{}).
		Joins("JOIN tours ON tours.id = bookings.tour_id").
		Where("tours.agency_user_id = ?", agencyUserID).
		Select("COUNT(*) AS total_bookings, " +
			"COALESCE(SUM(bookings.total_amount), 0) AS total_revenue, " +
			"COALESCE(SUM(CASE WHEN bookings.status = 'confirmed' THEN 1 ELSE 0 END), 0) AS confirmed_bookings, " +
			"COALESCE(SUM(CASE WHEN bookings.status = 'pending' THEN 1 ELSE 0 END), 0) AS pending_bookings").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}
