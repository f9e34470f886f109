package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tourhub/internal/model"
)

// TourFilter narrows catalog listings. Zero values mean "no constraint".
type TourFilter struct {
	Destination string
	Category    string
	MinPrice    decimal.Decimal
	MaxPrice    decimal.Decimal
	MinDuration int
	MaxDuration int
	Search      string
	Limit       int
	Offset      int
}

// TourRepository defines tour persistence operations.
type TourRepository interface {
	Create(ctx context.Context, tour *model.Tour) error
	Update(ctx context.Context, tour *model.Tour) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tour, error)
	ListActive(ctx context.Context, filter TourFilter) ([]model.Tour, error)
	ListByAgency(ctx context.Context, agencyUserID uuid.UUID) ([]model.Tour, error)
	CountActiveByAgency(ctx context.Context, agencyUserID uuid.UUID) (int64, error)
	SetStatus(ctx context.Context, id uuid.UUID, agencyUserID uuid.UUID, status model.TourStatus) (int64, error)
}

type tourRepository struct {
	db *gorm.DB
}

// NewTourRepository creates a new tour repository.
func NewTourRepository(db *gorm.DB) TourRepository {
	return &tourRepository{db: db}
}

func (r *tourRepository) Create(ctx context.Context, tour *model.Tour) error {
	return r.db.WithContext(ctx).Create(tour).Error
}

func (r *tourRepository) Update(ctx context.Context, tour *model.Tour) error {
	return r.db.WithContext(ctx).Save(tour).Error
}

// FindByID loads a tour with its owning agency and that agency's profile.
func (r *tourRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tour, error) {
	var tour model.Tour
	if err := r.db.WithContext(ctx).
		Preload("AgencyUser").Preload("AgencyUser.AgencyProfile").
		Where("id = ?", id).First(&tour).Error; err != nil {
		return nil, err
	}
	return &tour, nil
}

// ListActive returns active tours matching the filter, newest first.
func (r *tourRepository) ListActive(ctx context.Context, filter TourFilter) ([]model.Tour, error) {
	q := r.db.WithContext(ctx).Model(&model.Tour{}).
		Where("status = ?", model.TourStatusActive)

	if filter.Destination != "" {
		q = q.Where("destination LIKE ?", "%"+filter.Destination+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.MinPrice.IsPositive() {
		q = q.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice.IsPositive() {
		q = q.Where("price <= ?", filter.MaxPrice)
	}
	if filter.MinDuration > 0 {
		q = q.Where("duration >= ?", filter.MinDuration)
	}
	if filter.MaxDuration > 0 {
		q = q.Where("duration <= ?", filter.MaxDuration)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var tours []model.Tour
	if err := q.Order("created_at DESC").Find(&tours).Error; err != nil {
		return nil, err
	}
	return tours, nil
}

// ListByAgency returns all tours owned by the agency, deactivated ones included.
func (r *tourRepository) ListByAgency(ctx context.Context, agencyUserID uuid.UUID) ([]model.Tour, error) {
	var tours []model.Tour
	if err := r.db.WithContext(ctx).
		Where("agency_user_id = ?", agencyUserID).
		Order("created_at DESC").
		Find(&tours).Error; err != nil {
		return nil, err
	}
	return tours, nil
}

func (r *tourRepository) CountActiveByAgency(ctx context.Context, agencyUserID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Tour{}).
		Where("agency_user_id = ? AND status = ?", agencyUserID, model.TourStatusActive).
		Count(&count).Error
	return count, err
}

// SetStatus flips the tour lifecycle state with the ownership constraint in
// the WHERE clause. Returns the number of rows touched: zero means the tour
// does not exist or belongs to a different agency.
func (r *tourRepository) SetStatus(ctx context.Context, id uuid.UUID, agencyUserID uuid.UUID, status model.TourStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Tour{}).
		Where("id = ? AND agency_user_id = ?", id, agencyUserID).
		Update("status", status)
	return res.RowsAffected, res.Error
}
