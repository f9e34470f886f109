package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourhub/internal/model"
)

// RatingBucket is one row of the per-star GROUP BY over a tour's reviews.
type RatingBucket struct {
	Rating int   `gorm:"column:rating"`
	Count  int64 `gorm:"column:count"`
}

// RatingSummary carries the count/average pair for agency-wide ratings.
type RatingSummary struct {
	Count   int64   `gorm:"column:count"`
	Average float64 `gorm:"column:average"`
}

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id uuid.UUID, touristUserID uuid.UUID) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	FindByTouristAndTour(ctx context.Context, touristUserID, tourID uuid.UUID) (*model.Review, error)
	ListByTour(ctx context.Context, tourID uuid.UUID) ([]model.Review, error)
	ListByTourist(ctx context.Context, touristUserID uuid.UUID) ([]model.Review, error)
	ListRecentByAgency(ctx context.Context, agencyUserID uuid.UUID, limit int) ([]model.Review, error)
	TourRatingBuckets(ctx context.Context, tourID uuid.UUID) ([]RatingBucket, error)
	AgencyRating(ctx context.Context, agencyUserID uuid.UUID) (*RatingSummary, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts the review optimistically. When the (tour, tourist) unique
// index rejects the row, the error surfaces as gorm.ErrDuplicatedKey for the
// service layer to translate.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete removes the review with the authorship constraint in the WHERE
// clause. Zero rows means missing or not owned by the caller.
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID, touristUserID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND tourist_user_id = ?", id, touristUserID).
		Delete(&model.Review{})
	return res.RowsAffected, res.Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).Preload("TouristUser").
		Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByTouristAndTour(ctx context.Context, touristUserID, tourID uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Where("tourist_user_id = ? AND tour_id = ?", touristUserID, tourID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByTour(ctx context.Context, tourID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Preload("TouristUser").
		Where("tour_id = ?", tourID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListByTourist(ctx context.Context, touristUserID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Preload("Tour").
		Where("tourist_user_id = ?", touristUserID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListRecentByAgency(ctx context.Context, agencyUserID uuid.UUID, limit int) ([]model.Review, error) {
	q := r.db.WithContext(ctx).
		Preload("Tour").
		Preload("TouristUser").
		Joins("JOIN tours ON tours.id = reviews.tour_id").
		Where("tours.agency_user_id = ?", agencyUserID).
		Order("reviews.created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var reviews []model.Review
	if err := q.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// TourRatingBuckets returns the review count per star value for one tour.
// Star values with no reviews are absent; the service fills the gaps.
func (r *reviewRepository) TourRatingBuckets(ctx context.Context, tourID uuid.UUID) ([]RatingBucket, error) {
	var buckets []RatingBucket
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("tour_id = ?", tourID).
		Group("rating").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	return buckets, nil
}

// AgencyRating aggregates over all reviews of the agency's tours, joined
// through the tour table.
func (r *reviewRepository) AgencyRating(ctx context.Context, agencyUserID uuid.UUID) (*RatingSummary, error) {
	var summary RatingSummary
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Joins("JOIN tours ON tours.id = reviews.tour_id").
		Where("tours.agency_user_id = ?", agencyUserID).
		Select("COUNT(*) AS count, COALESCE(AVG(reviews.rating), 0) AS average").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
