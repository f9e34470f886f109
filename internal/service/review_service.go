package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourhub/internal/cache"
	"tourhub/internal/errors"
	"tourhub/internal/model"
	"tourhub/internal/repository"
)

const (
	tourRatingCacheTTL   = 5 * time.Minute
	agencyRatingCacheTTL = time.Minute
)

// TourRating is the per-tour rating aggregate: review count, arithmetic mean
// and the count per star value. All zeros when the tour has no reviews.
type TourRating struct {
	Count        int64         `json:"count"`
	Average      float64       `json:"average"`
	Distribution map[int]int64 `json:"distribution"`
}

// AgencyRating is the count/mean pair over all reviews of an agency's tours.
type AgencyRating struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}

// ReviewService handles reviews and rating aggregation.
type ReviewService interface {
	Create(ctx context.Context, touristUserID, tourID uuid.UUID, rating int, comment string) (*model.Review, error)
	Update(ctx context.Context, reviewID, touristUserID uuid.UUID, rating int, comment string) (*model.Review, error)
	Delete(ctx context.Context, reviewID, touristUserID uuid.UUID) error
	ListByTour(ctx context.Context, tourID uuid.UUID) ([]model.Review, error)
	ListByTourist(ctx context.Context, touristUserID uuid.UUID) ([]model.Review, error)
	ListRecentByAgency(ctx context.Context, agencyUserID uuid.UUID, limit int) ([]model.Review, error)
	TourRating(ctx context.Context, tourID uuid.UUID) (*TourRating, error)
	AgencyRating(ctx context.Context, agencyUserID uuid.UUID) (*AgencyRating, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	tourRepo   repository.TourRepository
	cache      *cache.Client
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, tourRepo repository.TourRepository, cache *cache.Client) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		tourRepo:   tourRepo,
		cache:      cache,
	}
}

func tourRatingCacheKey(tourID uuid.UUID) string {
	return fmt.Sprintf("tour_rating:%s", tourID)
}

func agencyRatingCacheKey(agencyUserID uuid.UUID) string {
	return fmt.Sprintf("agency_rating:%s", agencyUserID)
}

// Create persists a review for a tour the tourist has not reviewed yet. The
// existence pre-read gives a fast answer, but the composite unique index is
// the authoritative check: a concurrent duplicate that slips past the read is
// rejected by the insert and mapped to the same typed error.
func (s *reviewService) Create(ctx context.Context, touristUserID, tourID uuid.UUID, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.ErrInvalidRating
	}

	if _, err := s.tourRepo.FindByID(ctx, tourID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTourNotFound
		}
		return nil, fmt.Errorf("load tour: %w", err)
	}

	if _, err := s.reviewRepo.FindByTouristAndTour(ctx, touristUserID, tourID); err == nil {
		return nil, errors.ErrDuplicateReview
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check existing review: %w", err)
	}

	review := &model.Review{
		TourID:        tourID,
		TouristUserID: touristUserID,
		Rating:        rating,
		Comment:       comment,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrDuplicateReview
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	_ = s.cache.Delete(ctx, tourRatingCacheKey(tourID))

	return s.reviewRepo.FindByID(ctx, review.ID)
}

// Update modifies a review. Author-only: a review that exists but belongs to
// someone else reads as not found.
func (s *reviewService) Update(ctx context.Context, reviewID, touristUserID uuid.UUID, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.ErrInvalidRating
	}

	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("load review: %w", err)
	}
	if review.TouristUserID != touristUserID {
		return nil, errors.ErrReviewNotFound
	}

	review.Rating = rating
	review.Comment = comment
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	_ = s.cache.Delete(ctx, tourRatingCacheKey(review.TourID))

	return s.reviewRepo.FindByID(ctx, reviewID)
}

// Delete removes a review, author-only.
func (s *reviewService) Delete(ctx context.Context, reviewID, touristUserID uuid.UUID) error {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrReviewNotFound
		}
		return fmt.Errorf("load review: %w", err)
	}
	if review.TouristUserID != touristUserID {
		return errors.ErrReviewNotFound
	}

	rows, err := s.reviewRepo.Delete(ctx, reviewID, touristUserID)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if rows == 0 {
		return errors.ErrReviewNotFound
	}

	_ = s.cache.Delete(ctx, tourRatingCacheKey(review.TourID))

	return nil
}

func (s *reviewService) ListByTour(ctx context.Context, tourID uuid.UUID) ([]model.Review, error) {
	return s.reviewRepo.ListByTour(ctx, tourID)
}

func (s *reviewService) ListByTourist(ctx context.Context, touristUserID uuid.UUID) ([]model.Review, error) {
	return s.reviewRepo.ListByTourist(ctx, touristUserID)
}

func (s *reviewService) ListRecentByAgency(ctx context.Context, agencyUserID uuid.UUID, limit int) ([]model.Review, error) {
	return s.reviewRepo.ListRecentByAgency(ctx, agencyUserID, limit)
}

// TourRating builds the rating aggregate from the per-star buckets. Buckets
// for star values with no reviews come back filled with zero.
func (s *reviewService) TourRating(ctx context.Context, tourID uuid.UUID) (*TourRating, error) {
	var cached TourRating
	if s.cache.GetJSON(ctx, tourRatingCacheKey(tourID), &cached) {
		return &cached, nil
	}

	buckets, err := s.reviewRepo.TourRatingBuckets(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("tour rating buckets: %w", err)
	}

	rating := &TourRating{
		Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	var sum int64
	for _, b := range buckets {
		if b.Rating < 1 || b.Rating > 5 {
			continue
		}
		rating.Distribution[b.Rating] = b.Count
		rating.Count += b.Count
		sum += int64(b.Rating) * b.Count
	}
	if rating.Count > 0 {
		rating.Average = float64(sum) / float64(rating.Count)
	}

	s.cache.SetJSON(ctx, tourRatingCacheKey(tourID), rating, tourRatingCacheTTL)

	return rating, nil
}

// AgencyRating aggregates over all reviews of the agency's tours.
func (s *reviewService) AgencyRating(ctx context.Context, agencyUserID uuid.UUID) (*AgencyRating, error) {
	var cached AgencyRating
	if s.cache.GetJSON(ctx, agencyRatingCacheKey(agencyUserID), &cached) {
		return &cached, nil
	}

	summary, err := s.reviewRepo.AgencyRating(ctx, agencyUserID)
	if err != nil {
		return nil, fmt.Errorf("agency rating: %w", err)
	}

	rating := &AgencyRating{
		Count:   summary.Count,
		Average: summary.Average,
	}

	s.cache.SetJSON(ctx, agencyRatingCacheKey(agencyUserID), rating, agencyRatingCacheTTL)

	return rating, nil
}
