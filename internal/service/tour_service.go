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

const tourCacheTTL = 5 * time.Minute

// CreateTourInput carries the fields of a new tour.
type CreateTourInput struct {
	Title        string
	Description  string
	Destination  string
	Category     string
	Duration     int
	MaxGroupSize int
	Price        decimal.Decimal
	ImageURL     string
	Itinerary    string
	Inclusions   string
	Exclusions   string
}

// UpdateTourInput carries the mutable fields of a tour. The owning agency id
// is immutable and deliberately absent.
type UpdateTourInput = CreateTourInput

// TourService handles the tour catalog.
type TourService interface {
	Create(ctx context.Context, agencyUserID uuid.UUID, in CreateTourInput) (*model.Tour, error)
	Update(ctx context.Context, tourID, agencyUserID uuid.UUID, in UpdateTourInput) (*model.Tour, error)
	Deactivate(ctx context.Context, tourID, agencyUserID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tour, error)
	List(ctx context.Context, filter repository.TourFilter) ([]model.Tour, error)
	ListByAgency(ctx context.Context, agencyUserID uuid.UUID) ([]model.Tour, error)
}

type tourService struct {
	repo  repository.TourRepository
	cache *cache.Client
}

// NewTourService creates a new tour service.
func NewTourService(repo repository.TourRepository, cache *cache.Client) TourService {
	return &tourService{repo: repo, cache: cache}
}

func tourCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("tour:%s", id)
}

func validateTourInput(in CreateTourInput) error {
	if in.Duration < 1 {
		return fmt.Errorf("%w: duration must be at least 1 day", errors.ErrInvalidInput)
	}
	if in.MaxGroupSize < 1 {
		return fmt.Errorf("%w: max group size must be at least 1", errors.ErrInvalidInput)
	}
	if !in.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", errors.ErrInvalidInput)
	}
	return nil
}

func (s *tourService) Create(ctx context.Context, agencyUserID uuid.UUID, in CreateTourInput) (*model.Tour, error) {
	if err := validateTourInput(in); err != nil {
		return nil, err
	}

	tour := &model.Tour{
		AgencyUserID: agencyUserID,
		Title:        in.Title,
		Description:  in.Description,
		Destination:  in.Destination,
		Category:     in.Category,
		Duration:     in.Duration,
		MaxGroupSize: in.MaxGroupSize,
		Price:        in.Price,
		ImageURL:     in.ImageURL,
		Itinerary:    in.Itinerary,
		Inclusions:   in.Inclusions,
		Exclusions:   in.Exclusions,
		Status:       model.TourStatusActive,
	}

	if err := s.repo.Create(ctx, tour); err != nil {
		return nil, fmt.Errorf("create tour: %w", err)
	}
	return tour, nil
}

// Update modifies an owned tour. A tour owned by another agency reads as not
// found.
func (s *tourService) Update(ctx context.Context, tourID, agencyUserID uuid.UUID, in UpdateTourInput) (*model.Tour, error) {
	if err := validateTourInput(in); err != nil {
		return nil, err
	}

	tour, err := s.repo.FindByID(ctx, tourID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTourNotFound
		}
		return nil, fmt.Errorf("load tour: %w", err)
	}
	if tour.AgencyUserID != agencyUserID {
		return nil, errors.ErrTourNotFound
	}

	tour.Title = in.Title
	tour.Description = in.Description
	tour.Destination = in.Destination
	tour.Category = in.Category
	tour.Duration = in.Duration
	tour.MaxGroupSize = in.MaxGroupSize
	tour.Price = in.Price
	tour.ImageURL = in.ImageURL
	tour.Itinerary = in.Itinerary
	tour.Inclusions = in.Inclusions
	tour.Exclusions = in.Exclusions

	if err := s.repo.Update(ctx, tour); err != nil {
		return nil, fmt.Errorf("update tour: %w", err)
	}

	_ = s.cache.Delete(ctx, tourCacheKey(tourID))

	return tour, nil
}

// Deactivate is the only deletion: the tour stops accepting bookings but all
// historical bookings and reviews stay referentially intact.
func (s *tourService) Deactivate(ctx context.Context, tourID, agencyUserID uuid.UUID) error {
	rows, err := s.repo.SetStatus(ctx, tourID, agencyUserID, model.TourStatusDeactivated)
	if err != nil {
		return fmt.Errorf("deactivate tour: %w", err)
	}
	if rows == 0 {
		return errors.ErrTourNotFound
	}

	_ = s.cache.Delete(ctx, tourCacheKey(tourID))

	return nil
}

// GetByID retrieves a tour with caching.
func (s *tourService) GetByID(ctx context.Context, id uuid.UUID) (*model.Tour, error) {
	var cached model.Tour
	if s.cache.GetJSON(ctx, tourCacheKey(id), &cached) {
		return &cached, nil
	}

	tour, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTourNotFound
		}
		return nil, fmt.Errorf("load tour: %w", err)
	}

	s.cache.SetJSON(ctx, tourCacheKey(id), tour, tourCacheTTL)

	return tour, nil
}

func (s *tourService) List(ctx context.Context, filter repository.TourFilter) ([]model.Tour, error) {
	return s.repo.ListActive(ctx, filter)
}

func (s *tourService) ListByAgency(ctx context.Context, agencyUserID uuid.UUID) ([]model.Tour, error) {
	return s.repo.ListByAgency(ctx, agencyUserID)
}
