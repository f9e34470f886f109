package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tourhub/internal/model"
	"tourhub/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpsertAgencyProfile(ctx context.Context, profile *model.AgencyProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockTourRepository is a mock implementation of TourRepository.
type MockTourRepository struct {
	mock.Mock
}

func (m *MockTourRepository) Create(ctx context.Context, tour *model.Tour) error {
	args := m.Called(ctx, tour)
	return args.Error(0)
}

func (m *MockTourRepository) Update(ctx context.Context, tour *model.Tour) error {
	args := m.Called(ctx, tour)
	return args.Error(0)
}

func (m *MockTourRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tour, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tour), args.Error(1)
}

func (m *MockTourRepository) ListActive(ctx context.Context, filter repository.TourFilter) ([]model.Tour, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tour), args.Error(1)
}

func (m *MockTourRepository) ListByAgency(ctx context.Context, agencyUserID uuid.UUID) ([]model.Tour, error) {
	args := m.Called(ctx, agencyUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tour), args.Error(1)
}

func (m *MockTourRepository) CountActiveByAgency(ctx context.Context, agencyUserID uuid.UUID) (int64, error) {
	args := m.Called(ctx, agencyUserID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTourRepository) SetStatus(ctx context.Context, id uuid.UUID, agencyUserID uuid.UUID, status model.TourStatus) (int64, error) {
	args := m.Called(ctx, id, agencyUserID, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByTourist(ctx context.Context, touristUserID uuid.UUID) ([]model.Booking, error) {
	args := m.Called(ctx, touristUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByAgency(ctx context.Context, agencyUserID uuid.UUID, limit int) ([]model.Booking, error) {
	args := m.Called(ctx, agencyUserID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatusByAgency(ctx context.Context, id uuid.UUID, agencyUserID uuid.UUID, status model.BookingStatus) (int64, error) {
	args := m.Called(ctx, id, agencyUserID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) CancelByTourist(ctx context.Context, id uuid.UUID, touristUserID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, touristUserID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) AggregateByAgency(ctx context.Context, agencyUserID uuid.UUID) (*repository.BookingAggregate, error) {
	args := m.Called(ctx, agencyUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.BookingAggregate), args.Error(1)
}

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID, touristUserID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, touristUserID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByTouristAndTour(ctx context.Context, touristUserID, tourID uuid.UUID) (*model.Review, error) {
	args := m.Called(ctx, touristUserID, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByTour(ctx context.Context, tourID uuid.UUID) ([]model.Review, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByTourist(ctx context.Context, touristUserID uuid.UUID) ([]model.Review, error) {
	args := m.Called(ctx, touristUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) ListRecentByAgency(ctx context.Context, agencyUserID uuid.UUID, limit int) ([]model.Review, error) {
	args := m.Called(ctx, agencyUserID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) TourRatingBuckets(ctx context.Context, tourID uuid.UUID) ([]repository.RatingBucket, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.RatingBucket), args.Error(1)
}

func (m *MockReviewRepository) AgencyRating(ctx context.Context, agencyUserID uuid.UUID) (*repository.RatingSummary, error) {
	args := m.Called(ctx, agencyUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.RatingSummary), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID string, role model.Role, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, model.Role, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.Get(1).(model.Role), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// stubRatingSource satisfies AgencyRatingSource with a fixed answer.
type stubRatingSource struct {
	rating *AgencyRating
	err    error
}

func (s stubRatingSource) AgencyRating(ctx context.Context, agencyUserID uuid.UUID) (*AgencyRating, error) {
	return s.rating, s.err
}
