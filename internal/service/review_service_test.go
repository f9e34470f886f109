package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "tourhub/internal/errors"
	"tourhub/internal/model"
	"tourhub/internal/repository"
)

func TestReviewService_Create(t *testing.T) {
	touristID := uuid.New()
	tourID := uuid.New()
	tour := &model.Tour{ID: tourID, Status: model.TourStatusActive}

	tests := []struct {
		name          string
		rating        int
		setupMock     func(*MockReviewRepository, *MockTourRepository)
		expectedError error
	}{
		{
			name:   "successful review",
			rating: 5,
			setupMock: func(mReview *MockReviewRepository, mTour *MockTourRepository) {
				mTour.On("FindByID", mock.Anything, tourID).Return(tour, nil)
				mReview.On("FindByTouristAndTour", mock.Anything, touristID, tourID).
					Return(nil, gorm.ErrRecordNotFound)
				mReview.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).
					Run(func(args mock.Arguments) {
						r := args.Get(1).(*model.Review)
						r.ID = uuid.New()
					}).Return(nil)
				mReview.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
					Return(&model.Review{Rating: 5}, nil)
			},
		},
		{
			name:          "rating below range",
			rating:        0,
			setupMock:     func(*MockReviewRepository, *MockTourRepository) {},
			expectedError: apperrors.ErrInvalidRating,
		},
		{
			name:          "rating above range",
			rating:        6,
			setupMock:     func(*MockReviewRepository, *MockTourRepository) {},
			expectedError: apperrors.ErrInvalidRating,
		},
		{
			name:   "tour not found",
			rating: 4,
			setupMock: func(mReview *MockReviewRepository, mTour *MockTourRepository) {
				mTour.On("FindByID", mock.Anything, tourID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrTourNotFound,
		},
		{
			name:   "existing review detected by the pre-read",
			rating: 4,
			setupMock: func(mReview *MockReviewRepository, mTour *MockTourRepository) {
				mTour.On("FindByID", mock.Anything, tourID).Return(tour, nil)
				mReview.On("FindByTouristAndTour", mock.Anything, touristID, tourID).
					Return(&model.Review{ID: uuid.New()}, nil)
			},
			expectedError: apperrors.ErrDuplicateReview,
		},
		{
			name:   "concurrent duplicate caught by the unique index",
			rating: 4,
			setupMock: func(mReview *MockReviewRepository, mTour *MockTourRepository) {
				mTour.On("FindByID", mock.Anything, tourID).Return(tour, nil)
				mReview.On("FindByTouristAndTour", mock.Anything, touristID, tourID).
					Return(nil, gorm.ErrRecordNotFound)
				mReview.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).
					Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrDuplicateReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReviewRepo := new(MockReviewRepository)
			mockTourRepo := new(MockTourRepository)
			tt.setupMock(mockReviewRepo, mockTourRepo)

			svc := NewReviewService(mockReviewRepo, mockTourRepo, nil)
			review, err := svc.Create(context.Background(), touristID, tourID, tt.rating, "great trip")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, review)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, review)
			}

			mockReviewRepo.AssertExpectations(t)
			mockTourRepo.AssertExpectations(t)
		})
	}
}

func TestReviewService_Update(t *testing.T) {
	touristID := uuid.New()
	otherTouristID := uuid.New()
	reviewID := uuid.New()
	tourID := uuid.New()

	existing := func() *model.Review {
		return &model.Review{
			ID:            reviewID,
			TourID:        tourID,
			TouristUserID: touristID,
			Rating:        3,
			Comment:       "okay",
		}
	}

	t.Run("author updates own review", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockReviewRepo.On("FindByID", mock.Anything, reviewID).Return(existing(), nil).Once()
		mockReviewRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
		updated := existing()
		updated.Rating = 5
		updated.Comment = "changed my mind"
		mockReviewRepo.On("FindByID", mock.Anything, reviewID).Return(updated, nil).Once()

		svc := NewReviewService(mockReviewRepo, new(MockTourRepository), nil)
		review, err := svc.Update(context.Background(), reviewID, touristID, 5, "changed my mind")

		assert.NoError(t, err)
		assert.Equal(t, 5, review.Rating)
		mockReviewRepo.AssertExpectations(t)
	})

	t.Run("someone else's review reads as not found", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockReviewRepo.On("FindByID", mock.Anything, reviewID).Return(existing(), nil)

		svc := NewReviewService(mockReviewRepo, new(MockTourRepository), nil)
		review, err := svc.Update(context.Background(), reviewID, otherTouristID, 5, "mine now")

		assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
		assert.Nil(t, review)
	})

	t.Run("rating out of range", func(t *testing.T) {
		svc := NewReviewService(new(MockReviewRepository), new(MockTourRepository), nil)
		_, err := svc.Update(context.Background(), reviewID, touristID, 0, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidRating)
	})
}

func TestReviewService_Delete(t *testing.T) {
	touristID := uuid.New()
	reviewID := uuid.New()
	tourID := uuid.New()

	existing := &model.Review{ID: reviewID, TourID: tourID, TouristUserID: touristID, Rating: 4}

	t.Run("author deletes own review", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockReviewRepo.On("FindByID", mock.Anything, reviewID).Return(existing, nil)
		mockReviewRepo.On("Delete", mock.Anything, reviewID, touristID).Return(int64(1), nil)

		svc := NewReviewService(mockReviewRepo, new(MockTourRepository), nil)
		err := svc.Delete(context.Background(), reviewID, touristID)

		assert.NoError(t, err)
		mockReviewRepo.AssertExpectations(t)
	})

	t.Run("conditional delete lost the row", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockReviewRepo.On("FindByID", mock.Anything, reviewID).Return(existing, nil)
		mockReviewRepo.On("Delete", mock.Anything, reviewID, touristID).Return(int64(0), nil)

		svc := NewReviewService(mockReviewRepo, new(MockTourRepository), nil)
		err := svc.Delete(context.Background(), reviewID, touristID)

		assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
	})
}

func TestReviewService_TourRating(t *testing.T) {
	tourID := uuid.New()

	t.Run("aggregates buckets into count, mean and distribution", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockReviewRepo.On("TourRatingBuckets", mock.Anything, tourID).Return([]repository.RatingBucket{
			{Rating: 5, Count: 2},
			{Rating: 4, Count: 1},
		}, nil)

		svc := NewReviewService(mockReviewRepo, new(MockTourRepository), nil)
		rating, err := svc.TourRating(context.Background(), tourID)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), rating.Count)
		assert.InDelta(t, 4.6667, rating.Average, 0.001)
		assert.Equal(t, map[int]int64{1: 0, 2: 0, 3: 0, 4: 1, 5: 2}, rating.Distribution)
	})

	t.Run("tour with no reviews gets zeros, not an error", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockReviewRepo.On("TourRatingBuckets", mock.Anything, tourID).Return([]repository.RatingBucket{}, nil)

		svc := NewReviewService(mockReviewRepo, new(MockTourRepository), nil)
		rating, err := svc.TourRating(context.Background(), tourID)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), rating.Count)
		assert.Equal(t, float64(0), rating.Average)
		assert.Equal(t, map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, rating.Distribution)
	})
}

func TestReviewService_AgencyRating(t *testing.T) {
	agencyID := uuid.New()

	mockReviewRepo := new(MockReviewRepository)
	mockReviewRepo.On("AgencyRating", mock.Anything, agencyID).Return(&repository.RatingSummary{
		Count:   14,
		Average: 4.35,
	}, nil)

	svc := NewReviewService(mockReviewRepo, new(MockTourRepository), nil)
	rating, err := svc.AgencyRating(context.Background(), agencyID)

	assert.NoError(t, err)
	assert.Equal(t, int64(14), rating.Count)
	assert.Equal(t, 4.35, rating.Average)
}
