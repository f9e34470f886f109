package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourhub/internal/errors"
	"tourhub/internal/model"
	"tourhub/internal/repository"
)

// UpdateProfileInput carries the mutable profile fields. The agency fields
// are ignored for tourists.
type UpdateProfileInput struct {
	Name        string
	Phone       string
	AgencyName  string
	Description string
	Services    string
}

// UserService exposes profile operations.
type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// UpdateProfile mutates the account fields and, for agencies, upserts the
// agency profile. The profile is created lazily on the first update that
// supplies an agency name.
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	user.Phone = in.Phone

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if user.Role == model.RoleAgency && in.AgencyName != "" {
		profile := &model.AgencyProfile{
			UserID:      user.ID,
			AgencyName:  in.AgencyName,
			Description: in.Description,
			Services:    in.Services,
		}
		if err := s.repo.UpsertAgencyProfile(ctx, profile); err != nil {
			return nil, fmt.Errorf("upsert agency profile: %w", err)
		}
	}

	return s.repo.FindByID(ctx, userID)
}
