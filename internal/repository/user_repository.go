package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourhub/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpsertAgencyProfile(ctx context.Context, profile *model.AgencyProfile) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// FindByID loads a user together with the agency profile when one exists.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("AgencyProfile").
		Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertAgencyProfile creates the profile on first write and updates the
// editable fields afterwards. One profile per user, enforced by the unique
// index on user_id.
func (r *userRepository) UpsertAgencyProfile(ctx context.Context, profile *model.AgencyProfile) error {
	var existing model.AgencyProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(profile).Error
	}
	if err != nil {
		return err
	}

	existing.AgencyName = profile.AgencyName
	existing.Description = profile.Description
	existing.Services = profile.Services
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	*profile = existing
	return nil
}
