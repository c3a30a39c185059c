package profiles

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pariney/saree-storefront/pkg/db/models"
	"github.com/pariney/saree-storefront/pkg/enums"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"gorm.io/gorm"
)

// Service reads profiles. No endpoint mutates another user's profile.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	// IsAdmin reports whether the profile exists and carries the admin role.
	IsAdmin(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]models.Profile, error)
}

type profileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
}

type service struct {
	repo profileRepository
}

func NewService(repo profileRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Profile not found")
		}
		return nil, pkgerrors.Store(err, "load profile")
	}
	return profile, nil
}

func (s *service) IsAdmin(ctx context.Context, id uuid.UUID) (bool, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Store(err, "load profile")
	}
	return profile.Role == enums.ProfileRoleAdmin, nil
}

func (s *service) List(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Store(err, "list profiles")
	}
	return profiles, nil
}
