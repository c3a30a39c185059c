package heroslides

import (
	"context"
	"errors"
	"strings"

	"github.com/pariney/saree-storefront/pkg/db/models"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"gorm.io/gorm"
)

type Service interface {
	List(ctx context.Context) ([]models.HeroSlide, error)
	Create(ctx context.Context, input CreateSlideInput) (*models.HeroSlide, error)
	Update(ctx context.Context, input UpdateSlideInput) (*models.HeroSlide, error)
	Delete(ctx context.Context, id int64) error
}

type slideRepository interface {
	List(ctx context.Context) ([]models.HeroSlide, error)
	Create(ctx context.Context, slide *models.HeroSlide) error
	Update(ctx context.Context, id int64, changes map[string]any) (*models.HeroSlide, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo slideRepository
}

func NewService(repo slideRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hero slide repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.HeroSlide, error) {
	slides, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Store(err, "list hero slides")
	}
	return slides, nil
}

func (s *service) Create(ctx context.Context, input CreateSlideInput) (*models.HeroSlide, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	slide := &models.HeroSlide{
		Image:    input.Image,
		Tag:      input.Tag,
		Title:    title,
		Subtitle: input.Subtitle,
		Author:   input.Author,
		Time:     input.Time,
	}
	if err := s.repo.Create(ctx, slide); err != nil {
		return nil, pkgerrors.Store(err, "insert hero slide")
	}
	return slide, nil
}

func (s *service) Update(ctx context.Context, input UpdateSlideInput) (*models.HeroSlide, error) {
	if input.ID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Slide id is required")
	}
	slide, err := s.repo.Update(ctx, input.ID, input.changes())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Slide not found")
		}
		return nil, pkgerrors.Store(err, "update hero slide")
	}
	return slide, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Slide id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Store(err, "delete hero slide")
	}
	return nil
}
