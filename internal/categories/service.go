package categories

import (
	"context"
	"errors"
	"strings"

	"github.com/pariney/saree-storefront/pkg/db/models"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"gorm.io/gorm"
)

type Service interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	Update(ctx context.Context, input UpdateCategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id string, changes map[string]any) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo categoryRepository
}

func NewService(repo categoryRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Store(err, "list categories")
	}
	return categories, nil
}

func (s *service) Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	id := strings.TrimSpace(input.ID)
	name := strings.TrimSpace(input.Name)
	if id == "" || name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "id and name are required")
	}
	category := &models.Category{
		ID:    id,
		Name:  name,
		Image: input.Image,
		Count: input.Count,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, pkgerrors.Store(err, "insert category")
	}
	return category, nil
}

func (s *service) Update(ctx context.Context, input UpdateCategoryInput) (*models.Category, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Category id is required")
	}
	category, err := s.repo.Update(ctx, id, input.changes())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Category not found")
		}
		return nil, pkgerrors.Store(err, "update category")
	}
	return category, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "Category id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Store(err, "delete category")
	}
	return nil
}
