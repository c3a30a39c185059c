package products

import (
	"context"
	"errors"
	"strings"

	"github.com/pariney/saree-storefront/pkg/db/models"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"gorm.io/gorm"
)

const notFoundMessage = "Product not found"

// Service exposes the public catalog reads and the admin mutations.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Update(ctx context.Context, input UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productRepository interface {
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id int64, changes map[string]any) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo productRepository
}

// NewService builds a product service with the required dependencies.
func NewService(repo productRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	products, err := s.repo.List(ctx, filter.normalized())
	if err != nil {
		return nil, pkgerrors.Store(err, "list products")
	}
	return products, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, classify(err, "load product")
	}
	return product, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	brand := strings.TrimSpace(input.Brand)
	if name == "" || brand == "" || input.Price <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, requiredFieldsMessage)
	}

	originalPrice := input.OriginalPrice
	if originalPrice == 0 {
		originalPrice = input.Price
	}

	product := &models.Product{
		Name:          name,
		Brand:         brand,
		Price:         input.Price,
		OriginalPrice: originalPrice,
		Discount:      input.Discount,
		Image:         input.Image,
		Rating:        ratingFromFloat(input.Rating),
		Reviews:       input.Reviews,
		Tag:           nullableTag(input.Tag),
		Sizes:         stringArray(input.Sizes),
		Colors:        stringArray(input.Colors),
		Category:      strings.TrimSpace(input.Category),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Store(err, "insert product")
	}
	return product, nil
}

func (s *service) Update(ctx context.Context, input UpdateProductInput) (*models.Product, error) {
	if input.ID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Product id is required")
	}
	if input.Price != nil || input.OriginalPrice != nil {
		current, err := s.repo.FindByID(ctx, input.ID)
		if err != nil {
			return nil, classify(err, "load product")
		}
		price, original := current.Price, current.OriginalPrice
		if input.Price != nil {
			price = *input.Price
		}
		if input.OriginalPrice != nil {
			original = *input.OriginalPrice
		}
		if price > original {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, originalPriceMessage)
		}
	}
	product, err := s.repo.Update(ctx, input.ID, input.changes())
	if err != nil {
		return nil, classify(err, "update product")
	}
	return product, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Product id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Store(err, "delete product")
	}
	return nil
}

func classify(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, notFoundMessage)
	}
	return pkgerrors.Store(err, op)
}
