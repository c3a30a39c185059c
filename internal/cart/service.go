package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pariney/saree-storefront/pkg/db"
	"github.com/pariney/saree-storefront/pkg/db/models"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"gorm.io/gorm"
)

const uniqueLineConstraint = "cart_items_user_product_key"

// Service owns the server-side cart of an authenticated user.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	// Add merges into an existing line or creates one. created reports which.
	Add(ctx context.Context, userID uuid.UUID, input AddItemInput) (item *models.CartItem, created bool, err error)
	// SetQuantity returns a nil item when the line was removed.
	SetQuantity(ctx context.Context, userID uuid.UUID, input SetQuantityInput) (*models.CartItem, error)
	Remove(ctx context.Context, userID uuid.UUID, productID int64) error
}

type cartRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Find(ctx context.Context, userID uuid.UUID, productID int64) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	Increment(ctx context.Context, userID uuid.UUID, productID int64, by int) (*models.CartItem, error)
	SetQuantity(ctx context.Context, userID uuid.UUID, productID int64, quantity int) (*models.CartItem, error)
	Remove(ctx context.Context, userID uuid.UUID, productID int64) error
}

type service struct {
	repo cartRepository
}

func NewService(repo cartRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Store(err, "list cart")
	}
	return items, nil
}

func (s *service) Add(ctx context.Context, userID uuid.UUID, input AddItemInput) (*models.CartItem, bool, error) {
	if input.ProductID <= 0 {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}
	quantity := input.quantity()
	if quantity < 1 {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	existing, err := s.repo.Find(ctx, userID, input.ProductID)
	switch {
	case err == nil:
		item, err := s.repo.Increment(ctx, userID, existing.ProductID, quantity)
		if err != nil {
			return nil, false, pkgerrors.Store(err, "increment cart line")
		}
		return item, false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, pkgerrors.Store(err, "load cart line")
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: input.ProductID,
		Quantity:  quantity,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		// a concurrent add won the insert; merge into its line instead
		if db.IsUniqueViolation(err, uniqueLineConstraint) {
			merged, incErr := s.repo.Increment(ctx, userID, input.ProductID, quantity)
			if incErr != nil {
				return nil, false, pkgerrors.Store(incErr, "increment cart line")
			}
			return merged, false, nil
		}
		return nil, false, pkgerrors.Store(err, "insert cart line")
	}
	created, err := s.repo.Find(ctx, userID, input.ProductID)
	if err != nil {
		return nil, false, pkgerrors.Store(err, "load cart line")
	}
	return created, true, nil
}

func (s *service) SetQuantity(ctx context.Context, userID uuid.UUID, input SetQuantityInput) (*models.CartItem, error) {
	if input.ProductID <= 0 || input.Quantity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id and quantity are required")
	}
	if *input.Quantity <= 0 {
		return nil, s.Remove(ctx, userID, input.ProductID)
	}
	item, err := s.repo.SetQuantity(ctx, userID, input.ProductID, *input.Quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Cart item not found")
		}
		return nil, pkgerrors.Store(err, "update cart line")
	}
	return item, nil
}

func (s *service) Remove(ctx context.Context, userID uuid.UUID, productID int64) error {
	if productID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}
	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return pkgerrors.Store(err, "delete cart line")
	}
	return nil
}
