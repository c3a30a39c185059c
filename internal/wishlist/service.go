package wishlist

import (
	"context"

	"github.com/google/uuid"
	"github.com/pariney/saree-storefront/pkg/db"
	"github.com/pariney/saree-storefront/pkg/db/models"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
)

const uniqueEntryConstraint = "wishlist_items_user_product_key"

type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	Toggle(ctx context.Context, userID uuid.UUID, productID int64) (ToggleResult, error)
}

type wishlistRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	Find(ctx context.Context, userID uuid.UUID, productID int64) (*models.WishlistItem, error)
	Remove(ctx context.Context, userID uuid.UUID, productID int64) (bool, error)
	Create(ctx context.Context, item *models.WishlistItem) error
}

type service struct {
	repo wishlistRepository
}

func NewService(repo wishlistRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Store(err, "list wishlist")
	}
	return items, nil
}

// Toggle removes the entry when present, otherwise inserts it.
func (s *service) Toggle(ctx context.Context, userID uuid.UUID, productID int64) (ToggleResult, error) {
	if productID <= 0 {
		return ToggleResult{}, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}

	removed, err := s.repo.Remove(ctx, userID, productID)
	if err != nil {
		return ToggleResult{}, pkgerrors.Store(err, "delete wishlist entry")
	}
	if removed {
		return ToggleResult{Added: false}, nil
	}

	item := &models.WishlistItem{UserID: userID, ProductID: productID}
	// a concurrent toggle may have inserted first; the entry exists either way
	if err := s.repo.Create(ctx, item); err != nil && !db.IsUniqueViolation(err, uniqueEntryConstraint) {
		return ToggleResult{}, pkgerrors.Store(err, "insert wishlist entry")
	}
	stored, err := s.repo.Find(ctx, userID, productID)
	if err != nil {
		return ToggleResult{}, pkgerrors.Store(err, "load wishlist entry")
	}
	return ToggleResult{Added: true, Item: stored}, nil
}
