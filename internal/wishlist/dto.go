package wishlist

import "github.com/pariney/saree-storefront/pkg/db/models"

type ToggleInput struct {
	ProductID int64 `json:"product_id" validate:"required"`
}

func (ToggleInput) ValidationMessage(string, string) string {
	return "product_id is required"
}

// ToggleResult reports which way a toggle went. Item is nil on removal.
type ToggleResult struct {
	Added bool
	Item  *models.WishlistItem
}
