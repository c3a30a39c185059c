package aggregator

import "slices"

// Storage keys, one JSON document each.
const (
	CartKey     = "pariney-cart"
	WishlistKey = "pariney-wishlist"
)

// Product is the catalog snapshot a cart line carries.
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Price         int64    `json:"price"`
	OriginalPrice int64    `json:"originalPrice"`
	Discount      int      `json:"discount"`
	Image         string   `json:"image"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Tag           string   `json:"tag,omitempty"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Category      string   `json:"category"`
}

// Line is one cart entry. It persists as the product fields plus quantity.
type Line struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal is price times quantity.
func (l Line) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// State is a read-only snapshot. Derived values are computed when the
// snapshot is taken.
type State struct {
	Lines      []Line
	Wishlist   []int64
	LineCount  int
	ItemCount  int
	TotalPrice int64
	Shipping   int64
	GrandTotal int64
}

func (s State) IsWishlisted(productID int64) bool {
	return slices.Contains(s.Wishlist, productID)
}

// Line returns the cart line for productID, if any.
func (s State) Line(productID int64) (Line, bool) {
	for _, line := range s.Lines {
		if line.ID == productID {
			return line, true
		}
	}
	return Line{}, false
}
