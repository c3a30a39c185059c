package aggregator

import "slices"

// Mutation is one state change accepted by Store.Dispatch.
type Mutation interface {
	apply(c *contents)
}

// AddToCart adds one unit of the product, merging into an existing line.
type AddToCart struct {
	Product Product
}

// RemoveFromCart drops the line. Absent lines are ignored.
type RemoveFromCart struct {
	ProductID int64
}

// SetQuantity overwrites a line's quantity. Zero or less removes the line;
// an absent line is left absent.
type SetQuantity struct {
	ProductID int64
	Quantity  int
}

// ToggleWishlist adds the id when absent and removes it when present.
type ToggleWishlist struct {
	ProductID int64
}

// ClearCart empties the cart. The wishlist is kept.
type ClearCart struct{}

type contents struct {
	lines    []Line
	wishlist []int64
}

func (c *contents) index(productID int64) int {
	return slices.IndexFunc(c.lines, func(l Line) bool { return l.ID == productID })
}

func (m AddToCart) apply(c *contents) {
	if i := c.index(m.Product.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, Line{Product: m.Product, Quantity: 1})
}

func (m RemoveFromCart) apply(c *contents) {
	c.lines = slices.DeleteFunc(c.lines, func(l Line) bool { return l.ID == m.ProductID })
}

func (m SetQuantity) apply(c *contents) {
	if m.Quantity <= 0 {
		RemoveFromCart{ProductID: m.ProductID}.apply(c)
		return
	}
	if i := c.index(m.ProductID); i >= 0 {
		c.lines[i].Quantity = m.Quantity
	}
}

func (m ToggleWishlist) apply(c *contents) {
	if i := slices.Index(c.wishlist, m.ProductID); i >= 0 {
		c.wishlist = slices.Delete(c.wishlist, i, i+1)
		return
	}
	c.wishlist = append(c.wishlist, m.ProductID)
}

func (ClearCart) apply(c *contents) {
	c.lines = nil
}
