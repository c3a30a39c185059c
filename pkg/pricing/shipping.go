// Package pricing holds the flat shipping rule shared by the API and the
// shopper client.
package pricing

const (
	FreeShippingThreshold int64 = 1000
	FlatShippingFee       int64 = 500
)

// Quote is the shipping breakdown for a subtotal.
type Quote struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// Shipping is free strictly above the threshold.
func Shipping(subtotal int64) int64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

func QuoteFor(subtotal int64) Quote {
	shipping := Shipping(subtotal)
	return Quote{Subtotal: subtotal, Shipping: shipping, Total: subtotal + shipping}
}
