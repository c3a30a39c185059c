package controllers

import (
	"math"
	"net/http"

	"github.com/pariney/saree-storefront/api/responses"
	"github.com/pariney/saree-storefront/api/validators"
	"github.com/pariney/saree-storefront/pkg/logger"
	"github.com/pariney/saree-storefront/pkg/pricing"
)

// ShippingQuote applies the flat shipping rule to ?subtotal=.
func ShippingQuote(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subtotal, err := validators.ParseQueryInt(r, "subtotal", 0, 0, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteKeyed(w, http.StatusOK, "quote", pricing.QuoteFor(int64(subtotal)))
	}
}
