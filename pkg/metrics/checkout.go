package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	CheckoutCreated   = "created"
	CheckoutEmptyCart = "empty_cart"
	CheckoutFailed    = "failed"
)

// CheckoutMetrics counts order creation outcomes. A cart that could not be
// cleared after its order was stored is counted separately since the caller
// still receives 201.
type CheckoutMetrics struct {
	orders      *prometheus.CounterVec
	clearFailed prometheus.Counter
}

// NewCheckoutMetrics registers the checkout counters on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_orders_total",
		Help: "Order creation attempts by result.",
	}, []string{"result"})
	clearFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_cart_clear_failures_total",
		Help: "Orders created whose cart could not be cleared afterwards.",
	})
	reg.MustRegister(orders, clearFailed)
	return &CheckoutMetrics{orders: orders, clearFailed: clearFailed}
}

// IncResult increments the outcome counter.
func (c *CheckoutMetrics) IncResult(result string) {
	if c == nil || c.orders == nil {
		return
	}
	c.orders.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncCartClearFailure records a cart left behind after checkout.
func (c *CheckoutMetrics) IncCartClearFailure() {
	if c == nil || c.clearFailed == nil {
		return
	}
	c.clearFailed.Inc()
}
