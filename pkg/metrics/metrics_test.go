package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("GET", "/api/products/{id}", 200, 250*time.Millisecond)
	m.Observe("GET", "/api/products/{id}", 200, 10*time.Millisecond)
	m.Observe("POST", "", 500, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "/api/products/{id}"); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 2 {
		t.Fatalf("expected 2 requests, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "unknown"); err != nil {
		t.Fatalf("fetch unknown route: %v", err)
	} else if got != 1 {
		t.Fatalf("expected 1 unknown request, got %f", got)
	}
	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "route", "/api/products/{id}"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0.25 {
		t.Fatalf("expected duration sum > 0.25, got %f", got)
	}
}

func TestCheckoutMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)
	m.IncResult(CheckoutCreated)
	m.IncResult(CheckoutCreated)
	m.IncResult(CheckoutEmptyCart)
	m.IncCartClearFailure()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "checkout_orders_total", "result", CheckoutCreated); err != nil || got != 2 {
		t.Fatalf("expected created=2, got %f err=%v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "checkout_orders_total", "result", CheckoutEmptyCart); err != nil || got != 1 {
		t.Fatalf("expected empty_cart=1, got %f err=%v", got, err)
	}
	mf := findMetricFamily(mfs, "checkout_cart_clear_failures_total")
	if mf == nil || mf.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatalf("expected one cart clear failure")
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var h *HTTPMetrics
	h.Observe("GET", "/", 200, time.Millisecond)
	var c *CheckoutMetrics
	c.IncResult(CheckoutFailed)
	c.IncCartClearFailure()

	NewCheckoutMetrics(nil).IncCartClearFailure()
	NewHTTPMetrics(nil).Observe("GET", "/", 200, 0)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
