package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pariney/saree-storefront/internal/aggregator"
	"github.com/pariney/saree-storefront/pkg/config"
	"github.com/pariney/saree-storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu       sync.Mutex
	cart     map[int64]int
	calls    []string
	keys     []string
	products map[int64]map[string]any
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		cart: map[int64]int{},
		products: map[int64]map[string]any{
			1: {"id": 1, "name": "Banarasi Silk Saree", "price": 15999, "rating": 4.6, "sizes": []string{"Free Size"}},
			4: {"id": 4, "name": "Chanderi Silk Cotton Saree", "price": 8999, "rating": 4.4},
		},
	}
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) router() chi.Router {
	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, map[string]any{"session": map[string]any{"access_token": "tok"}})
	})
	r.Get("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		for id, p := range f.products {
			if chi.URLParam(r, "id") == itoa(id) {
				reply(w, http.StatusOK, map[string]any{"product": p})
				return
			}
		}
		reply(w, http.StatusNotFound, map[string]string{"error": "Product not found"})
	})
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer tok" {
					reply(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
					return
				}
				next.ServeHTTP(w, r)
			})
		})
		r.Get("/api/cart", func(w http.ResponseWriter, _ *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()
			items := []map[string]any{}
			for id, qty := range f.cart {
				items = append(items, map[string]any{"product_id": id, "quantity": qty})
			}
			reply(w, http.StatusOK, map[string]any{"cart": items})
		})
		cartWrite := func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				ProductID int64 `json:"product_id"`
				Quantity  *int  `json:"quantity"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			f.mu.Lock()
			defer f.mu.Unlock()
			f.calls = append(f.calls, r.Method+" "+itoa(body.ProductID))
			switch r.Method {
			case http.MethodPost:
				f.cart[body.ProductID] += *body.Quantity
			case http.MethodPut:
				f.cart[body.ProductID] = *body.Quantity
			case http.MethodDelete:
				delete(f.cart, body.ProductID)
			}
			reply(w, http.StatusOK, map[string]any{"message": "ok"})
		}
		r.Post("/api/cart", cartWrite)
		r.Put("/api/cart", cartWrite)
		r.Delete("/api/cart", cartWrite)
		r.Post("/api/orders", func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.keys = append(f.keys, r.Header.Get("Idempotency-Key"))
			if len(f.cart) == 0 {
				reply(w, http.StatusBadRequest, map[string]string{"error": "Cart is empty"})
				return
			}
			var total int64
			items := []map[string]any{}
			for id, qty := range f.cart {
				price := int64(f.products[id]["price"].(int))
				total += price * int64(qty)
				items = append(items, map[string]any{"product_id": id, "price": price, "quantity": qty})
			}
			f.cart = map[int64]int{}
			reply(w, http.StatusCreated, map[string]any{"order": map[string]any{
				"id": "6f1c8f38-2f7e-4c55-9d6a-5b1b1c3c8a11", "items": items, "total": total, "status": "pending",
			}})
		})
	})
	return r
}

func itoa(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

type harness struct {
	api *fakeAPI
	dir string
	cfg *config.ShopperConfig
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := newFakeAPI()
	srv := httptest.NewServer(api.router())
	t.Cleanup(srv.Close)
	dir := t.TempDir()
	return &harness{
		api: api,
		dir: dir,
		cfg: &config.ShopperConfig{
			APIURL:   srv.URL,
			DataDir:  dir,
			Email:    "asha@example.com",
			Password: "secret",
		},
	}
}

// exec runs one command in a fresh process-like app so state only carries
// over through the data directory.
func (h *harness) exec(t *testing.T, cmd string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a, err := newApp(context.Background(), h.cfg, &out, logger.Nop())
	require.NoError(t, err)
	a.newKey = func() string { return "key-" + cmd }
	err = a.run(context.Background(), cmd, args)
	return out.String(), err
}

func (h *harness) state(t *testing.T) aggregator.State {
	t.Helper()
	storage, err := aggregator.NewFileStorage(h.dir)
	require.NoError(t, err)
	return aggregator.Open(context.Background(), storage, logger.Nop()).State()
}

func TestAddMergesAndPersists(t *testing.T) {
	h := newHarness(t)

	_, err := h.exec(t, "add", "1")
	require.NoError(t, err)
	out, err := h.exec(t, "add", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "added Banarasi Silk Saree")

	state := h.state(t)
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 2, state.Lines[0].Quantity)
	assert.InDelta(t, 4.6, state.Lines[0].Rating, 0.0001)
	assert.Equal(t, int64(31998), state.TotalPrice)
	assert.FileExists(t, filepath.Join(h.dir, aggregator.CartKey+".json"))
}

func TestAddUnknownProduct(t *testing.T) {
	h := newHarness(t)

	_, err := h.exec(t, "add", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Product not found")
	assert.Empty(t, h.state(t).Lines)
}

func TestQuantityAndRemove(t *testing.T) {
	h := newHarness(t)
	_, err := h.exec(t, "add", "4")
	require.NoError(t, err)

	_, err = h.exec(t, "qty", "4", "3")
	require.NoError(t, err)
	line, ok := h.state(t).Line(4)
	require.True(t, ok)
	assert.Equal(t, 3, line.Quantity)

	_, err = h.exec(t, "qty", "1", "2")
	require.Error(t, err, "absent lines are not created by qty")

	_, err = h.exec(t, "qty", "4", "0")
	require.NoError(t, err)
	assert.Empty(t, h.state(t).Lines)

	_, err = h.exec(t, "remove", "4")
	require.NoError(t, err)
}

func TestWishToggles(t *testing.T) {
	h := newHarness(t)

	out, err := h.exec(t, "wish", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "added to wishlist")
	assert.True(t, h.state(t).IsWishlisted(7))

	out, err = h.exec(t, "wish", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "removed from wishlist")
	assert.False(t, h.state(t).IsWishlisted(7))
}

func TestShowPrintsTotals(t *testing.T) {
	h := newHarness(t)

	out, err := h.exec(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "cart is empty")

	_, err = h.exec(t, "add", "4")
	require.NoError(t, err)
	out, err = h.exec(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Chanderi Silk Cotton Saree")
	assert.Contains(t, out, "₹8999")
	assert.Contains(t, out, "₹0", "shipping is free above the threshold")
}

func TestCheckoutSyncsServerCartAndClearsLocal(t *testing.T) {
	h := newHarness(t)
	_, err := h.exec(t, "add", "1")
	require.NoError(t, err)
	_, err = h.exec(t, "add", "1")
	require.NoError(t, err)
	_, err = h.exec(t, "wish", "4")
	require.NoError(t, err)

	// stale server cart: one line to resize, one to drop
	h.api.mu.Lock()
	h.api.cart[1] = 5
	h.api.cart[4] = 1
	h.api.mu.Unlock()

	out, err := h.exec(t, "checkout")
	require.NoError(t, err)
	assert.Contains(t, out, "total ₹31998")
	assert.ElementsMatch(t, []string{"PUT 1", "DELETE 4"}, h.api.calls)
	assert.Equal(t, []string{"key-checkout"}, h.api.keys)

	state := h.state(t)
	assert.Empty(t, state.Lines)
	assert.True(t, state.IsWishlisted(4), "checkout keeps the wishlist")
}

func TestCheckoutAddsMissingLines(t *testing.T) {
	h := newHarness(t)
	_, err := h.exec(t, "add", "4")
	require.NoError(t, err)

	_, err = h.exec(t, "checkout")
	require.NoError(t, err)
	assert.Equal(t, []string{"POST 4"}, h.api.calls)
}

func TestCheckoutEmptyCart(t *testing.T) {
	h := newHarness(t)

	_, err := h.exec(t, "checkout")
	require.ErrorIs(t, err, errEmptyCart)
	assert.Empty(t, h.api.keys)
}

func TestCheckoutNeedsCredentials(t *testing.T) {
	h := newHarness(t)
	_, err := h.exec(t, "add", "4")
	require.NoError(t, err)
	h.cfg.Email = ""

	_, err = h.exec(t, "checkout")
	require.ErrorIs(t, err, errCredentialsNeeded)
	assert.Len(t, h.state(t).Lines, 1, "local cart is kept when checkout fails")
}

func TestUnreadableDataStartsEmpty(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, aggregator.CartKey+".json"), []byte("{not json"), 0o600))

	out, err := h.exec(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "cart is empty")
}

func TestUnknownCommandAndBadArgs(t *testing.T) {
	h := newHarness(t)

	_, err := h.exec(t, "dance")
	require.Error(t, err)
	_, err = h.exec(t, "add")
	require.Error(t, err)
	_, err = h.exec(t, "add", "abc")
	require.Error(t, err)
	_, err = h.exec(t, "qty", "1", "x")
	require.Error(t, err)
}
