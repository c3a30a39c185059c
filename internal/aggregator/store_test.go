package aggregator

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func saree(id, price int64) Product {
	return Product{
		ID:            id,
		Name:          "Saree",
		Brand:         "Pariney",
		Price:         price,
		OriginalPrice: price,
		Sizes:         []string{"Free Size"},
		Colors:        []string{"Maroon"},
		Category:      "Banarasi",
	}
}

func dispatch(t *testing.T, s *Store, mutations ...Mutation) {
	t.Helper()
	for _, m := range mutations {
		require.NoError(t, s.Dispatch(context.Background(), m))
	}
}

func TestAddToCartMergesIntoOneLine(t *testing.T) {
	s := Open(context.Background(), NewMemoryStorage(), nil)
	p := saree(7, 15999)

	dispatch(t, s, AddToCart{Product: p}, AddToCart{Product: p})

	state := s.State()
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 2, state.Lines[0].Quantity)
	assert.Equal(t, 1, state.LineCount)
	assert.Equal(t, 2, state.ItemCount)
}

func TestSetQuantityNonPositiveRemovesLine(t *testing.T) {
	for _, qty := range []int{0, -5} {
		s := Open(context.Background(), NewMemoryStorage(), nil)
		dispatch(t, s, AddToCart{Product: saree(1, 100)}, SetQuantity{ProductID: 1, Quantity: qty})

		_, ok := s.State().Line(1)
		assert.False(t, ok, "quantity %d", qty)
	}
}

func TestSetQuantityOnAbsentLineIsNoop(t *testing.T) {
	s := Open(context.Background(), NewMemoryStorage(), nil)
	dispatch(t, s, SetQuantity{ProductID: 42, Quantity: 3}, RemoveFromCart{ProductID: 42})
	assert.Empty(t, s.State().Lines)
}

func TestToggleWishlistTwiceRestoresState(t *testing.T) {
	s := Open(context.Background(), NewMemoryStorage(), nil)
	dispatch(t, s, ToggleWishlist{ProductID: 3})
	before := s.State().Wishlist

	dispatch(t, s, ToggleWishlist{ProductID: 9})
	assert.True(t, s.State().IsWishlisted(9))
	dispatch(t, s, ToggleWishlist{ProductID: 9})

	assert.Equal(t, before, s.State().Wishlist)
	assert.False(t, s.State().IsWishlisted(9))
	assert.True(t, s.State().IsWishlisted(3))
}

func TestTotalsAndShipping(t *testing.T) {
	s := Open(context.Background(), NewMemoryStorage(), nil)
	assert.Zero(t, s.State().Shipping, "empty cart ships free")

	dispatch(t, s,
		AddToCart{Product: saree(1, 100)},
		SetQuantity{ProductID: 1, Quantity: 2},
		AddToCart{Product: saree(2, 50)},
		SetQuantity{ProductID: 2, Quantity: 3},
	)
	state := s.State()
	assert.Equal(t, int64(350), state.TotalPrice)
	assert.Equal(t, 5, state.ItemCount)
	assert.Equal(t, int64(500), state.Shipping)
	assert.Equal(t, int64(850), state.GrandTotal)

	dispatch(t, s, SetQuantity{ProductID: 1, Quantity: 10})
	state = s.State()
	assert.Equal(t, int64(1150), state.TotalPrice)
	assert.Zero(t, state.Shipping)
	assert.Equal(t, int64(1150), state.GrandTotal)
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	s := Open(context.Background(), NewMemoryStorage(), nil)
	dispatch(t, s, AddToCart{Product: saree(5, 1)}, AddToCart{Product: saree(2, 1)}, AddToCart{Product: saree(5, 1)})

	lines := s.State().Lines
	require.Len(t, lines, 2)
	assert.Equal(t, int64(5), lines[0].ID)
	assert.Equal(t, int64(2), lines[1].ID)
}

func TestClearCartKeepsWishlist(t *testing.T) {
	s := Open(context.Background(), NewMemoryStorage(), nil)
	dispatch(t, s, AddToCart{Product: saree(1, 100)}, ToggleWishlist{ProductID: 1}, ClearCart{})

	state := s.State()
	assert.Empty(t, state.Lines)
	assert.Equal(t, []int64{1}, state.Wishlist)
}

func TestStateIsASnapshot(t *testing.T) {
	s := Open(context.Background(), NewMemoryStorage(), nil)
	dispatch(t, s, AddToCart{Product: saree(1, 100)})

	state := s.State()
	state.Lines[0].Quantity = 99
	state.Lines[0].Sizes[0] = "XL"

	fresh := s.State()
	assert.Equal(t, 1, fresh.Lines[0].Quantity)
	assert.Equal(t, "Free Size", fresh.Lines[0].Sizes[0])
}

func TestFileStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewFileStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	s := Open(ctx, storage, nil)
	dispatch(t, s, AddToCart{Product: saree(4, 2499)}, AddToCart{Product: saree(4, 2499)}, ToggleWishlist{ProductID: 8})

	raw, err := os.ReadFile(filepath.Join(dir, CartKey+".json"))
	require.NoError(t, err)
	var persisted []map[string]any
	require.NoError(t, json.Unmarshal(raw, &persisted))
	require.Len(t, persisted, 1)
	assert.EqualValues(t, 4, persisted[0]["id"])
	assert.EqualValues(t, 2, persisted[0]["quantity"])
	assert.EqualValues(t, 2499, persisted[0]["originalPrice"])

	reopened := Open(ctx, storage, nil)
	assert.Equal(t, s.State(), reopened.State())
}

func TestOpenToleratesCorruptOrMissingData(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(ctx, CartKey, []byte("{not json")))
	require.NoError(t, storage.Save(ctx, WishlistKey, []byte("[3,3,5]")))

	s := Open(ctx, storage, nil)
	state := s.State()
	assert.Empty(t, state.Lines)
	assert.Equal(t, []int64{3, 5}, state.Wishlist)

	empty := Open(ctx, NewMemoryStorage(), nil)
	assert.Empty(t, empty.State().Lines)
	assert.Empty(t, empty.State().Wishlist)
}

func TestOpenNormalizesPersistedLines(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(ctx, CartKey, []byte(`[
		{"id":1,"price":100,"quantity":1},
		{"id":2,"price":50,"quantity":0},
		{"id":1,"price":100,"quantity":2}
	]`)))

	state := Open(ctx, storage, nil).State()
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 3, state.Lines[0].Quantity)
}

type brokenStorage struct{}

func (brokenStorage) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk unavailable")
}

func (brokenStorage) Save(_ context.Context, key string, _ []byte) error {
	return errors.New("cannot write " + key)
}

func TestDispatchAppliesEvenWhenPersistFails(t *testing.T) {
	s := Open(context.Background(), brokenStorage{}, nil)

	err := s.Dispatch(context.Background(), AddToCart{Product: saree(1, 100)})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), CartKey)
	assert.Contains(t, err.Error(), WishlistKey)

	assert.Equal(t, 1, s.State().ItemCount)
}

func TestDispatchRejectsNil(t *testing.T) {
	s := Open(context.Background(), nil, nil)
	assert.Error(t, s.Dispatch(context.Background(), nil))
}
