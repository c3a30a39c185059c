// Package aggregator owns the shopper's local cart and wishlist. A Store is
// created once per process and handed to whatever drives it.
package aggregator

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/pariney/saree-storefront/pkg/logger"
	"github.com/pariney/saree-storefront/pkg/pricing"
	"go.uber.org/multierr"
)

// Store applies mutations one at a time and persists after each.
type Store struct {
	mu      sync.Mutex
	storage Storage
	logg    *logger.Logger
	state   contents
}

// Open rehydrates a Store. Missing or unreadable data yields an empty cart or
// wishlist and a warning; it never fails.
func Open(ctx context.Context, storage Storage, logg *logger.Logger) *Store {
	if logg == nil {
		logg = logger.Nop()
	}
	if storage == nil {
		storage = NewMemoryStorage()
	}
	s := &Store{storage: storage, logg: logg}

	var errs error
	lines, err := loadLines(ctx, storage)
	errs = multierr.Append(errs, err)
	wishlist, err := loadWishlist(ctx, storage)
	errs = multierr.Append(errs, err)
	if errs != nil {
		logg.Warn(logg.WithField(ctx, "error", errs.Error()), "aggregator.load_failed")
	}

	s.state = contents{lines: lines, wishlist: wishlist}
	return s
}

// State returns a snapshot that is safe to keep after further mutations.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.state)
}

// Dispatch applies m and then persists both keys. The mutation takes effect
// even when persisting fails; the combined persistence error is returned.
func (s *Store) Dispatch(ctx context.Context, m Mutation) error {
	if m == nil {
		return fmt.Errorf("nil mutation")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m.apply(&s.state)
	return s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) error {
	lines := s.state.lines
	if lines == nil {
		lines = []Line{}
	}
	wishlist := s.state.wishlist
	if wishlist == nil {
		wishlist = []int64{}
	}

	var errs error
	if data, err := json.Marshal(lines); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("encode cart: %w", err))
	} else {
		errs = multierr.Append(errs, s.storage.Save(ctx, CartKey, data))
	}
	if data, err := json.Marshal(wishlist); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("encode wishlist: %w", err))
	} else {
		errs = multierr.Append(errs, s.storage.Save(ctx, WishlistKey, data))
	}
	return errs
}

func snapshot(c contents) State {
	state := State{
		Lines:    make([]Line, 0, len(c.lines)),
		Wishlist: slices.Clone(c.wishlist),
	}
	if state.Wishlist == nil {
		state.Wishlist = []int64{}
	}
	for _, line := range c.lines {
		line.Sizes = slices.Clone(line.Sizes)
		line.Colors = slices.Clone(line.Colors)
		state.Lines = append(state.Lines, line)
		state.ItemCount += line.Quantity
		state.TotalPrice += line.Subtotal()
	}
	state.LineCount = len(state.Lines)
	if state.LineCount > 0 {
		state.Shipping = pricing.Shipping(state.TotalPrice)
	}
	state.GrandTotal = state.TotalPrice + state.Shipping
	return state
}

// loadLines drops non-positive quantities and merges duplicate products so
// the one-line-per-product rule holds for hand-edited data too.
func loadLines(ctx context.Context, storage Storage) ([]Line, error) {
	data, err := storage.Load(ctx, CartKey)
	if err != nil || len(data) == 0 {
		return nil, err
	}
	var raw []Line
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	lines := make([]Line, 0, len(raw))
	for _, line := range raw {
		if line.Quantity <= 0 {
			continue
		}
		if i := slices.IndexFunc(lines, func(l Line) bool { return l.ID == line.ID }); i >= 0 {
			lines[i].Quantity += line.Quantity
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func loadWishlist(ctx context.Context, storage Storage) ([]int64, error) {
	data, err := storage.Load(ctx, WishlistKey)
	if err != nil || len(data) == 0 {
		return nil, err
	}
	var raw []int64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode wishlist: %w", err)
	}
	ids := make([]int64, 0, len(raw))
	for _, id := range raw {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
