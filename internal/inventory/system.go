package inventory

import (
	"context"
	"iter"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"
)

// System owns a catalog and is the only place it is mutated.
type System struct {
	mu       sync.Mutex
	items    map[string]Item
	logger   *slog.Logger
	autosave Backend
}

// Option configures a System.
type Option func(*System)

// WithLogger sets the logger used for mutation and persistence events.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *System) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAutosave persists the full catalog to b after every successful
// mutation. When that save fails the mutation is undone and a PERSISTENCE
// error is returned, so memory and storage never disagree.
func WithAutosave(b Backend) Option {
	return func(s *System) {
		s.autosave = b
	}
}

// New creates a System with an empty catalog.
func New(opts ...Option) *System {
	s := &System{
		items:  make(map[string]Item),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a System whose catalog is loaded from b.
func Open(ctx context.Context, b Backend, opts ...Option) (*System, error) {
	s := New(opts...)
	if err := s.LoadFrom(ctx, b); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenFile creates a System whose catalog is loaded from the file at path.
func OpenFile(path string, opts ...Option) (*System, error) {
	return Open(context.Background(), NewFileBackend(path), opts...)
}

// AddItem inserts a new item. It fails with VALIDATION if the SKU already
// exists or any field is invalid.
func (s *System) AddItem(sku string, quantity int, unitPrice float64) (Item, error) {
	it, err := validateItem("add", Item{SKU: sku, Quantity: quantity, UnitPrice: unitPrice})
	if err != nil {
		return Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[it.SKU]; exists {
		return Item{}, validationError("add", it.SKU, "sku already exists")
	}
	s.items[it.SKU] = it
	if err := s.commit("add", func() { delete(s.items, it.SKU) }); err != nil {
		return Item{}, err
	}

	s.logger.Debug("item added", "sku", it.SKU, "quantity", it.Quantity, "unit_price", it.UnitPrice)
	return it, nil
}

// RemoveItem deletes an item. It fails with NOT_FOUND if the SKU is absent.
func (s *System) RemoveItem(sku string) error {
	key, err := normalizeSKU("remove", sku)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.items[key]
	if !ok {
		return notFoundError("remove", key)
	}
	delete(s.items, key)
	if err := s.commit("remove", func() { s.items[key] = prev }); err != nil {
		return err
	}

	s.logger.Debug("item removed", "sku", key, "quantity", prev.Quantity)
	return nil
}

// AdjustQuantity adds delta (which may be negative) to an item's quantity
// and returns the updated item. It fails with NOT_FOUND if the SKU is absent
// and with VALIDATION if the result would be negative or overflow; the
// quantity is unchanged on failure.
func (s *System) AdjustQuantity(sku string, delta int) (Item, error) {
	key, err := normalizeSKU("adjust", sku)
	if err != nil {
		return Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.items[key]
	if !ok {
		return Item{}, notFoundError("adjust", key)
	}
	if delta > 0 && prev.Quantity > math.MaxInt-delta {
		return Item{}, validationError("adjust", key, "quantity %d + %d overflows", prev.Quantity, delta)
	}
	next := prev.Quantity + delta
	if next < 0 {
		return Item{}, validationError("adjust", key, "insufficient quantity: have %d, delta %d", prev.Quantity, delta)
	}

	updated := prev
	updated.Quantity = next
	s.items[key] = updated
	if err := s.commit("adjust", func() { s.items[key] = prev }); err != nil {
		return Item{}, err
	}

	s.logger.Debug("quantity adjusted", "sku", key, "delta", delta, "previous", prev.Quantity, "quantity", next)
	return updated, nil
}

// GetItem returns a copy of the item. It fails with NOT_FOUND if the SKU is
// absent.
func (s *System) GetItem(sku string) (Item, error) {
	key, err := normalizeSKU("get", sku)
	if err != nil {
		return Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[key]
	if !ok {
		return Item{}, notFoundError("get", key)
	}
	return it, nil
}

// ListItems returns the items present at call time, ordered by SKU. The
// sequence is detached from the catalog and may be ranged over repeatedly.
func (s *System) ListItems() iter.Seq[Item] {
	s.mu.Lock()
	items := s.sortedLocked()
	s.mu.Unlock()
	return slices.Values(items)
}

// LowStock returns items whose quantity is at or below threshold, ordered
// by SKU. A negative threshold is a VALIDATION error.
func (s *System) LowStock(threshold int) ([]Item, error) {
	if threshold < 0 {
		return nil, validationError("low", "", "threshold must be non-negative, got %d", threshold)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var low []Item
	for _, it := range s.sortedLocked() {
		if it.Quantity <= threshold {
			low = append(low, it)
		}
	}
	return low, nil
}

// Len returns the number of items in the catalog.
func (s *System) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Snapshot returns a copy of the catalog keyed by SKU.
func (s *System) Snapshot() map[string]Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Item, len(s.items))
	for k, v := range s.items {
		out[k] = v
	}
	return out
}

// TotalValue returns the sum of quantity × unit price over all items.
func (s *System) TotalValue() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, it := range s.sortedLocked() {
		total += it.Value()
	}
	return total
}

// Load replaces the catalog with the contents of the file at path.
func (s *System) Load(path string) error {
	return s.LoadFrom(context.Background(), NewFileBackend(path))
}

// Save writes the catalog to the file at path.
func (s *System) Save(path string) error {
	return s.SaveTo(context.Background(), NewFileBackend(path))
}

// LoadFrom replaces the catalog with the items read from b. Every record is
// validated before the swap; on any failure the catalog is unchanged and a
// PERSISTENCE error is returned.
func (s *System) LoadFrom(ctx context.Context, b Backend) error {
	items, err := b.Load(ctx)
	if err != nil {
		return asPersistence("load", err)
	}

	next := make(map[string]Item, len(items))
	for i, raw := range items {
		it, err := validateItem("load", raw)
		if err != nil {
			return persistenceError("load", err, "invalid record %d", i+1)
		}
		if _, dup := next[it.SKU]; dup {
			return persistenceError("load", nil, "duplicate sku %q", it.SKU)
		}
		next[it.SKU] = it
	}

	s.mu.Lock()
	s.items = next
	s.mu.Unlock()

	s.logger.Info("catalog loaded", "backend", describe(b), "items", len(next))
	return nil
}

// SaveTo writes the catalog to b.
func (s *System) SaveTo(ctx context.Context, b Backend) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.sortedLocked()
	if err := b.Save(ctx, items); err != nil {
		return asPersistence("save", err)
	}

	s.logger.Info("catalog saved", "backend", describe(b), "items", len(items))
	return nil
}

// commit persists the catalog when autosave is enabled. On failure it runs
// undo to restore the previous in-memory state. Callers hold s.mu.
func (s *System) commit(op string, undo func()) error {
	if s.autosave == nil {
		return nil
	}
	if err := s.autosave.Save(context.Background(), s.sortedLocked()); err != nil {
		undo()
		s.logger.Error("autosave failed, mutation reverted", "op", op, "error", err)
		return asPersistence(op, err)
	}
	return nil
}

// sortedLocked returns the items ordered by SKU. Callers hold s.mu.
func (s *System) sortedLocked() []Item {
	items := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, it)
	}
	slices.SortFunc(items, func(a, b Item) int { return strings.Compare(a.SKU, b.SKU) })
	return items
}
