package store

import (
	"context"
	"sync"

	"shade-storefront/internal/domain"
	"shade-storefront/pkg/metrics"
)

const cartStoreName = "cart"

// CartStore owns the visitor's cart lines and the cart panel visibility flag.
type CartStore struct {
	mu      sync.Mutex
	storage domain.LocalStorage
	lines   []domain.CartLine
	isOpen  bool
	subs    listeners
}

// NewCartStore restores the cart snapshot from storage.
func NewCartStore(ctx context.Context, storage domain.LocalStorage) *CartStore {
	s := &CartStore{storage: storage}
	if lines, ok := loadSnapshot[[]domain.CartLine](ctx, storage, cartStoreName, domain.CartStorageKey); ok {
		s.lines = normalizeLines(lines)
	}
	return s
}

// normalizeLines drops non-positive quantities and folds duplicate keys.
func normalizeLines(in []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(in))
	seen := make(map[domain.LineKey]int, len(in))
	for _, line := range in {
		if line.Quantity <= 0 {
			continue
		}
		if i, ok := seen[line.Key()]; ok {
			out[i].Quantity += line.Quantity
			continue
		}
		seen[line.Key()] = len(out)
		out = append(out, line)
	}
	return out
}

// AddItem puts one unit of product into the cart. An existing line with the
// same product and variant is incremented instead of duplicated.
func (s *CartStore) AddItem(ctx context.Context, product domain.CartProduct, variant domain.Variant) {
	key := domain.LineKey{ProductID: product.ID, Color: variant.Color, Size: variant.Size}

	s.mu.Lock()
	if i := s.indexLocked(key); i >= 0 {
		s.lines[i].Quantity++
	} else {
		s.lines = append(s.lines, domain.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Color:     variant.Color,
			Size:      variant.Size,
			Quantity:  1,
		})
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.changed("add")
}

// UpdateQuantity sets the quantity of the line at key. A quantity of zero or
// less removes the line. Unknown keys are ignored.
func (s *CartStore) UpdateQuantity(ctx context.Context, key domain.LineKey, quantity int) {
	if quantity <= 0 {
		s.remove(ctx, key, "update_quantity")
		return
	}

	s.mu.Lock()
	i := s.indexLocked(key)
	if i < 0 || s.lines[i].Quantity == quantity {
		s.mu.Unlock()
		return
	}
	s.lines[i].Quantity = quantity
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.changed("update_quantity")
}

// RemoveItem deletes the line at key; removing an absent key is a no-op.
func (s *CartStore) RemoveItem(ctx context.Context, key domain.LineKey) {
	s.remove(ctx, key, "remove")
}

func (s *CartStore) remove(ctx context.Context, key domain.LineKey, op string) {
	s.mu.Lock()
	i := s.indexLocked(key)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.changed(op)
}

// Clear empties the cart.
func (s *CartStore) Clear(ctx context.Context) {
	s.mu.Lock()
	if len(s.lines) == 0 {
		s.mu.Unlock()
		return
	}
	s.lines = nil
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.changed("clear")
}

// Items returns a copy of the cart lines in insertion order.
func (s *CartStore) Items() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is the sum of price * quantity over all lines, computed on each call.
func (s *CartStore) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, line := range s.lines {
		total += line.Subtotal()
	}
	return total
}

// ItemCount is the number of units in the cart, not the number of lines.
func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

func (s *CartStore) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// SetIsOpen shows or hides the cart panel. Visibility is not persisted and
// cart mutations never change it.
func (s *CartStore) SetIsOpen(open bool) {
	s.mu.Lock()
	if s.isOpen == open {
		s.mu.Unlock()
		return
	}
	s.isOpen = open
	s.mu.Unlock()

	s.subs.notify()
}

// Subscribe registers fn to run after every change. Call the returned func to stop.
func (s *CartStore) Subscribe(fn func()) (unsubscribe func()) {
	return s.subs.add(fn)
}

func (s *CartStore) indexLocked(key domain.LineKey) int {
	for i, line := range s.lines {
		if line.Key() == key {
			return i
		}
	}
	return -1
}

func (s *CartStore) persistLocked(ctx context.Context) {
	lines := s.lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	saveSnapshot(ctx, s.storage, cartStoreName, domain.CartStorageKey, lines)
}

func (s *CartStore) changed(op string) {
	metrics.StoreMutations.WithLabelValues(cartStoreName, op).Inc()
	s.subs.notify()
}
