package store

import (
	"context"
	"sync"

	"shade-storefront/internal/domain"
	"shade-storefront/pkg/metrics"
)

const wishlistStoreName = "wishlist"

// WishlistStore owns the visitor's saved products, unique by product ID.
type WishlistStore struct {
	mu      sync.Mutex
	storage domain.LocalStorage
	items   []domain.WishlistEntry
	subs    listeners
}

func NewWishlistStore(ctx context.Context, storage domain.LocalStorage) *WishlistStore {
	s := &WishlistStore{storage: storage}
	if items, ok := loadSnapshot[[]domain.WishlistEntry](ctx, storage, wishlistStoreName, domain.WishlistStorageKey); ok {
		s.items = dedupeEntries(items)
	}
	return s
}

func dedupeEntries(in []domain.WishlistEntry) []domain.WishlistEntry {
	out := make([]domain.WishlistEntry, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, e := range in {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}

// AddItem saves entry unless an entry with the same ID is already present.
func (s *WishlistStore) AddItem(ctx context.Context, entry domain.WishlistEntry) {
	s.mu.Lock()
	added := s.addLocked(ctx, entry)
	s.mu.Unlock()

	if added {
		s.changed("add")
	}
}

// RemoveItem deletes the entry with id; absent ids are ignored.
func (s *WishlistStore) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	removed := s.removeLocked(ctx, id)
	s.mu.Unlock()

	if removed {
		s.changed("remove")
	}
}

// ToggleItem removes entry if present and adds it otherwise, as one step.
// It reports whether the entry is in the wishlist afterwards.
func (s *WishlistStore) ToggleItem(ctx context.Context, entry domain.WishlistEntry) bool {
	s.mu.Lock()
	var present bool
	if s.indexLocked(entry.ID) >= 0 {
		s.removeLocked(ctx, entry.ID)
	} else {
		present = s.addLocked(ctx, entry)
	}
	s.mu.Unlock()

	s.changed("toggle")
	return present
}

func (s *WishlistStore) IsInWishlist(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(id) >= 0
}

// Items returns a copy of the entries in insertion order.
func (s *WishlistStore) Items() []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.WishlistEntry, len(s.items))
	copy(out, s.items)
	return out
}

func (s *WishlistStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe registers fn to run after every change. Call the returned func to stop.
func (s *WishlistStore) Subscribe(fn func()) (unsubscribe func()) {
	return s.subs.add(fn)
}

func (s *WishlistStore) addLocked(ctx context.Context, entry domain.WishlistEntry) bool {
	if s.indexLocked(entry.ID) >= 0 {
		return false
	}
	s.items = append(s.items, entry)
	s.persistLocked(ctx)
	return true
}

func (s *WishlistStore) removeLocked(ctx context.Context, id string) bool {
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.persistLocked(ctx)
	return true
}

func (s *WishlistStore) indexLocked(id string) int {
	for i, e := range s.items {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *WishlistStore) persistLocked(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []domain.WishlistEntry{}
	}
	saveSnapshot(ctx, s.storage, wishlistStoreName, domain.WishlistStorageKey, items)
}

func (s *WishlistStore) changed(op string) {
	metrics.StoreMutations.WithLabelValues(wishlistStoreName, op).Inc()
	s.subs.notify()
}
