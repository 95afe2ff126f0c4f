package store

import (
	"context"
	"sort"
	"testing"

	"shade-storefront/internal/domain"
)

func entry(id string) domain.WishlistEntry {
	return domain.WishlistEntry{ID: id, Name: "Item " + id, Price: 42, Image: "/" + id + ".png", Category: "hoodies"}
}

func ids(entries []domain.WishlistEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	sort.Strings(out)
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestWishlistStore_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewWishlistStore(ctx, newFakeStorage())

	s.AddItem(ctx, entry("1"))
	dup := entry("1")
	dup.Name = "renamed"
	s.AddItem(ctx, dup)

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Name != "Item 1" {
		t.Errorf("Name = %q, want the first added entry", items[0].Name)
	}
}

func TestWishlistStore_Membership(t *testing.T) {
	ctx := context.Background()
	s := NewWishlistStore(ctx, newFakeStorage())

	if s.IsInWishlist("7") {
		t.Error("IsInWishlist before add = true")
	}
	s.AddItem(ctx, entry("7"))
	if !s.IsInWishlist("7") {
		t.Error("IsInWishlist after add = false")
	}
	s.RemoveItem(ctx, "7")
	if s.IsInWishlist("7") {
		t.Error("IsInWishlist after remove = true")
	}

	// Removing again is a no-op.
	s.RemoveItem(ctx, "7")
	if got := s.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
}

func TestWishlistStore_ToggleTwiceRestores(t *testing.T) {
	ctx := context.Background()
	s := NewWishlistStore(ctx, newFakeStorage())
	s.AddItem(ctx, entry("1"))
	s.AddItem(ctx, entry("2"))
	before := ids(s.Items())

	if present := s.ToggleItem(ctx, entry("3")); !present {
		t.Error("first toggle: present = false, want true")
	}
	if present := s.ToggleItem(ctx, entry("3")); present {
		t.Error("second toggle: present = true, want false")
	}
	if after := ids(s.Items()); !equalIDs(before, after) {
		t.Errorf("members = %v, want %v", after, before)
	}

	// Toggling an existing member removes it.
	if present := s.ToggleItem(ctx, entry("1")); present {
		t.Error("toggle existing: present = true, want false")
	}
	if s.IsInWishlist("1") {
		t.Error("entry 1 still present after toggle")
	}
}

func TestWishlistStore_RestoresMembership(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	s := NewWishlistStore(ctx, storage)
	s.AddItem(ctx, entry("a"))
	s.AddItem(ctx, entry("b"))
	s.AddItem(ctx, entry("c"))
	s.RemoveItem(ctx, "b")

	reloaded := NewWishlistStore(ctx, storage)

	if got, want := ids(reloaded.Items()), []string{"a", "c"}; !equalIDs(got, want) {
		t.Errorf("members = %v, want %v", got, want)
	}
	if got := reloaded.Items()[0]; got.Category != "hoodies" || got.Price != 42 {
		t.Errorf("display attributes not restored: %+v", got)
	}
}

func TestWishlistStore_MalformedSnapshot(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	storage.data[domain.WishlistStorageKey] = `[{"id":1}`

	s := NewWishlistStore(ctx, storage)
	if got := s.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}

	// The store keeps working and overwrites the bad snapshot.
	s.AddItem(ctx, entry("x"))
	if got := NewWishlistStore(ctx, storage).Count(); got != 1 {
		t.Errorf("reloaded Count() = %d, want 1", got)
	}
}

func TestWishlistStore_SnapshotDeduplicated(t *testing.T) {
	storage := newFakeStorage()
	storage.data[domain.WishlistStorageKey] = `[{"id":"a"},{"id":"a"},{"id":"b"}]`

	s := NewWishlistStore(context.Background(), storage)
	if got := s.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
}

func TestWishlistStore_WriteFailureNotSurfaced(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	storage.failWrites = true
	s := NewWishlistStore(ctx, storage)

	s.ToggleItem(ctx, entry("1"))

	if !s.IsInWishlist("1") {
		t.Error("in-memory state lost after failed write")
	}
	if got := storage.writeCount(); got != 1 {
		t.Errorf("write attempts = %d, want 1", got)
	}
}

func TestWishlistStore_SubscribeOnlyOnChange(t *testing.T) {
	ctx := context.Background()
	s := NewWishlistStore(ctx, newFakeStorage())

	calls := 0
	s.Subscribe(func() { calls++ })

	s.AddItem(ctx, entry("1"))
	s.AddItem(ctx, entry("1"))
	s.RemoveItem(ctx, "nope")
	s.ToggleItem(ctx, entry("1"))

	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
