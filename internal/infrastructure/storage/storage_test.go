package storage

import (
	"context"
	"testing"
	"time"

	"shade-storefront/config"
	"shade-storefront/internal/domain"
)

// conformance runs the LocalStorage contract against a backend.
func conformance(t *testing.T, s domain.LocalStorage) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.GetItem(ctx, "missing"); err != nil || ok {
		t.Fatalf("GetItem(missing) = ok %v, err %v; want not found", ok, err)
	}

	if err := s.SetItem(ctx, domain.WishlistStorageKey, `[{"id":"1"}]`); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	v, ok, err := s.GetItem(ctx, domain.WishlistStorageKey)
	if err != nil || !ok || v != `[{"id":"1"}]` {
		t.Fatalf("GetItem() = %q, %v, %v", v, ok, err)
	}

	if err := s.SetItem(ctx, domain.WishlistStorageKey, `[]`); err != nil {
		t.Fatalf("SetItem() overwrite error = %v", err)
	}
	if v, _, _ := s.GetItem(ctx, domain.WishlistStorageKey); v != `[]` {
		t.Errorf("GetItem() after overwrite = %q", v)
	}

	if err := s.RemoveItem(ctx, domain.WishlistStorageKey); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if _, ok, _ := s.GetItem(ctx, domain.WishlistStorageKey); ok {
		t.Error("key present after RemoveItem")
	}
	if err := s.RemoveItem(ctx, domain.WishlistStorageKey); err != nil {
		t.Errorf("RemoveItem() of absent key error = %v", err)
	}
}

func TestMemoryStorage(t *testing.T) {
	conformance(t, NewMemoryStorage())
}

func TestNamespaced_IsolatesDevices(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryStorage()
	a := NewNamespaced(backend, "device-a")
	b := NewNamespaced(backend, "device-b")

	conformance(t, a)

	if err := a.SetItem(ctx, domain.CartStorageKey, "a-cart"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := b.GetItem(ctx, domain.CartStorageKey); ok {
		t.Error("device b sees device a's cart")
	}
	raw, ok, _ := backend.GetItem(ctx, "device:device-a:"+domain.CartStorageKey)
	if !ok || raw != "a-cart" {
		t.Errorf("backend key = %q, %v", raw, ok)
	}
}

type deadlineProbe struct {
	domain.LocalStorage
	hadDeadline bool
}

func (d *deadlineProbe) SetItem(ctx context.Context, key, value string) error {
	_, d.hadDeadline = ctx.Deadline()
	return d.LocalStorage.SetItem(ctx, key, value)
}

func TestWithTimeout(t *testing.T) {
	probe := &deadlineProbe{LocalStorage: NewMemoryStorage()}

	if got := WithTimeout(probe, 0); got != domain.LocalStorage(probe) {
		t.Error("WithTimeout(0) wrapped the backend")
	}

	wrapped := WithTimeout(probe, time.Second)
	if err := wrapped.SetItem(context.Background(), "k", "v"); err != nil {
		t.Fatal(err)
	}
	if !probe.hadDeadline {
		t.Error("backend call had no deadline")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := Open(ctx, &config.Config{StorageDriver: config.StorageMemory})
	if err != nil {
		t.Fatalf("Open(memory) error = %v", err)
	}
	defer closeFn()
	if _, ok := s.(*MemoryStorage); !ok {
		t.Errorf("Open(memory) = %T", s)
	}

	if _, _, err := Open(ctx, &config.Config{StorageDriver: "floppy"}); err == nil {
		t.Error("Open(floppy) error = nil")
	}
}
