package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"shade-storefront/internal/domain"
	"shade-storefront/internal/infrastructure/storage"
)

func TestShowSnapshots(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStorage()
	_ = s.SetItem(ctx, domain.CartStorageKey, `[{"id":"p1","quantity":2}]`)
	_ = s.SetItem(ctx, domain.SessionStorageKey, `{not json`)

	var out bytes.Buffer
	if err := showSnapshots(ctx, s, &out); err != nil {
		t.Fatal(err)
	}
	got := out.String()

	for _, want := range []string{
		domain.CartStorageKey + ":\n[",
		`"quantity": 2`,
		domain.WishlistStorageKey + ": (none)",
		domain.SessionStorageKey + ": (malformed) {not json",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestClearSnapshots(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryStorage()
	mine := storage.NewNamespaced(backend, "device-1")
	other := storage.NewNamespaced(backend, "device-2")
	for _, key := range domain.StorageKeys {
		_ = mine.SetItem(ctx, key, "[]")
		_ = other.SetItem(ctx, key, "[]")
	}

	if err := clearSnapshots(ctx, mine); err != nil {
		t.Fatal(err)
	}
	for _, key := range domain.StorageKeys {
		if _, ok, _ := mine.GetItem(ctx, key); ok {
			t.Errorf("%s still present after clear", key)
		}
		if _, ok, _ := other.GetItem(ctx, key); !ok {
			t.Errorf("clear removed %s of another device", key)
		}
	}
}
