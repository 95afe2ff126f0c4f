package storage

import (
	"context"
	"testing"

	"shade-storefront/internal/domain"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)

	t.Run("bare address", func(t *testing.T) {
		s, err := NewRedisStorage(context.Background(), mr.Addr())
		if err != nil {
			t.Fatalf("NewRedisStorage(%q) error = %v", mr.Addr(), err)
		}
		defer s.Close()
		conformance(t, s)
	})

	t.Run("url", func(t *testing.T) {
		s, err := NewRedisStorage(context.Background(), "redis://"+mr.Addr()+"/0")
		if err != nil {
			t.Fatalf("NewRedisStorage(url) error = %v", err)
		}
		defer s.Close()
		conformance(t, s)
	})
}

func TestRedisStorage_StoresPlainStrings(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := NewRedisStorage(ctx, mr.Addr())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := NewNamespaced(s, "d1").SetItem(ctx, domain.CartStorageKey, `[]`); err != nil {
		t.Fatal(err)
	}
	got, err := mr.Get(DeviceKeyPrefix("d1") + domain.CartStorageKey)
	if err != nil || got != `[]` {
		t.Errorf("raw value = %q, %v; want []", got, err)
	}
	if ttl := mr.TTL(DeviceKeyPrefix("d1") + domain.CartStorageKey); ttl != 0 {
		t.Errorf("snapshot TTL = %v, want none", ttl)
	}
}

func TestRedisStorage_Errors(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := NewRedisStorage(ctx, mr.Addr())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	mr.SetError("ERR backend down")
	if _, ok, err := s.GetItem(ctx, domain.SessionStorageKey); err == nil || ok {
		t.Errorf("GetItem() on failing server = ok %v, err %v; want an error", ok, err)
	}
	if err := s.SetItem(ctx, domain.SessionStorageKey, "{}"); err == nil {
		t.Error("SetItem() on failing server returned nil")
	}
	mr.SetError("")

	addr := mr.Addr()
	mr.Close()
	if _, err := NewRedisStorage(ctx, addr); err == nil {
		t.Error("NewRedisStorage() against a stopped server returned nil error")
	}
}
