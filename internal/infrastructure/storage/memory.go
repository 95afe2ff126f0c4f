package storage

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStorage keeps snapshots in process memory. Contents are lost on
// restart, which makes it the development and test backend.
type MemoryStorage struct {
	store *gocache.Cache
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		store: gocache.New(gocache.NoExpiration, 0),
	}
}

func (m *MemoryStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	v, found := m.store.Get(key)
	if !found {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}

func (m *MemoryStorage) SetItem(_ context.Context, key, value string) error {
	m.store.Set(key, value, gocache.NoExpiration)
	return nil
}

func (m *MemoryStorage) RemoveItem(_ context.Context, key string) error {
	m.store.Delete(key)
	return nil
}

// Len is the number of stored keys.
func (m *MemoryStorage) Len() int {
	return m.store.ItemCount()
}
