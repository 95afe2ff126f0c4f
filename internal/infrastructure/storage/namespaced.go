package storage

import (
	"context"
	"time"

	"shade-storefront/internal/domain"
)

// Namespaced scopes every key of an underlying backend under a prefix, so
// several devices can share one backend without seeing each other's keys.
type Namespaced struct {
	backend domain.LocalStorage
	prefix  string
}

func NewNamespaced(backend domain.LocalStorage, namespace string) *Namespaced {
	return &Namespaced{backend: backend, prefix: DeviceKeyPrefix(namespace)}
}

// DeviceKeyPrefix is the key prefix used for a device's snapshots.
func DeviceKeyPrefix(deviceID string) string {
	return "device:" + deviceID + ":"
}

func (n *Namespaced) GetItem(ctx context.Context, key string) (string, bool, error) {
	return n.backend.GetItem(ctx, n.prefix+key)
}

func (n *Namespaced) SetItem(ctx context.Context, key, value string) error {
	return n.backend.SetItem(ctx, n.prefix+key, value)
}

func (n *Namespaced) RemoveItem(ctx context.Context, key string) error {
	return n.backend.RemoveItem(ctx, n.prefix+key)
}

// Timeout bounds every call to the wrapped backend.
type Timeout struct {
	backend domain.LocalStorage
	timeout time.Duration
}

// WithTimeout returns backend unchanged when d is not positive.
func WithTimeout(backend domain.LocalStorage, d time.Duration) domain.LocalStorage {
	if d <= 0 {
		return backend
	}
	return &Timeout{backend: backend, timeout: d}
}

func (t *Timeout) GetItem(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.backend.GetItem(ctx, key)
}

func (t *Timeout) SetItem(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.backend.SetItem(ctx, key, value)
}

func (t *Timeout) RemoveItem(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.backend.RemoveItem(ctx, key)
}
