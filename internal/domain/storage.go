package domain

import "context"

// Snapshot keys. Each store owns exactly one key.
const (
	CartStorageKey     = "shade-cart"
	WishlistStorageKey = "shade-wishlist"
	SessionStorageKey  = "shade-user"
)

// StorageKeys lists every key written by the stores.
var StorageKeys = []string{
	CartStorageKey,
	WishlistStorageKey,
	SessionStorageKey,
}

// LocalStorage is a string-keyed, string-valued persistent store modelled on
// the browser's localStorage. A missing key is reported as ok == false, not
// as an error.
type LocalStorage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}
