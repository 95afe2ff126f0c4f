package usecase

import (
	"context"
	"fmt"
	"time"

	"shade-storefront/internal/domain"
	"shade-storefront/internal/store"
	"shade-storefront/pkg/cache"
	"shade-storefront/pkg/logger"
	"shade-storefront/pkg/metrics"

	"golang.org/x/sync/singleflight"
)

// Storefront is the set of stores belonging to one device. Hold it only for
// the request that opened it: once evicted, a retained copy still writes
// snapshots and overwrites those of the storefront Open restores next.
type Storefront struct {
	DeviceID string
	Cart     *store.CartStore
	Wishlist *store.WishlistStore
	Session  *store.SessionStore
}

// StorefrontUsecase owns every live Storefront. A device's stores are built
// from its snapshots on first use and dropped after idleTTL without use;
// their snapshots stay in storage.
type StorefrontUsecase struct {
	scope    domain.StorageScope
	provider domain.IdentityProvider
	cache    cache.CacheService
	idleTTL  time.Duration
	group    singleflight.Group
}

func NewStorefrontUsecase(scope domain.StorageScope, provider domain.IdentityProvider, cache cache.CacheService, idleTTL time.Duration) *StorefrontUsecase {
	u := &StorefrontUsecase{
		scope:    scope,
		provider: provider,
		cache:    cache,
		idleTTL:  idleTTL,
	}
	cache.OnEvicted(func(key string, _ interface{}) {
		logger.Debug().Str("device_id", key).Msg("Storefront released")
		metrics.ActiveStorefronts.Set(float64(u.cache.Count()))
	})
	return u
}

// Open returns the device's storefront, restoring it from storage if it is
// not in memory. Concurrent opens of the same device share one restore.
func (u *StorefrontUsecase) Open(ctx context.Context, deviceID string) (*Storefront, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("%w: device id required", domain.ErrInvalidInput)
	}

	if sf, ok := u.lookup(deviceID); ok {
		return sf, nil
	}

	v, err, _ := u.group.Do(deviceID, func() (interface{}, error) {
		if sf, ok := u.lookup(deviceID); ok {
			return sf, nil
		}
		sf := u.restore(context.WithoutCancel(ctx), deviceID)
		u.cache.Set(deviceID, sf, u.idleTTL)
		metrics.ActiveStorefronts.Set(float64(u.cache.Count()))
		return sf, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Storefront), nil
}

// lookup returns a cached storefront and extends its idle TTL.
func (u *StorefrontUsecase) lookup(deviceID string) (*Storefront, bool) {
	v, ok := u.cache.Get(deviceID)
	if !ok {
		return nil, false
	}
	sf := v.(*Storefront)
	u.cache.Set(deviceID, sf, u.idleTTL)
	return sf, true
}

func (u *StorefrontUsecase) restore(ctx context.Context, deviceID string) *Storefront {
	storage := u.scope(deviceID)
	sf := &Storefront{
		DeviceID: deviceID,
		Cart:     store.NewCartStore(ctx, storage),
		Wishlist: store.NewWishlistStore(ctx, storage),
		Session:  store.NewSessionStore(ctx, storage, u.provider),
	}
	logger.WithContext(ctx).Debug().
		Str("device_id", deviceID).
		Int("cart_items", sf.Cart.ItemCount()).
		Int("wishlist_items", sf.Wishlist.Count()).
		Msg("Storefront restored")
	return sf
}

// Forget drops the device's storefront from memory. The next Open restores
// it from storage.
func (u *StorefrontUsecase) Forget(deviceID string) {
	u.cache.Delete(deviceID)
}

// Active is the number of storefronts held in memory.
func (u *StorefrontUsecase) Active() int {
	return u.cache.Count()
}
