package storage

import (
	"context"
	"fmt"

	"shade-storefront/config"
	"shade-storefront/internal/domain"
)

// Open builds the snapshot backend selected by cfg.StorageDriver, bounded by
// cfg.StorageTimeout. The returned closer releases its connections.
func Open(ctx context.Context, cfg *config.Config) (domain.LocalStorage, func(), error) {
	noop := func() {}

	switch cfg.StorageDriver {
	case config.StorageMemory, "":
		return NewMemoryStorage(), noop, nil

	case config.StorageRedis:
		r, err := NewRedisStorage(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return WithTimeout(r, cfg.StorageTimeout), func() { _ = r.Close() }, nil

	case config.StoragePostgres:
		pool, err := NewPgxPool(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		pg := NewPostgresStorage(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return WithTimeout(pg, cfg.StorageTimeout), pool.Close, nil

	case config.StorageR2:
		r2, err := NewR2Storage(ctx,
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.R2Prefix,
			cfg.StorageTimeout,
		)
		if err != nil {
			return nil, noop, err
		}
		return r2, noop, nil
	}

	return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
