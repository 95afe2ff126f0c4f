package store

import (
	"context"
	"time"

	"shade-storefront/internal/domain"
	"shade-storefront/pkg/logger"
	"shade-storefront/pkg/metrics"

	"github.com/goccy/go-json"
)

// loadSnapshot reads and decodes key. Any failure (backend error, missing
// key, malformed JSON) yields the zero T and false; nothing is returned to the
// caller because the empty default is always a valid state.
func loadSnapshot[T any](ctx context.Context, storage domain.LocalStorage, storeName, key string) (T, bool) {
	var zero T

	start := time.Now()
	raw, ok, err := storage.GetItem(ctx, key)
	logger.StorageOp(ctx, "get", key, time.Since(start), err)
	if err != nil {
		metrics.SnapshotReadFailures.WithLabelValues(storeName).Inc()
		return zero, false
	}
	if !ok || raw == "" {
		return zero, false
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		metrics.SnapshotReadFailures.WithLabelValues(storeName).Inc()
		logger.WithContext(ctx).Warn().
			Err(err).
			Str("store", storeName).
			Str("key", key).
			Msg("Discarding malformed snapshot")
		return zero, false
	}
	return v, true
}

// saveSnapshot writes v under key once. The write outlives cancellation of
// ctx so that a mutation that already happened in memory is still mirrored.
func saveSnapshot(ctx context.Context, storage domain.LocalStorage, storeName, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		snapshotWriteFailed(ctx, storeName, key, err)
		return
	}

	wctx := context.WithoutCancel(ctx)
	start := time.Now()
	err = storage.SetItem(wctx, key, string(data))
	logger.StorageOp(ctx, "set", key, time.Since(start), err)
	if err != nil {
		snapshotWriteFailed(ctx, storeName, key, err)
	}
}

func removeSnapshot(ctx context.Context, storage domain.LocalStorage, storeName, key string) {
	wctx := context.WithoutCancel(ctx)
	start := time.Now()
	err := storage.RemoveItem(wctx, key)
	logger.StorageOp(ctx, "remove", key, time.Since(start), err)
	if err != nil {
		snapshotWriteFailed(ctx, storeName, key, err)
	}
}

func snapshotWriteFailed(ctx context.Context, storeName, key string, err error) {
	metrics.SnapshotWriteFailures.WithLabelValues(storeName).Inc()
	logger.WithContext(ctx).Error().
		Err(err).
		Str("store", storeName).
		Str("key", key).
		Msg("Snapshot write failed, continuing with in-memory state")
}
