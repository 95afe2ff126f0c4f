package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shade"

var (
	// StoreMutations counts applied mutations per store and operation.
	StoreMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "mutations_total",
		Help:      "Total number of store mutations applied",
	}, []string{"store", "op"})

	// SnapshotWriteFailures counts best-effort snapshot writes that failed.
	SnapshotWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "snapshot_write_failures_total",
		Help:      "Total number of snapshot writes that failed and were dropped",
	}, []string{"store"})

	// SnapshotReadFailures counts snapshots that could not be read or decoded at startup.
	SnapshotReadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "snapshot_read_failures_total",
		Help:      "Total number of snapshots replaced by the empty default",
	}, []string{"store"})

	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "auth_attempts_total",
		Help:      "Sign-in and sign-up attempts by outcome",
	}, []string{"intent", "result"})

	ActiveStorefronts = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "storefront",
		Name:      "active",
		Help:      "Number of storefronts currently held in memory",
	})
)
