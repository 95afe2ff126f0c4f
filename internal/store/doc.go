// Package store holds the storefront's client-side state containers: the
// cart, the wishlist and the signed-in session.
//
// Each store is constructed once per visitor from a domain.LocalStorage,
// reading its snapshot (missing or malformed snapshots yield the empty
// default) and writing the full snapshot back after every mutation. Writes
// are best-effort and at-most-once: a failed write is logged and counted but
// never returned to the caller, and the in-memory state stays authoritative.
// Two owners of the same storage keys are not reconciled; the last write wins.
//
// Stores are safe for concurrent use. Listeners registered with Subscribe run
// after each change, outside the store's lock.
package store
