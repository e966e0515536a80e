package storage

import (
	"context"
	"errors"
)

// NoSlot is returned by the reserve operations when no qualifying free block
// or range exists. It is a valid business outcome, not an error.
const NoSlot = -1

// ErrUnavailable wraps any backend fault: connection failures, timed-out
// commands, or a failed atomic execution. Adapters return errors that match
// it via errors.Is.
var ErrUnavailable = errors.New("store unavailable")

// RowStore is the keyed bit-vector store backing the seat engine. A row is a
// single value of size bits addressed by key.
//
// Atomicity contract: ReserveFirstFree and ReserveRange each execute their
// read-then-write sequence with no interleaving from any other call against
// the same key, across all processes sharing the store. Calls against
// different keys never contend. How the guarantee is realized (server-side
// scripts, per-key locks) is the adapter's concern.
type RowStore interface {
	// EnsureRow creates the row at exactly size bits, all zero, if it does
	// not exist. Existing rows are left untouched, set bits included.
	EnsureRow(ctx context.Context, key string, size int) error

	// ReserveFirstFree atomically finds the lowest start offset in
	// [0, size-count] whose count-bit window is entirely free, sets the
	// window to 1, and returns the offset. Returns NoSlot when no window
	// qualifies.
	ReserveFirstFree(ctx context.Context, key string, size, count int) (int, error)

	// ReserveRange atomically sets bits [start, start+count) to 1 if all of
	// them are free, returning start. Returns NoSlot without mutating
	// anything when any bit in the range is already set.
	ReserveRange(ctx context.Context, key string, size, start, count int) (int, error)

	// CountRow returns the number of set bits in the row. Missing rows
	// count as zero.
	CountRow(ctx context.Context, key string) (int, error)

	// CountRows returns set-bit counts for the given keys, issued as one
	// batch rather than one round trip per key.
	CountRows(ctx context.Context, keys []string) ([]int, error)

	// DeleteRows removes the backing state for the given keys.
	DeleteRows(ctx context.Context, keys []string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Stats reports backend-specific counters for the stats endpoint.
	Stats() map[string]any

	Close() error
}
