// Package seatsvc implements the seat allocation engine: first-fit
// contiguous block reservation, exact-position reservation, row and
// inventory-wide occupancy reads, and inventory lifecycle (idempotent
// initialize, reset).
//
// Correctness rests on the row store's per-key atomic execution: a reserve
// call's read-then-write sequence is serialized against every other call on
// the same row, so two concurrent callers can never be handed overlapping
// seats. Rows are independent and never contend with each other.
//
// A full row is not an error. Reserve operations return the NoSeat sentinel
// and a nil error when no capacity exists; only validation failures and
// store faults produce errors.
//
// Example:
//
//	svc := seatsvc.New(rt)
//	_, _ = svc.InitializeAll(ctx)
//	start, err := svc.ReserveBlock(ctx, 4, 12, 3)
//	if err == nil && start != seatsvc.NoSeat {
//	    // seats [start, start+3) in zone 4 row 12 are ours
//	}
package seatsvc
