// Package bitvec implements the fixed-size occupancy bit vector backing a
// seat row: MSB-first bit addressing compatible with the Redis string bitmap
// layout, plus the first-fit window scan used by block reservation.
package bitvec
