// Package pebblestore implements the row store on an embedded Pebble
// database with fsync policy and per-row striped locking. Row images use
// the same bit layout as the Redis backend, so the two are interchangeable
// for a single-instance deployment; multi-instance deployments need the
// Redis backend for cross-process atomicity.
package pebblestore
