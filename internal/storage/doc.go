// Package storage declares the keyed bit-vector store contract consumed by
// the seats engine, including the per-key atomic execution guarantee the
// reserve operations rely on. Subpackages provide the Redis and embedded
// Pebble realizations.
package storage
