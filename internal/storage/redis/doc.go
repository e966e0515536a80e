// Package redisstore implements the row store on Redis string bitmaps, one
// key per row. Reservation runs server-side as Lua scripts, which gives the
// per-key atomic execution the engine requires across any number of service
// instances sharing the same Redis. Occupancy counts use BITCOUNT, and
// aggregate reads issue one pipeline instead of a round trip per row.
package redisstore
