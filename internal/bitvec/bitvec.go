package bitvec

import "math/bits"

// Bit addressing matches Redis SETBIT/GETBIT: bit i lives in byte i/8 with
// the most significant bit first (mask 0x80 >> i%8). Row images written by
// the embedded store are therefore byte-identical to the Redis layout.

// SizeBytes returns the number of bytes needed to hold n bits.
func SizeBytes(n int) int {
	return (n + 7) / 8
}

// Get reports whether bit i is set. Bits beyond len(buf)*8 read as 0.
func Get(buf []byte, i int) bool {
	idx := i / 8
	if idx >= len(buf) {
		return false
	}
	return buf[idx]&(0x80>>(uint(i)%8)) != 0
}

// Set sets bit i to 1. The buffer must be large enough.
func Set(buf []byte, i int) {
	buf[i/8] |= 0x80 >> (uint(i) % 8)
}

// Count returns the number of set bits in buf.
func Count(buf []byte) int {
	n := 0
	for _, b := range buf {
		n += bits.OnesCount8(b)
	}
	return n
}

// RangeFree reports whether every bit in [start, start+count) is 0.
func RangeFree(buf []byte, start, count int) bool {
	for i := start; i < start+count; i++ {
		if Get(buf, i) {
			return false
		}
	}
	return true
}

// SetRange sets every bit in [start, start+count) to 1.
func SetRange(buf []byte, start, count int) {
	for i := start; i < start+count; i++ {
		Set(buf, i)
	}
}

// FirstFit scans start offsets 0..size-count in ascending order and returns
// the lowest offset whose count-bit window is entirely free, or -1 when no
// such window exists. The scan skips past a blocking set bit rather than
// advancing one offset at a time.
func FirstFit(buf []byte, size, count int) int {
	if count <= 0 || count > size {
		return -1
	}
	start := 0
	for start <= size-count {
		blocked := -1
		for i := start; i < start+count; i++ {
			if Get(buf, i) {
				blocked = i
				break
			}
		}
		if blocked < 0 {
			return start
		}
		start = blocked + 1
	}
	return -1
}
