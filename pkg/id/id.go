package id

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"sync"
	"time"
)

// ID is a 128-bit identifier encoded as 16 bytes big-endian:
// [8 bytes ms_timestamp][8 bytes sequence]. Byte-wise comparison
// preserves generation order.
type ID [16]byte

// String returns the id as a 32-character lowercase hex string.
func (i ID) String() string { return hex.EncodeToString(i[:]) }

// Less reports whether i was generated before other.
func (i ID) Less(other ID) bool {
	for idx := 0; idx < 16; idx++ {
		if i[idx] != other[idx] {
			return i[idx] < other[idx]
		}
	}
	return false
}

// Generator produces monotonically increasing IDs per process.
type Generator struct {
	mu     sync.Mutex
	lastMs int64
	seq    uint64
}

func NewGenerator() *Generator { return &Generator{} }

// nowMs is swapped out in tests.
var nowMs = func() int64 { return time.Now().UnixMilli() }

// Next returns a new ID. A regressing clock pins to the last seen
// millisecond; a sequence overflow within one millisecond waits for
// the next millisecond.
func (g *Generator) Next() ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := nowMs()
	if ms < g.lastMs {
		ms = g.lastMs
	}
	switch {
	case ms > g.lastMs:
		g.seq = 0
	case g.seq == math.MaxUint64:
		for ms <= g.lastMs {
			time.Sleep(time.Millisecond / 8)
			ms = nowMs()
		}
		g.seq = 0
	default:
		g.seq++
	}
	g.lastMs = ms

	var out ID
	binary.BigEndian.PutUint64(out[0:8], uint64(ms))
	binary.BigEndian.PutUint64(out[8:16], g.seq)
	return out
}
