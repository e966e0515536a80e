package pebblestore

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/rzbill/usher/internal/bitvec"
	"github.com/rzbill/usher/internal/storage"
)

// FsyncMode defines durability behavior for write operations.
type FsyncMode int

const (
	FsyncModeUnspecified FsyncMode = iota
	// FsyncModeAlways requests a WAL fsync on each committed batch.
	FsyncModeAlways
	// FsyncModeInterval enables group-commit by allowing Pebble to coalesce
	// WAL syncs for operations within the configured interval.
	FsyncModeInterval
	// FsyncModeNever avoids forcing WAL syncs from the application. Pebble
	// may still sync based on its own policies.
	FsyncModeNever
)

// Options configures the embedded Pebble row store.
type Options struct {
	// DataDir is the path to the Pebble database directory.
	DataDir string
	// Fsync determines when to sync the WAL.
	Fsync FsyncMode
	// FsyncInterval controls group-commit when Fsync=FsyncModeInterval.
	FsyncInterval time.Duration
}

// lockStripes is the number of row locks. Two rows hashing to the same
// stripe serialize against each other, which is harmless: the contract only
// requires that operations on the same row never interleave.
const lockStripes = 256

// Store implements storage.RowStore on an embedded Pebble database, one
// value per row. Per-row atomicity comes from striped mutexes around the
// read-modify-write, so this backend serializes rows within a single
// process; it is the single-instance counterpart to the Redis backend.
type Store struct {
	db        *pebble.DB
	writeSync bool
	locks     [lockStripes]sync.Mutex
}

var _ storage.RowStore = (*Store)(nil)

// Open creates or opens the Pebble database at opts.DataDir.
func Open(opts Options) (*Store, error) {
	if opts.DataDir == "" {
		return nil, errors.New("pebble: Options.DataDir is required")
	}

	po := &pebble.Options{}
	switch opts.Fsync {
	case FsyncModeAlways:
		// WriteOptions{Sync:true} on each commit; no group-commit window.
	case FsyncModeInterval:
		if opts.FsyncInterval <= 0 {
			opts.FsyncInterval = 5 * time.Millisecond
		}
		interval := opts.FsyncInterval
		po.WALMinSyncInterval = func() time.Duration { return interval }
	case FsyncModeNever:
	default:
		po.WALMinSyncInterval = func() time.Duration { return 5 * time.Millisecond }
	}

	db, err := pebble.Open(opts.DataDir, po)
	if err != nil {
		return nil, fmt.Errorf("%w: pebble open: %v", storage.ErrUnavailable, err)
	}
	return &Store{db: db, writeSync: opts.Fsync == FsyncModeAlways}, nil
}

func (s *Store) lock(key string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(key))
	return &s.locks[h.Sum32()%lockStripes]
}

// readRow returns a copy of the row's bytes sized for size bits. Missing
// rows read as all-zero; short rows (from a later size increase) are padded.
func (s *Store) readRow(key string, size int) ([]byte, error) {
	want := bitvec.SizeBytes(size)
	val, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return make([]byte, want), nil
		}
		return nil, fmt.Errorf("%w: pebble get %s: %v", storage.ErrUnavailable, key, err)
	}
	defer closer.Close()
	buf := make([]byte, want)
	copy(buf, val)
	return buf, nil
}

func (s *Store) writeRow(key string, buf []byte) error {
	b := s.db.NewBatch()
	defer b.Close()
	if err := b.Set([]byte(key), buf, nil); err != nil {
		return fmt.Errorf("%w: pebble set %s: %v", storage.ErrUnavailable, key, err)
	}
	return s.commit(b)
}

func (s *Store) commit(b *pebble.Batch) error {
	syncMode := pebble.NoSync
	if s.writeSync {
		syncMode = pebble.Sync
	}
	if err := b.Commit(syncMode); err != nil {
		return fmt.Errorf("%w: pebble commit: %v", storage.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) EnsureRow(ctx context.Context, key string, size int) error {
	mu := s.lock(key)
	mu.Lock()
	defer mu.Unlock()

	_, closer, err := s.db.Get([]byte(key))
	if err == nil {
		closer.Close()
		return nil
	}
	if !errors.Is(err, pebble.ErrNotFound) {
		return fmt.Errorf("%w: pebble get %s: %v", storage.ErrUnavailable, key, err)
	}
	return s.writeRow(key, make([]byte, bitvec.SizeBytes(size)))
}

func (s *Store) ReserveFirstFree(ctx context.Context, key string, size, count int) (int, error) {
	mu := s.lock(key)
	mu.Lock()
	defer mu.Unlock()

	buf, err := s.readRow(key, size)
	if err != nil {
		return storage.NoSlot, err
	}
	start := bitvec.FirstFit(buf, size, count)
	if start < 0 {
		return storage.NoSlot, nil
	}
	bitvec.SetRange(buf, start, count)
	if err := s.writeRow(key, buf); err != nil {
		return storage.NoSlot, err
	}
	return start, nil
}

func (s *Store) ReserveRange(ctx context.Context, key string, size, start, count int) (int, error) {
	mu := s.lock(key)
	mu.Lock()
	defer mu.Unlock()

	buf, err := s.readRow(key, size)
	if err != nil {
		return storage.NoSlot, err
	}
	if !bitvec.RangeFree(buf, start, count) {
		return storage.NoSlot, nil
	}
	bitvec.SetRange(buf, start, count)
	if err := s.writeRow(key, buf); err != nil {
		return storage.NoSlot, err
	}
	return start, nil
}

func (s *Store) CountRow(ctx context.Context, key string) (int, error) {
	val, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: pebble get %s: %v", storage.ErrUnavailable, key, err)
	}
	defer closer.Close()
	return bitvec.Count(val), nil
}

// CountRows reads every row from one snapshot so the aggregate sees a
// consistent point-in-time view of this instance's store.
func (s *Store) CountRows(ctx context.Context, keys []string) ([]int, error) {
	snap := s.db.NewSnapshot()
	defer snap.Close()

	counts := make([]int, len(keys))
	for i, key := range keys {
		val, closer, err := snap.Get([]byte(key))
		if err != nil {
			if errors.Is(err, pebble.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("%w: pebble snapshot get %s: %v", storage.ErrUnavailable, key, err)
		}
		counts[i] = bitvec.Count(val)
		closer.Close()
	}
	return counts, nil
}

func (s *Store) DeleteRows(ctx context.Context, keys []string) error {
	b := s.db.NewBatch()
	defer b.Close()
	for _, key := range keys {
		if err := b.Delete([]byte(key), nil); err != nil {
			return fmt.Errorf("%w: pebble delete %s: %v", storage.ErrUnavailable, key, err)
		}
	}
	return s.commit(b)
}

func (s *Store) Ping(ctx context.Context) error {
	it, err := s.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("%w: pebble iter: %v", storage.ErrUnavailable, err)
	}
	return it.Close()
}

func (s *Store) Stats() map[string]any {
	m := s.db.Metrics()
	return map[string]any{
		"backend":        "pebble",
		"disk_space":     m.DiskSpaceUsage(),
		"wal_bytes":      m.WAL.BytesWritten,
		"memtable_bytes": m.MemTable.Size,
		"read_amp":       m.ReadAmp(),
		"compactions":    m.Compact.Count,
		"flushes":        m.Flush.Count,
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}
