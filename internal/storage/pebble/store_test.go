package pebblestore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rzbill/usher/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(Options{
		DataDir:       dir,
		Fsync:         FsyncModeInterval,
		FsyncInterval: 2 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestEnsureRowIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := "seats:1:1:1"
	if err := s.EnsureRow(ctx, key, 65); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if _, err := s.ReserveRange(ctx, key, 65, 64, 1); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := s.EnsureRow(ctx, key, 65); err != nil {
		t.Fatalf("re-ensure: %v", err)
	}
	n, err := s.CountRow(ctx, key)
	if err != nil || n != 1 {
		t.Fatalf("count = %d (%v), want 1 after re-init", n, err)
	}
}

func TestReserveFirstFreeSequence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := "seats:1:2:3"
	if err := s.EnsureRow(ctx, key, 65); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	for _, want := range []int{0, 3, 6, 9} {
		got, err := s.ReserveFirstFree(ctx, key, 65, 3)
		if err != nil {
			t.Fatalf("reserve: %v", err)
		}
		if got != want {
			t.Fatalf("start = %d, want %d", got, want)
		}
	}
	got, err := s.ReserveFirstFree(ctx, key, 65, 60)
	if err != nil {
		t.Fatalf("reserve 60: %v", err)
	}
	if got != storage.NoSlot {
		t.Fatalf("expected NoSlot, got %d", got)
	}
}

func TestReserveRangeConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := "seats:1:1:1"
	if got, err := s.ReserveRange(ctx, key, 65, 10, 3); err != nil || got != 10 {
		t.Fatalf("reserve: %d, %v", got, err)
	}
	got, err := s.ReserveRange(ctx, key, 65, 12, 4)
	if err != nil {
		t.Fatalf("reserve overlap: %v", err)
	}
	if got != storage.NoSlot {
		t.Fatalf("expected NoSlot on conflict, got %d", got)
	}
	n, _ := s.CountRow(ctx, key)
	if n != 3 {
		t.Fatalf("count = %d, want 3 (no partial write)", n)
	}
}

func TestConcurrentReservesNeverOverlap(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := "seats:1:4:12"
	const size, count, callers = 65, 5, 40

	var wg sync.WaitGroup
	starts := make(chan int, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.ReserveFirstFree(ctx, key, size, count)
			if err != nil {
				t.Errorf("reserve: %v", err)
				return
			}
			starts <- got
		}()
	}
	wg.Wait()
	close(starts)

	wins := 0
	seen := map[int]bool{}
	for got := range starts {
		if got == storage.NoSlot {
			continue
		}
		wins++
		for i := got; i < got+count; i++ {
			if seen[i] {
				t.Fatalf("seat %d double-booked", i)
			}
			seen[i] = true
		}
	}
	// 65/5 = 13 blocks fit; everyone else gets NoSlot.
	if wins != 13 {
		t.Fatalf("winners = %d, want 13", wins)
	}
	n, _ := s.CountRow(ctx, key)
	if n != 65 {
		t.Fatalf("count = %d, want 65", n)
	}
}

func TestCountRowsSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	keys := []string{"seats:1:1:1", "seats:1:1:2", "seats:1:1:3"}
	if _, err := s.ReserveFirstFree(ctx, keys[0], 65, 4); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, err := s.ReserveRange(ctx, keys[2], 65, 60, 2); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	counts, err := s.CountRows(ctx, keys)
	if err != nil {
		t.Fatalf("count rows: %v", err)
	}
	want := []int{4, 0, 2}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("counts = %v, want %v", counts, want)
		}
	}
}

func TestDeleteRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	keys := []string{"seats:1:1:1", "seats:1:1:2"}
	for _, k := range keys {
		if _, err := s.ReserveFirstFree(ctx, k, 65, 1); err != nil {
			t.Fatalf("reserve: %v", err)
		}
	}
	if err := s.DeleteRows(ctx, keys); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, k := range keys {
		n, err := s.CountRow(ctx, k)
		if err != nil || n != 0 {
			t.Fatalf("count after delete = %d (%v)", n, err)
		}
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(Options{DataDir: dir, Fsync: FsyncModeAlways})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	if _, err := s.ReserveFirstFree(ctx, "seats:1:1:1", 65, 5); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := Open(Options{DataDir: dir, Fsync: FsyncModeAlways})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	n, err := s2.CountRow(ctx, "seats:1:1:1")
	if err != nil || n != 5 {
		t.Fatalf("count after reopen = %d (%v), want 5", n, err)
	}
}
