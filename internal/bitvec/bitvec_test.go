package bitvec

import "testing"

func TestSizeBytes(t *testing.T) {
	cases := map[int]int{1: 1, 8: 1, 9: 2, 64: 8, 65: 9}
	for bits, want := range cases {
		if got := SizeBytes(bits); got != want {
			t.Fatalf("SizeBytes(%d) = %d, want %d", bits, got, want)
		}
	}
}

func TestSetGetRedisBitOrder(t *testing.T) {
	buf := make([]byte, 2)
	Set(buf, 0)
	if buf[0] != 0x80 {
		t.Fatalf("bit 0 should be MSB of byte 0, got %#x", buf[0])
	}
	Set(buf, 9)
	if buf[1] != 0x40 {
		t.Fatalf("bit 9 should be second MSB of byte 1, got %#x", buf[1])
	}
	if !Get(buf, 0) || !Get(buf, 9) || Get(buf, 1) {
		t.Fatalf("get mismatch: % x", buf)
	}
	// Reads past the buffer are free.
	if Get(buf, 100) {
		t.Fatalf("out-of-buffer bit read as set")
	}
}

func TestCount(t *testing.T) {
	buf := make([]byte, 9)
	if Count(buf) != 0 {
		t.Fatalf("empty buf count != 0")
	}
	SetRange(buf, 3, 5)
	if got := Count(buf); got != 5 {
		t.Fatalf("count = %d, want 5", got)
	}
	Set(buf, 64)
	if got := Count(buf); got != 6 {
		t.Fatalf("count = %d, want 6", got)
	}
}

func TestRangeFree(t *testing.T) {
	buf := make([]byte, 9)
	Set(buf, 10)
	if !RangeFree(buf, 0, 10) {
		t.Fatalf("[0,10) should be free")
	}
	if RangeFree(buf, 8, 3) {
		t.Fatalf("[8,11) contains bit 10")
	}
}

func TestFirstFitEmptyRow(t *testing.T) {
	buf := make([]byte, 9)
	for _, count := range []int{1, 5, 65} {
		if got := FirstFit(buf, 65, count); got != 0 {
			t.Fatalf("first fit on empty row for count %d = %d, want 0", count, got)
		}
	}
}

func TestFirstFitSequential(t *testing.T) {
	// Four sequential count=3 reservations land at 0,3,6,9.
	buf := make([]byte, 9)
	for _, want := range []int{0, 3, 6, 9} {
		got := FirstFit(buf, 65, 3)
		if got != want {
			t.Fatalf("first fit = %d, want %d", got, want)
		}
		SetRange(buf, got, 3)
	}
	// 53 free bits remain but never 60 contiguous.
	if got := FirstFit(buf, 65, 60); got != -1 {
		t.Fatalf("expected no fit for count 60, got %d", got)
	}
}

func TestFirstFitSkipsFragments(t *testing.T) {
	buf := make([]byte, 9)
	Set(buf, 1)
	Set(buf, 4)
	// Windows starting at 0..4 all hit an occupied bit; 5 is the first fit.
	if got := FirstFit(buf, 65, 3); got != 5 {
		t.Fatalf("first fit = %d, want 5", got)
	}
}

func TestFirstFitFullRow(t *testing.T) {
	buf := make([]byte, 1)
	SetRange(buf, 0, 8)
	if got := FirstFit(buf, 8, 1); got != -1 {
		t.Fatalf("full row should not fit, got %d", got)
	}
}

func TestFirstFitBadCount(t *testing.T) {
	buf := make([]byte, 1)
	if FirstFit(buf, 8, 0) != -1 || FirstFit(buf, 8, 9) != -1 {
		t.Fatalf("invalid counts should return -1")
	}
}
