package ustr

import (
	"errors"
	"testing"

	"github.com/dshills/charstr/internal/engine/codec"
)

func TestOffsetCacheForwardResume(t *testing.T) {
	buf := []byte("a€b🎉c")
	var c OffsetCache

	off, err := c.Resolve(buf, 2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if off != 4 {
		t.Errorf("expected offset 4, got %d", off)
	}
	if c.Index() != 2 || c.Offset() != 4 {
		t.Errorf("cache should hold (2, 4), got (%d, %d)", c.Index(), c.Offset())
	}

	off, _ = c.Resolve(buf, 4)
	if off != 9 {
		t.Errorf("expected offset 9, got %d", off)
	}

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 0 {
		t.Errorf("expected 2 hits/0 misses, got %+v", stats)
	}
	if stats.Steps != 4 {
		t.Errorf("expected 4 steps, got %d", stats.Steps)
	}
}

func TestOffsetCacheBackwardRescans(t *testing.T) {
	buf := []byte("abcdef")
	var c OffsetCache

	_, _ = c.Resolve(buf, 5)
	off, _ := c.Resolve(buf, 1)

	if off != 1 {
		t.Errorf("expected offset 1, got %d", off)
	}
	stats := c.Stats()
	if stats.Misses != 1 {
		t.Errorf("expected 1 miss, got %d", stats.Misses)
	}
	if stats.Steps != 6 {
		t.Errorf("expected 5+1 steps, got %d", stats.Steps)
	}
}

func TestOffsetCachePeekHasNoSideEffects(t *testing.T) {
	buf := []byte("a€b")
	var c OffsetCache
	_, _ = c.Resolve(buf, 1)
	before := c

	off, err := c.Peek(buf, 2)
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if off != 4 {
		t.Errorf("expected offset 4, got %d", off)
	}
	if c != before {
		t.Errorf("Peek modified the cache: %+v -> %+v", before, c)
	}

	off, _ = c.Peek(buf, 0)
	if off != 0 {
		t.Errorf("expected offset 0, got %d", off)
	}
}

func TestOffsetCacheErrors(t *testing.T) {
	var c OffsetCache

	if _, err := c.Resolve([]byte("ab"), 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := c.Resolve([]byte("ab"), -1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}

	// A continuation byte must fail rather than be used as a zero-width step.
	_, err := c.Resolve([]byte{'a', 0x82, 'b'}, 2)
	if !errors.Is(err, ErrInvalidUTF8) || !errors.Is(err, codec.ErrInvalidLeadByte) {
		t.Errorf("expected ErrInvalidUTF8 wrapping ErrInvalidLeadByte, got %v", err)
	}

	_, err = c.Resolve([]byte{'a', 0xE2, 0x82}, 2)
	if !errors.Is(err, codec.ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}

	if c.Index() != 0 || c.Offset() != 0 {
		t.Error("failed lookups must not move the cache")
	}
}

func TestOffsetCacheAdjust(t *testing.T) {
	tests := []struct {
		name                  string
		index, offset         int
		pos, posOff           int
		oldChars, oldBytes    int
		newChars, newBytes    int
		wantIndex, wantOffset int
	}{
		{"edit after cache", 2, 4, 3, 5, 1, 1, 2, 6, 2, 4},
		{"edit at cache", 2, 4, 2, 4, 1, 3, 1, 1, 2, 4},
		{"insert before cache", 5, 7, 1, 1, 0, 0, 2, 4, 7, 11},
		{"erase before cache", 5, 7, 1, 1, 2, 4, 0, 0, 3, 3},
		{"erase covering cache", 5, 7, 3, 3, 4, 6, 0, 0, 3, 3},
		{"replace covering cache", 5, 7, 4, 4, 3, 5, 1, 1, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := OffsetCache{index: tt.index, offset: tt.offset}
			c.Adjust(tt.pos, tt.posOff, tt.oldChars, tt.oldBytes, tt.newChars, tt.newBytes)
			if c.Index() != tt.wantIndex || c.Offset() != tt.wantOffset {
				t.Errorf("got (%d, %d), want (%d, %d)", c.Index(), c.Offset(), tt.wantIndex, tt.wantOffset)
			}
		})
	}
}

func TestSequentialAccessIsAmortizedConstant(t *testing.T) {
	s := MustFromString("ünïcödé tëxt wïth mäny äccénts")
	n := s.Length()

	for i := 0; i < n; i++ {
		if _, err := s.Get(i); err != nil {
			t.Fatalf("Get(%d) failed: %v", i, err)
		}
	}

	stats := s.Cache().Stats()
	if stats.Misses != 0 {
		t.Errorf("forward access should never rescan, got %d misses", stats.Misses)
	}
	if stats.Steps != n-1 {
		t.Errorf("expected %d total steps, got %d", n-1, stats.Steps)
	}
}

func TestCursorIterationIsAmortizedConstant(t *testing.T) {
	s := MustFromString("αβγδεζηθικλμνξοπρστυφχψω")
	n := 0
	for range s.All() {
		n++
	}

	if n != 24 {
		t.Fatalf("expected 24 characters, got %d", n)
	}
	if steps := s.Cache().Stats().Steps; steps != n-1 {
		t.Errorf("expected %d steps, got %d", n-1, steps)
	}
}

func TestPeekOffsetLeavesStringCache(t *testing.T) {
	s := MustFromString("a€b")
	_, _ = s.ByteOffset(1)

	off, err := s.PeekOffset(2)
	if err != nil || off != 4 {
		t.Fatalf("PeekOffset(2) = %d, %v", off, err)
	}
	if s.Cache().Index() != 1 {
		t.Errorf("PeekOffset must not move the cache, index is %d", s.Cache().Index())
	}
}

func TestCacheStaysValidAcrossEdits(t *testing.T) {
	s := MustFromString("a€b🎉c")
	_, _ = s.ByteOffset(4)

	// Widen a character before the cached index.
	if err := s.Set(0, ch(0x1F600)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	assertCacheConsistent(t, s)

	_, _ = s.ByteOffset(4)
	if err := s.Erase(1, 2); err != nil {
		t.Fatalf("Erase failed: %v", err)
	}
	assertCacheConsistent(t, s)

	_, _ = s.ByteOffset(2)
	if err := s.PushFront(ch(0xE9)); err != nil {
		t.Fatalf("PushFront failed: %v", err)
	}
	assertCacheConsistent(t, s)
}

// assertCacheConsistent checks the cached pair against a fresh scan.
func assertCacheConsistent(t *testing.T, s *String) {
	t.Helper()
	c := s.Cache()

	var fresh OffsetCache
	want, err := fresh.Resolve(s.Data(), c.Index())
	if err != nil {
		t.Fatalf("cached index %d no longer resolves: %v", c.Index(), err)
	}
	if want != c.Offset() {
		t.Errorf("cache (%d, %d) is stale, expected offset %d", c.Index(), c.Offset(), want)
	}

	n, _ := codec.Count(s.Data())
	if s.Length() != n {
		t.Errorf("count cache %d is stale, expected %d", s.Length(), n)
	}
}
