package ustr

import (
	"errors"
	"testing"

	"github.com/dshills/charstr/internal/engine/codec"
)

func TestCursorWalkForwardAndBack(t *testing.T) {
	s := MustFromString("a€b🎉")
	want := []codec.Codepoint{'a', 0x20AC, 'b', 0x1F389}

	i := 0
	for c := s.Begin(); c.Less(s.End()); c = c.Next() {
		got, err := c.Get()
		if err != nil {
			t.Fatalf("Get at %d failed: %v", c.Index(), err)
		}
		if got.Decode() != want[i] {
			t.Errorf("index %d: got %#v, want U+%04X", i, got, want[i])
		}
		i++
	}

	i = len(want) - 1
	for c := s.End().Prev(); !c.Less(s.Begin()); c = c.Prev() {
		got, _ := c.Get()
		if got.Decode() != want[i] {
			t.Errorf("backward index %d: got %#v, want U+%04X", i, got, want[i])
		}
		i--
	}
	if i != -1 {
		t.Errorf("backward walk stopped at %d", i)
	}
}

func TestCursorArithmetic(t *testing.T) {
	s := MustFromString("abcdef")
	begin := s.Begin()

	c := begin.Add(4)
	if c.Index() != 4 {
		t.Errorf("expected index 4, got %d", c.Index())
	}
	if c.Sub(3).Index() != 1 {
		t.Errorf("expected index 1, got %d", c.Sub(3).Index())
	}
	if c.Distance(begin) != 4 {
		t.Errorf("expected distance 4, got %d", c.Distance(begin))
	}
	if begin.Distance(c) != -4 {
		t.Errorf("expected distance -4, got %d", begin.Distance(c))
	}
	if s.End().Distance(begin) != s.Length() {
		t.Errorf("End-Begin should equal Length")
	}

	if begin.Index() != 0 {
		t.Error("arithmetic must not modify the receiver")
	}
}

func TestCursorIndexedAccess(t *testing.T) {
	s := MustFromString("x€y🎉z")
	c := s.CursorAt(1)

	for k := -1; k <= 3; k++ {
		got, err := c.At(k)
		if err != nil {
			t.Fatalf("At(%d) failed: %v", k, err)
		}
		direct, _ := c.Add(k).Get()
		if !got.Equal(direct) {
			t.Errorf("At(%d) = %#v, Add(%d).Get() = %#v", k, got, k, direct)
		}
	}

	if _, err := c.At(4); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestCursorCompareAndEqual(t *testing.T) {
	a := MustFromString("abc")
	b := MustFromString("abc")

	if !a.CursorAt(1).Equal(a.Begin().Next()) {
		t.Error("same string and index should be equal")
	}
	if a.CursorAt(1).Equal(b.CursorAt(1)) {
		t.Error("cursors into different strings must not be equal")
	}

	if a.CursorAt(0).Compare(a.CursorAt(2)) != -1 {
		t.Error("expected -1")
	}
	if a.CursorAt(2).Compare(a.CursorAt(0)) != 1 {
		t.Error("expected 1")
	}
	if a.CursorAt(2).Compare(b.CursorAt(2)) != 0 {
		t.Error("ordering considers the index only")
	}
}

func TestCursorSet(t *testing.T) {
	s := MustFromString("abc")

	for c := s.Begin(); c.Valid(); c = c.Next() {
		got, _ := c.Get()
		if err := c.Set(ch(got.Decode() + 0x20AC - 'a')); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if s.Text() != "€₭₮" {
		t.Errorf("expected %q, got %q", "€₭₮", s.Text())
	}
	if s.Length() != 3 {
		t.Errorf("expected length 3, got %d", s.Length())
	}
}

func TestCursorValid(t *testing.T) {
	s := MustFromString("ab")

	if !s.Begin().Valid() {
		t.Error("Begin of non-empty string should be valid")
	}
	if s.End().Valid() {
		t.Error("End should not be valid")
	}
	if s.Begin().Prev().Valid() {
		t.Error("before Begin should not be valid")
	}

	var zero Cursor
	if zero.Valid() {
		t.Error("zero Cursor should not be valid")
	}

	empty := MustFromString("")
	if !empty.Begin().Equal(empty.End()) {
		t.Error("Begin should equal End for an empty string")
	}
}

func TestRef(t *testing.T) {
	s := MustFromString("a€b")
	r := s.At(1)

	cp, err := r.Codepoint()
	if err != nil || cp != 0x20AC {
		t.Fatalf("Codepoint = U+%04X, %v", cp, err)
	}
	if r.String() != "€" {
		t.Errorf("expected %q, got %q", "€", r.String())
	}

	if err := r.SetCodepoint('x'); err != nil {
		t.Fatalf("SetCodepoint failed: %v", err)
	}
	if s.Text() != "axb" {
		t.Errorf("expected %q, got %q", "axb", s.Text())
	}

	// The Ref re-resolves after edits before its index.
	if err := s.PushFront(ch(0x1F600)); err != nil {
		t.Fatalf("PushFront failed: %v", err)
	}
	if r.String() != "a" {
		t.Errorf("expected Ref to see %q after prepend, got %q", "a", r.String())
	}

	if err := r.SetCodepoint(0xD800); !errors.Is(err, codec.ErrInvalidCodepoint) {
		t.Errorf("expected ErrInvalidCodepoint, got %v", err)
	}
	if s.At(10).String() != "" {
		t.Error("out of range Ref should render empty")
	}
	if r.Owner() != s || r.Index() != 1 {
		t.Error("Ref should report its owner and index")
	}
}

func TestCodepointsAndCharacters(t *testing.T) {
	s := MustFromString("a€b")

	var got []codec.Codepoint
	for i, cp := range s.Codepoints() {
		if i != len(got) {
			t.Errorf("unexpected index %d", i)
		}
		got = append(got, cp)
	}
	if len(got) != 3 || got[1] != 0x20AC {
		t.Errorf("unexpected codepoints %U", got)
	}

	cs := s.Characters()
	if len(cs) != 3 || cs[2].String() != "b" {
		t.Errorf("unexpected characters %v", cs)
	}

	n := 0
	for range s.All() {
		n++
		break
	}
	if n != 1 {
		t.Error("All must honor early exit")
	}
}
