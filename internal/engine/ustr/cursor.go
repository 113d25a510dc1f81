package ustr

import (
	"github.com/dshills/charstr/internal/engine/char"
)

// Cursor is a random-access position over the characters of a String.
//
// A Cursor moves in character steps only; byte translation happens in the
// String when the Cursor is dereferenced. Cursors are values: movement
// methods return a new Cursor and leave the receiver unchanged.
//
// Walking forward one step at a time costs amortized O(1) per step because
// each dereference resumes from the String's offset cache. Walking backward
// rescans from the start on every dereference.
type Cursor struct {
	ref Ref
}

// Begin returns a Cursor at the first character.
func (s *String) Begin() Cursor {
	return Cursor{ref: Ref{s: s, idx: 0}}
}

// End returns a Cursor one past the last character (index Length).
func (s *String) End() Cursor {
	return Cursor{ref: Ref{s: s, idx: s.Length()}}
}

// CursorAt returns a Cursor at idx.
func (s *String) CursorAt(idx int) Cursor {
	return Cursor{ref: Ref{s: s, idx: idx}}
}

// Index returns the character index.
func (c Cursor) Index() int {
	return c.ref.idx
}

// Ref returns the handle for the current position.
func (c Cursor) Ref() Ref {
	return c.ref
}

// Valid reports whether the Cursor points at an existing character.
func (c Cursor) Valid() bool {
	return c.ref.s != nil && c.ref.idx >= 0 && c.ref.idx < c.ref.s.Length()
}

// Next returns a Cursor one character forward.
func (c Cursor) Next() Cursor {
	return c.Add(1)
}

// Prev returns a Cursor one character back.
func (c Cursor) Prev() Cursor {
	return c.Add(-1)
}

// Add returns a Cursor k characters forward (backward for negative k).
func (c Cursor) Add(k int) Cursor {
	return Cursor{ref: Ref{s: c.ref.s, idx: c.ref.idx + k}}
}

// Sub returns a Cursor k characters back.
func (c Cursor) Sub(k int) Cursor {
	return c.Add(-k)
}

// Distance returns the number of characters from other to c.
func (c Cursor) Distance(other Cursor) int {
	return c.ref.idx - other.ref.idx
}

// Compare returns -1, 0 or 1 ordering c and other by index.
// The owning String is not considered.
func (c Cursor) Compare(other Cursor) int {
	switch {
	case c.ref.idx < other.ref.idx:
		return -1
	case c.ref.idx > other.ref.idx:
		return 1
	default:
		return 0
	}
}

// Less reports whether c comes before other.
func (c Cursor) Less(other Cursor) bool {
	return c.ref.idx < other.ref.idx
}

// Equal reports whether c and other point at the same index of the same
// String.
func (c Cursor) Equal(other Cursor) bool {
	return c.ref.s == other.ref.s && c.ref.idx == other.ref.idx
}

// Get decodes the character under the Cursor.
func (c Cursor) Get() (char.Character, error) {
	return c.ref.Get()
}

// Set overwrites the character under the Cursor.
func (c Cursor) Set(ch char.Character) error {
	return c.ref.Set(ch)
}

// At decodes the character k positions away, i.e. c.Add(k).Get().
func (c Cursor) At(k int) (char.Character, error) {
	return c.Add(k).Get()
}
