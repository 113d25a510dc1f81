package ustr

import (
	"github.com/dshills/charstr/internal/engine/char"
	"github.com/dshills/charstr/internal/engine/codec"
)

// Ref is an assignable handle to the character at one index of a String.
// It defers decoding until Get and re-encoding until Set, and resolves the
// index through the String on every call.
type Ref struct {
	s   *String
	idx int
}

// At returns a Ref to the character at idx. The index is not checked until
// the Ref is used.
func (s *String) At(idx int) Ref {
	return Ref{s: s, idx: idx}
}

// Index returns the character index the Ref points at.
func (r Ref) Index() int {
	return r.idx
}

// Owner returns the String the Ref points into.
func (r Ref) Owner() *String {
	return r.s
}

// Get decodes the referenced character.
func (r Ref) Get() (char.Character, error) {
	return r.s.Get(r.idx)
}

// Codepoint returns the referenced character's codepoint.
func (r Ref) Codepoint() (codec.Codepoint, error) {
	return r.s.Codepoint(r.idx)
}

// Set overwrites the referenced character.
func (r Ref) Set(c char.Character) error {
	return r.s.Set(r.idx, c)
}

// SetCodepoint encodes cp and overwrites the referenced character.
func (r Ref) SetCodepoint(cp codec.Codepoint) error {
	c, err := char.FromCodepoint(cp)
	if err != nil {
		return err
	}
	return r.s.Set(r.idx, c)
}

// String returns the referenced character as text, or "" if the index is
// out of range.
func (r Ref) String() string {
	c, err := r.Get()
	if err != nil {
		return ""
	}
	return c.String()
}
