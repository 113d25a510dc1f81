package ustr

import (
	"iter"

	"github.com/dshills/charstr/internal/engine/char"
	"github.com/dshills/charstr/internal/engine/codec"
)

// All yields every character with its index, front to back.
// Iteration stops early if the String is shortened underneath it.
func (s *String) All() iter.Seq2[int, char.Character] {
	return func(yield func(int, char.Character) bool) {
		for c := s.Begin(); c.Valid(); c = c.Next() {
			ch, err := c.Get()
			if err != nil {
				return
			}
			if !yield(c.Index(), ch) {
				return
			}
		}
	}
}

// Codepoints yields every decoded codepoint with its index.
func (s *String) Codepoints() iter.Seq2[int, codec.Codepoint] {
	return func(yield func(int, codec.Codepoint) bool) {
		for i, ch := range s.All() {
			if !yield(i, ch.Decode()) {
				return
			}
		}
	}
}

// Characters returns all characters as a slice.
func (s *String) Characters() []char.Character {
	out := make([]char.Character, 0, s.Length())
	for _, ch := range s.All() {
		out = append(out, ch)
	}
	return out
}
