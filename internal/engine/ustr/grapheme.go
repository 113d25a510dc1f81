package ustr

import (
	"github.com/rivo/uniseg"
)

// GraphemeCount returns the number of user-perceived characters (extended
// grapheme clusters). It can be smaller than Length, e.g. for "e" followed
// by a combining accent.
func (s *String) GraphemeCount() int {
	if len(s.buf) == 0 {
		return 0
	}
	return uniseg.GraphemeClusterCount(string(s.buf))
}

// Graphemes returns the grapheme clusters in order.
func (s *String) Graphemes() []string {
	if len(s.buf) == 0 {
		return nil
	}
	g := uniseg.NewGraphemes(string(s.buf))
	out := make([]string, 0, s.Length())
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Width returns the monospace display width in cells.
func (s *String) Width() int {
	return uniseg.StringWidth(string(s.buf))
}
