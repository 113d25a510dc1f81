package ustr

import (
	"testing"
	"unicode/utf8"

	"github.com/dshills/charstr/internal/engine/char"
)

// FuzzGetMatchesRunes checks indexed reads against a []rune conversion.
func FuzzGetMatchesRunes(f *testing.F) {
	f.Add("")
	f.Add("hello")
	f.Add("a€b")
	f.Add("日本語")
	f.Add("emoji 🎉 test")

	f.Fuzz(func(t *testing.T, text string) {
		if !utf8.ValidString(text) {
			return
		}
		s, err := FromString(text)
		if err != nil {
			// utf8.ValidString and New accept the same inputs.
			t.Fatalf("FromString(%q) failed: %v", text, err)
		}

		runes := []rune(text)
		if s.Length() != len(runes) {
			t.Fatalf("length %d, want %d", s.Length(), len(runes))
		}

		// Forward, then backward, to exercise both cache paths.
		for i := range runes {
			c, err := s.Get(i)
			if err != nil || c.Decode() != runes[i] {
				t.Fatalf("Get(%d) = %#v, %v; want U+%04X", i, c, err, runes[i])
			}
		}
		for i := len(runes) - 1; i >= 0; i-- {
			cp, err := s.Codepoint(i)
			if err != nil || cp != runes[i] {
				t.Fatalf("Codepoint(%d) = U+%04X, %v; want U+%04X", i, cp, err, runes[i])
			}
		}
	})
}

// FuzzInsertErase checks that insert followed by erase restores the string.
func FuzzInsertErase(f *testing.F) {
	f.Add("hello", 0, int32('x'))
	f.Add("a€b", 1, int32(0x20AC))
	f.Add("", 0, int32(0x1F389))
	f.Add("日本語", 3, int32('z'))

	f.Fuzz(func(t *testing.T, text string, idx int, cp int32) {
		if !utf8.ValidString(text) {
			return
		}
		c, err := char.FromCodepoint(rune(cp))
		if err != nil {
			return
		}

		s := MustFromString(text)
		n := s.Length()
		idx = ((idx % (n + 1)) + n + 1) % (n + 1)

		if err := s.Insert(idx, c); err != nil {
			t.Fatalf("Insert(%d) failed: %v", idx, err)
		}
		if s.Length() != n+1 {
			t.Fatalf("length after insert %d, want %d", s.Length(), n+1)
		}
		got, err := s.Get(idx)
		if err != nil || !got.Equal(c) {
			t.Fatalf("Get(%d) after insert = %#v, %v", idx, got, err)
		}

		if err := s.Erase(idx, 1); err != nil {
			t.Fatalf("Erase(%d) failed: %v", idx, err)
		}
		if s.Text() != text || s.Length() != n {
			t.Fatalf("insert+erase gave %q (%d), want %q (%d)", s.Text(), s.Length(), text, n)
		}
	})
}

// FuzzSetKeepsLength checks that Set never changes the character count.
func FuzzSetKeepsLength(f *testing.F) {
	f.Add("a€b", 1, int32('x'))
	f.Add("xyz", 0, int32(0x10FFFF))

	f.Fuzz(func(t *testing.T, text string, idx int, cp int32) {
		if !utf8.ValidString(text) || text == "" {
			return
		}
		c, err := char.FromCodepoint(rune(cp))
		if err != nil {
			return
		}

		s := MustFromString(text)
		n := s.Length()
		idx = ((idx % n) + n) % n

		if err := s.Set(idx, c); err != nil {
			t.Fatalf("Set(%d) failed: %v", idx, err)
		}
		fresh, err := New(s.Data())
		if err != nil {
			t.Fatalf("Set produced malformed bytes: %v", err)
		}
		if fresh.Length() != n || s.Length() != n {
			t.Fatalf("length %d/%d after Set, want %d", s.Length(), fresh.Length(), n)
		}
	})
}
