package ustr

import (
	"bytes"
	"fmt"

	"github.com/dshills/charstr/internal/engine/char"
	"github.com/dshills/charstr/internal/engine/codec"
)

// Npos as a length means "through the end of the string".
const Npos = -1

// Set overwrites the character at idx with c.
// The byte widths may differ; the character count does not change.
func (s *String) Set(idx int, c char.Character) error {
	if c.IsZero() {
		return fmt.Errorf("set %d: %w", idx, ErrEmptyCharacter)
	}

	off, err := s.charOffset("set", idx)
	if err != nil {
		return err
	}

	oldLen := codec.ByteLength(s.buf[off])
	if oldLen == 0 {
		return fmt.Errorf("set %d: %w", idx, &EncodingError{Offset: off, Err: codec.ErrInvalidLeadByte})
	}
	if off+oldLen > len(s.buf) {
		return fmt.Errorf("set %d: %w", idx, &EncodingError{Offset: off, Err: codec.ErrTruncated})
	}
	s.splice(off, oldLen, c.AppendTo(nil))
	s.cache.Adjust(idx, off, 1, oldLen, 1, c.Len())
	return nil
}

// Insert inserts c before the character at idx. idx may equal Length to
// append.
func (s *String) Insert(idx int, c char.Character) error {
	if c.IsZero() {
		return fmt.Errorf("insert %d: %w", idx, ErrEmptyCharacter)
	}
	return s.insert("insert", idx, c.AppendTo(nil), 1)
}

// InsertString inserts the contents of other before the character at idx.
// other may be s itself.
func (s *String) InsertString(idx int, other *String) error {
	return s.insert("insert", idx, bytes.Clone(other.buf), other.Length())
}

// InsertBytes inserts raw bytes before the character at idx.
// p must be valid UTF-8. The character count becomes unknown and is
// recomputed on the next Length call.
func (s *String) InsertBytes(idx int, p []byte) error {
	if pos := codec.Validate(p); pos >= 0 {
		return fmt.Errorf("insert %d: %w", idx, &EncodingError{Offset: pos})
	}
	return s.insert("insert", idx, bytes.Clone(p), -1)
}

// PushBack appends c.
func (s *String) PushBack(c char.Character) error {
	if c.IsZero() {
		return fmt.Errorf("push back: %w", ErrEmptyCharacter)
	}
	s.buf = c.AppendTo(s.buf)
	s.count.add(1)
	return nil
}

// PushFront prepends c. This shifts every byte of the buffer.
func (s *String) PushFront(c char.Character) error {
	if c.IsZero() {
		return fmt.Errorf("push front: %w", ErrEmptyCharacter)
	}
	return s.insert("push front", 0, c.AppendTo(nil), 1)
}

// Append appends the contents of other. other may be s itself.
func (s *String) Append(other *String) {
	n := other.Length()
	s.buf = append(s.buf, other.buf...)
	s.count.add(n)
}

// Erase removes n characters starting at pos. n is clamped to the end of
// the string; Npos erases everything from pos.
func (s *String) Erase(pos, n int) error {
	oldChars, err := s.span("erase", pos, n)
	if err != nil {
		return err
	}
	return s.replaceSpan("erase", pos, oldChars, nil, 0)
}

// Replace replaces n characters starting at pos with the contents of other.
// n is clamped like Erase. other may be s itself.
func (s *String) Replace(pos, n int, other *String) error {
	return s.ReplaceSub(pos, n, other, 0, Npos)
}

// ReplaceSub replaces n characters starting at pos with the sublen
// characters of other starting at subpos. Both lengths are clamped to the
// end of their string and accept Npos.
func (s *String) ReplaceSub(pos, n int, other *String, subpos, sublen int) error {
	oldChars, err := s.span("replace", pos, n)
	if err != nil {
		return err
	}
	newChars, err := other.span("replace source", subpos, sublen)
	if err != nil {
		return err
	}

	// Slice the source before touching s so that other may alias s.
	from, err := other.PeekOffset(subpos)
	if err != nil {
		return err
	}
	to, err := other.PeekOffset(subpos + newChars)
	if err != nil {
		return err
	}
	repl := bytes.Clone(other.buf[from:to])

	return s.replaceSpan("replace", pos, oldChars, repl, newChars)
}

// span validates pos and returns n clamped to the characters available.
func (s *String) span(op string, pos, n int) (int, error) {
	length := s.Length()
	if pos < 0 || pos > length {
		return 0, &IndexError{Op: op, Index: pos, Length: length}
	}
	if n < 0 && n != Npos {
		return 0, fmt.Errorf("%s: length %d: %w", op, n, ErrRangeInvalid)
	}
	if n == Npos || n > length-pos {
		n = length - pos
	}
	return n, nil
}

// insert splices p in at character idx. chars is the number of characters
// in p, or -1 when unknown.
func (s *String) insert(op string, idx int, p []byte, chars int) error {
	if idx < 0 {
		return &IndexError{Op: op, Index: idx, Length: s.Length()}
	}

	off, err := s.cache.Resolve(s.buf, idx)
	if err != nil {
		return s.wrap(op, idx, err)
	}

	s.splice(off, 0, p)

	if chars < 0 {
		s.count.invalidate()
		// Without a character count the cache cannot be shifted, but the
		// cached index is idx itself, which stays valid.
		return nil
	}
	s.count.add(chars)
	s.cache.Adjust(idx, off, 0, 0, chars, len(p))
	return nil
}

// replaceSpan replaces oldChars characters at pos with repl, which holds
// newChars characters.
func (s *String) replaceSpan(op string, pos, oldChars int, repl []byte, newChars int) error {
	start, err := s.cache.Resolve(s.buf, pos)
	if err != nil {
		return s.wrap(op, pos, err)
	}
	end, err := s.cache.Resolve(s.buf, pos+oldChars)
	if err != nil {
		return s.wrap(op, pos+oldChars, err)
	}

	s.splice(start, end-start, repl)
	s.count.add(newChars - oldChars)
	s.cache.Adjust(pos, start, oldChars, end-start, newChars, len(repl))
	return nil
}

// splice replaces buf[off:off+oldLen] with repl.
func (s *String) splice(off, oldLen int, repl []byte) {
	delta := len(repl) - oldLen
	switch {
	case delta == 0:
		copy(s.buf[off:], repl)
	case delta < 0:
		copy(s.buf[off:], repl)
		s.buf = append(s.buf[:off+len(repl)], s.buf[off+oldLen:]...)
	default:
		tail := len(s.buf)
		s.buf = append(s.buf, make([]byte, delta)...)
		copy(s.buf[off+len(repl):], s.buf[off+oldLen:tail])
		copy(s.buf[off:], repl)
	}
}
