// Package char provides Character, a fixed-size value holding exactly one
// UTF-8 encoded codepoint.
package char

import (
	"fmt"

	"github.com/dshills/charstr/internal/engine/codec"
)

// Character is one encoded codepoint stored in four bytes.
// The occupied prefix is the canonical UTF-8 encoding and the remaining
// bytes are zero. The zero value is the empty Character: it holds no
// codepoint and is distinct from the encoded NUL character.
type Character struct {
	b [codec.MaxLen]byte
	n uint8
}

// FromBytes copies the character at the start of p.
// Exactly ByteLength(p[0]) bytes are copied.
func FromBytes(p []byte) (Character, error) {
	if len(p) == 0 {
		return Character{}, codec.ErrEmpty
	}

	n := codec.ByteLength(p[0])
	if n == 0 {
		return Character{}, fmt.Errorf("%w: 0x%02X", codec.ErrInvalidLeadByte, p[0])
	}
	if len(p) < n {
		return Character{}, fmt.Errorf("%w: need %d bytes, have %d", codec.ErrTruncated, n, len(p))
	}
	for i := 1; i < n; i++ {
		if !codec.IsContinuation(p[i]) {
			return Character{}, fmt.Errorf("%w: 0x%02X at %d", codec.ErrInvalidContinuation, p[i], i)
		}
	}

	var c Character
	copy(c.b[:], p[:n])
	c.n = uint8(n)
	return c, nil
}

// FromCodepoint encodes cp into a Character.
func FromCodepoint(cp codec.Codepoint) (Character, error) {
	var c Character
	n, err := codec.EncodeInto(c.b[:], cp)
	if err != nil {
		return Character{}, err
	}
	c.n = uint8(n)
	return c, nil
}

// MustFromCodepoint is like FromCodepoint but panics on error.
// Intended for constants and tests.
func MustFromCodepoint(cp codec.Codepoint) Character {
	c, err := FromCodepoint(cp)
	if err != nil {
		panic(err)
	}
	return c
}

// FromString returns the first character of s.
func FromString(s string) (Character, error) {
	return FromBytes([]byte(s))
}

// Len returns the number of occupied bytes, 0 for the empty Character.
func (c Character) Len() int {
	return int(c.n)
}

// IsZero reports whether c is the empty Character.
func (c Character) IsZero() bool {
	return c.n == 0
}

// Decode returns the codepoint held by c, or the replacement
// character U+FFFD when c is empty.
func (c Character) Decode() codec.Codepoint {
	if c.n == 0 {
		return 0xFFFD
	}
	cp, _, err := codec.Decode(c.b[:c.n])
	if err != nil {
		return 0xFFFD
	}
	return cp
}

// Bytes returns a copy of the occupied bytes.
func (c Character) Bytes() []byte {
	out := make([]byte, c.n)
	copy(out, c.b[:c.n])
	return out
}

// AppendTo appends the occupied bytes to dst.
func (c Character) AppendTo(dst []byte) []byte {
	return append(dst, c.b[:c.n]...)
}

// Equal reports whether c and other hold identical encodings.
// The full buffer is compared, padding included.
func (c Character) Equal(other Character) bool {
	return c.n == other.n && c.b == other.b
}

// String returns the character as a Go string.
func (c Character) String() string {
	return string(c.b[:c.n])
}

// GoString formats c as its codepoint, e.g. U+20AC.
func (c Character) GoString() string {
	if c.n == 0 {
		return "char.Character{}"
	}
	return fmt.Sprintf("U+%04X", c.Decode())
}

// CString returns a freshly allocated NUL-terminated copy of the occupied
// bytes. Every call owns its buffer.
func (c Character) CString() []byte {
	out := make([]byte, c.n+1)
	copy(out, c.b[:c.n])
	return out
}
