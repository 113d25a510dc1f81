package ustr

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dshills/charstr/internal/engine/char"
	"github.com/dshills/charstr/internal/engine/codec"
)

// String is a mutable UTF-8 byte buffer addressed by character index.
// The zero value is an empty string ready to use.
// A String must not be copied after first use; use Clone.
type String struct {
	buf   []byte
	count countCache
	cache OffsetCache
}

// New creates a String holding a copy of p.
// p must be valid UTF-8; malformed input is rejected with an *EncodingError.
func New(p []byte, opts ...Option) (*String, error) {
	if pos := codec.Validate(p); pos >= 0 {
		return nil, &EncodingError{Offset: pos}
	}

	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	capacity := len(p)
	if cfg.capacity > capacity {
		capacity = cfg.capacity
	}

	s := &String{buf: make([]byte, len(p), capacity)}
	copy(s.buf, p)
	return s, nil
}

// FromString creates a String from a Go string.
func FromString(text string, opts ...Option) (*String, error) {
	return New([]byte(text), opts...)
}

// MustFromString is like FromString but panics on malformed input.
// Intended for literals and tests.
func MustFromString(text string) *String {
	s, err := FromString(text)
	if err != nil {
		panic(err)
	}
	return s
}

// FromCharacters builds a String by concatenating cs.
// Empty Characters are rejected.
func FromCharacters(cs ...char.Character) (*String, error) {
	s := &String{}
	for i, c := range cs {
		if c.IsZero() {
			return nil, fmt.Errorf("character %d: %w", i, ErrEmptyCharacter)
		}
		s.buf = c.AppendTo(s.buf)
	}
	s.count.set(len(cs))
	return s, nil
}

// Clone returns an independent copy with its own caches.
// The count is carried over; the offset cache starts fresh.
func (s *String) Clone() *String {
	c := &String{
		buf:   bytes.Clone(s.buf),
		count: s.count,
	}
	return c
}

// Size returns the length of the buffer in bytes.
func (s *String) Size() int {
	return len(s.buf)
}

// Length returns the number of characters.
// The first call after an invalidating edit scans the buffer; later calls
// return the cached count. If the buffer holds malformed bytes, Length
// returns the characters before the first bad byte and caches nothing.
func (s *String) Length() int {
	if n, ok := s.count.get(); ok {
		return n
	}

	// The translator may already sit at the end of the buffer.
	if s.cache.Offset() == len(s.buf) {
		s.count.set(s.cache.Index())
		return s.cache.Index()
	}

	n, err := codec.Count(s.buf)
	if err != nil {
		return n
	}
	s.count.set(n)
	return n
}

// Validate reports the first malformed byte in the buffer as an
// *EncodingError. Bytes only go bad through writes into Data.
func (s *String) Validate() error {
	if pos := codec.Validate(s.buf); pos >= 0 {
		return &EncodingError{Offset: pos}
	}
	return nil
}

// IsEmpty reports whether the string has no characters.
func (s *String) IsEmpty() bool {
	return len(s.buf) == 0
}

// Data returns the underlying bytes. The slice aliases the String's storage,
// is not NUL-terminated, and is invalidated by the next edit. Writes through
// it must keep the buffer valid UTF-8 and the character count unchanged;
// malformed bytes make later lookups fail with an *EncodingError.
func (s *String) Data() []byte {
	return s.buf
}

// CString returns a freshly allocated NUL-terminated copy of the bytes.
func (s *String) CString() []byte {
	out := make([]byte, len(s.buf)+1)
	copy(out, s.buf)
	return out
}

// Text returns the contents as a Go string.
func (s *String) Text() string {
	return string(s.buf)
}

// String implements fmt.Stringer.
func (s *String) String() string {
	return string(s.buf)
}

// Equal reports whether both strings hold identical bytes.
func (s *String) Equal(other *String) bool {
	return bytes.Equal(s.buf, other.buf)
}

// Cache returns a copy of the offset cache for inspection.
func (s *String) Cache() OffsetCache {
	return s.cache
}

// ByteOffset translates character index idx to a byte offset and moves the
// offset cache there. idx may equal Length, which maps to Size.
func (s *String) ByteOffset(idx int) (int, error) {
	off, err := s.cache.Resolve(s.buf, idx)
	if err != nil {
		return 0, s.wrap("offset", idx, err)
	}
	return off, nil
}

// PeekOffset is ByteOffset without updating the offset cache.
func (s *String) PeekOffset(idx int) (int, error) {
	off, err := s.cache.Peek(s.buf, idx)
	if err != nil {
		return 0, s.wrap("offset", idx, err)
	}
	return off, nil
}

// Get returns the character at idx.
func (s *String) Get(idx int) (char.Character, error) {
	off, err := s.charOffset("get", idx)
	if err != nil {
		return char.Character{}, err
	}

	c, err := char.FromBytes(s.buf[off:])
	if err != nil {
		return char.Character{}, &EncodingError{Offset: off, Err: err}
	}
	return c, nil
}

// Codepoint returns the decoded value of the character at idx.
func (s *String) Codepoint(idx int) (codec.Codepoint, error) {
	off, err := s.charOffset("codepoint", idx)
	if err != nil {
		return 0, err
	}

	cp, _, err := codec.Decode(s.buf[off:])
	if err != nil {
		return 0, &EncodingError{Offset: off, Err: err}
	}
	return cp, nil
}

// charOffset resolves idx for operations that need an existing character,
// i.e. 0 <= idx < Length.
func (s *String) charOffset(op string, idx int) (int, error) {
	if idx < 0 {
		return 0, &IndexError{Op: op, Index: idx, Length: s.Length()}
	}

	off, err := s.cache.Resolve(s.buf, idx)
	if err != nil {
		return 0, s.wrap(op, idx, err)
	}
	if off >= len(s.buf) {
		return 0, &IndexError{Op: op, Index: idx, Length: s.Length()}
	}
	return off, nil
}

// wrap converts a translation failure into the error returned to callers.
func (s *String) wrap(op string, idx int, err error) error {
	if errors.Is(err, ErrIndexOutOfRange) {
		return &IndexError{Op: op, Index: idx, Length: s.Length()}
	}
	return fmt.Errorf("%s %d: %w", op, idx, err)
}
