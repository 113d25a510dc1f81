package ustr

import (
	"errors"
	"fmt"
)

// Errors returned by String operations.
var (
	// ErrIndexOutOfRange indicates a character index outside the string.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrRangeInvalid indicates a negative length or similar bad span.
	ErrRangeInvalid = errors.New("invalid range")

	// ErrInvalidUTF8 indicates malformed input bytes.
	ErrInvalidUTF8 = errors.New("invalid utf-8")

	// ErrEmptyCharacter indicates the empty Character was used as a value.
	ErrEmptyCharacter = errors.New("empty character")
)

// IndexError describes an out-of-range character index.
type IndexError struct {
	Op     string // Operation that failed, e.g. "get"
	Index  int    // Requested character index
	Length int    // Character count at the time of the call
}

// Error implements error.
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range (length %d)", e.Op, e.Index, e.Length)
}

// Unwrap returns ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// EncodingError describes malformed UTF-8 found at a byte offset.
type EncodingError struct {
	Offset int   // Byte offset of the offending byte
	Err    error // Underlying codec error, may be nil
}

// Error implements error.
func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid utf-8 at byte %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("invalid utf-8 at byte %d", e.Offset)
}

// Unwrap exposes both ErrInvalidUTF8 and the underlying codec error.
func (e *EncodingError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidUTF8, e.Err}
	}
	return []error{ErrInvalidUTF8}
}
