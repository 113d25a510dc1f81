package codec

import "errors"

// Errors returned by codec operations.
var (
	// ErrInvalidLeadByte indicates a byte that cannot begin a character.
	ErrInvalidLeadByte = errors.New("invalid utf-8 lead byte")

	// ErrTruncated indicates a sequence shorter than its lead byte announces.
	ErrTruncated = errors.New("truncated utf-8 sequence")

	// ErrInvalidContinuation indicates a trailing byte outside 10xxxxxx.
	ErrInvalidContinuation = errors.New("invalid utf-8 continuation byte")

	// ErrInvalidCodepoint indicates a value above MaxCodepoint or a surrogate.
	ErrInvalidCodepoint = errors.New("codepoint not encodable")

	// ErrEmpty indicates decoding was attempted on an empty input.
	ErrEmpty = errors.New("empty input")
)
