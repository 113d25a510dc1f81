package codec

import "fmt"

// Validate checks that p is a sequence of well-formed characters and returns
// the position of the first invalid byte, or -1 if p is valid.
//
// Well-formed means every lead byte has a non-zero ByteLength and is followed
// by the announced number of continuation bytes. Overlong forms and encoded
// surrogates are rejected as well, so that everything accepted here decodes
// back to a value Encode would produce.
func Validate(p []byte) int {
	for i := 0; i < len(p); {
		if p[i] < 0x80 {
			i++
			continue
		}

		n := ByteLength(p[i])
		if n == 0 || i+n > len(p) {
			return i
		}

		c, _, err := Decode(p[i : i+n])
		if err != nil || EncodedLen(c) != n {
			return i
		}

		i += n
	}
	return -1
}

// Count returns the number of characters in p.
// It stops at the first byte that cannot begin a character.
func Count(p []byte) (int, error) {
	count := 0
	for i := 0; i < len(p); {
		n := ByteLength(p[i])
		if n == 0 {
			return count, fmt.Errorf("%w: 0x%02X at offset %d", ErrInvalidLeadByte, p[i], i)
		}
		if i+n > len(p) {
			return count, fmt.Errorf("%w at offset %d", ErrTruncated, i)
		}
		i += n
		count++
	}
	return count, nil
}
