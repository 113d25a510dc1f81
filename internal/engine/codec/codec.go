package codec

import "fmt"

// Codepoint is a Unicode scalar value.
type Codepoint = rune

// Limits of the encodable range.
const (
	// MaxCodepoint is the largest encodable scalar value.
	MaxCodepoint Codepoint = 0x10FFFF

	// MaxLen is the maximum number of bytes in one encoded character.
	MaxLen = 4

	surrogateMin Codepoint = 0xD800
	surrogateMax Codepoint = 0xDFFF
)

// ByteLength returns the length of the UTF-8 sequence introduced by lead.
//
// Bytes with the top bit clear are one byte long. Otherwise the run of
// leading one bits gives the length (2, 3 or 4). A lone continuation byte
// (10xxxxxx) and lead bytes announcing more than four bytes return 0.
func ByteLength(lead byte) int {
	if lead&0x80 == 0 {
		return 1
	}

	n := 1
	shift := lead << 1
	for shift&0x80 != 0 {
		shift <<= 1
		n++
	}

	if n == 1 || n > MaxLen {
		return 0
	}
	return n
}

// IsLeadByte reports whether b can begin a character.
func IsLeadByte(b byte) bool {
	return ByteLength(b) != 0
}

// IsContinuation reports whether b has the form 10xxxxxx.
func IsContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

// EncodedLen returns the number of bytes needed to encode c,
// or 0 if c is not encodable.
func EncodedLen(c Codepoint) int {
	switch {
	case c < 0:
		return 0
	case c < 0x80:
		return 1
	case c < 0x800:
		return 2
	case c >= surrogateMin && c <= surrogateMax:
		return 0
	case c < 0x10000:
		return 3
	case c <= MaxCodepoint:
		return 4
	default:
		return 0
	}
}

// Valid reports whether c is an encodable scalar value.
func Valid(c Codepoint) bool {
	return EncodedLen(c) != 0
}

// Decode decodes the character at the start of p.
// It returns the codepoint and the number of bytes consumed.
func Decode(p []byte) (Codepoint, int, error) {
	if len(p) == 0 {
		return 0, 0, ErrEmpty
	}

	n := ByteLength(p[0])
	switch {
	case n == 0:
		return 0, 0, fmt.Errorf("%w: 0x%02X", ErrInvalidLeadByte, p[0])
	case n == 1:
		return Codepoint(p[0]), 1, nil
	case len(p) < n:
		return 0, 0, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, n, len(p))
	}

	// The lead byte carries 7-n payload bits.
	c := Codepoint(p[0] & (0x7F >> n))
	for i := 1; i < n; i++ {
		if !IsContinuation(p[i]) {
			return 0, 0, fmt.Errorf("%w: 0x%02X at %d", ErrInvalidContinuation, p[i], i)
		}
		c = c<<6 | Codepoint(p[i]&0x3F)
	}
	return c, n, nil
}

// Encode returns the minimal UTF-8 encoding of c.
func Encode(c Codepoint) ([]byte, error) {
	var buf [MaxLen]byte
	n, err := EncodeInto(buf[:], c)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, buf[:n])
	return out, nil
}

// Append appends the encoding of c to dst and returns the extended slice.
func Append(dst []byte, c Codepoint) ([]byte, error) {
	var buf [MaxLen]byte
	n, err := EncodeInto(buf[:], c)
	if err != nil {
		return dst, err
	}
	return append(dst, buf[:n]...), nil
}

// EncodeInto writes the encoding of c to the start of dst, which must hold
// at least MaxLen bytes, and returns the number of bytes written.
//
// The sequence is built from its last byte backward. Each round emits a
// continuation byte holding the low six bits and narrows the lead byte mask
// by one bit, until the remaining value fits under the mask.
func EncodeInto(dst []byte, c Codepoint) (int, error) {
	n := EncodedLen(c)
	if n == 0 {
		return 0, fmt.Errorf("%w: U+%04X", ErrInvalidCodepoint, c)
	}
	if n == 1 {
		dst[0] = byte(c)
		return 1, nil
	}

	var tmp [MaxLen]byte
	i := MaxLen
	v := uint32(c)
	mask := uint32(0x3F) // loses one bit per continuation byte

	for v > mask {
		i--
		tmp[i] = 0x80 | byte(v&0x3F)
		v >>= 6
		mask >>= 1
	}
	i--
	tmp[i] = byte(^mask<<1) | byte(v)

	return copy(dst, tmp[i:]), nil
}
