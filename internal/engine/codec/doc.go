// Package codec converts between Unicode codepoints and their UTF-8 byte
// encoding.
//
// The functions here operate on single characters and are the leaves of the
// engine: every higher layer (Character, String, Cursor) steps through text
// with ByteLength and decodes or encodes with Decode and Encode.
//
// ByteLength never returns a usable step of zero. A return value of 0 marks a
// byte that cannot start a character (a continuation byte or an over-long
// lead byte) and callers must treat it as malformed input.
//
// Basic usage:
//
//	p, _ := codec.Encode(0x20AC)   // []byte{0xE2, 0x82, 0xAC}
//	c, n, _ := codec.Decode(p)     // 0x20AC, 3
//	w := codec.ByteLength(p[0])    // 3
package codec
