package ustr

import (
	"github.com/dshills/charstr/internal/engine/codec"
)

// CacheStats records how an OffsetCache has been used.
type CacheStats struct {
	// Hits counts lookups that resumed from the cached position.
	Hits int
	// Misses counts lookups that rescanned from the start.
	Misses int
	// Steps counts characters stepped over across all lookups.
	Steps int
}

// OffsetCache maps character indices to byte offsets, remembering the most
// recently resolved pair.
//
// Contract: the cached (index, offset) pair is valid only for lookups with
// idx >= index. Such lookups resume scanning from the cached pair; any lookup
// with idx < index rescans from (0, 0). The pair always names the byte at
// which character index begins in the current buffer, or the buffer end
// when index equals the character count. Callers that edit the buffer must
// report the edit through Adjust.
//
// The zero value is an empty cache positioned at (0, 0).
type OffsetCache struct {
	index  int
	offset int
	stats  CacheStats
}

// Index returns the cached character index.
func (c OffsetCache) Index() int {
	return c.index
}

// Offset returns the byte offset of the cached character index.
func (c OffsetCache) Offset() int {
	return c.offset
}

// Stats returns usage counters.
func (c OffsetCache) Stats() CacheStats {
	return c.stats
}

// Reset moves the cache back to (0, 0). Stats are kept.
func (c *OffsetCache) Reset() {
	c.index = 0
	c.offset = 0
}

// Resolve returns the byte offset of character idx in buf and remembers the
// result. idx may equal the character count, in which case len(buf) is
// returned. It fails with ErrIndexOutOfRange past the end and with
// ErrInvalidUTF8 when a byte along the way cannot begin a character.
func (c *OffsetCache) Resolve(buf []byte, idx int) (int, error) {
	fromIdx, fromOff, hit := c.origin(idx)
	off, steps, err := scan(buf, fromIdx, fromOff, idx)

	if hit {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	c.stats.Steps += steps

	if err != nil {
		return 0, err
	}
	c.index = idx
	c.offset = off
	return off, nil
}

// Peek is Resolve without side effects: the cached pair is read but neither
// the pair nor the stats are updated.
func (c *OffsetCache) Peek(buf []byte, idx int) (int, error) {
	fromIdx, fromOff, _ := c.origin(idx)
	off, _, err := scan(buf, fromIdx, fromOff, idx)
	return off, err
}

// Adjust records an edit that replaced oldChars characters (oldBytes bytes)
// starting at character pos and byte offset posOff with newChars characters
// (newBytes bytes).
//
// Edits at or after the cached index leave it untouched. Edits entirely
// before it shift it by the deltas. An edit that swallowed the cached
// character moves the cache to the edit position.
func (c *OffsetCache) Adjust(pos, posOff, oldChars, oldBytes, newChars, newBytes int) {
	switch {
	case c.index <= pos:
		return
	case c.index >= pos+oldChars:
		c.index += newChars - oldChars
		c.offset += newBytes - oldBytes
	default:
		c.index = pos
		c.offset = posOff
	}
}

// origin picks the position a lookup of idx starts from.
func (c *OffsetCache) origin(idx int) (fromIdx, fromOff int, hit bool) {
	if idx >= c.index {
		return c.index, c.offset, true
	}
	return 0, 0, false
}

// scan steps forward from (fromIdx, fromOff) until reaching character idx.
// It returns the byte offset and the number of characters stepped over.
func scan(buf []byte, fromIdx, fromOff, idx int) (int, int, error) {
	if idx < 0 {
		return 0, 0, ErrIndexOutOfRange
	}

	off := fromOff
	steps := 0
	for i := fromIdx; i < idx; i++ {
		if off >= len(buf) {
			return 0, steps, ErrIndexOutOfRange
		}
		n := codec.ByteLength(buf[off])
		if n == 0 {
			return 0, steps, &EncodingError{Offset: off, Err: codec.ErrInvalidLeadByte}
		}
		if off+n > len(buf) {
			return 0, steps, &EncodingError{Offset: off, Err: codec.ErrTruncated}
		}
		off += n
		steps++
	}
	return off, steps, nil
}

// countCache is the lazily computed character count.
//
// Delta rules: inserting k characters adds k, erasing k characters subtracts
// k, replacing a span adds (new - old), overwriting one character with
// another leaves it unchanged. Inserting raw bytes whose count is not known
// invalidates it.
type countCache struct {
	n     int
	known bool
}

// get returns the cached count and whether it is known.
func (c *countCache) get() (int, bool) {
	return c.n, c.known
}

// set stores an exact count.
func (c *countCache) set(n int) {
	c.n = n
	c.known = true
}

// add applies a delta; a no-op while the count is unknown.
func (c *countCache) add(delta int) {
	if c.known {
		c.n += delta
	}
}

// invalidate marks the count unknown.
func (c *countCache) invalidate() {
	c.n = 0
	c.known = false
}
