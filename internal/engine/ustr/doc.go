// Package ustr provides String, a mutable UTF-8 byte buffer addressed by
// character index rather than byte offset.
//
// Storage stays a compact []byte. Every operation that takes an index
// translates it to a byte offset by stepping over encoded characters from a
// known position. Two caches keep this cheap:
//
//   - The character count is computed on first use and then kept current by
//     every mutation through a fixed delta rule (or invalidated when the
//     delta is not cheaply known).
//   - An OffsetCache remembers the last resolved (index, offset) pair.
//     Lookups at or beyond that index resume from it; lookups before it
//     rescan from the start. Forward sequential access is therefore
//     amortized O(1) per step, while random access is O(n).
//
// Basic usage:
//
//	s := ustr.MustFromString("a€b")
//	s.Length()                               // 3
//	s.Size()                                 // 5
//	c, _ := s.Get(1)                         // €
//	_ = s.Set(1, char.MustFromCodepoint('x')) // "axb"
//	_ = s.Insert(1, c)                       // "a€xb"
//
//	for i, c := range s.All() {
//	    fmt.Println(i, c)
//	}
//
// Ref and Cursor are lightweight (string, index) views. They hold no cached
// state of their own and re-resolve through the String on every access, so
// they remain correct across edits but must not outlive the String.
//
// Thread Safety:
//
// String is not safe for concurrent use. Reads through ByteOffset, Get and
// the cursors update the OffsetCache. PeekOffset reads the cache without
// writing it; concurrent readers that only call PeekOffset, Size and Data
// are safe as long as nothing mutates the String.
package ustr
