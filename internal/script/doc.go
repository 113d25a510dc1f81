// Package script runs Lua scripts against character-indexed strings.
//
// Scripts execute in a sandboxed gopher-lua state: only the base, table,
// string and math libraries are opened, file loading functions are removed
// and require is limited to those libraries. print writes to the State's
// configured output instead of stdout.
//
// # The str Module
//
// The global str module constructs strings:
//
//	local s = str.new("a€b")
//	print(s:len(), s:size())      -- 3  5
//	s:set(1, "x")
//	s:insert(0, "¡")
//	s:erase(1, 1)
//	print(s:text())               -- ¡xb
//
// Indices are 0-based, matching the Go API. Character arguments accept a
// one-character string or a numeric codepoint. Methods:
//
//	len() size() text() bytes() clone()
//	get(i) codepoint(i) chars()
//	set(i, c) insert(i, s) erase(pos [, n])
//	replace(pos, n, s [, subpos, sublen])
//	push_back(c) push_front(c)
//	graphemes() width()
//
// str.char(cp) encodes a codepoint and str.npos stands for "through the end"
// in length arguments.
//
// Errors raised by the underlying string (index out of range, invalid
// UTF-8) are raised as Lua errors and surface from Run as *RuntimeError.
//
// # Limits
//
// Every call into the str module counts as one instruction; when the count
// passes the configured limit the script is aborted with ErrInstructionLimit.
// A timeout cancels the Lua state's context.
//
// # Thread Safety
//
// A State serializes its own operations with a mutex, but gopher-lua values
// must not be shared across goroutines.
package script
