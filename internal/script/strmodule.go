package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/charstr/internal/engine/char"
	"github.com/dshills/charstr/internal/engine/codec"
	"github.com/dshills/charstr/internal/engine/ustr"
)

// strTypeName is the registry name of the str userdata metatable.
const strTypeName = "charstr.string"

// errTypeName is the registry name of the metatable for raised Go errors.
const errTypeName = "charstr.error"

// strModule implements the str Lua module.
type strModule struct {
	sandbox *Sandbox
}

// registerStrModule installs the str global, makes it loadable with
// require and registers the userdata metatables.
func registerStrModule(L *lua.LState, sandbox *Sandbox) {
	m := &strModule{sandbox: sandbox}

	errMT := L.NewTypeMetatable(errTypeName)
	L.SetField(errMT, "__tostring", L.NewFunction(func(L *lua.LState) int {
		ud := L.CheckUserData(1)
		if err, ok := ud.Value.(error); ok {
			L.Push(lua.LString(err.Error()))
			return 1
		}
		L.Push(lua.LString("error"))
		return 1
	}))

	mt := L.NewTypeMetatable(strTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"len":        m.length,
		"size":       m.size,
		"text":       m.text,
		"bytes":      m.bytes,
		"get":        m.get,
		"codepoint":  m.codepoint,
		"set":        m.set,
		"insert":     m.insert,
		"erase":      m.erase,
		"replace":    m.replace,
		"push_back":  m.pushBack,
		"push_front": m.pushFront,
		"chars":      m.chars,
		"graphemes":  m.graphemes,
		"width":      m.width,
		"clone":      m.clone,
	}))
	L.SetField(mt, "__tostring", L.NewFunction(m.text))
	L.SetField(mt, "__len", L.NewFunction(m.length))
	L.SetField(mt, "__eq", L.NewFunction(m.equal))

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"new":  m.newString,
		"char": m.char,
	})
	L.SetField(mod, "npos", lua.LNumber(ustr.Npos))

	L.SetGlobal("str", mod)
	L.PreloadModule("str", func(L *lua.LState) int {
		L.Push(mod)
		return 1
	})
}

// newStrValue wraps s in a str userdata.
func newStrValue(L *lua.LState, s *ustr.String) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = s
	L.SetMetatable(ud, L.GetTypeMetatable(strTypeName))
	return ud
}

// raiseError raises err as a Lua error whose value carries the Go error.
func raiseError(L *lua.LState, err error) {
	ud := L.NewUserData()
	ud.Value = err
	L.SetMetatable(ud, L.GetTypeMetatable(errTypeName))
	L.Error(ud, 1)
}

// tick counts one instruction and aborts the script past the limit.
func (m *strModule) tick(L *lua.LState) {
	if m.sandbox.IncrementInstructions(1) {
		raiseError(L, ErrInstructionLimit)
	}
}

// checkStr returns the *ustr.String at stack position n.
func checkStr(L *lua.LState, n int) *ustr.String {
	ud := L.CheckUserData(n)
	s, ok := ud.Value.(*ustr.String)
	if !ok {
		L.ArgError(n, "str expected")
		return nil
	}
	return s
}

// checkChar reads a character argument: a one-character string or a
// codepoint number.
func checkChar(L *lua.LState, n int) char.Character {
	switch v := L.Get(n).(type) {
	case lua.LNumber:
		c, err := char.FromCodepoint(checkCodepoint(L, n))
		if err != nil {
			L.ArgError(n, err.Error())
		}
		return c
	case lua.LString:
		p := []byte(v)
		c, err := char.FromBytes(p)
		if err != nil || c.Len() != len(p) || codec.Validate(p) >= 0 {
			L.ArgError(n, "single character expected")
		}
		return c
	default:
		L.TypeError(n, lua.LTString)
		return char.Character{}
	}
}

// checkCodepoint reads an integral number in the codepoint range. Fractions
// and out-of-range values are argument errors, never truncated.
func checkCodepoint(L *lua.LState, n int) codec.Codepoint {
	v := L.CheckNumber(n)
	if v < 0 || v > lua.LNumber(codec.MaxCodepoint) || v != lua.LNumber(int64(v)) {
		L.ArgError(n, fmt.Sprintf("codepoint expected, got %v", v))
		return 0
	}
	return codec.Codepoint(v)
}

// checkText reads a text argument: a Lua string or a str userdata.
func checkText(L *lua.LState, n int) *ustr.String {
	switch v := L.Get(n).(type) {
	case lua.LString:
		s, err := ustr.FromString(string(v))
		if err != nil {
			raiseError(L, err)
		}
		return s
	case *lua.LUserData:
		return checkStr(L, n)
	default:
		L.TypeError(n, lua.LTString)
		return nil
	}
}

// str.new(text) -> str
func (m *strModule) newString(L *lua.LState) int {
	m.tick(L)
	s, err := ustr.FromString(L.OptString(1, ""))
	if err != nil {
		raiseError(L, err)
		return 0
	}
	L.Push(newStrValue(L, s))
	return 1
}

// str.char(codepoint) -> string
func (m *strModule) char(L *lua.LState) int {
	m.tick(L)
	c, err := char.FromCodepoint(checkCodepoint(L, 1))
	if err != nil {
		raiseError(L, err)
		return 0
	}
	L.Push(lua.LString(c.String()))
	return 1
}

// s:len() -> number of characters
func (m *strModule) length(L *lua.LState) int {
	m.tick(L)
	L.Push(lua.LNumber(checkStr(L, 1).Length()))
	return 1
}

// s:size() -> number of bytes
func (m *strModule) size(L *lua.LState) int {
	m.tick(L)
	L.Push(lua.LNumber(checkStr(L, 1).Size()))
	return 1
}

// s:text() -> string
func (m *strModule) text(L *lua.LState) int {
	m.tick(L)
	L.Push(lua.LString(checkStr(L, 1).Text()))
	return 1
}

// s:bytes() -> {b1, b2, ...}
func (m *strModule) bytes(L *lua.LState) int {
	m.tick(L)
	data := checkStr(L, 1).Data()
	tbl := L.CreateTable(len(data), 0)
	for _, b := range data {
		tbl.Append(lua.LNumber(b))
	}
	L.Push(tbl)
	return 1
}

// s:get(i) -> one-character string
func (m *strModule) get(L *lua.LState) int {
	m.tick(L)
	c, err := checkStr(L, 1).Get(L.CheckInt(2))
	if err != nil {
		raiseError(L, err)
		return 0
	}
	L.Push(lua.LString(c.String()))
	return 1
}

// s:codepoint(i) -> number
func (m *strModule) codepoint(L *lua.LState) int {
	m.tick(L)
	cp, err := checkStr(L, 1).Codepoint(L.CheckInt(2))
	if err != nil {
		raiseError(L, err)
		return 0
	}
	L.Push(lua.LNumber(cp))
	return 1
}

// s:set(i, c)
func (m *strModule) set(L *lua.LState) int {
	m.tick(L)
	s := checkStr(L, 1)
	idx := L.CheckInt(2)
	if err := s.Set(idx, checkChar(L, 3)); err != nil {
		raiseError(L, err)
	}
	return 0
}

// s:insert(i, text)
func (m *strModule) insert(L *lua.LState) int {
	m.tick(L)
	s := checkStr(L, 1)
	idx := L.CheckInt(2)
	if err := s.InsertString(idx, checkText(L, 3)); err != nil {
		raiseError(L, err)
	}
	return 0
}

// s:erase(pos, n)
func (m *strModule) erase(L *lua.LState) int {
	m.tick(L)
	s := checkStr(L, 1)
	if err := s.Erase(L.CheckInt(2), L.OptInt(3, ustr.Npos)); err != nil {
		raiseError(L, err)
	}
	return 0
}

// s:replace(pos, n, text [, subpos, sublen])
func (m *strModule) replace(L *lua.LState) int {
	m.tick(L)
	s := checkStr(L, 1)
	pos := L.CheckInt(2)
	n := L.CheckInt(3)
	other := checkText(L, 4)

	var err error
	if L.GetTop() >= 5 {
		err = s.ReplaceSub(pos, n, other, L.CheckInt(5), L.OptInt(6, ustr.Npos))
	} else {
		err = s.Replace(pos, n, other)
	}
	if err != nil {
		raiseError(L, err)
	}
	return 0
}

// s:push_back(c)
func (m *strModule) pushBack(L *lua.LState) int {
	m.tick(L)
	s := checkStr(L, 1)
	if err := s.PushBack(checkChar(L, 2)); err != nil {
		raiseError(L, err)
	}
	return 0
}

// s:push_front(c)
func (m *strModule) pushFront(L *lua.LState) int {
	m.tick(L)
	s := checkStr(L, 1)
	if err := s.PushFront(checkChar(L, 2)); err != nil {
		raiseError(L, err)
	}
	return 0
}

// s:chars() -> iterator yielding (index, character)
func (m *strModule) chars(L *lua.LState) int {
	m.tick(L)
	cur := checkStr(L, 1).Begin()
	L.Push(L.NewFunction(func(L *lua.LState) int {
		m.tick(L)
		if !cur.Valid() {
			return 0
		}
		c, err := cur.Get()
		if err != nil {
			raiseError(L, err)
			return 0
		}
		L.Push(lua.LNumber(cur.Index()))
		L.Push(lua.LString(c.String()))
		cur = cur.Next()
		return 2
	}))
	return 1
}

// s:graphemes() -> number of grapheme clusters
func (m *strModule) graphemes(L *lua.LState) int {
	m.tick(L)
	L.Push(lua.LNumber(checkStr(L, 1).GraphemeCount()))
	return 1
}

// s:width() -> monospace display width
func (m *strModule) width(L *lua.LState) int {
	m.tick(L)
	L.Push(lua.LNumber(checkStr(L, 1).Width()))
	return 1
}

// s:clone() -> independent copy
func (m *strModule) clone(L *lua.LState) int {
	m.tick(L)
	L.Push(newStrValue(L, checkStr(L, 1).Clone()))
	return 1
}

// a == b compares bytes
func (m *strModule) equal(L *lua.LState) int {
	m.tick(L)
	L.Push(lua.LBool(checkStr(L, 1).Equal(checkStr(L, 2))))
	return 1
}
