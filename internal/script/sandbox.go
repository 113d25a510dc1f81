package script

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts what a script can reach and counts its str calls.
type Sandbox struct {
	L      *lua.LState
	output io.Writer

	instructionLimit int64
	instructionCount int64
}

// NewSandbox creates a sandbox for L. print writes to output.
func NewSandbox(L *lua.LState, instructionLimit int64, output io.Writer) *Sandbox {
	if output == nil {
		output = io.Discard
	}
	return &Sandbox{
		L:                L,
		output:           output,
		instructionLimit: instructionLimit,
	}
}

// Install removes file loading functions and replaces print and require.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.installPrint()
	s.installRequire()
}

// installPrint replaces print with a version that writes to the sandbox output.
func (s *Sandbox) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		parts := make([]string, top)
		for i := 1; i <= top; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(s.output, strings.Join(parts, "\t"))
		return 0
	}))
}

// installRequire clears the module search paths and limits require to the
// opened libraries.
func (s *Sandbox) installRequire() {
	safeModules := map[string]bool{
		"string": true,
		"table":  true,
		"math":   true,
		"str":    true,
	}

	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	originalRequire := s.L.GetGlobal("require")

	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		modName := L.CheckString(1)
		if !safeModules[modName] {
			L.RaiseError("module %q is not available", modName)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(modName))
		L.Call(1, 1)
		return 1
	}))
}

// ResetInstructionCount resets the instruction counter.
func (s *Sandbox) ResetInstructionCount() {
	atomic.StoreInt64(&s.instructionCount, 0)
}

// InstructionCount returns the current instruction count.
func (s *Sandbox) InstructionCount() int64 {
	return atomic.LoadInt64(&s.instructionCount)
}

// IncrementInstructions adds n to the count and reports whether the limit
// is now exceeded.
func (s *Sandbox) IncrementInstructions(n int64) bool {
	count := atomic.AddInt64(&s.instructionCount, n)
	return s.instructionLimit > 0 && count > s.instructionLimit
}

// Exceeded reports whether the current run passed the instruction limit.
func (s *Sandbox) Exceeded() bool {
	return s.instructionLimit > 0 && s.InstructionCount() > s.instructionLimit
}
