package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/charstr/internal/engine/ustr"
	"github.com/dshills/charstr/internal/logging"
)

// Default limits for a State.
const (
	DefaultExecutionTimeout = 5 * time.Second
	DefaultInstructionLimit = 10_000_000
)

// State wraps a sandboxed gopher-lua state with the str module installed.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes calls made
// through State; values obtained from the state must stay on the calling
// goroutine.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration
	instructionLimit int64
	output           io.Writer
	logger           *logging.Logger

	sandbox *Sandbox
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout bounds each Run. Zero disables the timeout.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.executionTimeout = d
	}
}

// WithInstructionLimit sets the maximum str module calls per Run.
// Zero disables the limit.
func WithInstructionLimit(limit int64) StateOption {
	return func(s *State) {
		s.instructionLimit = limit
	}
}

// WithOutput sets where the script's print writes.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		s.output = w
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) StateOption {
	return func(s *State) {
		s.logger = l
	}
}

// NewState creates a sandboxed Lua state with the str module registered.
func NewState(opts ...StateOption) (*State, error) {
	state := &State{
		executionTimeout: DefaultExecutionTimeout,
		instructionLimit: DefaultInstructionLimit,
		output:           os.Stdout,
		logger:           logging.Nop(),
	}
	for _, opt := range opts {
		opt(state)
	}
	if state.instructionLimit < 0 {
		return nil, fmt.Errorf("instruction limit %d: must not be negative", state.instructionLimit)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	state.L = L

	openSafeLibraries(L)

	state.sandbox = NewSandbox(L, state.instructionLimit, state.output)
	state.sandbox.Install()

	registerStrModule(L, state.sandbox)

	state.logger = state.logger.WithComponent("script")
	return state, nil
}

// openSafeLibraries opens only the libraries that cannot reach the host.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// Run executes code. chunk names the code in error messages.
func (s *State) Run(ctx context.Context, chunk, code string) error {
	fn, err := s.compile(chunk, code)
	if err != nil {
		return err
	}
	return s.run(ctx, chunk, fn)
}

// RunFile executes the Lua file at path.
func (s *State) RunFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return s.Run(ctx, path, string(data))
}

func (s *State) compile(chunk, code string) (*lua.LFunction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	fn, err := s.L.Load(strings.NewReader(code), chunk)
	if err != nil {
		return nil, &RuntimeError{Chunk: chunk, Err: err}
	}
	return fn, nil
}

func (s *State) run(ctx context.Context, chunk string, fn *lua.LFunction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	s.sandbox.ResetInstructionCount()

	start := time.Now()
	s.logger.Debug("running %s", chunk)

	err := s.doWithRecovery(func() error {
		s.L.Push(fn)
		return s.L.PCall(0, lua.MultRet, nil)
	})
	// Drop any values the chunk returned.
	s.L.SetTop(0)

	switch {
	case s.sandbox.Exceeded():
		err = ErrInstructionLimit
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		err = ErrExecutionTimeout
	case ctx.Err() != nil:
		err = ctx.Err()
	case err != nil:
		err = unwrapLuaError(err)
	}

	s.logger.Debug("finished %s in %s (%d instructions)", chunk, time.Since(start), s.sandbox.InstructionCount())
	if err != nil {
		return &RuntimeError{Chunk: chunk, Err: err}
	}
	return nil
}

// doWithRecovery executes a function with panic recovery.
func (s *State) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// unwrapLuaError recovers a Go error raised through raiseError.
func unwrapLuaError(err error) error {
	var apiErr *lua.ApiError
	if !errors.As(err, &apiErr) {
		return err
	}
	if ud, ok := apiErr.Object.(*lua.LUserData); ok {
		if goErr, ok := ud.Value.(error); ok {
			return goErr
		}
	}
	return err
}

// SetString binds s to a global Lua variable as a str userdata.
// The script and the caller share s; edits made by the script are visible
// to the caller after Run returns.
func (s *State) SetString(name string, str *ustr.String) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	s.L.SetGlobal(name, newStrValue(s.L, str))
	return nil
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.L.SetGlobal(name, value)
}

// Sandbox returns the sandbox.
func (s *State) Sandbox() *Sandbox {
	return s.sandbox
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state. Later calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.L.Close()
	s.closed = true
	return nil
}
