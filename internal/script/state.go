package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// Default limits for a state.
const (
	DefaultTimeout   = 5 * time.Second
	DefaultCallLimit = 1_000_000
)

// State wraps a gopher-lua state with the dlist module installed.
//
// gopher-lua's LState is not goroutine-safe, and neither are the lists a
// script creates. A State must be used from one goroutine at a time.
type State struct {
	L *lua.LState

	timeout   time.Duration
	callLimit int64
	out       io.Writer

	calls    int64
	limitHit bool
	closed   bool
}

// Option configures a State.
type Option func(*State)

// WithTimeout bounds each DoString/DoFile call. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *State) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// WithCallLimit bounds the dlist API calls per execution. Zero disables
// the limit.
func WithCallLimit(n int64) Option {
	return func(s *State) {
		if n >= 0 {
			s.callLimit = n
		}
	}
}

// WithOutput redirects the output of the Lua print function.
func WithOutput(w io.Writer) Option {
	return func(s *State) {
		if w != nil {
			s.out = w
		}
	}
}

// NewState creates a sandboxed Lua state with the dlist module loaded.
func NewState(opts ...Option) *State {
	s := &State{
		timeout:   DefaultTimeout,
		callLimit: DefaultCallLimit,
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	s.L = L

	openSafeLibraries(L)
	s.installPrint()
	registerModule(L, s)

	return s
}

// openSafeLibraries opens only the Lua libraries a list script needs.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// io, os, debug and package stay closed. Base still carries loaders.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// installPrint replaces print so output goes to the configured writer.
func (s *State) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(s.out, strings.Join(parts, "\t"))
		return 0
	}))
}

// Close releases the Lua state.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}

// Calls returns the number of dlist API calls made by the last execution.
func (s *State) Calls() int64 {
	return s.calls
}

// DoString executes a chunk of Lua code.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.do(ctx, func() error {
		return s.L.DoString(code)
	})
}

// DoFile executes a Lua file.
func (s *State) DoFile(ctx context.Context, path string) error {
	return s.do(ctx, func() error {
		return s.L.DoFile(path)
	})
}

func (s *State) do(ctx context.Context, fn func() error) (err error) {
	if s.closed {
		return ErrStateClosed
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	s.calls = 0
	s.limitHit = false

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	err = fn()
	switch {
	case err == nil:
		return nil
	case s.limitHit:
		return fmt.Errorf("%w: %w", ErrCallLimit, err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	return err
}

// tick counts one dlist API call and raises a Lua error past the limit.
func (s *State) tick(L *lua.LState) {
	s.calls++
	if s.callLimit > 0 && s.calls > s.callLimit {
		s.limitHit = true
		L.RaiseError("%v (%d)", ErrCallLimit, s.callLimit)
	}
}
