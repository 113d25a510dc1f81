package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/charstr/internal/engine/char"
	"github.com/dshills/charstr/internal/engine/codec"
	"github.com/dshills/charstr/internal/engine/ustr"
	"github.com/dshills/charstr/internal/script"
)

// Span selects part of a replacement source.
type Span struct {
	Pos int
	Len int
}

// Inspect prints size, length and a per-character table of text.
func (app *Application) Inspect(text string) error {
	return app.withString("inspect", text, func(s *ustr.String) error {
		return app.printer().inspect(s)
	})
}

// Get prints the character at idx.
func (app *Application) Get(text string, idx int) error {
	return app.withString("get", text, func(s *ustr.String) error {
		c, err := s.Get(idx)
		if err != nil {
			return err
		}
		app.printer().character(c)
		return nil
	})
}

// Set replaces the character at idx with c and prints the result.
func (app *Application) Set(text string, idx int, c string) error {
	ch, err := ParseCharacter(c)
	if err != nil {
		return NewOperationError("set", text, err)
	}
	return app.edit("set", text, func(s *ustr.String) error {
		return s.Set(idx, ch)
	})
}

// Insert inserts insert before the character at idx and prints the result.
func (app *Application) Insert(text string, idx int, insert string) error {
	other, err := ustr.FromString(insert)
	if err != nil {
		return NewOperationError("insert", text, err).WithContext("inserted text")
	}
	return app.edit("insert", text, func(s *ustr.String) error {
		return s.InsertString(idx, other)
	})
}

// Erase removes n characters from pos and prints the result.
func (app *Application) Erase(text string, pos, n int) error {
	return app.edit("erase", text, func(s *ustr.String) error {
		return s.Erase(pos, n)
	})
}

// Replace replaces n characters from pos with repl, or with the sub span of
// repl when sub is non-nil, and prints the result.
func (app *Application) Replace(text string, pos, n int, repl string, sub *Span) error {
	other, err := ustr.FromString(repl)
	if err != nil {
		return NewOperationError("replace", text, err).WithContext("replacement text")
	}
	return app.edit("replace", text, func(s *ustr.String) error {
		if sub != nil {
			return s.ReplaceSub(pos, n, other, sub.Pos, sub.Len)
		}
		return s.Replace(pos, n, other)
	})
}

// Push appends c, or prepends it when front is set, and prints the result.
func (app *Application) Push(text, c string, front bool) error {
	ch, err := ParseCharacter(c)
	if err != nil {
		return NewOperationError("push", text, err)
	}
	return app.edit("push", text, func(s *ustr.String) error {
		if front {
			return s.PushFront(ch)
		}
		return s.PushBack(ch)
	})
}

// RunScript runs the Lua file at path with text bound to the global input.
func (app *Application) RunScript(ctx context.Context, path, text string) error {
	return app.do("run", path, func() (*ustr.String, error) {
		input, err := ustr.FromString(text)
		if err != nil {
			return nil, err
		}

		state, err := script.NewState(
			script.WithExecutionTimeout(app.config.Script.Timeout.Duration),
			script.WithInstructionLimit(app.config.Script.InstructionLimit),
			script.WithOutput(app.out),
			script.WithLogger(app.logger),
		)
		if err != nil {
			return input, err
		}
		defer state.Close()

		if err := state.SetString("input", input); err != nil {
			return input, err
		}
		return input, state.RunFile(ctx, path)
	})
}

// edit runs fn on a String built from text and prints the result.
func (app *Application) edit(op, text string, fn func(*ustr.String) error) error {
	return app.withString(op, text, func(s *ustr.String) error {
		if err := fn(s); err != nil {
			return err
		}
		app.printer().str(s)
		return nil
	})
}

// withString runs fn on a String built from text.
func (app *Application) withString(op, text string, fn func(*ustr.String) error) error {
	return app.do(op, text, func() (*ustr.String, error) {
		s, err := ustr.FromString(text)
		if err != nil {
			return nil, err
		}
		return s, fn(s)
	})
}

// do runs fn and records its duration, outcome and the cache counters of
// the String it worked on.
func (app *Application) do(op, target string, fn func() (*ustr.String, error)) error {
	log := app.logger.WithField("op", op)
	start := time.Now()

	s, err := fn()

	elapsed := time.Since(start)
	app.metrics.RecordOperation(elapsed, err)
	if s != nil {
		app.metrics.RecordCache(s.Cache().Stats())
	}

	if err != nil {
		log.Debug("failed after %s: %v", elapsed, err)
		return NewOperationError(op, target, err)
	}
	log.Debug("done in %s", elapsed)
	return nil
}

func (app *Application) printer() printer {
	return newPrinter(app.out, app.config.Output)
}

// ParseCharacter reads a single character written literally ("€") or as a
// codepoint ("U+20AC", "u+20ac").
func ParseCharacter(s string) (char.Character, error) {
	if len(s) > 2 && (s[:2] == "U+" || s[:2] == "u+") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return char.Character{}, argError("character", s, "bad codepoint")
		}
		c, err := char.FromCodepoint(codec.Codepoint(v))
		if err != nil {
			return char.Character{}, argError("character", s, err.Error())
		}
		return c, nil
	}

	p := []byte(s)
	if len(p) == 0 {
		return char.Character{}, argError("character", s, "empty")
	}
	if codec.Validate(p) >= 0 {
		return char.Character{}, argError("character", s, "invalid UTF-8")
	}
	c, err := char.FromBytes(p)
	if err != nil {
		return char.Character{}, argError("character", s, err.Error())
	}
	if c.Len() != len(p) {
		return char.Character{}, argError("character", s, "more than one character")
	}
	return c, nil
}

// ParseIndex reads a non-negative character index.
func ParseIndex(name, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, argError(name, s, "must be a non-negative integer")
	}
	return n, nil
}

// ParseCount reads a character count; "npos", "end" and -1 mean through the
// end of the string.
func ParseCount(name, s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "npos", "end", "-1":
		return ustr.Npos, nil
	}
	return ParseIndex(name, s)
}
