package script

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/charstr/internal/engine/ustr"
)

func TestStrModule(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"len and size", `local s = str.new("a€b") print(s:len(), s:size(), #s)`, "3\t5\t3"},
		{"get", `print(str.new("a€b"):get(1))`, "€"},
		{"codepoint", `print(str.new("a€b"):codepoint(1))`, "8364"},
		{"set narrower", `local s = str.new("a€b") s:set(1, "x") print(s:text(), s:size())`, "axb\t3"},
		{"set by codepoint", `local s = str.new("ab") s:set(0, 0x1F600) print(s:codepoint(0), s:len())`, "128512\t2"},
		{"insert", `local s = str.new("ab") s:insert(1, "€") print(s)`, "a€b"},
		{"insert at end", `local s = str.new("ab") s:insert(2, "βγ") print(s, s:len())`, "abβγ\t4"},
		{"insert str", `local s = str.new("ad") s:insert(1, str.new("bc")) print(s)`, "abcd"},
		{"erase", `local s = str.new("aβγb") s:erase(1, 2) print(s)`, "ab"},
		{"erase to end", `local s = str.new("aβγb") s:erase(1) print(s)`, "a"},
		{"replace", `local s = str.new("a€b") s:replace(1, 1, "xyz") print(s)`, "axyzb"},
		{"replace sub", `local s = str.new("ab") s:replace(1, 0, "αβγδ", 1, 2) print(s)`, "aβγb"},
		{"push", `local s = str.new("b") s:push_back("c") s:push_front("a") print(s)`, "abc"},
		{"bytes", `print(table.concat(str.new("€"):bytes(), ","))`, "226,130,172"},
		{"chars", `local t = {} for i, c in str.new("aé") :chars() do t[#t+1] = i .. c end print(table.concat(t, " "))`, "0a 1é"},
		{"char", `print(str.char(0x20AC))`, "€"},
		{"graphemes", `local s = str.new("cafe\204\129") print(s:len(), s:graphemes(), s:width())`, "5\t4\t4"},
		{"clone", `local a = str.new("ab") local b = a:clone() b:set(0, "z") print(a, b, a == b)`, "ab\tzb\tfalse"},
		{"equal", `print(str.new("ab") == str.new("ab"))`, "true"},
		{"npos", `print(str.npos)`, "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, out := newTestState(t)
			if err := state.Run(context.Background(), tt.name, tt.code); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got := strings.TrimSuffix(out.String(), "\n"); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStrModuleErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{"get out of range", `str.new("ab"):get(2)`, ustr.ErrIndexOutOfRange},
		{"set out of range", `str.new("ab"):set(5, "x")`, ustr.ErrIndexOutOfRange},
		{"insert past end", `str.new("ab"):insert(3, "x")`, ustr.ErrIndexOutOfRange},
		{"erase out of range", `str.new("ab"):erase(3, 1)`, ustr.ErrIndexOutOfRange},
		{"invalid utf8", `str.new("\195")`, ustr.ErrInvalidUTF8},
		{"invalid insert", `str.new("ab"):insert(0, "\255")`, ustr.ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, _ := newTestState(t)
			err := state.Run(context.Background(), tt.name, tt.code)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestStrModuleArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"two characters", `str.new("ab"):set(0, "xy")`},
		{"empty character", `str.new("ab"):push_back("")`},
		{"surrogate", `str.new("ab"):set(0, 0xD800)`},
		{"not a str", `str.new("ab").len({})`},
		{"table character", `str.new("ab"):set(0, {})`},
		{"fractional codepoint", `str.new("ab"):set(0, 65.9)`},
		{"codepoint past int32", `str.new("ab"):set(0, 4294967361)`},
		{"negative codepoint", `str.new("ab"):push_back(-1)`},
		{"fractional char", `str.char(65.5)`},
		{"char past int32", `str.char(4294967361)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, _ := newTestState(t)
			if err := state.Run(context.Background(), tt.name, tt.code); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRejectedCodepointLeavesStringUnchanged(t *testing.T) {
	state, out := newTestState(t)

	err := state.Run(context.Background(), "codepoint", `
local s = str.new("ab")
local ok = pcall(function() s:set(0, 65.9) end)
print(ok, s)
`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := strings.TrimSuffix(out.String(), "\n"); got != "false\tab" {
		t.Errorf("expected %q, got %q", "false\tab", got)
	}
}

func TestStrErrorsCanBeCaught(t *testing.T) {
	state, out := newTestState(t)

	err := state.Run(context.Background(), "pcall", `
local ok, err = pcall(function() return str.new("ab"):get(9) end)
print(ok, tostring(err))
`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "false\t") || !strings.Contains(out.String(), "out of range") {
		t.Errorf("unexpected output %q", out.String())
	}
}
