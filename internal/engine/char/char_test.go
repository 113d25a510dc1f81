package char

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/charstr/internal/engine/codec"
)

func TestFromBytesCopiesOneCharacter(t *testing.T) {
	c, err := FromBytes([]byte("€uro"))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	if c.Len() != 3 {
		t.Errorf("expected length 3, got %d", c.Len())
	}
	if diff := cmp.Diff([]byte{0xE2, 0x82, 0xAC}, c.Bytes()); diff != "" {
		t.Errorf("bytes mismatch (-want +got):\n%s", diff)
	}
	if c.Decode() != 0x20AC {
		t.Errorf("expected U+20AC, got %#v", c)
	}
}

func TestFromBytesErrors(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want error
	}{
		{"empty", nil, codec.ErrEmpty},
		{"continuation", []byte{0x82, 0xAC}, codec.ErrInvalidLeadByte},
		{"truncated", []byte{0xF0, 0x9F}, codec.ErrTruncated},
		{"not continuation", []byte{0xC3, 'x'}, codec.ErrInvalidContinuation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := FromBytes(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !c.IsZero() {
				t.Error("failed construction should yield the empty Character")
			}
		})
	}
}

func TestFromCodepoint(t *testing.T) {
	for _, cp := range []codec.Codepoint{0, 'x', 0xE9, 0x20AC, 0x1F389} {
		c, err := FromCodepoint(cp)
		if err != nil {
			t.Fatalf("FromCodepoint(U+%04X) failed: %v", cp, err)
		}
		if c.Decode() != cp {
			t.Errorf("expected U+%04X, got %#v", cp, c)
		}
		if c.Len() != codec.EncodedLen(cp) {
			t.Errorf("U+%04X: expected %d bytes, got %d", cp, codec.EncodedLen(cp), c.Len())
		}
	}

	if _, err := FromCodepoint(0xDC00); !errors.Is(err, codec.ErrInvalidCodepoint) {
		t.Errorf("expected ErrInvalidCodepoint, got %v", err)
	}
}

func TestNULIsNotEmpty(t *testing.T) {
	nul := MustFromCodepoint(0)

	if nul.IsZero() {
		t.Error("encoded NUL must not be the empty Character")
	}
	if nul.Len() != 1 {
		t.Errorf("expected NUL length 1, got %d", nul.Len())
	}
	if nul.Equal(Character{}) {
		t.Error("encoded NUL must differ from the empty Character")
	}
}

func TestEqual(t *testing.T) {
	a := MustFromCodepoint(0x20AC)
	b, _ := FromBytes([]byte{0xE2, 0x82, 0xAC, 0xFF})

	if !a.Equal(b) {
		t.Error("same encoding should be equal regardless of trailing input")
	}
	if a.Equal(MustFromCodepoint('x')) {
		t.Error("different characters should not be equal")
	}
}

func TestCStringIsOwned(t *testing.T) {
	a := MustFromCodepoint(0x20AC)
	b := MustFromCodepoint('z')

	ca := a.CString()
	cb := b.CString()

	if diff := cmp.Diff([]byte{0xE2, 0x82, 0xAC, 0}, ca); diff != "" {
		t.Errorf("CString mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]byte{'z', 0}, cb); diff != "" {
		t.Errorf("CString mismatch (-want +got):\n%s", diff)
	}

	ca[0] = 'X'
	if a.Decode() != 0x20AC {
		t.Error("mutating a CString must not affect the Character")
	}
}

func TestStringAndAppend(t *testing.T) {
	c := MustFromCodepoint(0xE9)
	if c.String() != "é" {
		t.Errorf("expected %q, got %q", "é", c.String())
	}

	got := c.AppendTo([]byte("caf"))
	if string(got) != "café" {
		t.Errorf("expected %q, got %q", "café", got)
	}
}

func TestEmptyCharacter(t *testing.T) {
	var c Character
	if c.Len() != 0 || c.String() != "" || len(c.Bytes()) != 0 {
		t.Error("empty Character should occupy no bytes")
	}
	if c.Decode() != 0xFFFD {
		t.Errorf("empty Character should decode to U+FFFD, got U+%04X", c.Decode())
	}
}
