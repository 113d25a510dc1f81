package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/unicode/runenames"

	"github.com/dshills/charstr/internal/config"
	"github.com/dshills/charstr/internal/engine/char"
	"github.com/dshills/charstr/internal/engine/ustr"
)

// printer writes command results in the configured format.
type printer struct {
	w         io.Writer
	format    string
	graphemes bool
}

func newPrinter(w io.Writer, cfg config.OutputConfig) printer {
	return printer{w: w, format: cfg.Format, graphemes: cfg.Graphemes}
}

// hex formats p as space separated lowercase byte pairs.
func hex(p []byte) string {
	return fmt.Sprintf("% x", p)
}

// str prints the contents of s.
func (p printer) str(s *ustr.String) {
	if p.format == config.FormatHex {
		fmt.Fprintln(p.w, hex(s.Data()))
		return
	}
	fmt.Fprintln(p.w, s.Text())
}

// character prints c with its codepoint.
func (p printer) character(c char.Character) {
	if p.format == config.FormatHex {
		fmt.Fprintln(p.w, hex(c.Bytes()))
		return
	}
	fmt.Fprintf(p.w, "%s\t%#v\n", c, c)
}

// inspect prints a summary of s followed by one row per character.
func (p printer) inspect(s *ustr.String) error {
	fmt.Fprintf(p.w, "%s %d\n", labelStyle.Render("size:"), s.Size())
	fmt.Fprintf(p.w, "%s %d\n", labelStyle.Render("length:"), s.Length())
	if p.graphemes {
		fmt.Fprintf(p.w, "%s %d\n", labelStyle.Render("graphemes:"), s.GraphemeCount())
		fmt.Fprintf(p.w, "%s %d\n", labelStyle.Render("width:"), s.Width())
	}
	if s.IsEmpty() {
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("IDX", "OFFSET", "BYTES", "CODEPOINT", "CHAR", "NAME")

	for cur := s.Begin(); cur.Valid(); cur = cur.Next() {
		c, err := cur.Get()
		if err != nil {
			return err
		}
		off, err := s.PeekOffset(cur.Index())
		if err != nil {
			return err
		}
		t.Row(
			strconv.Itoa(cur.Index()),
			strconv.Itoa(off),
			hex(c.Bytes()),
			c.GoString(),
			printable(c),
			runenames.Name(c.Decode()),
		)
	}

	fmt.Fprintln(p.w, t.Render())
	return nil
}

// printable returns c for display, or an empty cell for control characters.
func printable(c char.Character) string {
	if cp := c.Decode(); cp < 0x20 || cp == 0x7F {
		return ""
	}
	return c.String()
}
