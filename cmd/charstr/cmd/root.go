// Package cmd implements the charstr command tree.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/charstr/internal/app"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globals holds the persistent flags and the application built from them.
type globals struct {
	cfgFile  string
	logLevel string
	format   string
	textFile string

	app *app.Application
}

// NewRootCommand builds the charstr command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "charstr",
		Short: "Character-indexed UTF-8 strings",
		Long: `charstr addresses, reads and edits the n-th Unicode character of a
UTF-8 string by logical index.

Indices count characters, not bytes, and start at 0. Characters may be
written literally ("€") or as codepoints ("U+20AC").`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			a, err := app.New(app.Options{
				ConfigPath: g.cfgFile,
				LogLevel:   g.logLevel,
				Format:     g.format,
				Output:     cmd.OutOrStdout(),
				ErrOutput:  cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			g.app = a
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if g.app != nil {
				g.app.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&g.cfgFile, "config", "", "config file (.toml, .yaml)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.format, "format", "", "output format (text, hex)")
	root.PersistentFlags().StringVar(&g.textFile, "text-file", "", "read the input text from a file instead of an argument")

	root.AddCommand(
		newInspectCommand(g),
		newGetCommand(g),
		newSetCommand(g),
		newInsertCommand(g),
		newEraseCommand(g),
		newReplaceCommand(g),
		newPushCommand(g),
		newRunCommand(g),
		newVersionCommand(info),
	)
	return root
}

// textArgs accepts the input text followed by between lo and hi further
// arguments. The text argument is omitted when --text-file is set.
func (g *globals) textArgs(lo, hi int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		n := len(args)
		if g.textFile == "" {
			if n == 0 {
				return fmt.Errorf("missing TEXT argument")
			}
			n--
		}
		if n < lo || n > hi {
			if lo == hi {
				return fmt.Errorf("accepts %d arg(s) after TEXT, received %d", lo, n)
			}
			return fmt.Errorf("accepts %d to %d arg(s) after TEXT, received %d", lo, hi, n)
		}
		return nil
	}
}

// splitText returns the input text and the remaining arguments.
func (g *globals) splitText(args []string) (string, []string, error) {
	if g.textFile == "" {
		return args[0], args[1:], nil
	}
	data, err := os.ReadFile(g.textFile)
	if err != nil {
		return "", nil, fmt.Errorf("reading text file: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), args, nil
}
