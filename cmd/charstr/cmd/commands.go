package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/charstr/internal/app"
)

func newInspectCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect TEXT",
		Short: "Show size, length and the character table of TEXT",
		Args:  g.textArgs(0, 0),
		RunE: func(_ *cobra.Command, args []string) error {
			text, _, err := g.splitText(args)
			if err != nil {
				return err
			}
			return g.app.Inspect(text)
		},
	}
}

func newGetCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "get TEXT IDX",
		Short: "Print the character at IDX",
		Args:  g.textArgs(1, 1),
		RunE: func(_ *cobra.Command, args []string) error {
			text, rest, err := g.splitText(args)
			if err != nil {
				return err
			}
			idx, err := app.ParseIndex("index", rest[0])
			if err != nil {
				return err
			}
			return g.app.Get(text, idx)
		},
	}
}

func newSetCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "set TEXT IDX CHAR",
		Short: "Replace the character at IDX with CHAR",
		Args:  g.textArgs(2, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			text, rest, err := g.splitText(args)
			if err != nil {
				return err
			}
			idx, err := app.ParseIndex("index", rest[0])
			if err != nil {
				return err
			}
			return g.app.Set(text, idx, rest[1])
		},
	}
}

func newInsertCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "insert TEXT IDX TEXT2",
		Short: "Insert TEXT2 before the character at IDX",
		Args:  g.textArgs(2, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			text, rest, err := g.splitText(args)
			if err != nil {
				return err
			}
			idx, err := app.ParseIndex("index", rest[0])
			if err != nil {
				return err
			}
			return g.app.Insert(text, idx, rest[1])
		},
	}
}

func newEraseCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "erase TEXT POS N",
		Short: "Remove N characters starting at POS",
		Long:  `Remove N characters starting at POS. N may be "npos" to erase through the end.`,
		Args:  g.textArgs(2, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			text, rest, err := g.splitText(args)
			if err != nil {
				return err
			}
			pos, err := app.ParseIndex("position", rest[0])
			if err != nil {
				return err
			}
			n, err := app.ParseCount("count", rest[1])
			if err != nil {
				return err
			}
			return g.app.Erase(text, pos, n)
		},
	}
}

func newReplaceCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "replace TEXT POS N TEXT2 [SUBPOS SUBLEN]",
		Short: "Replace N characters at POS with TEXT2 or a part of it",
		Args:  g.textArgs(3, 5),
		RunE: func(_ *cobra.Command, args []string) error {
			text, rest, err := g.splitText(args)
			if err != nil {
				return err
			}
			if len(rest) == 4 {
				return fmt.Errorf("SUBPOS requires SUBLEN")
			}
			pos, err := app.ParseIndex("position", rest[0])
			if err != nil {
				return err
			}
			n, err := app.ParseCount("count", rest[1])
			if err != nil {
				return err
			}

			var sub *app.Span
			if len(rest) == 5 {
				subpos, err := app.ParseIndex("subposition", rest[3])
				if err != nil {
					return err
				}
				sublen, err := app.ParseCount("sublength", rest[4])
				if err != nil {
					return err
				}
				sub = &app.Span{Pos: subpos, Len: sublen}
			}
			return g.app.Replace(text, pos, n, rest[2], sub)
		},
	}
}

func newPushCommand(g *globals) *cobra.Command {
	var front bool

	cmd := &cobra.Command{
		Use:   "push TEXT CHAR",
		Short: "Append CHAR to TEXT",
		Args:  g.textArgs(1, 1),
		RunE: func(_ *cobra.Command, args []string) error {
			text, rest, err := g.splitText(args)
			if err != nil {
				return err
			}
			return g.app.Push(text, rest[0], front)
		},
	}
	cmd.Flags().BoolVar(&front, "front", false, "prepend instead of append")
	return cmd
}

func newRunCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "run SCRIPT.lua [TEXT]",
		Short: "Run a Lua script with TEXT bound to the global input",
		Long: `Run a sandboxed Lua script. The str module builds strings and the global
input holds TEXT (or the contents of --text-file) as a str value.`,
		Args: func(_ *cobra.Command, args []string) error {
			hi := 2
			if g.textFile != "" {
				hi = 1
			}
			if len(args) < 1 || len(args) > hi {
				return fmt.Errorf("accepts SCRIPT.lua and at most %d more arg(s), received %d", hi-1, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			var text string
			if g.textFile != "" {
				t, _, err := g.splitText(nil)
				if err != nil {
					return err
				}
				text = t
			} else if len(args) == 2 {
				text = args[1]
			}

			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return g.app.RunScript(ctx, path, text)
		},
	}
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "charstr %s\n", info.Version)
			fmt.Fprintf(out, "Commit: %s\n", info.Commit)
			fmt.Fprintf(out, "Built: %s\n", info.Date)
		},
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
