// seehuhn.de/go/glyphedit - inspect and edit glyph outlines of font files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Glyphtool inspects the glyphs of font files, either locally or through a
// glyph editor server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/term"

	"seehuhn.de/go/glyphedit"
	"seehuhn.de/go/glyphedit/internal/buildinfo"
	"seehuhn.de/go/glyphedit/internal/profile"
)

var (
	serverArg = flag.String("server", envOr("GLYPHEDIT_SERVER", "http://localhost:3001"),
		"glyph editor server `URL` (default $GLYPHEDIT_SERVER)")
	verbose  = flag.Bool("v", false, "log debug messages")
	profiles = profile.AddFlags(flag.CommandLine)
)

// command is a sub-command of glyphtool.
type command struct {
	args    string
	help    string
	run     func(ctx context.Context, env *env, fs *flag.FlagSet, args []string) error
	offline bool
}

var commands = map[string]*command{
	"list": {
		args: "[-chars s] <font file>", offline: true,
		help: "list the glyphs of a font file",
		run:  cmdList,
	},
	"sheet": {
		args: "[-o file.svg] [-cols n] [-size px] [-chars s] <font file>", offline: true,
		help: "draw the glyphs of a font file as an SVG image",
		run:  cmdSheet,
	},
	"load": {
		args: "<font file>",
		help: "upload a font file to the server and list its glyphs",
		run:  cmdLoad,
	},
	"query": {
		args: "<characters>",
		help: "list the glyphs of the server's default font for the given characters",
		run:  cmdQuery,
	},
	"edit": {
		args: "-glyph name [-unicode c] <image file>",
		help: "send a drawing of a glyph to the server and print the new glyph",
		run:  cmdEdit,
	},
	"save": {
		args: "<font file>",
		help: "upload a font file and ask the server to save it",
		run:  cmdSave,
	},
	"status": {
		help: "show the state of the server's default font",
		run:  cmdStatus,
	},
}

var commandOrder = []string{"list", "sheet", "load", "query", "edit", "save", "status"}

// env holds the settings shared by all sub-commands.
type env struct {
	server string
	stdout io.Writer

	// width is the terminal width, or 0 if output is not a terminal.
	width int
}

func main() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "glyphtool \u2014 inspect and edit glyph outlines\n")
		fmt.Fprintf(out, "%s\n\n", buildinfo.Short("glyphtool"))
		fmt.Fprintf(out, "Usage:\n")
		fmt.Fprintf(out, "  glyphtool [options] <command> [arguments]\n\n")
		fmt.Fprintf(out, "Commands:\n")
		for _, name := range commandOrder {
			cmd := commands[name]
			fmt.Fprintf(out, "  %-7s %s\n", name, cmd.help)
			if cmd.args != "" {
				fmt.Fprintf(out, "          glyphtool %s %s\n", name, cmd.args)
			}
		}
		fmt.Fprintf(out, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  glyphtool list -chars Hello DejaVuSans.ttf\n")
		fmt.Fprintf(out, "  glyphtool sheet -o glyphs.svg font.woff2\n")
		fmt.Fprintf(out, "  glyphtool -server http://localhost:3001 query abc\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	if _, ok := commands[flag.Arg(0)]; !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	glyphedit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(name string, args []string) error {
	cmd := commands[name]

	stop, err := profiles.Start()
	if err != nil {
		return err
	}
	defer stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	e := &env{
		server: *serverArg,
		stdout: os.Stdout,
		width:  terminalWidth(os.Stdout),
	}
	err = cmd.run(ctx, e, newFlagSet(name, cmd.args), args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

func terminalWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// newFlagSet returns a flag set for a sub-command.
func newFlagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet("glyphtool "+name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  glyphtool %s %s\n", name, usage)
		fs.PrintDefaults()
	}
	return fs
}

// parseArgs parses the arguments of a sub-command, which must leave
// exactly n positional arguments.
func parseArgs(fs *flag.FlagSet, args []string, n int) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != n {
		fs.Usage()
		return fmt.Errorf("%s: expected %d argument(s), got %d", fs.Name(), n, fs.NArg())
	}
	return nil
}
