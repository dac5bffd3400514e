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

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"

	"seehuhn.de/go/glyphedit"
	"seehuhn.de/go/glyphedit/client"
	"seehuhn.de/go/glyphedit/decode"
	"seehuhn.de/go/glyphedit/editor"
	"seehuhn.de/go/glyphedit/query"
	"seehuhn.de/go/glyphedit/render"
)

func cmdList(ctx context.Context, e *env, fs *flag.FlagSet, args []string) error {
	chars := fs.String("chars", "", "only list the glyphs for these `characters`")
	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}

	glyphs, _, err := readFont(fs.Arg(0), *chars)
	if err != nil {
		return err
	}
	return writeList(e.stdout, glyphs, e.width)
}

func cmdSheet(ctx context.Context, e *env, fs *flag.FlagSet, args []string) error {
	out := fs.String("o", "", "write the SVG image to `file` instead of standard output")
	cols := fs.Int("cols", 8, "number of glyphs per row")
	size := fs.Int("size", 100, "width of a glyph cell in `pixels`")
	chars := fs.String("chars", "", "only draw the glyphs for these `characters`")
	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}

	glyphs, unitsPerEm, err := readFont(fs.Arg(0), *chars)
	if err != nil {
		return err
	}
	opt := &render.Options{
		UnitsPerEm: unitsPerEm,
		Size:       *size,
		Columns:    *cols,
	}

	if *out == "" {
		return render.WriteSVG(e.stdout, glyphs, opt)
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	err = render.WriteSVG(f, glyphs, opt)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

func cmdLoad(ctx context.Context, e *env, fs *flag.FlagSet, args []string) error {
	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}
	s, err := loadRemote(ctx, e, fs.Arg(0))
	if err != nil {
		return err
	}
	return writeList(e.stdout, s.Glyphs(), e.width)
}

func cmdSave(ctx context.Context, e *env, fs *flag.FlagSet, args []string) error {
	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}
	s, err := loadRemote(ctx, e, fs.Arg(0))
	if err != nil {
		return err
	}
	if err := s.SaveFont(ctx); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "saved %d glyphs\n", len(s.Glyphs()))
	return nil
}

func loadRemote(ctx context.Context, e *env, fname string) (*editor.Session, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s := editor.New(client.New(e.server))
	if err := s.Load(ctx, filepath.Base(fname), f); err != nil {
		return nil, err
	}
	return s, nil
}

func cmdQuery(ctx context.Context, e *env, fs *flag.FlagSet, args []string) error {
	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}

	s := editor.New(client.New(e.server))
	err := s.Query(ctx, fs.Arg(0))
	if errors.Is(err, editor.ErrNoGlyphs) {
		fmt.Fprintln(e.stdout, s.Banner())
		return nil
	} else if err != nil {
		return err
	}
	return writeList(e.stdout, s.Glyphs(), e.width)
}

func cmdEdit(ctx context.Context, e *env, fs *flag.FlagSet, args []string) error {
	name := fs.String("glyph", "", "glyph `name`")
	unicode := fs.String("unicode", "", "character mapped to the glyph")
	if err := parseArgs(fs, args, 1); err != nil {
		return err
	}

	img, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	g, err := client.New(e.server).UpdateGlyph(ctx, *name, *unicode, img)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "%s\n%s\n", data, render.SVGPath(g))
	return nil
}

func cmdStatus(ctx context.Context, e *env, fs *flag.FlagSet, args []string) error {
	if err := parseArgs(fs, args, 0); err != nil {
		return err
	}
	st, err := client.New(e.server).Status(ctx)
	if err != nil {
		return err
	}

	state := "ready"
	if !st.Ready {
		state = "unavailable"
	}
	fmt.Fprintf(e.stdout, "default font: %s (%s)\n", st.Source, state)
	if st.Ready {
		fmt.Fprintf(e.stdout, "glyphs: %d\n", st.NumGlyphs)
	} else {
		fmt.Fprintf(e.stdout, "error: %s\n", st.Message)
	}
	return nil
}

// readFont reads a local font file.  If chars is not empty, only the glyphs
// for these characters are returned.  The second return value is the size
// of the em square in font design units.
func readFont(fname, chars string) ([]*glyphedit.Glyph, float64, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, 0, err
	}

	format, err := decode.FormatFromName(fname)
	if err != nil && !decode.HasExtension(fname) {
		if format = decode.Sniff(data); format != decode.Unknown {
			err = nil
		}
	}
	if err != nil {
		return nil, 0, err
	}

	info, err := decode.Read(data, format)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", fname, err)
	}
	unitsPerEm := float64(info.UnitsPerEm)

	var glyphs []*glyphedit.Glyph
	if chars == "" {
		glyphs, err = decode.Glyphs(info)
	} else {
		glyphs, err = query.New(info).Lookup([]rune(chars))
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", fname, err)
	}
	return glyphs, unitsPerEm, nil
}

// writeList prints one line per glyph.  If width is positive, lines are
// truncated to fit.
func writeList(w io.Writer, glyphs []*glyphedit.Glyph, width int) error {
	lines := []string{
		fmt.Sprintf("%5s  %-24s %-8s %8s %6s  %s", "#", "name", "code", "contours", "points", "character"),
	}
	for i, g := range glyphs {
		code, desc := "-", ""
		if g.Unicode != "" {
			r := []rune(g.Unicode)[0]
			code = fmt.Sprintf("U+%04X", r)
			desc = runenames.Name(r)
		}
		lines = append(lines, fmt.Sprintf("%5d  %-24s %-8s %8d %6d  %s",
			i, g.Name, code, len(g.Contours), g.NumPoints(), desc))
	}

	for _, line := range lines {
		line = truncate(strings.TrimRight(line, " "), width)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// truncate shortens line to fewer than width characters, so that it fits
// on a terminal line of the given width.  Lines are cut at character
// boundaries.  If width is not positive, line is returned unchanged.
func truncate(line string, width int) string {
	if width <= 0 || utf8.RuneCountInString(line) < width {
		return line
	}
	return string([]rune(line)[:width-1])
}
