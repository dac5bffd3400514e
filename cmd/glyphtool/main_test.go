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
	"bytes"
	"context"
	"flag"
	"image"
	"image/png"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"seehuhn.de/go/glyphedit"
	"seehuhn.de/go/glyphedit/internal/testfont"
	"seehuhn.de/go/glyphedit/query"
	"seehuhn.de/go/glyphedit/server"
)

func writeFont(t *testing.T, name string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fname, testfont.GoRegular(), 0o644); err != nil {
		t.Fatal(err)
	}
	return fname
}

func runCmd(t *testing.T, e *env, name string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	e.stdout = buf
	cmd := commands[name]
	fs := newFlagSet(name, cmd.args)
	fs.SetOutput(&bytes.Buffer{})
	err := cmd.run(context.Background(), e, fs, args)
	return buf.String(), err
}

func testEnv(t *testing.T) *env {
	t.Helper()
	svc := query.LoadBytes(testfont.GoRegular(), "goregular.ttf")
	ts := httptest.NewServer(server.New(&server.Config{Query: svc}))
	t.Cleanup(ts.Close)
	return &env{server: ts.URL}
}

func TestWriteList(t *testing.T) {
	glyphs := []*glyphedit.Glyph{
		{Name: ".notdef", Contours: []glyphedit.Contour{}},
		{Name: "A", Unicode: "A", Contours: []glyphedit.Contour{
			{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		}},
	}
	buf := &bytes.Buffer{}
	if err := writeList(buf, glyphs, 0); err != nil {
		t.Fatal(err)
	}
	want := "" +
		"    #  name                     code     contours points  character\n" +
		"    0  .notdef                  -               0      0\n" +
		"    1  A                        U+0041          1      3  LATIN CAPITAL LETTER A\n"
	if got := buf.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}

	buf.Reset()
	writeList(buf, glyphs, 20)
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		if len(line) >= 20 {
			t.Errorf("line %q not truncated", line)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		line  string
		width int
		want  string
	}{
		{"hello", 0, "hello"},
		{"hello", 6, "hello"},
		{"hello", 5, "hell"},
		{"hello", 1, ""},
		{"caf\u00e9 au lait", 5, "caf\u00e9"},
		{"\u00e9\u00e9\u00e9", 3, "\u00e9\u00e9"},
		{"\U0001F600x", 2, "\U0001F600"},
	}
	for _, tc := range tests {
		got := truncate(tc.line, tc.width)
		if got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.line, tc.width, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) is not valid UTF-8", tc.line, tc.width)
		}
	}
}

func TestWriteListMultiByte(t *testing.T) {
	glyphs := []*glyphedit.Glyph{
		{Name: "eacute", Unicode: "\u00e9", CodePoints: []rune{0xE9}, Contours: []glyphedit.Contour{}},
		{Name: "\u00e9l\u00e8ve", Contours: []glyphedit.Contour{}},
	}
	for width := 1; width < 80; width++ {
		buf := &bytes.Buffer{}
		if err := writeList(buf, glyphs, width); err != nil {
			t.Fatal(err)
		}
		if !utf8.Valid(buf.Bytes()) {
			t.Fatalf("width %d: output is not valid UTF-8: %q", width, buf.String())
		}
		for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
			if n := utf8.RuneCountInString(line); n >= width {
				t.Errorf("width %d: line %q has %d characters", width, line, n)
			}
		}
	}
}

func TestList(t *testing.T) {
	fname := writeFont(t, "goregular.ttf")

	out, err := runCmd(t, &env{}, "list", "-chars", "Ab", fname)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "LATIN CAPITAL LETTER A") ||
		!strings.Contains(lines[2], "LATIN SMALL LETTER B") {
		t.Errorf("unexpected output\n%s", out)
	}

	out, err = runCmd(t, &env{}, "list", fname)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out, "\n"); n < 100 {
		t.Errorf("only %d lines for the full font", n)
	}
}

func TestListErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.xyz")
	os.WriteFile(bad, []byte("hello"), 0o644)

	for _, args := range [][]string{
		{},
		{bad},
		{filepath.Join(dir, "missing.ttf")},
		{"a.ttf", "b.ttf"},
	} {
		if _, err := runCmd(t, &env{}, "list", args...); err == nil {
			t.Errorf("%q: missing error", args)
		}
	}

	if _, err := runCmd(t, &env{}, "list", "-h"); err != flag.ErrHelp {
		t.Errorf("got %v, want %v", err, flag.ErrHelp)
	}
}

func TestSheet(t *testing.T) {
	fname := writeFont(t, "goregular")
	out := filepath.Join(t.TempDir(), "sheet.svg")

	_, err := runCmd(t, &env{}, "sheet", "-o", out, "-chars", "Hello", fname)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	if !strings.HasPrefix(svg, "<svg") {
		t.Errorf("not an SVG image: %.40q", svg)
	}
	if n := strings.Count(svg, "<path "); n != 5 {
		t.Errorf("got %d paths, want 5", n)
	}
}

func TestRemote(t *testing.T) {
	e := testEnv(t)

	out, err := runCmd(t, e, "query", "AA")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(out, "LATIN CAPITAL LETTER A") != 2 {
		t.Errorf("unexpected query output\n%s", out)
	}

	out, err = runCmd(t, e, "query", "中")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "No glyphs found for the given characters" {
		t.Errorf("unexpected output %q", out)
	}

	out, err = runCmd(t, e, "load", writeFont(t, "goregular.ttf"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "LATIN SMALL LETTER Z") {
		t.Error("glyph z missing from load output")
	}

	_, err = runCmd(t, e, "save", writeFont(t, "goregular.ttf"))
	if err == nil || err.Error() != "saving fonts is not implemented" {
		t.Errorf("unexpected save result %v", err)
	}

	out, err = runCmd(t, e, "status")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "goregular.ttf (ready)") {
		t.Errorf("unexpected status output %q", out)
	}
}

func TestRemoteEdit(t *testing.T) {
	e := testEnv(t)

	fname := filepath.Join(t.TempDir(), "drawing.png")
	f, err := os.Create(fname)
	if err != nil {
		t.Fatal(err)
	}
	png.Encode(f, image.NewGray(image.Rect(0, 0, 200, 200)))
	f.Close()

	out, err := runCmd(t, e, "edit", "-glyph", "A", "-unicode", "A", fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"name": "A"`) ||
		!strings.Contains(out, "M 0,0 L 100,0 L 100,100 L 0,100 Z") {
		t.Errorf("unexpected output\n%s", out)
	}

	if _, err := runCmd(t, e, "edit", fname); err == nil {
		t.Error("missing glyph name accepted")
	}
}
