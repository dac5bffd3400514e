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

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/glyphedit"
)

func on(x, y float64) glyphedit.Point  { return glyphedit.Point{X: x, Y: y} }
func off(x, y float64) glyphedit.Point { return glyphedit.Point{X: x, Y: y, OffCurve: true} }

func TestSVGPath(t *testing.T) {
	tests := []struct {
		name  string
		glyph *glyphedit.Glyph
		want  string
	}{
		{
			name:  "empty",
			glyph: &glyphedit.Glyph{Name: "space", Contours: []glyphedit.Contour{}},
			want:  "",
		},
		{
			name: "square",
			glyph: &glyphedit.Glyph{Contours: []glyphedit.Contour{
				{on(0, 0), on(500, 0), on(500, 700), on(0, 700)},
			}},
			want: "M 0,0 L 500,0 L 500,700 L 0,700 Z",
		},
		{
			name: "implied midpoint",
			glyph: &glyphedit.Glyph{Contours: []glyphedit.Contour{
				{on(0, 0), off(100, 100), off(200, 100), on(300, 0)},
			}},
			want: "M 0,0 Q 100,100 150,100 Q 200,100 300,0 Z",
		},
		{
			name: "wrap around",
			glyph: &glyphedit.Glyph{Contours: []glyphedit.Contour{
				{off(50, 100), on(100, 0), on(0, 0)},
			}},
			want: "M 100,0 L 0,0 Q 50,100 100,0 Z",
		},
		{
			name: "all off-curve",
			glyph: &glyphedit.Glyph{Contours: []glyphedit.Contour{
				{off(0, 0), off(100, 0), off(100, 100), off(0, 100)},
			}},
			want: "M 0,50 Q 0,0 50,0 Q 100,0 100,50 Q 100,100 50,100 Q 0,100 0,50 Z",
		},
		{
			name: "cubic",
			glyph: &glyphedit.Glyph{
				Curves: glyphedit.Cubic,
				Contours: []glyphedit.Contour{
					{on(0, 0), off(0, 50), off(50, 100), on(100, 100)},
				},
			},
			want: "M 0,0 C 0,50 50,100 100,100 Z",
		},
		{
			name: "cubic closing curve",
			glyph: &glyphedit.Glyph{
				Curves: glyphedit.Cubic,
				Contours: []glyphedit.Contour{
					{on(0, 0), on(100, 0), off(100, 50), off(50, 100)},
				},
			},
			want: "M 0,0 L 100,0 C 100,50 50,100 0,0 Z",
		},
		{
			name: "two contours",
			glyph: &glyphedit.Glyph{Contours: []glyphedit.Contour{
				{on(0, 0), on(10, 0), on(10, 10)},
				{on(20, 20), on(30, 20), on(30, 30)},
			}},
			want: "M 0,0 L 10,0 L 10,10 Z M 20,20 L 30,20 L 30,30 Z",
		},
		{
			name: "fractional",
			glyph: &glyphedit.Glyph{Contours: []glyphedit.Contour{
				{on(0.5, -1.25), on(3, 4)},
			}},
			want: "M 0.5,-1.25 L 3,4 Z",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SVGPath(tc.glyph)
			if got != tc.want {
				t.Errorf("got  %q\nwant %q", got, tc.want)
			}
		})
	}
}

func TestPath(t *testing.T) {
	g := &glyphedit.Glyph{Contours: []glyphedit.Contour{
		{on(0, 0), off(100, 100), on(200, 0)},
	}}
	p := Path(g)
	if len(p.Cmds) != 3 ||
		p.Cmds[0] != path.CmdMoveTo ||
		p.Cmds[1] != path.CmdQuadTo ||
		p.Cmds[2] != path.CmdClose {
		t.Errorf("unexpected commands %v", p.Cmds)
	}
	want := []vec.Vec2{{X: 0, Y: 0}, {X: 100, Y: 100}, {X: 200, Y: 0}}
	if d := cmp.Diff(want, p.Coords); d != "" {
		t.Error(d)
	}
}

func TestBounds(t *testing.T) {
	g := &glyphedit.Glyph{Contours: []glyphedit.Contour{
		{on(10, 20), off(-5, 100), on(50, 0)},
		{on(30, 30)},
	}}
	want := rect.Rect{LLx: -5, LLy: 0, URx: 50, URy: 100}
	if got := Bounds(g); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := Bounds(&glyphedit.Glyph{}); got != (rect.Rect{}) {
		t.Errorf("empty glyph: got %v", got)
	}
}

func TestWriteSVG(t *testing.T) {
	glyphs := []*glyphedit.Glyph{
		{Name: "A", Unicode: "A", Contours: []glyphedit.Contour{
			{on(0, 0), on(500, 0), on(500, 700), on(0, 700)},
		}},
		{Name: "less", Unicode: "<", Contours: []glyphedit.Contour{}},
	}
	buf := &bytes.Buffer{}
	err := WriteSVG(buf, glyphs, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="200" height="116"`,
		`transform="matrix(1 0 0 -1 0 800)"`,
		`fill-rule="nonzero"`,
		`d="M 0,0 L 500,0 L 500,700 L 0,700 Z"`,
		`>A (A)</text>`,
		`>less (&lt;)</text>`,
		`viewBox="0 0 1000 1000"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
	if n := strings.Count(out, "<path "); n != 1 {
		t.Errorf("got %d paths, want 1", n)
	}
}

func TestImage(t *testing.T) {
	// A square with a square hole, drawn in the opposite direction.
	g := &glyphedit.Glyph{Contours: []glyphedit.Contour{
		{on(0, 0), on(500, 0), on(500, 500), on(0, 500)},
		{on(100, 100), on(100, 400), on(400, 400), on(400, 100)},
	}}
	img := Image(g, nil)
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 200 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}

	// With the default options, one font unit is 0.2 pixels and the
	// baseline is at y=160.
	tests := []struct {
		x, y  int
		black bool
	}{
		{10, 110, true},   // left part of the outline
		{50, 110, false},  // hole
		{150, 110, false}, // right of the glyph
		{50, 180, false},  // below the baseline
		{90, 70, true},    // top right corner area
	}
	for _, tc := range tests {
		v := img.GrayAt(tc.x, tc.y).Y
		if tc.black && v > 0x20 || !tc.black && v < 0xE0 {
			t.Errorf("pixel (%d,%d) = %d, black=%t", tc.x, tc.y, v, tc.black)
		}
	}
}

func TestImageEmpty(t *testing.T) {
	img := Image(&glyphedit.Glyph{}, &Options{Size: 16})
	for _, p := range img.Pix {
		if p != 0xFF {
			t.Fatal("empty glyph should give a white image")
		}
	}
}
