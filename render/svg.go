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
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/glyphedit"
)

// SVGPath returns the outline of g as SVG path data, in font design units.
// Glyphs without contours give the empty string.
func SVGPath(g *glyphedit.Glyph) string {
	p := Path(g)

	var parts []string
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			parts = append(parts, "M "+coord(p.Coords[k]))
			k++
		case path.CmdLineTo:
			parts = append(parts, "L "+coord(p.Coords[k]))
			k++
		case path.CmdQuadTo:
			parts = append(parts, "Q "+coord(p.Coords[k])+" "+coord(p.Coords[k+1]))
			k += 2
		case path.CmdCubeTo:
			parts = append(parts, "C "+coord(p.Coords[k])+" "+coord(p.Coords[k+1])+" "+coord(p.Coords[k+2]))
			k += 3
		case path.CmdClose:
			parts = append(parts, "Z")
		}
	}
	return strings.Join(parts, " ")
}

func coord(v vec.Vec2) string {
	return num(v.X) + "," + num(v.Y)
}

func num(x float64) string {
	if x == 0 {
		x = 0 // avoid "-0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// WriteSVG writes an SVG image showing the given glyphs in a grid of
// cells.  Each cell shows the em square of one glyph, together with the
// glyph name and its label.
//
// All contours of a glyph are drawn as a single path with the non-zero
// fill rule, so that counters are left unpainted.
func WriteSVG(w io.Writer, glyphs []*glyphedit.Glyph, opt *Options) error {
	o := opt.withDefaults(100)

	cols := min(o.Columns, max(len(glyphs), 1))
	rows := (len(glyphs) + cols - 1) / cols
	labelHeight := 16
	cellW := o.Size
	cellH := o.Size + labelHeight
	width := cols * cellW
	height := max(rows, 1) * cellH

	m := o.flip(o.UnitsPerEm)

	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		width, height, width, height)
	for i, g := range glyphs {
		x := (i % cols) * cellW
		y := (i / cols) * cellH
		fmt.Fprintf(buf, "<g transform=\"translate(%d %d)\">\n", x, y)
		fmt.Fprintf(buf, "<rect width=\"%d\" height=\"%d\" fill=\"none\" stroke=\"#ccc\"/>\n", cellW, o.Size)
		fmt.Fprintf(buf, "<svg width=\"%d\" height=\"%d\" viewBox=\"0 0 %s %s\">\n",
			o.Size, o.Size, num(o.UnitsPerEm), num(o.UnitsPerEm))
		if d := SVGPath(g); d != "" {
			fmt.Fprintf(buf, "<path transform=\"matrix(%s %s %s %s %s %s)\" fill-rule=\"nonzero\" d=\"%s\"/>\n",
				num(m[0]), num(m[1]), num(m[2]), num(m[3]), num(m[4]), num(m[5]), d)
		}
		buf.WriteString("</svg>\n")
		fmt.Fprintf(buf, "<text x=\"2\" y=\"%d\" font-size=\"12\" font-family=\"sans-serif\">", o.Size+labelHeight-4)
		label := g.Name
		if g.Unicode != "" {
			label += " (" + g.Unicode + ")"
		}
		if err := xml.EscapeText(buf, []byte(label)); err != nil {
			return err
		}
		buf.WriteString("</text>\n</g>\n")
	}
	buf.WriteString("</svg>\n")

	_, err := w.Write(buf.Bytes())
	return err
}
