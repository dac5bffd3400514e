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

package decode

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sfnt/glyf"

	"seehuhn.de/go/glyphedit"
)

// fromGlyf converts the contours of a simple TrueType glyph.
// The points are kept in their original order, including all off-curve
// points.
func fromGlyf(cc []glyf.Contour) []glyphedit.Contour {
	res := make([]glyphedit.Contour, 0, len(cc))
	for _, c := range cc {
		if len(c) == 0 {
			continue
		}
		out := make(glyphedit.Contour, len(c))
		for i, p := range c {
			out[i] = glyphedit.Point{
				X:        float64(p.X),
				Y:        float64(p.Y),
				OffCurve: !p.OnCurve,
			}
		}
		res = append(res, out)
	}
	return res
}

type segmentOp int

const (
	opMove segmentOp = iota
	opLine
	opQuad
	opCube
	opClose
)

type segment struct {
	op  segmentOp
	pts []vec.Vec2
}

// fromPath converts an outline path to contours.
func fromPath(p path.Path) []glyphedit.Contour {
	var segs []segment
	for cmd, pts := range p {
		var op segmentOp
		switch cmd {
		case path.CmdMoveTo:
			op = opMove
		case path.CmdLineTo:
			op = opLine
		case path.CmdQuadTo:
			op = opQuad
		case path.CmdCubeTo:
			op = opCube
		case path.CmdClose:
			op = opClose
		default:
			continue
		}
		segs = append(segs, segment{op: op, pts: append([]vec.Vec2(nil), pts...)})
	}
	return contoursFromSegments(segs)
}

// contoursFromSegments turns path segments into contours.  The end point
// of every curve segment is on-curve, the control points are off-curve.
// A final on-curve point which repeats the start of its contour is
// dropped, since contours are implicitly closed.
func contoursFromSegments(segs []segment) []glyphedit.Contour {
	res := []glyphedit.Contour{}
	var cur glyphedit.Contour

	flush := func() {
		n := len(cur)
		if n > 1 {
			first, last := cur[0], cur[n-1]
			if !last.OffCurve && last.X == first.X && last.Y == first.Y {
				cur = cur[:n-1]
			}
		}
		if len(cur) > 0 {
			res = append(res, cur)
		}
		cur = nil
	}
	on := func(v vec.Vec2) glyphedit.Point {
		return glyphedit.Point{X: v.X, Y: v.Y}
	}
	off := func(v vec.Vec2) glyphedit.Point {
		return glyphedit.Point{X: v.X, Y: v.Y, OffCurve: true}
	}

	for _, s := range segs {
		switch s.op {
		case opMove:
			flush()
			cur = append(cur, on(s.pts[0]))
		case opLine:
			cur = append(cur, on(s.pts[0]))
		case opQuad:
			cur = append(cur, off(s.pts[0]), on(s.pts[1]))
		case opCube:
			cur = append(cur, off(s.pts[0]), off(s.pts[1]), on(s.pts[2]))
		case opClose:
			flush()
		}
	}
	flush()

	return res
}
