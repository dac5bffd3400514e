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

// Package render draws glyph outlines.
//
// All functions in this package interpret the points of a glyph according
// to its [glyphedit.CurveType].  For quadratic outlines, an on-curve point
// is implied between two consecutive off-curve points, and a contour may
// start with an off-curve point.  For cubic outlines, off-curve points are
// expected in pairs.
package render

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/glyphedit"
)

// Path converts the outline of g into a path.  Every contour becomes one
// closed subpath.
func Path(g *glyphedit.Glyph) *path.Data {
	p := &path.Data{}
	for _, c := range g.Contours {
		if len(c) == 0 {
			continue
		}
		if g.Curves == glyphedit.Cubic {
			appendCubic(p, c)
		} else {
			appendQuadratic(p, c)
		}
	}
	return p
}

func appendQuadratic(p *path.Data, c glyphedit.Contour) {
	n := len(c)
	start := firstOnCurve(c)

	var startPt vec.Vec2
	var order []glyphedit.Point
	if start < 0 {
		startPt = mid(c[n-1], c[0])
		order = c
	} else {
		startPt = toVec(c[start])
		order = append(order, c[start+1:]...)
		order = append(order, c[:start]...)
	}

	moveTo(p, startPt)
	var ctrl *vec.Vec2
	for _, pt := range order {
		v := toVec(pt)
		switch {
		case pt.OffCurve && ctrl != nil:
			quadTo(p, *ctrl, vec.Vec2{X: (ctrl.X + v.X) / 2, Y: (ctrl.Y + v.Y) / 2})
			ctrl = &v
		case pt.OffCurve:
			ctrl = &v
		case ctrl != nil:
			quadTo(p, *ctrl, v)
			ctrl = nil
		default:
			lineTo(p, v)
		}
	}
	if ctrl != nil {
		quadTo(p, *ctrl, startPt)
	}
	closePath(p)
}

// appendCubic adds a cubic contour.  Runs of off-curve points which are not
// pairs are drawn as quadratic curves (single point) or as straight lines.
func appendCubic(p *path.Data, c glyphedit.Contour) {
	start := max(firstOnCurve(c), 0)
	startPt := toVec(c[start])

	moveTo(p, startPt)
	var ctrl []vec.Vec2
	flush := func(to vec.Vec2) {
		switch len(ctrl) {
		case 0:
			lineTo(p, to)
		case 1:
			quadTo(p, ctrl[0], to)
		case 2:
			cubeTo(p, ctrl[0], ctrl[1], to)
		default:
			for _, v := range ctrl {
				lineTo(p, v)
			}
			lineTo(p, to)
		}
		ctrl = ctrl[:0]
	}
	n := len(c)
	for i := 1; i < n; i++ {
		pt := c[(start+i)%n]
		if pt.OffCurve {
			ctrl = append(ctrl, toVec(pt))
			continue
		}
		flush(toVec(pt))
	}
	if len(ctrl) > 0 {
		flush(startPt)
	}
	closePath(p)
}

func firstOnCurve(c glyphedit.Contour) int {
	for i, pt := range c {
		if !pt.OffCurve {
			return i
		}
	}
	return -1
}

func toVec(pt glyphedit.Point) vec.Vec2 {
	return vec.Vec2{X: pt.X, Y: pt.Y}
}

func mid(a, b glyphedit.Point) vec.Vec2 {
	return vec.Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func moveTo(p *path.Data, v vec.Vec2) {
	p.Cmds = append(p.Cmds, path.CmdMoveTo)
	p.Coords = append(p.Coords, v)
}

func lineTo(p *path.Data, v vec.Vec2) {
	p.Cmds = append(p.Cmds, path.CmdLineTo)
	p.Coords = append(p.Coords, v)
}

func quadTo(p *path.Data, c, v vec.Vec2) {
	p.Cmds = append(p.Cmds, path.CmdQuadTo)
	p.Coords = append(p.Coords, c, v)
}

func cubeTo(p *path.Data, c1, c2, v vec.Vec2) {
	p.Cmds = append(p.Cmds, path.CmdCubeTo)
	p.Coords = append(p.Coords, c1, c2, v)
}

func closePath(p *path.Data) {
	p.Cmds = append(p.Cmds, path.CmdClose)
}

// Bounds returns the bounding box of all points of g, including off-curve
// points.  Glyphs without points have an all-zero bounding box.
func Bounds(g *glyphedit.Glyph) rect.Rect {
	var r rect.Rect
	first := true
	for _, c := range g.Contours {
		for _, pt := range c {
			if first {
				r = rect.Rect{LLx: pt.X, LLy: pt.Y, URx: pt.X, URy: pt.Y}
				first = false
				continue
			}
			r.LLx = min(r.LLx, pt.X)
			r.LLy = min(r.LLy, pt.Y)
			r.URx = max(r.URx, pt.X)
			r.URy = max(r.URy, pt.Y)
		}
	}
	return r
}

// Options control the placement of glyphs in [WriteSVG] and [Image].
type Options struct {
	// UnitsPerEm is the size of the em square in font design units.
	// The default is 1000.
	UnitsPerEm float64

	// Descent is the part of the em square below the baseline, in font
	// design units.  The default is UnitsPerEm/5.
	Descent float64

	// Size is the width and height of a glyph cell in pixels.
	// The default is 200 for [Image] and 100 for [WriteSVG].
	Size int

	// Columns is the number of glyph cells per row in [WriteSVG].
	// The default is 8.
	Columns int
}

func (opt *Options) withDefaults(size int) Options {
	var res Options
	if opt != nil {
		res = *opt
	}
	if res.UnitsPerEm <= 0 {
		res.UnitsPerEm = 1000
	}
	if res.Descent == 0 {
		res.Descent = res.UnitsPerEm / 5
	}
	if res.Size <= 0 {
		res.Size = size
	}
	if res.Columns <= 0 {
		res.Columns = 8
	}
	return res
}

// flip maps font design units to a y-down coordinate system where the
// em square occupies [0, size]×[0, size].
func (opt Options) flip(size float64) matrix.Matrix {
	s := size / opt.UnitsPerEm
	return matrix.Matrix{s, 0, 0, -s, 0, 0}.Mul(matrix.Translate(0, size-opt.Descent*s))
}

func apply(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}
