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
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/glyphedit"
)

// Image draws g in black onto a white square image.  The em square of the
// font fills the image.  Overlapping contours are filled using the
// non-zero winding rule.
func Image(g *glyphedit.Glyph, opt *Options) *image.Gray {
	o := opt.withDefaults(200)
	size := o.Size

	img := image.NewGray(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	p := Path(g)
	if len(p.Cmds) == 0 {
		return img
	}

	m := o.flip(float64(size))
	r := vector.NewRasterizer(size, size)
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			v := apply(m, p.Coords[k])
			r.MoveTo(float32(v.X), float32(v.Y))
			k++
		case path.CmdLineTo:
			v := apply(m, p.Coords[k])
			r.LineTo(float32(v.X), float32(v.Y))
			k++
		case path.CmdQuadTo:
			c := apply(m, p.Coords[k])
			v := apply(m, p.Coords[k+1])
			r.QuadTo(float32(c.X), float32(c.Y), float32(v.X), float32(v.Y))
			k += 2
		case path.CmdCubeTo:
			c1 := apply(m, p.Coords[k])
			c2 := apply(m, p.Coords[k+1])
			v := apply(m, p.Coords[k+2])
			r.CubeTo(float32(c1.X), float32(c1.Y), float32(c2.X), float32(c2.Y), float32(v.X), float32(v.Y))
			k += 3
		case path.CmdClose:
			r.ClosePath()
		}
	}
	r.Draw(img, img.Bounds(), image.Black, image.Point{})
	return img
}
