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

// Package testfont provides fonts for use in unit tests.
package testfont

import (
	"bytes"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/os2"
)

// GoRegular returns the binary TrueType data of the Go Regular font.
func GoRegular() []byte {
	return goregular.TTF
}

// MakeGlyfFont returns an in-memory TrueType font with the glyphs
// ".notdef", "space", "A" and "D".  "A" is the rectangle from (0, 0) to
// (500, 700).  "D" has one off-curve point, at (600, 350), between
// (400, 0) and (400, 700).  The character map sends ' ', 'A' and 'D' to
// the corresponding glyphs.
func MakeGlyfFont() *sfnt.Font {
	a := &glyf.SimpleUnpacked{
		Contours: []glyf.Contour{{
			{X: 0, Y: 0, OnCurve: true},
			{X: 500, Y: 0, OnCurve: true},
			{X: 500, Y: 700, OnCurve: true},
			{X: 0, Y: 700, OnCurve: true},
		}},
	}
	d := &glyf.SimpleUnpacked{
		Contours: []glyf.Contour{{
			{X: 0, Y: 0, OnCurve: true},
			{X: 400, Y: 0, OnCurve: true},
			{X: 600, Y: 350, OnCurve: false},
			{X: 400, Y: 700, OnCurve: true},
			{X: 0, Y: 700, OnCurve: true},
		}},
	}
	aGlyph := a.AsGlyph()
	dGlyph := d.AsGlyph()

	return &sfnt.Font{
		FamilyName: "Test",
		Width:      os2.WidthNormal,
		Weight:     os2.WeightNormal,
		UnitsPerEm: 1000,
		Ascent:     800,
		Descent:    -200,
		Outlines: &glyf.Outlines{
			Glyphs: glyf.Glyphs{nil, nil, &aGlyph, &dGlyph},
			Widths: []funit.Int16{500, 250, 500, 600},
			Names:  []string{".notdef", "space", "A", "D"},
		},
		CMapTable: cmap.Table{
			{PlatformID: 3, EncodingID: 1}: cmap.Format4{0x20: 1, 0x41: 2, 0x44: 3}.Encode(0),
		},
	}
}

// MakeCFFFont returns an in-memory OpenType font with CFF outlines.  It
// has the glyphs ".notdef" and "D"; the outline of "D" is
//
//	(0, 0) - (500, 0) - curve via (600, 100), (600, 600) to (500, 700) - (0, 700)
//
// and the character map sends 'D' to it.
func MakeCFFFont() *sfnt.Font {
	notdef := cff.NewGlyph(".notdef", 500)
	notdef.MoveTo(50, 0)
	notdef.LineTo(450, 0)
	notdef.LineTo(450, 700)
	notdef.LineTo(50, 700)

	d := cff.NewGlyph("D", 650)
	d.MoveTo(0, 0)
	d.LineTo(500, 0)
	d.CurveTo(600, 100, 600, 600, 500, 700)
	d.LineTo(0, 700)

	gg := []*cff.Glyph{notdef, d}
	return &sfnt.Font{
		FamilyName: "Test",
		Width:      os2.WidthNormal,
		Weight:     os2.WeightNormal,
		UnitsPerEm: 1000,
		FontMatrix: matrix.Matrix{0.001, 0, 0, 0.001, 0, 0},
		Ascent:     800,
		Descent:    -200,
		Outlines: &cff.Outlines{
			Glyphs: gg,
			Private: []*type1.PrivateDict{
				{
					BlueValues: []funit.Int16{-10, 0, 700, 710},
					StdHW:      50,
					StdVW:      80,
				},
			},
			FDSelect: func(glyph.ID) int { return 0 },
			Encoding: cff.StandardEncoding(gg),
		},
		CMapTable: cmap.Table{
			{PlatformID: 3, EncodingID: 1}: cmap.Format4{0x44: 1}.Encode(0),
		},
	}
}

// Encode returns the binary form of a font.
func Encode(info *sfnt.Font) []byte {
	buf := &bytes.Buffer{}
	_, err := info.Write(buf)
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// MakeOutlineFree returns an in-memory TrueType font whose glyphs have no
// outlines.  The glyph names are taken from names (which must include
// ".notdef" at index 0), and the character map is given by codes.
func MakeOutlineFree(names []string, codes map[uint16]glyph.ID) *sfnt.Font {
	n := len(names)
	widths := make([]funit.Int16, n)
	for i := range widths {
		widths[i] = 500
	}

	var cmaps cmap.Table
	if codes != nil {
		cmaps = cmap.Table{
			{PlatformID: 3, EncodingID: 1}: cmap.Format4(codes).Encode(0),
		}
	}

	return &sfnt.Font{
		FamilyName: "Test",
		UnitsPerEm: 1000,
		Outlines: &glyf.Outlines{
			Glyphs: make(glyf.Glyphs, n),
			Widths: widths,
			Names:  names,
		},
		CMapTable: cmaps,
	}
}
