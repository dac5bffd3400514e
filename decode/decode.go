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
	"bytes"
	"errors"
	"fmt"
	"unicode"

	webfont "github.com/tdewolff/font"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/glyphedit"
)

// Decode parses a font file and returns all glyphs, in glyph index order.
func Decode(data []byte, format Format) ([]*glyphedit.Glyph, error) {
	info, err := Read(data, format)
	if err != nil {
		return nil, err
	}
	return Glyphs(info)
}

// Read parses a font file of the given format.
//
// A format of Unknown results in a [*glyphedit.FormatError], all other
// failures are reported as [*glyphedit.ParseError].
func Read(data []byte, format Format) (info *sfnt.Font, err error) {
	if format == Unknown {
		return nil, &glyphedit.FormatError{}
	}

	defer func() {
		if r := recover(); r != nil {
			info = nil
			err = &glyphedit.ParseError{
				Format: format.String(),
				Err:    fmt.Errorf("parser panic: %v", r),
			}
		}
	}()

	body, err := unwrap(data, format)
	if err != nil {
		return nil, &glyphedit.ParseError{Format: format.String(), Err: err}
	}
	info, err = sfnt.Read(bytes.NewReader(body))
	if err != nil {
		return nil, &glyphedit.ParseError{Format: format.String(), Err: err}
	}
	if info.NumGlyphs() == 0 {
		return nil, &glyphedit.ParseError{Format: format.String(), Err: errNoGlyphs}
	}
	return info, nil
}

// unwrap returns the sfnt data contained in a font file.
func unwrap(data []byte, format Format) ([]byte, error) {
	switch format {
	case WOFF:
		return webfont.ParseWOFF(data)
	case WOFF2:
		return webfont.ParseWOFF2(data)
	default:
		return data, nil
	}
}

// Glyphs returns all glyphs of a font, in glyph index order.
//
// Glyph names missing from the font are synthesized, which modifies info.
func Glyphs(info *sfnt.Font) (glyphs []*glyphedit.Glyph, err error) {
	defer func() {
		if r := recover(); r != nil {
			glyphs = nil
			err = &glyphedit.ParseError{Err: fmt.Errorf("outline panic: %v", r)}
		}
	}()

	info.EnsureGlyphNames()
	codes := CodePoints(info)

	n := info.NumGlyphs()
	glyphs = make([]*glyphedit.Glyph, 0, n)
	for i := 0; i < n; i++ {
		gid := glyph.ID(i)
		g, err := Glyph(info, gid, codes[gid])
		if err != nil {
			return nil, err
		}
		glyphs = append(glyphs, g)
	}
	glyphedit.Logger().Debug("decoded font",
		"family", info.FamilyName, "glyphs", n, "mapped", len(codes))
	return glyphs, nil
}

// Glyph converts a single glyph of a font.  The code points are used as
// given; they are normally taken from the map returned by [CodePoints].
func Glyph(info *sfnt.Font, gid glyph.ID, codes []rune) (*glyphedit.Glyph, error) {
	if int(gid) >= info.NumGlyphs() {
		return nil, &glyphedit.ParseError{Err: fmt.Errorf("glyph %d out of range", gid)}
	}

	g := &glyphedit.Glyph{
		Name:       info.GlyphName(gid),
		Unicode:    glyphedit.Label(codes),
		CodePoints: codes,
		Contours:   []glyphedit.Contour{},
		Advance:    info.GlyphWidth(gid),
	}

	switch outlines := info.Outlines.(type) {
	case *glyf.Outlines:
		g.Curves = glyphedit.Quadratic
		if int(gid) >= len(outlines.Glyphs) || outlines.Glyphs[gid] == nil {
			break
		}
		switch data := outlines.Glyphs[gid].Data.(type) {
		case glyf.SimpleGlyph:
			decoded, err := data.Unpack()
			if err != nil {
				return nil, &glyphedit.ParseError{
					Format: "glyf",
					Err:    fmt.Errorf("glyph %d: %w", gid, err),
				}
			}
			g.Contours = fromGlyf(decoded.Contours)
		default:
			// Composite glyphs are resolved by the library.
			g.Contours = fromPath(info.Outlines.Path(gid))
		}
	default:
		g.Curves = glyphedit.Cubic
		g.Contours = fromPath(outlines.Path(gid))
	}

	return g, nil
}

// CodePoints returns, for every glyph, the code points which the character
// map of the font maps to it.  The code points for each glyph are in
// increasing order.  Code points mapped to glyph 0 are omitted.
//
// The "best" Unicode subtable of the "cmap" table is used.  If the font
// has no usable character map, the result is empty.
func CodePoints(info *sfnt.Font) map[glyph.ID][]rune {
	res := make(map[glyph.ID][]rune)
	if info.CMapTable == nil {
		return res
	}
	subtable, err := info.CMapTable.GetBest()
	if err != nil || subtable == nil {
		return res
	}

	low, high := subtable.CodeRange()
	if low < 0 {
		low = 0
	}
	if high > unicode.MaxRune {
		high = unicode.MaxRune
	}
	for r := low; r <= high; r++ {
		if r >= 0xD800 && r <= 0xDFFF {
			continue // surrogates
		}
		gid := subtable.Lookup(r)
		if gid == 0 || int(gid) >= info.NumGlyphs() {
			continue
		}
		res[gid] = append(res[gid], r)
	}
	return res
}

var errNoGlyphs = errors.New("font contains no glyphs")
