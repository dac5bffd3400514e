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

// Package decode turns font files into glyph outlines.
//
// Font files are parsed by [seehuhn.de/go/sfnt]; WOFF and WOFF2 containers
// are unpacked first.  The resulting glyphs are listed in glyph index
// order.  For TrueType outlines the points of simple glyphs are reported
// exactly as stored in the "glyf" table, including off-curve control
// points.  Composite glyphs and CFF outlines are taken from the resolved
// outline path of the font, with control points marked as off-curve.
//
// All functions in this package recover from panics inside the font
// parser; malformed input results in a [*glyphedit.ParseError].
package decode
