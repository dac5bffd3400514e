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

// Package glyphedit holds the glyph data model shared by the server and the
// client side of the glyph editor.
//
// A [Glyph] describes the outline of one glyph of a font in font design
// units.  Glyphs are produced by the font decoder in package
// [seehuhn.de/go/glyphedit/decode] and by the default font service in
// package [seehuhn.de/go/glyphedit/query].  They travel between server and
// client as JSON:
//
//	{"name":"A","unicode":"A","codePoints":[65],
//	 "pathData":[[{"x":0,"y":0},{"x":500,"y":0},{"x":500,"y":700},{"x":0,"y":700}]]}
//
// Decoding a glyph from JSON validates the payload; malformed records are
// reported as [*ValidationError].
//
// The errors defined in this package ([FormatError], [ParseError],
// [ServiceUnavailableError], [ValidationError]) are used by all
// subpackages.  The HTTP server in [seehuhn.de/go/glyphedit/server] maps
// them to status codes.
package glyphedit
