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
	"path/filepath"
	"strings"

	"seehuhn.de/go/glyphedit"
)

// Format is a font file format.
type Format int

// These are the supported font file formats.
const (
	Unknown Format = iota
	TrueType
	OpenType
	WOFF
	WOFF2
)

func (f Format) String() string {
	switch f {
	case TrueType:
		return "TrueType"
	case OpenType:
		return "OpenType"
	case WOFF:
		return "WOFF"
	case WOFF2:
		return "WOFF2"
	default:
		return "unknown"
	}
}

var extensions = map[string]Format{
	".ttf":   TrueType,
	".otf":   OpenType,
	".woff":  WOFF,
	".woff2": WOFF2,
}

// FormatFromName determines the font format from the extension of a file
// name.  The file contents are not inspected.  Unsupported extensions
// result in a [*glyphedit.FormatError].
func FormatFromName(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return Unknown, &glyphedit.FormatError{Name: name}
}

// HasExtension reports whether name has any file name extension.
func HasExtension(name string) bool {
	return filepath.Ext(name) != ""
}

// Sniff determines the font format from the first bytes of a font file.
// Unknown is returned if the data does not start with a known signature.
// Font collections are not supported.
func Sniff(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}
	switch magic := data[:4]; {
	case bytes.Equal(magic, []byte{0, 1, 0, 0}), bytes.Equal(magic, []byte("true")):
		return TrueType
	case bytes.Equal(magic, []byte("OTTO")):
		return OpenType
	case bytes.Equal(magic, []byte("wOFF")):
		return WOFF
	case bytes.Equal(magic, []byte("wOF2")):
		return WOFF2
	}
	return Unknown
}
