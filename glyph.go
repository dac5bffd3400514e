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

package glyphedit

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/xdg-go/stringprep"
)

// Point is a point of a glyph outline, in font design units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// OffCurve is set for control points.  The meaning of control points
	// depends on the [CurveType] of the glyph.
	OffCurve bool `json:"offCurve,omitempty"`
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// Both coordinates must be present.
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw struct {
		X        *float64 `json:"x"`
		Y        *float64 `json:"y"`
		OffCurve bool     `json:"offCurve"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return &ValidationError{Field: "pathData", Reason: "malformed point: " + err.Error()}
	}
	if raw.X == nil || raw.Y == nil {
		return &ValidationError{Field: "pathData", Reason: "point without x or y coordinate"}
	}
	*p = Point{X: *raw.X, Y: *raw.Y, OffCurve: raw.OffCurve}
	return nil
}

// A Contour is one closed loop of a glyph outline.  The last point is
// implicitly connected to the first one.
type Contour []Point

// CurveType describes how the off-curve points of a glyph are interpreted.
type CurveType int

const (
	// Quadratic is used for TrueType outlines.  Each off-curve point is the
	// control point of a quadratic Bézier curve; between two consecutive
	// off-curve points an on-curve point at the midpoint is implied.
	Quadratic CurveType = iota

	// Cubic is used for CFF outlines.  Off-curve points come in pairs, the
	// two control points of a cubic Bézier curve.
	Cubic
)

func (c CurveType) String() string {
	switch c {
	case Quadratic:
		return "quadratic"
	case Cubic:
		return "cubic"
	default:
		return fmt.Sprintf("CurveType(%d)", int(c))
	}
}

// Glyph is the outline of a single glyph.
type Glyph struct {
	// Name is the glyph name given by the font.  Glyph names are for display
	// only and need not be unique.
	Name string

	// Unicode is the display label of the glyph: a string consisting of at
	// most one character.
	Unicode string

	// CodePoints lists all code points mapped to this glyph by the
	// character map of the font, in increasing order.
	CodePoints []rune

	// Contours is the glyph outline.  Glyphs without an outline, for
	// example the space glyph, have an empty list.
	Contours []Contour

	Curves CurveType

	// Advance is the advance width in font design units.
	Advance float64
}

// NumPoints returns the total number of points over all contours.
func (g *Glyph) NumPoints() int {
	n := 0
	for _, c := range g.Contours {
		n += len(c)
	}
	return n
}

// Label returns the display label for the given set of code points:
// the character for the smallest code point, or "" if the set is empty.
func Label(codes []rune) string {
	if len(codes) == 0 {
		return ""
	}
	return string(codes[0])
}

type glyphJSON struct {
	Name       *string   `json:"name"`
	Unicode    string    `json:"unicode"`
	CodePoints []rune    `json:"codePoints,omitempty"`
	PathData   []Contour `json:"pathData"`
	Curves     string    `json:"curves,omitempty"`
	Advance    float64   `json:"advance,omitempty"`
}

// MarshalJSON implements the [json.Marshaler] interface.
func (g *Glyph) MarshalJSON() ([]byte, error) {
	pathData := make([]Contour, len(g.Contours))
	for i, c := range g.Contours {
		if c == nil {
			c = Contour{}
		}
		pathData[i] = c
	}
	var curves string
	if g.Curves != Quadratic {
		curves = g.Curves.String()
	}
	name := g.Name
	return json.Marshal(&glyphJSON{
		Name:       &name,
		Unicode:    g.Unicode,
		CodePoints: g.CodePoints,
		PathData:   pathData,
		Curves:     curves,
		Advance:    g.Advance,
	})
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// Malformed records result in a [*ValidationError].
func (g *Glyph) UnmarshalJSON(data []byte) error {
	var raw glyphJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		if IsValidation(err) {
			return err
		}
		return &ValidationError{Reason: "malformed glyph record: " + err.Error()}
	}

	if raw.Name == nil || *raw.Name == "" {
		return &ValidationError{Field: "name", Reason: "missing"}
	}
	if raw.PathData == nil {
		return &ValidationError{Field: "pathData", Reason: "missing (use [] for empty glyphs)"}
	}
	for _, c := range raw.PathData {
		if len(c) == 0 {
			return &ValidationError{Field: "pathData", Reason: "empty contour"}
		}
	}
	if err := ValidateUnicode("unicode", raw.Unicode); err != nil {
		return err
	}
	for _, r := range raw.CodePoints {
		if !utf8.ValidRune(r) {
			return &ValidationError{
				Field:  "codePoints",
				Reason: fmt.Sprintf("invalid code point %d", r),
			}
		}
	}

	var curves CurveType
	switch raw.Curves {
	case "", "quadratic":
		curves = Quadratic
	case "cubic":
		curves = Cubic
	default:
		return &ValidationError{Field: "curves", Reason: "unknown curve type " + raw.Curves}
	}

	*g = Glyph{
		Name:       *raw.Name,
		Unicode:    raw.Unicode,
		CodePoints: raw.CodePoints,
		Contours:   raw.PathData,
		Curves:     curves,
		Advance:    raw.Advance,
	}
	return nil
}

// ValidateUnicode checks that s is a valid display label: either empty or
// a single character.
func ValidateUnicode(field, s string) error {
	if !utf8.ValidString(s) {
		return &ValidationError{Field: field, Reason: "invalid UTF-8"}
	}
	if utf8.RuneCountInString(s) > 1 {
		return &ValidationError{Field: field, Reason: "more than one character"}
	}
	return nil
}

// maxNameLength is the longest glyph name allowed by the Adobe Glyph List
// specification.
const maxNameLength = 63

// ValidateName checks a user supplied glyph name.  The name must be
// non-empty, not longer than 63 bytes, and must be unchanged by the
// SASLprep profile of stringprep (RFC 4013), which rejects control
// characters and other prohibited code points.
func ValidateName(field, name string) error {
	if name == "" {
		return &ValidationError{Field: field, Reason: "missing"}
	}
	if len(name) > maxNameLength {
		return &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("longer than %d bytes", maxNameLength),
		}
	}
	prepped, err := stringprep.SASLprep.Prepare(name)
	if err != nil {
		return &ValidationError{Field: field, Reason: err.Error()}
	}
	if prepped != name {
		return &ValidationError{Field: field, Reason: "not in normalized form"}
	}
	return nil
}
