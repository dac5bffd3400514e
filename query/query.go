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

// Package query answers character to glyph lookups against a default font.
//
// The default font is loaded once, when the [Service] is created.  If
// loading fails, the service stays in a degraded state: [Service.Ready]
// returns false and every lookup fails with a
// [*glyphedit.ServiceUnavailableError].  There is no automatic retry.
//
// A Service is never modified after construction and can be used
// concurrently without locking.
package query

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/glyphedit"
	"seehuhn.de/go/glyphedit/decode"
)

// Service looks up glyphs in the default font.
type Service struct {
	source string
	info   *sfnt.Font
	cmap   cmap.Subtable
	codes  map[glyph.ID][]rune
	err    error
}

// Load reads the default font from a file.
// Errors are recorded in the returned Service, see [Service.Err].
func Load(fname string) *Service {
	data, err := os.ReadFile(fname)
	if err != nil {
		return failed(fname, err)
	}
	return LoadBytes(data, fname)
}

// LoadBytes parses the default font from memory.  The format is detected
// from the data, falling back to the extension of source.
// Errors are recorded in the returned Service, see [Service.Err].
func LoadBytes(data []byte, source string) *Service {
	format := decode.Sniff(data)
	if format == decode.Unknown {
		if f, err := decode.FormatFromName(source); err == nil {
			format = f
		}
	}
	info, err := decode.Read(data, format)
	if err != nil {
		return failed(source, err)
	}
	return newService(info, source)
}

// New returns a Service for an already parsed font.
// Glyph names missing from the font are synthesized, which modifies info.
func New(info *sfnt.Font) *Service {
	return newService(info, "(memory)")
}

func newService(info *sfnt.Font, source string) *Service {
	info.EnsureGlyphNames()

	if info.CMapTable == nil {
		return failed(source, errNoCmap)
	}
	subtable, err := info.CMapTable.GetBest()
	if err != nil {
		return failed(source, fmt.Errorf("%w: %w", errNoCmap, err))
	}

	s := &Service{
		source: source,
		info:   info,
		cmap:   subtable,
		codes:  decode.CodePoints(info),
	}
	glyphedit.Logger().Info("default font loaded",
		"source", source,
		"family", info.FamilyName,
		"glyphs", info.NumGlyphs())
	return s
}

func failed(source string, err error) *Service {
	glyphedit.Logger().Error("default font unavailable",
		"source", source, "error", err)
	return &Service{source: source, err: err}
}

// Ready reports whether the default font was loaded successfully.
func (s *Service) Ready() bool {
	return s.err == nil
}

// Err returns the error which occurred while loading the default font,
// or nil if the font was loaded successfully.
func (s *Service) Err() error {
	return s.err
}

// Source returns the file name of the default font.
func (s *Service) Source() string {
	return s.source
}

// NumGlyphs returns the number of glyphs in the default font,
// or 0 if the font is not loaded.
func (s *Service) NumGlyphs() int {
	if s.info == nil {
		return 0
	}
	return s.info.NumGlyphs()
}

// Lookup returns the glyphs for the given characters, in the order of the
// input.  Characters which the character map of the default font does not
// map to a glyph are skipped.  Only exact code point matches are used.
//
// The Unicode label of every returned glyph is the character it was
// found for.  A character which occurs several times in the input gives
// one glyph for each occurrence.
func (s *Service) Lookup(chars []rune) (glyphs []*glyphedit.Glyph, err error) {
	if s.err != nil {
		return nil, &glyphedit.ServiceUnavailableError{Err: s.err}
	}

	defer func() {
		if r := recover(); r != nil {
			glyphs = nil
			err = &glyphedit.ParseError{Err: fmt.Errorf("default font: %v", r)}
		}
	}()

	numGlyphs := s.info.NumGlyphs()
	glyphs = []*glyphedit.Glyph{}
	for _, r := range chars {
		gid := s.cmap.Lookup(r)
		if gid == 0 || int(gid) >= numGlyphs {
			continue
		}
		g, err := decode.Glyph(s.info, gid, slices.Clone(s.codes[gid]))
		if err != nil {
			return nil, err
		}
		g.Unicode = string(r)
		glyphs = append(glyphs, g)
	}
	return glyphs, nil
}

var errNoCmap = errors.New("font has no usable character map")
