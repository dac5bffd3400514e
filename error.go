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
	"errors"
	"strconv"
)

// FormatError indicates that the format of a font file is not supported
// or could not be determined.
type FormatError struct {
	// Name is the file name (or extension) the format was derived from.
	Name string
}

func (err *FormatError) Error() string {
	if err.Name == "" {
		return "unrecognized font format"
	}
	return "unsupported font format " + strconv.Quote(err.Name) +
		" (supported: .ttf, .otf, .woff, .woff2)"
}

// ParseError indicates that font data could not be decoded.
type ParseError struct {
	// Format is the name of the font format which was assumed.
	Format string
	Err    error
}

func (err *ParseError) Error() string {
	msg := "malformed font data"
	if err.Format != "" {
		msg = "malformed " + err.Format + " font data"
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// ServiceUnavailableError is returned by queries against the default font
// if the font could not be loaded at start-up.
type ServiceUnavailableError struct {
	Err error
}

func (err *ServiceUnavailableError) Error() string {
	if err.Err == nil {
		return "default font not loaded"
	}
	return "default font not loaded: " + err.Err.Error()
}

func (err *ServiceUnavailableError) Unwrap() error {
	return err.Err
}

// ValidationError indicates a missing or malformed field in a request.
type ValidationError struct {
	Field  string
	Reason string
}

func (err *ValidationError) Error() string {
	if err.Field == "" {
		return "invalid request: " + err.Reason
	}
	return "invalid " + strconv.Quote(err.Field) + ": " + err.Reason
}

// IsValidation reports whether err is, or wraps, a [*ValidationError].
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
