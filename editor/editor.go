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

// Package editor implements an editing session for the glyphs of a font.
//
// A [Session] holds the glyphs shown to the user, the glyph currently being
// edited, and an error banner.  Failed operations set the banner and leave
// all other state unchanged.  The banner is cleared by the next successful
// load, query or save.
package editor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"

	"seehuhn.de/go/glyphedit"
	"seehuhn.de/go/glyphedit/render"
	"seehuhn.de/go/glyphedit/store"
)

// API is the server interface used by a session.
// It is implemented by [*client.Client].
type API interface {
	LoadFont(ctx context.Context, fname string, font io.Reader) ([]*glyphedit.Glyph, error)
	QueryGlyphs(ctx context.Context, s string) ([]*glyphedit.Glyph, error)
	UpdateGlyph(ctx context.Context, name, unicode string, png []byte) (*glyphedit.Glyph, error)
	SaveFont(ctx context.Context, glyphs []*glyphedit.Glyph) error
}

// NoGlyphsMessage is shown when a query finds no glyphs.
const NoGlyphsMessage = "No glyphs found for the given characters"

// ErrNoGlyphs is returned by [Session.Query] if none of the characters
// has a glyph.
var ErrNoGlyphs = errors.New(NoGlyphsMessage)

// ErrNotEditing is returned by [Session.SaveGlyph] if no glyph is
// selected.
var ErrNotEditing = errors.New("no glyph selected for editing")

// CanvasSize is the width and height of the drawing canvas, in pixels.
const CanvasSize = 200

// Session is the state of one user of the glyph editor.
// A Session is not safe for concurrent use.
type Session struct {
	api     API
	glyphs  *store.Store
	hasFont bool
	banner  string
	canvas  *image.Gray

	// Canvas controls how glyphs are drawn onto the canvas.
	Canvas render.Options
}

// New starts a session without a font.
func New(api API) *Session {
	return &Session{
		api:    api,
		glyphs: store.New(nil),
		Canvas: render.Options{Size: CanvasSize},
	}
}

// Banner returns the message of the last failed operation, or "".
func (s *Session) Banner() string {
	return s.banner
}

// HasFont reports whether glyphs have been loaded or queried.
func (s *Session) HasFont() bool {
	return s.hasFont
}

// Glyphs returns the glyphs of the current font.
func (s *Session) Glyphs() []*glyphedit.Glyph {
	return s.glyphs.Glyphs()
}

func (s *Session) setError(err error) error {
	s.banner = err.Error()
	return err
}

// Load uploads a font file and shows its glyphs.
func (s *Session) Load(ctx context.Context, fname string, font io.Reader) error {
	glyphs, err := s.api.LoadFont(ctx, fname, font)
	if err != nil {
		return s.setError(err)
	}
	s.show(glyphs)
	return nil
}

// Query shows the glyphs of the default font for the characters in chars.
// An empty string is ignored.  If no character has a glyph, the banner is
// set to [NoGlyphsMessage] and [ErrNoGlyphs] is returned; the glyphs shown
// before are kept.
func (s *Session) Query(ctx context.Context, chars string) error {
	if chars == "" {
		return nil
	}
	glyphs, err := s.api.QueryGlyphs(ctx, chars)
	if err != nil {
		return s.setError(err)
	}
	if len(glyphs) == 0 {
		return s.setError(ErrNoGlyphs)
	}
	s.show(glyphs)
	return nil
}

func (s *Session) show(glyphs []*glyphedit.Glyph) {
	s.glyphs.Replace(glyphs)
	s.hasFont = true
	s.banner = ""
	s.canvas = nil
}

// Edit selects the first glyph with the given name for editing.  The
// canvas is initialized with a drawing of the glyph.
func (s *Session) Edit(name string) (*glyphedit.Glyph, bool) {
	g, ok := s.glyphs.Select(name)
	if !ok {
		return nil, false
	}
	s.canvas = render.Image(g, &s.Canvas)
	return g, true
}

// Editing returns the glyph being edited, or nil.
func (s *Session) Editing() *glyphedit.Glyph {
	return s.glyphs.Selected()
}

// Drawing returns the canvas of the glyph being edited, or nil if no glyph
// is being edited.  Callers draw onto the returned image.
func (s *Session) Drawing() *image.Gray {
	return s.canvas
}

// Cancel stops editing without saving.
func (s *Session) Cancel() {
	s.glyphs.Deselect()
	s.canvas = nil
}

// SaveGlyph sends the canvas to the server and replaces the edited glyph
// by the result.  Editing ends on success.  On failure the glyph stays
// selected and the canvas is kept.
func (s *Session) SaveGlyph(ctx context.Context) error {
	g := s.glyphs.Selected()
	if g == nil || s.canvas == nil {
		return ErrNotEditing
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, s.canvas); err != nil {
		return s.setError(err)
	}
	updated, err := s.api.UpdateGlyph(ctx, g.Name, g.Unicode, buf.Bytes())
	if err != nil {
		return s.setError(err)
	}

	// The server may rename the glyph, in which case there is no match.
	if err := s.glyphs.Save(updated); errors.Is(err, store.ErrNoSuchGlyph) {
		glyphedit.Logger().Warn("edited glyph not in font",
			"glyph", updated.Name)
	}
	s.Cancel()
	return nil
}

// SaveFont sends all glyphs to the server for saving.  Without a font,
// nothing happens.
func (s *Session) SaveFont(ctx context.Context) error {
	if !s.hasFont {
		return nil
	}
	if err := s.api.SaveFont(ctx, s.glyphs.Glyphs()); err != nil {
		return s.setError(err)
	}
	s.banner = ""
	return nil
}
