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

package editor

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"testing"

	"seehuhn.de/go/glyphedit"
)

type fakeAPI struct {
	glyphs  []*glyphedit.Glyph
	err     error
	updated *glyphedit.Glyph
	saved   []*glyphedit.Glyph

	lastPNG  []byte
	lastName string
}

func (f *fakeAPI) LoadFont(ctx context.Context, fname string, font io.Reader) ([]*glyphedit.Glyph, error) {
	return f.glyphs, f.err
}

func (f *fakeAPI) QueryGlyphs(ctx context.Context, s string) ([]*glyphedit.Glyph, error) {
	return f.glyphs, f.err
}

func (f *fakeAPI) UpdateGlyph(ctx context.Context, name, unicode string, png []byte) (*glyphedit.Glyph, error) {
	f.lastName = name
	f.lastPNG = png
	return f.updated, f.err
}

func (f *fakeAPI) SaveFont(ctx context.Context, glyphs []*glyphedit.Glyph) error {
	f.saved = glyphs
	return f.err
}

func square(name string, size float64) *glyphedit.Glyph {
	return &glyphedit.Glyph{
		Name:    name,
		Unicode: name,
		Contours: []glyphedit.Contour{
			{{X: 0, Y: 0}, {X: size, Y: 0}, {X: size, Y: size}, {X: 0, Y: size}},
		},
	}
}

var errServer = errors.New("Failed to load font")

func TestLoad(t *testing.T) {
	api := &fakeAPI{glyphs: []*glyphedit.Glyph{square("A", 500), square("B", 500)}}
	s := New(api)
	ctx := context.Background()

	if s.HasFont() {
		t.Fatal("new session has a font")
	}
	if err := s.Load(ctx, "a.ttf", nil); err != nil {
		t.Fatal(err)
	}
	if !s.HasFont() || len(s.Glyphs()) != 2 || s.Banner() != "" {
		t.Fatalf("unexpected state after load")
	}

	// a failed load keeps the old glyphs and sets the banner
	api.err = errServer
	if err := s.Load(ctx, "b.ttf", nil); !errors.Is(err, errServer) {
		t.Errorf("got %v, want %v", err, errServer)
	}
	if s.Banner() != "Failed to load font" || len(s.Glyphs()) != 2 {
		t.Errorf("banner %q, %d glyphs", s.Banner(), len(s.Glyphs()))
	}

	// the banner persists until the next success
	api.err = nil
	if err := s.Load(ctx, "c.ttf", nil); err != nil || s.Banner() != "" {
		t.Errorf("banner not cleared: %q", s.Banner())
	}
}

func TestQuery(t *testing.T) {
	api := &fakeAPI{glyphs: []*glyphedit.Glyph{square("A", 500)}}
	s := New(api)
	ctx := context.Background()

	if err := s.Query(ctx, "A"); err != nil {
		t.Fatal(err)
	}
	before := s.Glyphs()

	api.glyphs = []*glyphedit.Glyph{}
	err := s.Query(ctx, "中")
	if !errors.Is(err, ErrNoGlyphs) {
		t.Errorf("got %v, want %v", err, ErrNoGlyphs)
	}
	if s.Banner() != "No glyphs found for the given characters" {
		t.Errorf("unexpected banner %q", s.Banner())
	}
	if after := s.Glyphs(); len(after) != 1 || after[0] != before[0] {
		t.Error("glyphs changed by empty query")
	}

	api.err = errors.New("boom")
	if err := s.Query(ctx, ""); err != nil {
		t.Errorf("empty query: %v", err)
	}
}

func TestEditAndSave(t *testing.T) {
	a, b := square("A", 500), square("B", 500)
	edited := square("B", 100)
	api := &fakeAPI{glyphs: []*glyphedit.Glyph{a, b}, updated: edited}
	s := New(api)
	ctx := context.Background()

	if err := s.Load(ctx, "f.ttf", nil); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveGlyph(ctx); !errors.Is(err, ErrNotEditing) {
		t.Errorf("got %v, want %v", err, ErrNotEditing)
	}
	if _, ok := s.Edit("nothere"); ok {
		t.Error("unknown glyph selected")
	}

	g, ok := s.Edit("B")
	if !ok || g != b || s.Editing() != b {
		t.Fatal("B not selected")
	}
	canvas := s.Drawing()
	if canvas == nil || canvas.Bounds().Dx() != CanvasSize || canvas.Bounds().Dy() != CanvasSize {
		t.Fatalf("unexpected canvas")
	}

	if err := s.SaveGlyph(ctx); err != nil {
		t.Fatal(err)
	}
	if api.lastName != "B" {
		t.Errorf("update sent for %q", api.lastName)
	}
	img, err := png.Decode(bytes.NewReader(api.lastPNG))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != CanvasSize {
		t.Errorf("unexpected image size %v", img.Bounds())
	}

	got := s.Glyphs()
	if got[0] != a || got[1] != edited {
		t.Error("store not updated correctly")
	}
	if s.Editing() != nil || s.Drawing() != nil {
		t.Error("still editing after save")
	}
}

func TestSaveGlyphFailure(t *testing.T) {
	b := square("B", 500)
	api := &fakeAPI{glyphs: []*glyphedit.Glyph{b}}
	s := New(api)
	ctx := context.Background()
	s.Load(ctx, "f.ttf", nil)
	s.Edit("B")

	api.err = errors.New("Failed to update glyph")
	if err := s.SaveGlyph(ctx); err == nil {
		t.Fatal("missing error")
	}
	if s.Editing() != b || s.Drawing() == nil {
		t.Error("editing state lost after failure")
	}
	if s.Banner() != "Failed to update glyph" {
		t.Errorf("unexpected banner %q", s.Banner())
	}
	if s.Glyphs()[0] != b {
		t.Error("store modified")
	}
}

func TestCancel(t *testing.T) {
	api := &fakeAPI{glyphs: []*glyphedit.Glyph{square("A", 500)}}
	s := New(api)
	s.Load(context.Background(), "f.ttf", nil)
	s.Edit("A")
	s.Cancel()
	if s.Editing() != nil || s.Drawing() != nil {
		t.Error("Cancel did not end editing")
	}
}

func TestSaveFont(t *testing.T) {
	api := &fakeAPI{glyphs: []*glyphedit.Glyph{square("A", 500)}}
	s := New(api)
	ctx := context.Background()

	if err := s.SaveFont(ctx); err != nil || api.saved != nil {
		t.Error("save without font")
	}

	s.Load(ctx, "f.ttf", nil)
	api.err = errors.New("saving fonts is not implemented")
	if err := s.SaveFont(ctx); err == nil {
		t.Error("missing error")
	}
	if len(api.saved) != 1 || s.Banner() != "saving fonts is not implemented" {
		t.Errorf("banner %q", s.Banner())
	}
}
