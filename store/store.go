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

// Package store keeps the glyphs of the font currently shown in the editor,
// together with the glyph selected for editing.
package store

import (
	"errors"
	"slices"

	"seehuhn.de/go/glyphedit"
)

// ErrNoSuchGlyph is returned by [Store.Save] if no glyph with the name of
// the updated record exists.
var ErrNoSuchGlyph = errors.New("no glyph with this name")

// Store holds a list of glyphs and an optional selection.
//
// The store owns the slice, not the glyph records: callers must not modify
// a record after passing it to the store.  A Store is not safe for
// concurrent use.
type Store struct {
	glyphs   []*glyphedit.Glyph
	selected *glyphedit.Glyph
}

// New returns a store holding the given glyphs.
func New(glyphs []*glyphedit.Glyph) *Store {
	s := &Store{}
	s.Replace(glyphs)
	return s
}

// Replace discards the current contents and the selection, and stores
// the given glyphs instead.
func (s *Store) Replace(glyphs []*glyphedit.Glyph) {
	s.glyphs = slices.Clone(glyphs)
	s.selected = nil
}

// Glyphs returns the stored glyphs, in order.
// The returned slice is a copy.
func (s *Store) Glyphs() []*glyphedit.Glyph {
	return slices.Clone(s.glyphs)
}

// Len returns the number of stored glyphs.
func (s *Store) Len() int {
	return len(s.glyphs)
}

// Index returns the position of the first glyph with the given name,
// or -1 if there is no such glyph.
func (s *Store) Index(name string) int {
	return slices.IndexFunc(s.glyphs, func(g *glyphedit.Glyph) bool {
		return g.Name == name
	})
}

// Select marks the first glyph with the given name as selected.
// If no such glyph exists, the selection is unchanged and the second
// return value is false.
func (s *Store) Select(name string) (*glyphedit.Glyph, bool) {
	i := s.Index(name)
	if i < 0 {
		return nil, false
	}
	s.selected = s.glyphs[i]
	return s.selected, true
}

// Selected returns the selected glyph, or nil.
func (s *Store) Selected() *glyphedit.Glyph {
	return s.selected
}

// Deselect clears the selection.
func (s *Store) Deselect() {
	s.selected = nil
}

// Save replaces the first glyph whose name equals updated.Name.  All other
// entries keep their identity.  The selection is cleared.
//
// If no glyph has this name, the store is left unchanged and
// [ErrNoSuchGlyph] is returned.
func (s *Store) Save(updated *glyphedit.Glyph) error {
	i := s.Index(updated.Name)
	if i < 0 {
		return ErrNoSuchGlyph
	}

	glyphs := slices.Clone(s.glyphs)
	glyphs[i] = updated
	s.glyphs = glyphs
	s.selected = nil
	return nil
}
