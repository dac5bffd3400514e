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

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"seehuhn.de/go/glyphedit"
	"seehuhn.de/go/glyphedit/decode"
	"seehuhn.de/go/glyphedit/raster"
)

type glyphsResponse struct {
	Success bool               `json:"success"`
	Glyphs  []*glyphedit.Glyph `json:"glyphs"`
}

type updateResponse struct {
	Success      bool             `json:"success"`
	UpdatedGlyph *glyphedit.Glyph `json:"updatedGlyph"`
}

type statusResponse struct {
	Success     bool        `json:"success"`
	DefaultFont *fontStatus `json:"defaultFont"`
}

type fontStatus struct {
	Ready     bool   `json:"ready"`
	Source    string `json:"source"`
	NumGlyphs int    `json:"numGlyphs"`
	Message   string `json:"message,omitempty"`
}

type queryRequest struct {
	Characters []string `json:"characters"`
}

type saveRequest struct {
	Glyphs []*glyphedit.Glyph `json:"glyphs"`
}

func (s *Server) handleLoadFont(w http.ResponseWriter, r *http.Request) {
	if err := s.parseMultipart(r); err != nil {
		s.fail(w, r, "loading font", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	fname, data, err := readFile(r, "font", "no font file uploaded")
	if err != nil {
		s.fail(w, r, "loading font", err)
		return
	}

	format, err := decode.FormatFromName(fname)
	if err != nil && !decode.HasExtension(fname) {
		format = decode.Sniff(data)
		if format != decode.Unknown {
			err = nil
		}
	}
	if err != nil {
		s.fail(w, r, "loading font", err)
		return
	}

	glyphs, err := decode.Decode(data, format)
	if err != nil {
		s.fail(w, r, "loading font", err)
		return
	}
	s.log.Debug("font decoded",
		"file", fname,
		"format", format,
		"glyphs", len(glyphs))
	writeJSON(w, http.StatusOK, &glyphsResponse{Success: true, Glyphs: glyphs})
}

func (s *Server) handleQueryGlyphs(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := readJSON(r, &req); err != nil {
		s.fail(w, r, "querying glyphs", err)
		return
	}
	if req.Characters == nil {
		s.fail(w, r, "querying glyphs", &glyphedit.ValidationError{Field: "characters", Reason: "missing"})
		return
	}

	chars := make([]rune, len(req.Characters))
	for i, c := range req.Characters {
		if err := glyphedit.ValidateUnicode("characters", c); err != nil {
			s.fail(w, r, "querying glyphs", err)
			return
		}
		if c == "" {
			s.fail(w, r, "querying glyphs", &glyphedit.ValidationError{
				Field:  "characters",
				Reason: fmt.Sprintf("element %d is empty", i),
			})
			return
		}
		chars[i] = []rune(c)[0]
	}

	glyphs, err := s.query.Lookup(chars)
	if err != nil {
		s.fail(w, r, "querying glyphs", err)
		return
	}
	writeJSON(w, http.StatusOK, &glyphsResponse{Success: true, Glyphs: glyphs})
}

func (s *Server) handleUpdateGlyph(w http.ResponseWriter, r *http.Request) {
	if err := s.parseMultipart(r); err != nil {
		s.fail(w, r, "updating glyph", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	name := r.FormValue("glyphName")
	unicode := r.FormValue("unicode")

	file, _, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		err = &glyphedit.ValidationError{Field: "image", Reason: "no image file uploaded"}
	}
	if err != nil {
		s.fail(w, r, "updating glyph", err)
		return
	}
	defer file.Close()

	img, format, err := raster.Decode(file, s.maxPixels)
	if err != nil {
		s.fail(w, r, "updating glyph", err)
		return
	}
	s.log.Debug("glyph drawing received",
		"glyph", name,
		"format", format,
		"size", img.Bounds().Size())

	g, err := raster.Update(r.Context(), s.vectorizer, name, unicode, img)
	if err != nil {
		s.fail(w, r, "updating glyph", err)
		return
	}
	writeJSON(w, http.StatusOK, &updateResponse{Success: true, UpdatedGlyph: g})
}

func (s *Server) handleSaveFont(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := readJSON(r, &req); err != nil {
		s.fail(w, r, "saving font", err)
		return
	}
	if req.Glyphs == nil {
		s.fail(w, r, "saving font", &glyphedit.ValidationError{Field: "glyphs", Reason: "missing"})
		return
	}
	for i, g := range req.Glyphs {
		if g == nil {
			s.fail(w, r, "saving font", &glyphedit.ValidationError{
				Field:  "glyphs",
				Reason: fmt.Sprintf("element %d is null", i),
			})
			return
		}
	}

	s.log.Info("font save requested", "glyphs", len(req.Glyphs))
	writeJSON(w, http.StatusNotImplemented, &errorResponse{
		Message: "saving fonts is not implemented",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := &fontStatus{
		Ready:     s.query.Ready(),
		Source:    s.query.Source(),
		NumGlyphs: s.query.NumGlyphs(),
	}
	if err := s.query.Err(); err != nil {
		st.Message = err.Error()
	}
	writeJSON(w, http.StatusOK, &statusResponse{Success: true, DefaultFont: st})
}

func (s *Server) handleUnknown(w http.ResponseWriter, r *http.Request) {
	method, ok := s.routes[r.URL.Path]
	if !ok {
		s.fail(w, r, "routing", &routeError{
			status: http.StatusNotFound,
			msg:    "no such endpoint: " + r.URL.Path,
		})
		return
	}

	allow := method
	if method == http.MethodGet {
		allow += ", " + http.MethodHead
	}
	w.Header().Set("Allow", allow)
	s.fail(w, r, "routing", &routeError{
		status: http.StatusMethodNotAllowed,
		msg:    fmt.Sprintf("method %s not allowed for %s", r.Method, r.URL.Path),
	})
}

// parseMultipart parses a multipart request.  On success,
// r.MultipartForm is set and the caller must call RemoveAll on it.
func (s *Server) parseMultipart(r *http.Request) error {
	err := r.ParseMultipartForm(s.maxMemory)
	if err != nil {
		if r.MultipartForm != nil {
			r.MultipartForm.RemoveAll()
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return &glyphedit.ValidationError{Reason: "malformed multipart request: " + err.Error()}
	}
	return nil
}

// readFile returns the name and the contents of an uploaded file.
func readFile(r *http.Request, field, missing string) (string, []byte, error) {
	file, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil, &glyphedit.ValidationError{Field: field, Reason: missing}
	} else if err != nil {
		return "", nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}
	return hdr.Filename, data, nil
}

// readJSON decodes a JSON request body into v.
func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(v)
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || glyphedit.IsValidation(err) {
		return err
	}
	if errors.Is(err, io.EOF) {
		return &glyphedit.ValidationError{Reason: "empty request body"}
	}
	return &glyphedit.ValidationError{Reason: "malformed JSON: " + err.Error()}
}
