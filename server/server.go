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

// Package server implements the HTTP interface of the glyph editor.
//
// The following endpoints are provided:
//
//	POST /api/load-font     multipart file "font"            -> {success, glyphs}
//	POST /api/query-glyphs  {"characters": ["A", ...]}       -> {success, glyphs}
//	POST /api/update-glyph  multipart "glyphName", "unicode",
//	                        file "image"                     -> {success, updatedGlyph}
//	POST /api/save-font     {"glyphs": [...]}                -> 501 {success, message}
//	GET  /api/status                                         -> {success, defaultFont}
//
// Failed requests are answered with {"success": false, "message": ...}.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"seehuhn.de/go/glyphedit"
	"seehuhn.de/go/glyphedit/query"
	"seehuhn.de/go/glyphedit/raster"
)

// Config holds the settings for a [Server].
type Config struct {
	// Query answers glyph queries against the default font.
	Query *query.Service

	// Vectorizer converts glyph drawings into outlines.
	// The default is [raster.Square].
	Vectorizer raster.RasterToOutline

	// MaxUpload is the maximum size of a request body in bytes.
	// The default is [DefaultMaxUpload].
	MaxUpload int64

	// MaxMemory is the number of bytes of a multipart upload kept in
	// memory.  Larger uploads are buffered in temporary files.
	// The default is 8 MiB.
	MaxMemory int64

	// MaxPixels limits the size of uploaded glyph drawings.
	// The default is [raster.DefaultMaxPixels].
	MaxPixels int

	// Logger receives one record per request, and the causes of all
	// server errors.  The default is [glyphedit.Logger].
	Logger *slog.Logger
}

// DefaultMaxUpload is the default limit for request bodies.
const DefaultMaxUpload = 32 << 20

// Server is an [http.Handler] serving the glyph editor API.
type Server struct {
	query      *query.Service
	vectorizer raster.RasterToOutline
	maxUpload  int64
	maxMemory  int64
	maxPixels  int
	log        *slog.Logger

	mux    *http.ServeMux
	routes map[string]string // path -> method
}

// New returns a new server.  Zero fields in cfg are replaced by their
// default values.  A nil Query field is treated like a default font which
// failed to load.
func New(cfg *Config) *Server {
	if cfg == nil {
		cfg = &Config{}
	}
	s := &Server{
		query:      cfg.Query,
		vectorizer: cfg.Vectorizer,
		maxUpload:  cfg.MaxUpload,
		maxMemory:  cfg.MaxMemory,
		maxPixels:  cfg.MaxPixels,
		log:        cfg.Logger,
	}
	if s.query == nil {
		s.query = query.LoadBytes(nil, "(none)")
	}
	if s.vectorizer == nil {
		s.vectorizer = raster.Square{}
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUpload
	}
	if s.maxMemory <= 0 {
		s.maxMemory = 8 << 20
	}
	if s.maxPixels <= 0 {
		s.maxPixels = raster.DefaultMaxPixels
	}
	if s.log == nil {
		s.log = glyphedit.Logger()
	}

	s.mux = http.NewServeMux()
	s.routes = make(map[string]string)
	s.handle(http.MethodPost, "/api/load-font", s.handleLoadFont)
	s.handle(http.MethodPost, "/api/query-glyphs", s.handleQueryGlyphs)
	s.handle(http.MethodPost, "/api/update-glyph", s.handleUpdateGlyph)
	s.handle(http.MethodPost, "/api/save-font", s.handleSaveFont)
	s.handle(http.MethodGet, "/api/status", s.handleStatus)
	// Unknown paths and wrong methods end up here.
	s.mux.HandleFunc("/", s.handleUnknown)

	return s
}

func (s *Server) handle(method, path string, h http.HandlerFunc) {
	s.mux.HandleFunc(method+" "+path, h)
	s.routes[path] = method
}

// ServeHTTP implements the [http.Handler] interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	defer func() {
		if p := recover(); p != nil {
			if p == http.ErrAbortHandler {
				panic(p)
			}
			s.log.Error("handler panic",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", p)
			if !rec.written {
				writeJSON(rec, http.StatusInternalServerError, &errorResponse{
					Message: "internal server error",
				})
			}
		}
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	}()

	r.Body = http.MaxBytesReader(rec, r.Body, s.maxUpload)
	s.mux.ServeHTTP(rec, r)
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusRecorder) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}
