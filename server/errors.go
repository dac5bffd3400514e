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
	"net/http"

	"seehuhn.de/go/glyphedit"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// routeError is returned for requests which no endpoint accepts.
type routeError struct {
	status int
	msg    string
}

func (err *routeError) Error() string {
	return err.msg
}

// statusCode returns the HTTP status code for a handler error.
func statusCode(err error) int {
	var (
		formatErr      *glyphedit.FormatError
		parseErr       *glyphedit.ParseError
		unavailableErr *glyphedit.ServiceUnavailableError
		validationErr  *glyphedit.ValidationError
		tooLargeErr    *http.MaxBytesError
		routeErr       *routeError
	)
	switch {
	case errors.As(err, &routeErr):
		return routeErr.status
	case errors.As(err, &unavailableErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &formatErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// fail sends an error response.  Server errors are logged together with
// the operation which failed.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusCode(err)
	msg := err.Error()
	switch status {
	case http.StatusRequestEntityTooLarge:
		msg = "request too large"
	case http.StatusInternalServerError:
		msg = "Error " + op + ": " + msg
	}
	if status >= 500 {
		s.log.Error(op+" failed",
			"path", r.URL.Path,
			"status", status,
			"error", err)
	} else {
		s.log.Warn(op+" rejected",
			"path", r.URL.Path,
			"status", status,
			"error", err)
	}
	writeJSON(w, status, &errorResponse{Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
