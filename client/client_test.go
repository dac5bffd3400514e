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

package client

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/glyphedit"
	"seehuhn.de/go/glyphedit/internal/testfont"
	"seehuhn.de/go/glyphedit/query"
	"seehuhn.de/go/glyphedit/server"
)

func newClient(t *testing.T) *Client {
	t.Helper()
	svc := query.LoadBytes(testfont.GoRegular(), "goregular.ttf")
	ts := httptest.NewServer(server.New(&server.Config{Query: svc}))
	t.Cleanup(ts.Close)
	return New(ts.URL + "/")
}

func TestLoadFont(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	glyphs, err := c.LoadFont(ctx, "goregular.ttf", bytes.NewReader(testfont.GoRegular()))
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, g := range glyphs {
		if g.Name == "A" && g.Unicode == "A" && len(g.Contours) > 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("glyph A not found in %d glyphs", len(glyphs))
	}

	_, err = c.LoadFont(ctx, "font.xyz", bytes.NewReader(testfont.GoRegular()))
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("got %v, want *Error", err)
	}
	if e.Op != OpLoadFont || e.Status != http.StatusUnsupportedMediaType {
		t.Errorf("unexpected error %+v", e)
	}
	if !strings.Contains(e.Message, "unsupported font format") {
		t.Errorf("unexpected message %q", e.Message)
	}
}

func TestQueryGlyphs(t *testing.T) {
	c := newClient(t)

	glyphs, err := c.QueryGlyphs(context.Background(), "AbA")
	if err != nil {
		t.Fatal(err)
	}
	var labels []string
	for _, g := range glyphs {
		labels = append(labels, g.Unicode)
	}
	if d := cmp.Diff([]string{"A", "b", "A"}, labels); d != "" {
		t.Error(d)
	}

	glyphs, err = c.QueryGlyphs(context.Background(), "中")
	if err != nil || len(glyphs) != 0 {
		t.Errorf("got %d glyphs, %v", len(glyphs), err)
	}
}

func TestUpdateGlyph(t *testing.T) {
	c := newClient(t)

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, image.NewGray(image.Rect(0, 0, 200, 200))); err != nil {
		t.Fatal(err)
	}
	g, err := c.UpdateGlyph(context.Background(), "B", "B", buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	want := &glyphedit.Glyph{
		Name:       "B",
		Unicode:    "B",
		CodePoints: []rune{'B'},
		Contours: []glyphedit.Contour{
			{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}},
		},
	}
	if d := cmp.Diff(want, g); d != "" {
		t.Error(d)
	}

	_, err = c.UpdateGlyph(context.Background(), "B", "B", []byte("not a png"))
	var e *Error
	if !errors.As(err, &e) || e.Status != http.StatusBadRequest {
		t.Errorf("got %v, want a 400 error", err)
	}
}

func TestSaveFont(t *testing.T) {
	c := newClient(t)
	glyphs := []*glyphedit.Glyph{{Name: "A", Contours: []glyphedit.Contour{}}}

	err := c.SaveFont(context.Background(), glyphs)
	if !IsNotImplemented(err) {
		t.Errorf("got %v, want a 501 error", err)
	}
	if err.Error() != "saving fonts is not implemented" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestStatus(t *testing.T) {
	c := newClient(t)
	st, err := c.Status(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !st.Ready || st.Source != "goregular.ttf" || st.NumGlyphs == 0 {
		t.Errorf("unexpected status %+v", st)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  int
		message string
	}{
		{
			name: "server message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"success":false,"message":"bad characters"}`))
			},
			status:  http.StatusBadRequest,
			message: "bad characters",
		},
		{
			name: "no message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			status:  http.StatusInternalServerError,
			message: "Failed to query glyphs",
		},
		{
			name: "success false",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false,"message":"nope"}`))
			},
			status:  http.StatusOK,
			message: "nope",
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>`))
			},
			status:  http.StatusOK,
			message: "Failed to query glyphs",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(tc.handler)
			defer ts.Close()

			_, err := New(ts.URL).QueryGlyphs(context.Background(), "A")
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("got %v, want *Error", err)
			}
			if e.Status != tc.status || e.Message != tc.message {
				t.Errorf("got %d %q, want %d %q", e.Status, e.Message, tc.status, tc.message)
			}
		})
	}
}

func TestNoServer(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(url).LoadFont(context.Background(), "a.ttf", strings.NewReader("x"))
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("got %v, want *Error", err)
	}
	if e.Status != 0 || e.Message != "An unexpected error occurred while loading the font" {
		t.Errorf("unexpected error %d %q", e.Status, e.Message)
	}
	if e.Err == nil {
		t.Error("cause missing")
	}
}
