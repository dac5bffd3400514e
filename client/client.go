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

// Package client talks to a glyph editor server.
//
// All methods report failures as [*Error] values, which carry a single
// message suitable for showing to the user.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"seehuhn.de/go/glyphedit"
)

// Op identifies an API operation.
type Op int

// These are the operations of the glyph editor API.
const (
	OpLoadFont Op = iota
	OpQueryGlyphs
	OpUpdateGlyph
	OpSaveFont
	OpStatus
)

var opNames = [...]struct{ failed, unexpected string }{
	OpLoadFont:    {"Failed to load font", "loading the font"},
	OpQueryGlyphs: {"Failed to query glyphs", "querying glyphs"},
	OpUpdateGlyph: {"Failed to update glyph", "updating the glyph"},
	OpSaveFont:    {"Failed to save font", "saving the font"},
	OpStatus:      {"Failed to get server status", "getting the server status"},
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op].unexpected
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Error is returned by all methods of [Client].
type Error struct {
	Op Op

	// Status is the HTTP status code of the response, or 0 if no response
	// was received.
	Status int

	// Message is the text to show to the user.  If the server sent a
	// message, this message is used.
	Message string

	// Err is the underlying error, if any.
	Err error
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) Unwrap() error {
	return err.Err
}

// Client sends requests to a glyph editor server.
type Client struct {
	// BaseURL is the URL of the server, for example "http://localhost:3001".
	BaseURL string

	// HTTP is the client used for requests.  If this is nil,
	// [http.DefaultClient] is used.
	HTTP *http.Client
}

// New returns a client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimSuffix(baseURL, "/")}
}

// LoadFont uploads a font file and returns its glyphs.  The file name
// determines the font format.
func (c *Client) LoadFont(ctx context.Context, fname string, font io.Reader) ([]*glyphedit.Glyph, error) {
	body, ctype, err := multipartBody(nil, "font", fname, font)
	if err != nil {
		return nil, &Error{Op: OpLoadFont, Message: unexpected(OpLoadFont), Err: err}
	}

	var res struct {
		Glyphs []*glyphedit.Glyph `json:"glyphs"`
	}
	err = c.do(ctx, OpLoadFont, "/api/load-font", ctype, body, &res)
	if err != nil {
		return nil, err
	}
	return res.Glyphs, nil
}

// QueryGlyphs looks up the glyphs for the characters of s in the default
// font of the server.  Characters without a glyph are skipped.
func (c *Client) QueryGlyphs(ctx context.Context, s string) ([]*glyphedit.Glyph, error) {
	chars := []string{}
	for _, r := range s {
		chars = append(chars, string(r))
	}
	req, err := json.Marshal(map[string][]string{"characters": chars})
	if err != nil {
		return nil, &Error{Op: OpQueryGlyphs, Message: unexpected(OpQueryGlyphs), Err: err}
	}

	var res struct {
		Glyphs []*glyphedit.Glyph `json:"glyphs"`
	}
	err = c.do(ctx, OpQueryGlyphs, "/api/query-glyphs", "application/json", bytes.NewReader(req), &res)
	if err != nil {
		return nil, err
	}
	return res.Glyphs, nil
}

// UpdateGlyph sends a drawing of a glyph, and returns the glyph record
// computed by the server.
func (c *Client) UpdateGlyph(ctx context.Context, name, unicode string, png []byte) (*glyphedit.Glyph, error) {
	fields := [][2]string{{"glyphName", name}, {"unicode", unicode}}
	body, ctype, err := multipartBody(fields, "image", "glyph.png", bytes.NewReader(png))
	if err != nil {
		return nil, &Error{Op: OpUpdateGlyph, Message: unexpected(OpUpdateGlyph), Err: err}
	}

	var res struct {
		UpdatedGlyph *glyphedit.Glyph `json:"updatedGlyph"`
	}
	err = c.do(ctx, OpUpdateGlyph, "/api/update-glyph", ctype, body, &res)
	if err != nil {
		return nil, err
	}
	if res.UpdatedGlyph == nil {
		return nil, &Error{Op: OpUpdateGlyph, Status: http.StatusOK, Message: failed(OpUpdateGlyph)}
	}
	return res.UpdatedGlyph, nil
}

// SaveFont sends the glyphs of a font to the server for saving.
func (c *Client) SaveFont(ctx context.Context, glyphs []*glyphedit.Glyph) error {
	if glyphs == nil {
		glyphs = []*glyphedit.Glyph{}
	}
	req, err := json.Marshal(map[string][]*glyphedit.Glyph{"glyphs": glyphs})
	if err != nil {
		return &Error{Op: OpSaveFont, Message: unexpected(OpSaveFont), Err: err}
	}
	return c.do(ctx, OpSaveFont, "/api/save-font", "application/json", bytes.NewReader(req), nil)
}

// Status describes the default font of a server.
type Status struct {
	Ready     bool   `json:"ready"`
	Source    string `json:"source"`
	NumGlyphs int    `json:"numGlyphs"`
	Message   string `json:"message,omitempty"`
}

// Status returns information about the default font of the server.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var res struct {
		DefaultFont *Status `json:"defaultFont"`
	}
	err := c.do(ctx, OpStatus, "/api/status", "", nil, &res)
	if err != nil {
		return nil, err
	}
	if res.DefaultFont == nil {
		return nil, &Error{Op: OpStatus, Status: http.StatusOK, Message: failed(OpStatus)}
	}
	return res.DefaultFont, nil
}

// do sends a request.  A nil body results in a GET request.
// The JSON response is decoded into out, if out is not nil.
func (c *Client) do(ctx context.Context, op Op, endpoint, ctype string, body io.Reader, out any) error {
	method := http.MethodPost
	if body == nil {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, body)
	if err != nil {
		return &Error{Op: op, Message: unexpected(op), Err: err}
	}
	if ctype != "" {
		req.Header.Set("Content-Type", ctype)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	res, err := hc.Do(req)
	if err != nil {
		return &Error{Op: op, Message: unexpected(op), Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return &Error{Op: op, Status: res.StatusCode, Message: unexpected(op), Err: err}
	}

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	jsonErr := json.Unmarshal(data, &envelope)

	if res.StatusCode < 200 || res.StatusCode >= 300 || jsonErr != nil || !envelope.Success {
		msg := envelope.Message
		if msg == "" {
			msg = failed(op)
		}
		cause := jsonErr
		if cause == nil {
			cause = fmt.Errorf("server responded with %q", res.Status)
		}
		return &Error{Op: op, Status: res.StatusCode, Message: msg, Err: cause}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Op: op, Status: res.StatusCode, Message: failed(op), Err: err}
		}
	}
	return nil
}

func failed(op Op) string {
	return opNames[op].failed
}

func unexpected(op Op) string {
	return "An unexpected error occurred while " + opNames[op].unexpected
}

func multipartBody(fields [][2]string, fileField, fname string, r io.Reader) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for _, kv := range fields {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}
	fw, err := mw.CreateFormFile(fileField, fname)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf, mw.FormDataContentType(), nil
}

// IsNotImplemented reports whether err indicates that the server does not
// implement the requested operation.
func IsNotImplemented(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == http.StatusNotImplemented
}
