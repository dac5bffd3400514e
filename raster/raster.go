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

// Package raster implements the glyph edit step: a drawing of a glyph,
// given as a raster image, is turned into a glyph outline.
//
// The conversion itself is behind the [RasterToOutline] interface.  The
// only implementation, [Square], ignores the drawing and returns a fixed
// placeholder outline.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"seehuhn.de/go/glyphedit"
)

// RasterToOutline converts a drawing of a glyph into outline contours,
// in font design units.
type RasterToOutline interface {
	Outline(ctx context.Context, img *image.Gray) ([]glyphedit.Contour, error)
}

// Square is a placeholder for a real vectorizer.  It ignores the image and
// always returns the outline of a 100×100 square.
type Square struct{}

// Outline implements the [RasterToOutline] interface.
func (Square) Outline(context.Context, *image.Gray) ([]glyphedit.Contour, error) {
	return []glyphedit.Contour{
		{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}},
	}, nil
}

// WorkingSize is the width and height of the image passed to
// [RasterToOutline.Outline].
const WorkingSize = 256

// DefaultMaxPixels is the default limit for the size of decoded images.
const DefaultMaxPixels = 4096 * 4096

// Decode reads an image in PNG, JPEG, GIF, BMP, TIFF or WebP format.
// JPEG images are rotated according to their EXIF orientation tag.
// Unknown formats, corrupt data and images with more than maxPixels pixels
// result in a [*glyphedit.ValidationError].
func Decode(r io.Reader, maxPixels int) (image.Image, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", &glyphedit.ValidationError{Field: "image", Reason: err.Error()}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", &glyphedit.ValidationError{Field: "image", Reason: "empty image"}
	}
	if cfg.Width > maxPixels/cfg.Height {
		return nil, "", &glyphedit.ValidationError{
			Field:  "image",
			Reason: fmt.Sprintf("image too large (%d×%d)", cfg.Width, cfg.Height),
		}
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", &glyphedit.ValidationError{Field: "image", Reason: err.Error()}
	}
	return img, format, nil
}

// Normalize scales img to a size×size grayscale image.  Transparent areas
// become white.
func Normalize(img image.Image, size int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Update builds the glyph record for an edited glyph.  The outline is
// computed from img by conv; name and unicode are copied into the record
// after validation.  If unicode is not empty, its character becomes the
// only code point of the glyph.
func Update(ctx context.Context, conv RasterToOutline, name, unicode string, img image.Image) (*glyphedit.Glyph, error) {
	if err := glyphedit.ValidateName("glyphName", name); err != nil {
		return nil, err
	}
	if err := glyphedit.ValidateUnicode("unicode", unicode); err != nil {
		return nil, err
	}

	contours, err := conv.Outline(ctx, Normalize(img, WorkingSize))
	if err != nil {
		return nil, fmt.Errorf("vectorizing %q: %w", name, err)
	}
	if contours == nil {
		contours = []glyphedit.Contour{}
	}

	var codes []rune
	if unicode != "" {
		codes = []rune(unicode)
	}
	return &glyphedit.Glyph{
		Name:       name,
		Unicode:    unicode,
		CodePoints: codes,
		Contours:   contours,
		Curves:     glyphedit.Quadratic,
	}, nil
}
