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

package testfont

import (
	"bytes"
	"encoding/binary"
	"slices"

	"github.com/andybalholm/brotli"
)

// woff2Tags lists the tags which WOFF2 encodes as a single byte.
var woff2Tags = []string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}

// WOFF2 wraps sfnt font data into a WOFF 2.0 container.
// All tables are stored untransformed, in a single brotli stream.
// A "DSIG" table, if present, is dropped.
func WOFF2(ttf []byte) ([]byte, error) {
	flavor, records, err := readDirectory(ttf)
	if err != nil {
		return nil, err
	}

	var dir, tables bytes.Buffer
	numTables := 0
	totalSfntSize := uint32(12)
	for _, rec := range records {
		var tagBytes [4]byte
		binary.BigEndian.PutUint32(tagBytes[:], rec.tag)
		tag := string(tagBytes[:])
		if tag == "DSIG" {
			continue
		}

		data := ttf[rec.offset : rec.offset+rec.length]
		if tag == "head" {
			if len(data) < 18 {
				return nil, errMalformed
			}
			// bit 11: font data has been losslessly transformed
			data = slices.Clone(data)
			flags := binary.BigEndian.Uint16(data[16:18])
			binary.BigEndian.PutUint16(data[16:18], flags|0x0800)
		}

		flags := byte(63)
		if idx := slices.Index(woff2Tags, tag); idx >= 0 {
			flags = byte(idx)
		}
		if tag == "glyf" || tag == "loca" {
			flags |= 3 << 6 // null transform
		}
		dir.WriteByte(flags)
		if flags&0x3F == 63 {
			dir.Write(tagBytes[:])
		}
		dir.Write(appendBase128(nil, rec.length))

		tables.Write(data)
		numTables++
		totalSfntSize += 16 + align4(rec.length)
	}

	var body bytes.Buffer
	w := brotli.NewWriterLevel(&body, brotli.BestCompression)
	if _, err := w.Write(tables.Bytes()); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	const headerSize = 48
	length := headerSize + dir.Len() + body.Len()
	header := make([]byte, headerSize)
	copy(header[0:4], "wOF2")
	binary.BigEndian.PutUint32(header[4:8], flavor)
	binary.BigEndian.PutUint32(header[8:12], uint32(length))
	binary.BigEndian.PutUint16(header[12:14], uint16(numTables))
	binary.BigEndian.PutUint32(header[16:20], totalSfntSize)
	binary.BigEndian.PutUint32(header[20:24], uint32(body.Len()))
	binary.BigEndian.PutUint16(header[24:26], 1)

	out := make([]byte, 0, length)
	out = append(out, header...)
	out = append(out, dir.Bytes()...)
	out = append(out, body.Bytes()...)
	return out, nil
}

// appendBase128 appends the UIntBase128 encoding of v to b.
func appendBase128(b []byte, v uint32) []byte {
	var buf [5]byte
	i := len(buf) - 1
	buf[i] = byte(v & 0x7F)
	for v >>= 7; v != 0; v >>= 7 {
		i--
		buf[i] = byte(v&0x7F) | 0x80
	}
	return append(b, buf[i:]...)
}
