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
	"cmp"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"slices"
)

// WOFF wraps sfnt font data into a WOFF 1.0 container.
// Tables are zlib-compressed where this saves space.
func WOFF(ttf []byte) ([]byte, error) {
	flavor, records, err := readDirectory(ttf)
	if err != nil {
		return nil, err
	}
	numTables := len(records)
	totalSfntSize := uint32(12 + 16*numTables)
	for _, rec := range records {
		totalSfntSize += align4(rec.length)
	}

	const headerSize = 44
	dirSize := 20 * numTables
	dir := make([]byte, dirSize)
	var body bytes.Buffer
	pos := uint32(headerSize + dirSize)
	for i, rec := range records {
		orig := ttf[rec.offset : rec.offset+rec.length]
		data, err := compress(orig)
		if err != nil {
			return nil, err
		}
		if len(data) >= len(orig) {
			data = orig
		}

		entry := dir[20*i : 20*(i+1)]
		binary.BigEndian.PutUint32(entry[0:4], rec.tag)
		binary.BigEndian.PutUint32(entry[4:8], pos)
		binary.BigEndian.PutUint32(entry[8:12], uint32(len(data)))
		binary.BigEndian.PutUint32(entry[12:16], rec.length)
		binary.BigEndian.PutUint32(entry[16:20], rec.checksum)

		body.Write(data)
		pad := align4(uint32(len(data))) - uint32(len(data))
		body.Write(make([]byte, pad))
		pos += uint32(len(data)) + pad
	}

	header := make([]byte, headerSize)
	copy(header[0:4], "wOFF")
	binary.BigEndian.PutUint32(header[4:8], flavor)
	binary.BigEndian.PutUint32(header[8:12], pos)
	binary.BigEndian.PutUint16(header[12:14], uint16(numTables))
	binary.BigEndian.PutUint32(header[16:20], totalSfntSize)
	binary.BigEndian.PutUint16(header[20:22], 1)

	out := make([]byte, 0, pos)
	out = append(out, header...)
	out = append(out, dir...)
	out = append(out, body.Bytes()...)
	return out, nil
}

type tableRecord struct {
	tag, checksum, offset, length uint32
}

// readDirectory returns the flavor and the table records of sfnt font
// data.  The records are sorted by tag.
func readDirectory(ttf []byte) (uint32, []tableRecord, error) {
	if len(ttf) < 12 {
		return 0, nil, errMalformed
	}
	flavor := binary.BigEndian.Uint32(ttf[0:4])
	numTables := int(binary.BigEndian.Uint16(ttf[4:6]))
	if len(ttf) < 12+16*numTables {
		return 0, nil, errMalformed
	}

	records := make([]tableRecord, numTables)
	for i := range records {
		rec := ttf[12+16*i : 12+16*(i+1)]
		records[i] = tableRecord{
			tag:      binary.BigEndian.Uint32(rec[0:4]),
			checksum: binary.BigEndian.Uint32(rec[4:8]),
			offset:   binary.BigEndian.Uint32(rec[8:12]),
			length:   binary.BigEndian.Uint32(rec[12:16]),
		}
		if uint64(records[i].offset)+uint64(records[i].length) > uint64(len(ttf)) {
			return 0, nil, errMalformed
		}
	}
	slices.SortFunc(records, func(a, b tableRecord) int {
		return cmp.Compare(a.tag, b.tag)
	})
	return flavor, records, nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func align4(n uint32) uint32 {
	return (n + 3) &^ 3
}

var errMalformed = errors.New("malformed sfnt data")
