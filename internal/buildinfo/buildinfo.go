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

// Package buildinfo describes the version of the running binary.
package buildinfo

import (
	"runtime/debug"
)

// Info identifies the build of a binary.
type Info struct {
	// Path is the main module path, or "" if unknown.
	Path string

	// Version is the module version, or a shortened VCS revision for
	// development builds.  It is "" if neither is known.
	Version string
}

// Read returns information about the current binary.
func Read() Info {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{}
	}
	res := Info{Path: bi.Main.Path}

	if v := bi.Main.Version; v != "" && v != "(devel)" {
		res.Version = v
		return res
	}

	var rev string
	var dirty bool
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return res
	}
	if len(rev) > 8 {
		rev = rev[:8]
	}
	if dirty {
		rev += "+dirty"
	}
	res.Version = rev
	return res
}

// Short returns a one-line description of the binary, for use in
// usage messages and start-up logs.
func Short(toolName string) string {
	info := Read()
	if info.Version == "" {
		return toolName
	}
	return toolName + " (" + info.Path + " " + info.Version + ")"
}
