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

// Package profile adds CPU and memory profiling flags to a command.
package profile

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"seehuhn.de/go/glyphedit"
)

// Flags holds the profiling options of a command.
type Flags struct {
	CPU    string
	Memory string
}

// AddFlags registers the -cpuprofile and -memprofile flags.
func AddFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.CPU, "cpuprofile", "", "write cpu profile to `file`")
	fs.StringVar(&f.Memory, "memprofile", "", "write memory profile to `file`")
	return f
}

// Start starts CPU profiling, if requested.  The returned function must be
// called before the program exits; it stops the CPU profile and writes
// the memory profile.
func (f *Flags) Start() (stop func(), err error) {
	var cpuFile *os.File
	if f.CPU != "" {
		cpuFile, err = os.Create(f.CPU)
		if err != nil {
			return nil, fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err = pprof.StartCPUProfile(cpuFile); err != nil {
			cpuFile.Close()
			return nil, fmt.Errorf("could not start CPU profile: %w", err)
		}
	}

	memprofile := f.Memory
	stop = func() {
		if cpuFile != nil {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}
		if memprofile != "" {
			if err := writeHeap(memprofile); err != nil {
				glyphedit.Logger().Error("memory profile", "error", err)
			}
		}
	}
	return stop, nil
}

func writeHeap(fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	runtime.GC()
	allocs := pprof.Lookup("allocs")
	if allocs == nil {
		f.Close()
		return fmt.Errorf("allocs profile not available")
	}
	if err := allocs.WriteTo(f, 0); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
