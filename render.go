// seehuhn.de/go/cncview - machine position visualization
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

// Package cncview draws the live position of a CNC machine, together with
// its work area, a grid, the recent trail of the tool and a precomputed
// tool path.
//
// The geometry lives in the subpackages [seehuhn.de/go/cncview/coord],
// [seehuhn.de/go/cncview/grid], [seehuhn.de/go/cncview/trail] and
// [seehuhn.de/go/cncview/toolpath]. Package [seehuhn.de/go/cncview/scene]
// combines them into a list of draw commands, which the backends turn into
// pixels, vector files or terminal output. This package selects a backend
// by name.
package cncview

//go:generate go run ./testcases/export
//go:generate go run ./testcases/genpdf

import (
	"errors"
	"fmt"
	"io"
	"os"

	"seehuhn.de/go/cncview/pdfout"
	"seehuhn.de/go/cncview/raster"
	"seehuhn.de/go/cncview/scene"
	"seehuhn.de/go/cncview/svg"
	"seehuhn.de/go/cncview/termview"
)

var (
	// ErrUnknownFormat is returned for unsupported output format names.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrNeedsFile is returned by [Encode] for formats which can only be
	// written to a named file.
	ErrNeedsFile = errors.New("format can only be written to a file")
)

// Options control the output backends.
type Options struct {
	// PixelRatio is the number of PNG pixels per logical pixel.
	// Zero means 1.
	PixelRatio float64

	// Cols and Rows give the size of terminal output in character cells.
	// Zero values select 80×30.
	Cols, Rows int
}

// Encode writes m to w in the given format: "png", "svg" or "term".
func Encode(w io.Writer, format string, m *scene.Model, opt *Options) error {
	if opt == nil {
		opt = &Options{}
	}
	switch format {
	case "png":
		c := raster.NewCanvas(opt.PixelRatio)
		if err := c.Render(m); err != nil {
			return err
		}
		return c.EncodePNG(w)
	case "svg":
		return svg.Encode(w, m)
	case "term":
		cols, rows := opt.Cols, opt.Rows
		if cols <= 0 || rows <= 0 {
			cols, rows = 80, 30
		}
		c := termview.New(cols, rows)
		if err := c.Render(m); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, c.String())
		return err
	case "pdf":
		return fmt.Errorf("%s: %w", format, ErrNeedsFile)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// WriteFile writes m to the named file. In addition to the formats of
// [Encode], "pdf" is supported.
func WriteFile(fname, format string, m *scene.Model, opt *Options) (err error) {
	switch format {
	case "pdf":
		return pdfout.Write(fname, m)
	case "png", "svg", "term":
		// pass
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, format, m, opt)
}

// Frame composes a single frame from in.
func Frame(in *scene.Input) *scene.Model {
	return scene.Compose(in)
}
