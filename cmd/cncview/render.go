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


package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"seehuhn.de/go/cncview"
)

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	var c common
	c.register(fs)
	out := fs.String("o", "", "output file, \"-\" for standard output")
	format := fs.String("format", "", "output format: png, svg, pdf or term")
	cols := fs.Int("cols", 80, "terminal columns for -format term")
	rows := fs.Int("rows", 30, "terminal rows for -format term")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := c.open(os.Stderr)
	if err != nil {
		return err
	}
	f, path := outputTarget(*format, *out, s.cfg.Output.Format, s.cfg.Output.Path)

	m := s.ctrl.Frame()
	opt := &cncview.Options{
		PixelRatio: s.cfg.Viewport.PixelRatio,
		Cols:       *cols,
		Rows:       *rows,
	}

	start := time.Now()
	if path == "-" {
		err = cncview.Encode(os.Stdout, f, m, opt)
	} else {
		err = cncview.WriteFile(path, f, m, opt)
	}
	s.rec.Frame(context.Background(), f, m, time.Since(start), err != nil)
	if err != nil {
		return err
	}

	if path != "-" {
		s.log.Info().
			Str("path", path).
			Str("format", f).
			Float64("scale", m.Scale).
			Bool("degraded", m.Degraded).
			Msg("frame written")
	}
	return nil
}

// outputTarget decides the format and destination of the render command.
// An explicit format wins over the extension of the output file, which
// wins over the configured format. Without an explicit output file the
// configured path is used with its extension adjusted, except that
// terminal output goes to standard output.
func outputTarget(format, out, cfgFormat, cfgPath string) (string, string) {
	if format == "" && out != "" && out != "-" {
		format = strings.TrimPrefix(filepath.Ext(out), ".")
	}
	if format == "" {
		format = cfgFormat
	}

	switch {
	case out != "":
		return format, out
	case format == "term":
		return format, "-"
	default:
		return format, strings.TrimSuffix(cfgPath, filepath.Ext(cfgPath)) + "." + format
	}
}
