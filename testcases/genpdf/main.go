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

// Command genpdf generates reference images for visual comparison.
// For every test case it writes a PDF and the software-rasterised PNG.
// If Ghostscript is installed, the PDF is also rendered to a second PNG,
// so that both rasterisations can be compared side by side.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"seehuhn.de/go/cncview/pdfout"
	"seehuhn.de/go/cncview/raster"
	"seehuhn.de/go/cncview/testcases"
)

const refDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(refDir, 0o755); err != nil {
		panic(err)
	}
	_, err := exec.LookPath("gs")
	haveGS := err == nil

	for category, tc := range testcases.Each {
		name := category + "_" + tc.Name
		m := tc.Model()

		pdfPath := filepath.Join(refDir, name+".pdf")
		err := pdfout.Write(pdfPath, m)
		if errors.Is(err, pdfout.ErrEmptyPage) {
			fmt.Fprintf(os.Stderr, "%s: skipped, empty page\n", name)
			continue
		} else if err != nil {
			panic(fmt.Errorf("%s: %w", name, err))
		}

		c := raster.NewCanvas(1)
		if err := c.Render(m); err != nil {
			panic(fmt.Errorf("%s: %w", name, err))
		}
		if err := c.WritePNG(filepath.Join(refDir, name+".png")); err != nil {
			panic(fmt.Errorf("%s: %w", name, err))
		}

		if haveGS {
			gsPath := filepath.Join(refDir, name+"_gs.png")
			if err := renderPNG(pdfPath, gsPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func renderPNG(pdfPath, pngPath string) error {
	// -sDEVICE=png16m: 24-bit colour
	// -r72: 72 DPI (1 point = 1 pixel)
	// -dGraphicsAlphaBits=4: 4x supersampling for anti-aliasing
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=png16m",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
