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

package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"seehuhn.de/go/cncview/scene"
	"seehuhn.de/go/cncview/testcases"
)

// TestRenderAllCases renders every fixture and checks the image size and
// the background in the top left corner. Only the boundary of an unpadded
// view reaches the corner.
func TestRenderAllCases(t *testing.T) {
	c := NewCanvas(1)
	for category, tc := range testcases.Each {
		name := category + "_" + tc.Name
		m := tc.Model()
		err := c.Render(m)
		if tc.Viewport.Width <= 0 || tc.Viewport.Height <= 0 {
			if !errors.Is(err, ErrEmptySurface) {
				t.Errorf("%s: got %v, want ErrEmptySurface", name, err)
			}
			continue
		} else if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}

		img := c.Image()
		if w, h := img.Rect.Dx(), img.Rect.Dy(); w != int(m.Width) || h != int(m.Height) {
			t.Errorf("%s: image is %d×%d", name, w, h)
		}
		if got := img.RGBAAt(0, 0); tc.Viewport.Padding >= 2 && got != m.Background {
			t.Errorf("%s: corner pixel %v, want background", name, got)
		}
	}
}

// TestAgainstReference compares the rasterised fixtures with the
// Ghostscript renderings made by testcases/genpdf. Cases without a
// reference image are skipped.
func TestAgainstReference(t *testing.T) {
	for category, tc := range testcases.Each {
		name := category + "_" + tc.Name
		t.Run(name, func(t *testing.T) {
			refPath := filepath.Join("..", "testdata", "reference", name+"_gs.png")
			ref, w, h, err := loadGray(refPath)
			if errors.Is(err, os.ErrNotExist) {
				t.Skip("no reference image")
			} else if err != nil {
				t.Fatalf("loading reference: %v", err)
			}

			// The PDF output has no text.
			m := tc.Model()
			m.Commands = withoutText(m.Commands)

			c := NewCanvas(1)
			if err := c.Render(m); err != nil {
				t.Fatal(err)
			}
			actual := toGray(c.Image())
			if c.Image().Rect.Dx() != w || c.Image().Rect.Dy() != h {
				t.Fatalf("size mismatch: %v vs %d×%d", c.Image().Rect, w, h)
			}

			if err := compareImages(name, ref, actual, w, h); err != nil {
				t.Error(err)
			}
		})
	}
}

func withoutText(cmds []scene.Command) []scene.Command {
	var res []scene.Command
	for _, cmd := range cmds {
		if _, isText := cmd.(scene.Text); !isText {
			res = append(res, cmd)
		}
	}
	return res
}

func toGray(img image.Image) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	gray := make([]byte, w*h)
	for y := range h {
		for x := range w {
			c := color.GrayModel.Convert(img.At(x+b.Min.X, y+b.Min.Y)).(color.Gray)
			gray[y*w+x] = c.Y
		}
	}
	return gray
}

func loadGray(path string) (gray []byte, w, h int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	img, err := png.Decode(f)
	if err != nil {
		return nil, 0, 0, err
	}
	return toGray(img), img.Bounds().Dx(), img.Bounds().Dy(), nil
}

func compareImages(name string, expected, actual []byte, w, h int) error {
	total := w * h

	diffs := make([]int, total)
	for i := range total {
		diff := int(expected[i]) - int(actual[i])
		if diff < 0 {
			diff = -diff
		}
		diffs[i] = diff
	}
	sort.Ints(diffs)

	p80 := diffs[int(math.Round(0.80*float64(total-1)))]
	p95 := diffs[int(math.Round(0.95*float64(total-1)))]
	p99 := diffs[int(math.Round(0.99*float64(total-1)))]

	// Most of every frame is flat background, so the bulk of the pixels
	// must match exactly. Anti-aliasing differs along every edge.
	var failures []string
	if p80 > 0 {
		failures = append(failures, fmt.Sprintf("80th percentile diff is %d (want 0)", p80))
	}
	if p95 >= 64 {
		failures = append(failures, fmt.Sprintf("95th percentile diff is %d (want <64)", p95))
	}
	if p99 >= 128 {
		failures = append(failures, fmt.Sprintf("99th percentile diff is %d (want <128)", p99))
	}

	if len(failures) > 0 {
		_ = writeDiffImage(name, expected, actual, w, h)
		return fmt.Errorf("%s", strings.Join(failures, "; "))
	}
	return nil
}

// writeDiffImage writes a 3-panel image to debug/: actual (left), diff
// (middle, green=under, red=over), reference (right).
func writeDiffImage(name string, expected, actual []byte, w, h int) (err error) {
	if err := os.MkdirAll("debug", 0o755); err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, w*3, h))
	for y := range h {
		for x := range w {
			i := y*w + x

			a := actual[i]
			img.Set(x, y, color.RGBA{R: a, G: a, B: a, A: 255})

			diff := int(expected[i]) - int(actual[i])
			var diffColor color.RGBA
			switch {
			case diff > 0:
				diffColor = color.RGBA{G: uint8(diff), A: 255}
			case diff < 0:
				diffColor = color.RGBA{R: uint8(-diff), A: 255}
			default:
				diffColor = color.RGBA{A: 255}
			}
			img.Set(x+w, y, diffColor)

			e := expected[i]
			img.Set(x+w*2, y, color.RGBA{R: e, G: e, B: e, A: 255})
		}
	}

	f, err := os.Create(filepath.Join("debug", name+".png"))
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
