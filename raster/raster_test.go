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
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"math"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/cncview/coord"
	"seehuhn.de/go/cncview/scene"
	"seehuhn.de/go/cncview/toolpath"
)

// coverageGrid rasterizes into a w×h array of coverage values.
func coverageGrid(w, h int, draw func(r *Rasterizer, emit EmitFunc)) [][]float32 {
	grid := make([][]float32, h)
	for y := range grid {
		grid[y] = make([]float32, w)
	}
	r := NewRasterizer(rect.Rect{URx: float64(w), URy: float64(h)})
	draw(r, func(y, xMin int, cov []float32) {
		copy(grid[y][xMin:], cov)
	})
	return grid
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1) has a diagonal edge y = x/10, so pixel X
// has coverage (2X+1)/20.
func TestTriangleCoverage(t *testing.T) {
	grid := coverageGrid(10, 1, func(r *Rasterizer, emit EmitFunc) {
		r.FillPolygon([]vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 1}}, emit)
	})

	const epsilon = 1e-6
	for x := range 10 {
		expected := float32(2*x+1) / 20
		if math.Abs(float64(grid[0][x]-expected)) > epsilon {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, grid[0][x])
		}
	}
}

func TestStrokeHorizontalLine(t *testing.T) {
	grid := coverageGrid(12, 10, func(r *Rasterizer, emit EmitFunc) {
		r.Width = 2
		r.StrokePolyline([]vec.Vec2{{X: 2, Y: 5}, {X: 8, Y: 5}}, emit)
	})

	for y := range 10 {
		for x := range 12 {
			want := float32(0)
			if y >= 4 && y < 6 && x >= 2 && x < 8 {
				want = 1
			}
			if math.Abs(float64(grid[y][x]-want)) > 1e-5 {
				t.Errorf("pixel (%d,%d): coverage %.4f, want %.0f", x, y, grid[y][x], want)
			}
		}
	}
}

func TestStrokeCapsExtendLine(t *testing.T) {
	for _, cap := range []graphics.LineCapStyle{graphics.LineCapRound, graphics.LineCapSquare} {
		grid := coverageGrid(12, 10, func(r *Rasterizer, emit EmitFunc) {
			r.Width = 2
			r.Cap = cap
			r.StrokePolyline([]vec.Vec2{{X: 2, Y: 5}, {X: 8, Y: 5}}, emit)
		})
		if grid[4][1] == 0 || grid[4][8] == 0 {
			t.Errorf("cap %v: ends not extended", cap)
		}
		if grid[4][10] != 0 {
			t.Errorf("cap %v: extended too far", cap)
		}
	}
}

// TestStrokeCornerIsSolid checks that the overlapping outline polygons of a
// polyline do not cancel out.
func TestStrokeCornerIsSolid(t *testing.T) {
	grid := coverageGrid(20, 20, func(r *Rasterizer, emit EmitFunc) {
		r.Width = 4
		r.StrokePolyline([]vec.Vec2{{X: 2, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 18}}, emit)
	})
	for _, p := range [][2]int{{9, 9}, {10, 10}, {9, 11}, {5, 10}, {10, 15}} {
		if c := grid[p[1]][p[0]]; c < 0.999 {
			t.Errorf("pixel %v: coverage %.4f", p, c)
		}
	}
	for y := range grid {
		for x, c := range grid[y] {
			if c > 1 {
				t.Errorf("pixel (%d,%d): coverage %.4f > 1", x, y, c)
			}
		}
	}
}

func TestStrokeDashed(t *testing.T) {
	grid := coverageGrid(24, 4, func(r *Rasterizer, emit EmitFunc) {
		r.Width = 2
		r.Dash = []float64{5, 5}
		r.StrokePolyline([]vec.Vec2{{X: 0, Y: 2}, {X: 22, Y: 2}}, emit)
	})
	row := grid[1]
	for _, x := range []int{0, 4, 10, 14, 20, 21} {
		if row[x] < 0.999 {
			t.Errorf("pixel %d should be on, coverage %.4f", x, row[x])
		}
	}
	for _, x := range []int{5, 9, 15, 19, 22} {
		if row[x] != 0 {
			t.Errorf("pixel %d should be off, coverage %.4f", x, row[x])
		}
	}
}

func TestDashAcrossVertex(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 100, URy: 100})
	r.Dash = []float64{6, 2}
	pieces := r.dashPieces([]vec.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 10}})
	if len(pieces) != 2 {
		t.Fatalf("got %d pieces, want 2", len(pieces))
	}
	first := pieces[0]
	want := []vec.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}}
	if len(first) != len(want) {
		t.Fatalf("first piece = %v, want %v", first, want)
	}
	for i := range want {
		if first[i].Sub(want[i]).Length() > 1e-9 {
			t.Errorf("first piece = %v, want %v", first, want)
			break
		}
	}
}

func TestFillCircle(t *testing.T) {
	grid := coverageGrid(20, 20, func(r *Rasterizer, emit EmitFunc) {
		r.Flatness = 0.01
		r.FillPath(circlePath(vec.Vec2{X: 10, Y: 10}, 6), emit)
	})

	var sum float64
	for y := range grid {
		for _, c := range grid[y] {
			sum += float64(c)
		}
	}
	if want := math.Pi * 36; math.Abs(sum-want) > 0.5 {
		t.Errorf("circle area %.3f, want %.3f", sum, want)
	}
	if grid[10][10] != 1 || grid[0][0] != 0 {
		t.Error("wrong coverage inside or outside the circle")
	}
}

// TestFillOShape fills two rings of opposite orientation. The hole in
// the middle must stay empty.
func TestFillOShape(t *testing.T) {
	grid := coverageGrid(20, 20, func(r *Rasterizer, emit EmitFunc) {
		r.FillPath(makeOPath(10, 10, 9, 5), emit)
	})
	if c := grid[10][10]; c > 1e-6 {
		t.Errorf("hole: coverage %.4f, want 0", c)
	}
	if c := grid[10][2]; c < 0.999 {
		t.Errorf("ring: coverage %.4f, want 1", c)
	}
	if c := grid[0][0]; c != 0 {
		t.Errorf("outside: coverage %.4f, want 0", c)
	}
}

func TestClipping(t *testing.T) {
	grid := coverageGrid(10, 10, func(r *Rasterizer, emit EmitFunc) {
		r.FillPolygon([]vec.Vec2{{X: -5, Y: -5}, {X: 15, Y: -5}, {X: 15, Y: 15}, {X: -5, Y: 15}}, emit)
	})
	for y := range grid {
		for x, c := range grid[y] {
			if c != 1 {
				t.Fatalf("pixel (%d,%d): coverage %.4f", x, y, c)
			}
		}
	}
}

// TestFarAwayVertex fills a triangle with one vertex far outside the clip
// rectangle. The work must not grow with the distance of that vertex.
func TestFarAwayVertex(t *testing.T) {
	grid := coverageGrid(10, 10, func(r *Rasterizer, emit EmitFunc) {
		r.FillPolygon([]vec.Vec2{{X: -1e9, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, emit)
	})
	for y := range grid {
		for x, c := range grid[y] {
			if c < 0.99 || c > 1 {
				t.Fatalf("pixel (%d,%d): coverage %.4f", x, y, c)
			}
		}
	}
}

// TestCanvasFarSegment renders a tool path which starts a long way
// outside the work area and ends at the origin.
func TestCanvasFarSegment(t *testing.T) {
	in := &scene.Input{
		WorkArea: coord.WorkArea{X: 300, Y: 200, Z: 100},
		Viewport: coord.Viewport{Width: 400, Height: 300, Padding: 20},
		Segments: []toolpath.Segment{
			{Start: coord.Position{X: -1e9}, End: coord.Position{Y: 1}, Type: toolpath.Feed},
		},
		Flags: scene.Flags{ShowFeed: true, ShowRapid: true},
	}
	m := scene.Compose(in)

	c := NewCanvas(1)
	if err := c.Render(m); err != nil {
		t.Fatal(err)
	}
	// the segment enters at the left edge and passes just above the centre
	style := toolpath.StyleFor(toolpath.Feed)
	if got := c.Image().RGBAAt(100, 148); got == m.Background {
		t.Errorf("pixel (100,148) is background, want %v", style.Color)
	}
}

func TestNonFiniteIgnored(t *testing.T) {
	called := false
	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	r.FillPolygon([]vec.Vec2{{X: math.NaN(), Y: 0}, {X: 5, Y: math.Inf(1)}, {X: 0, Y: 5}}, func(int, int, []float32) {
		called = true
	})
	if called {
		t.Error("non-finite polygon produced output")
	}
}

func TestCanvasRender(t *testing.T) {
	bg := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	red := color.RGBA{R: 255, A: 255}
	m := &scene.Model{
		Width:      40,
		Height:     30,
		Background: bg,
		Commands: []scene.Command{
			scene.Circle{Center: vec.Vec2{X: 20, Y: 15}, Radius: 5, Fill: red, Layer: scene.LayerPosition},
		},
	}

	c := NewCanvas(2)
	if err := c.Render(m); err != nil {
		t.Fatal(err)
	}
	img := c.Image()
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 60 {
		t.Fatalf("image size %v", b)
	}
	if got := img.RGBAAt(1, 1); got != bg {
		t.Errorf("background %v, want %v", got, bg)
	}
	if got := img.RGBAAt(40, 30); got != red {
		t.Errorf("marker centre %v, want %v", got, red)
	}

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded size %v", decoded.Bounds())
	}
}

func TestCanvasEmptySurface(t *testing.T) {
	c := NewCanvas(1)
	err := c.Render(&scene.Model{Width: 0, Height: 10})
	if !errors.Is(err, ErrEmptySurface) {
		t.Errorf("got %v, want ErrEmptySurface", err)
	}
}
