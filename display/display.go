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

// Package display draws a scene model on a small pixel display, such as
// the panel of a pendant or a machine controller.
//
// Drawing is aliased and one pixel wide. The model is scaled to the size
// of the display, without preserving the aspect ratio.
package display

import (
	"image/color"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"

	"seehuhn.de/go/cncview/scene"
)

// filler is implemented by displays which can fill rectangles faster than
// pixel by pixel.
type filler interface {
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Renderer draws models on a display.
// It implements [scene.Renderer].
type Renderer struct {
	d    drivers.Displayer
	font tinyfont.Fonter

	sx, sy float64
	w, h   int16
}

// New returns a renderer for the given display.
func New(d drivers.Displayer) *Renderer {
	return &Renderer{
		d:    d,
		font: &freemono.Regular9pt7b,
	}
}

// Render draws m and flushes the display.
func (r *Renderer) Render(m *scene.Model) error {
	r.w, r.h = r.d.Size()
	if r.w <= 0 || r.h <= 0 || !(m.Width > 0) || !(m.Height > 0) {
		return nil
	}
	r.sx = float64(r.w) / m.Width
	r.sy = float64(r.h) / m.Height

	if err := r.fill(0, 0, r.w, r.h, m.Background); err != nil {
		return err
	}

	for _, cmd := range m.Commands {
		switch cmd := cmd.(type) {
		case scene.Line:
			r.stroke([]vec.Vec2{cmd.A, cmd.B}, cmd.Stroke)
		case scene.Polyline:
			r.stroke(cmd.Points, cmd.Stroke)
		case scene.Circle:
			cx, cy := r.pixel(cmd.Center)
			rad := max(1, int(math.Round(cmd.Radius*min(r.sx, r.sy))))
			if cmd.Fill.A != 0 {
				if err := r.disc(cx, cy, rad, cmd.Fill); err != nil {
					return err
				}
			}
			if !cmd.Stroke.IsZero() {
				r.circle(cx, cy, rad, cmd.Stroke.Color)
			}
		case scene.Text:
			if cmd.Text != "" {
				x, y := r.pixel(cmd.Pos)
				tinyfont.WriteLine(r.d, r.font, int16(x), int16(y), cmd.Text, cmd.Color)
			}
		}
	}

	return r.d.Display()
}

func (r *Renderer) fill(x, y, w, h int16, c color.RGBA) error {
	if f, ok := r.d.(filler); ok {
		return f.FillRectangle(x, y, w, h, c)
	}
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			r.d.SetPixel(px, py, c)
		}
	}
	return nil
}

func (r *Renderer) stroke(pts []vec.Vec2, st scene.Stroke) {
	if st.IsZero() {
		return
	}
	// one pixel of margin, so that clipping does not shift the end points
	// of lines leaving the display
	box := rect.Rect{LLx: -1, LLy: -1, URx: float64(r.w) + 1, URy: float64(r.h) + 1}
	for i := 1; i < len(pts); i++ {
		for _, piece := range scene.DashLine(pts[i-1], pts[i], st.Dash) {
			a, b, ok := scene.ClipLine(r.device(piece[0]), r.device(piece[1]), box)
			if !ok {
				continue
			}
			r.line(floor(a.X), floor(a.Y), floor(b.X), floor(b.Y), st.Color)
		}
	}
}

func (r *Renderer) device(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: p.X * r.sx, Y: p.Y * r.sy}
}

func (r *Renderer) pixel(p vec.Vec2) (int, int) {
	d := r.device(p)
	return floor(d.X), floor(d.Y)
}

func floor(x float64) int {
	return int(math.Floor(x))
}

func (r *Renderer) set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= int(r.w) || y >= int(r.h) {
		return
	}
	r.d.SetPixel(int16(x), int16(y), c)
}

// line uses Bresenham's algorithm. The end points must be close to the
// display, see stroke.
func (r *Renderer) line(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		r.set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// circle draws the outline with the midpoint circle algorithm.
func (r *Renderer) circle(cx, cy, rad int, c color.RGBA) {
	x, y := rad, 0
	e := 1 - rad
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			r.set(cx+p[0], cy+p[1], c)
		}
		y++
		if e < 0 {
			e += 2*y + 1
		} else {
			x--
			e += 2*(y-x) + 1
		}
	}
}

// disc fills the circle row by row.
func (r *Renderer) disc(cx, cy, rad int, c color.RGBA) error {
	for dy := -rad; dy <= rad; dy++ {
		half := int(math.Sqrt(float64(rad*rad - dy*dy)))
		y := cy + dy
		if y < 0 || y >= int(r.h) {
			continue
		}
		x0 := max(cx-half, 0)
		x1 := min(cx+half, int(r.w)-1)
		if x0 > x1 {
			continue
		}
		if err := r.fill(int16(x0), int16(y), int16(x1-x0+1), 1, c); err != nil {
			return err
		}
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
