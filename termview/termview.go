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

// Package termview draws a scene model as coloured braille characters for
// display in a terminal.
//
// Every character cell holds a 2×4 grid of dots. The model is scaled to
// fit the cell grid, so a 400×300 model on a 80×30 terminal uses 160×120
// dots.
package termview

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/cncview/scene"
)

// brailleBase is U+2800, the empty braille pattern.
const brailleBase = 0x2800

// dotBits maps the position of a dot within a cell to its bit in the
// braille code point.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

type cell struct {
	mask  uint8
	text  rune
	color color.RGBA
}

// Canvas is a grid of character cells.
// It implements [scene.Renderer].
type Canvas struct {
	cols, rows int
	cells      []cell
	sx, sy     float64 // model pixels to dots
}

// New returns an empty canvas with the given number of character cells.
func New(cols, rows int) *Canvas {
	cols = max(cols, 1)
	rows = max(rows, 1)
	return &Canvas{
		cols:  cols,
		rows:  rows,
		cells: make([]cell, cols*rows),
	}
}

// Size returns the number of columns and rows.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Render clears the canvas and draws m, scaled to fill the canvas.
func (c *Canvas) Render(m *scene.Model) error {
	clear(c.cells)
	if !(m.Width > 0) || !(m.Height > 0) {
		return nil
	}
	c.sx = float64(2*c.cols) / m.Width
	c.sy = float64(4*c.rows) / m.Height

	for _, cmd := range m.Commands {
		switch cmd := cmd.(type) {
		case scene.Line:
			c.stroke([]vec.Vec2{cmd.A, cmd.B}, cmd.Stroke)
		case scene.Polyline:
			c.stroke(cmd.Points, cmd.Stroke)
		case scene.Circle:
			col := cmd.Fill
			if col.A == 0 {
				col = cmd.Stroke.Color
			}
			c.disc(cmd.Center, cmd.Radius, col)
		case scene.Text:
			c.text(cmd)
		}
	}
	return nil
}

func (c *Canvas) stroke(pts []vec.Vec2, st scene.Stroke) {
	if st.IsZero() {
		return
	}
	for i := 1; i < len(pts); i++ {
		for _, piece := range scene.DashLine(pts[i-1], pts[i], st.Dash) {
			c.line(piece[0], piece[1], st.Color)
		}
	}
}

// line draws a line between two model points using Bresenham's algorithm.
// The line is first clipped to the dot grid, plus a margin of one dot.
func (c *Canvas) line(a, b vec.Vec2, col color.RGBA) {
	box := rect.Rect{LLx: -1, LLy: -1, URx: float64(2*c.cols + 1), URy: float64(4*c.rows + 1)}
	da := vec.Vec2{X: a.X * c.sx, Y: a.Y * c.sy}
	db := vec.Vec2{X: b.X * c.sx, Y: b.Y * c.sy}
	da, db, ok := scene.ClipLine(da, db, box)
	if !ok {
		return
	}
	x0, y0 := int(math.Floor(da.X)), int(math.Floor(da.Y))
	x1, y1 := int(math.Floor(db.X)), int(math.Floor(db.Y))

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
		c.set(x0, y0, col)
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

// disc fills the dots within radius of center. At least one dot is set.
func (c *Canvas) disc(center vec.Vec2, radius float64, col color.RGBA) {
	cx, cy := c.dot(center)
	rx := int(math.Round(radius * c.sx))
	ry := int(math.Round(radius * c.sy))
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			u := float64(dx) / max(float64(rx), 0.5)
			v := float64(dy) / max(float64(ry), 0.5)
			if u*u+v*v <= 1 {
				c.set(cx+dx, cy+dy, col)
			}
		}
	}
}

func (c *Canvas) text(t scene.Text) {
	if t.Text == "" {
		return
	}
	x, y := c.dot(t.Pos)
	col := x / 2
	row := (y - 1) / 4 // baseline is below the glyphs
	if row < 0 || row >= c.rows {
		return
	}
	for _, r := range t.Text {
		if col >= 0 && col < c.cols {
			p := &c.cells[row*c.cols+col]
			p.text = r
			p.color = t.Color
		}
		col++
	}
}

func (c *Canvas) dot(p vec.Vec2) (int, int) {
	return int(math.Floor(p.X * c.sx)), int(math.Floor(p.Y * c.sy))
}

func (c *Canvas) set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= 2*c.cols || y >= 4*c.rows {
		return
	}
	p := &c.cells[(y/4)*c.cols+x/2]
	p.mask |= dotBits[x%2][y%4]
	p.color = col
}

func (p cell) rune() rune {
	switch {
	case p.text != 0:
		return p.text
	case p.mask != 0:
		return brailleBase + rune(p.mask)
	default:
		return ' '
	}
}

// Plain returns the canvas content without colours, one line per row.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for y := range c.rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, p := range c.cells[y*c.cols : (y+1)*c.cols] {
			b.WriteRune(p.rune())
		}
	}
	return b.String()
}

// String returns the canvas content with ANSI colours, one line per row.
// Runs of cells with the same colour share one escape sequence.
func (c *Canvas) String() string {
	var b strings.Builder
	for y := range c.rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.cols : (y+1)*c.cols]
		for i := 0; i < len(row); {
			j := i
			var run strings.Builder
			for j < len(row) && sameStyle(row[i], row[j]) {
				run.WriteRune(row[j].rune())
				j++
			}
			if row[i].mask == 0 && row[i].text == 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(styleFor(row[i].color).Render(run.String()))
			}
			i = j
		}
	}
	return b.String()
}

func sameStyle(a, b cell) bool {
	aEmpty := a.mask == 0 && a.text == 0
	bEmpty := b.mask == 0 && b.text == 0
	if aEmpty || bEmpty {
		return aEmpty == bEmpty
	}
	return a.color == b.color
}

func styleFor(col color.RGBA) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(Hex(col)))
}

// Hex formats a colour as "#rrggbb", the format lipgloss expects.
func Hex(col color.RGBA) string {
	const digits = "0123456789abcdef"
	return string([]byte{'#',
		digits[col.R>>4], digits[col.R&15],
		digits[col.G>>4], digits[col.G&15],
		digits[col.B>>4], digits[col.B&15],
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
