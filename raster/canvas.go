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
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/cncview/scene"
)

// ErrEmptySurface is returned when a model has no drawable pixels.
var ErrEmptySurface = errors.New("raster: empty surface")

// Canvas renders scene models into RGBA images.
type Canvas struct {
	// PixelRatio is the number of device pixels per logical pixel.
	// Values <= 0 are treated as 1.
	PixelRatio float64

	img *image.RGBA
	ras *Rasterizer
}

// NewCanvas returns a canvas with the given pixel ratio.
func NewCanvas(pixelRatio float64) *Canvas {
	return &Canvas{
		PixelRatio: pixelRatio,
		ras:        NewRasterizer(rect.Rect{}),
	}
}

// Image returns the most recently rendered image, or nil.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Render draws m into a fresh image of size Width×Height logical pixels.
// It implements [scene.Renderer].
func (c *Canvas) Render(m *scene.Model) error {
	ratio := c.PixelRatio
	if !(ratio > 0) {
		ratio = 1
	}
	w := int(math.Ceil(m.Width * ratio))
	h := int(math.Ceil(m.Height * ratio))
	if !(m.Width > 0) || !(m.Height > 0) || w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrEmptySurface, m.Width, m.Height)
	}

	if c.img == nil || c.img.Rect.Dx() != w || c.img.Rect.Dy() != h {
		c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	draw.Draw(c.img, c.img.Rect, image.NewUniform(m.Background), image.Point{}, draw.Src)

	if c.ras == nil {
		c.ras = NewRasterizer(rect.Rect{})
	}
	clip := rect.Rect{URx: float64(w), URy: float64(h)}
	ctm := matrix.Matrix{ratio, 0, 0, ratio, 0, 0}

	for _, cmd := range m.Commands {
		c.ras.Reset(clip)
		c.ras.CTM = ctm

		switch cmd := cmd.(type) {
		case scene.Line:
			c.stroke([]vec.Vec2{cmd.A, cmd.B}, cmd.Stroke)
		case scene.Polyline:
			c.stroke(cmd.Points, cmd.Stroke)
		case scene.Circle:
			if cmd.Fill.A != 0 {
				c.ras.FillPath(circlePath(cmd.Center, cmd.Radius), c.paint(cmd.Fill))
			}
			if !cmd.Stroke.IsZero() {
				st := cmd.Stroke
				st.Cap = graphics.LineCapRound
				c.stroke(circlePolygon(cmd.Center, cmd.Radius), st)
			}
		case scene.Text:
			c.text(cmd, ratio)
		}
	}
	return nil
}

func (c *Canvas) stroke(pts []vec.Vec2, st scene.Stroke) {
	if st.Color.A == 0 || !(st.Width > 0) {
		return
	}
	c.ras.Width = st.Width
	c.ras.Cap = st.Cap
	c.ras.Dash = st.Dash
	c.ras.StrokePolyline(pts, c.paint(st.Color))
}

// paint returns an emit function which composites col over the image,
// weighted by coverage.
func (c *Canvas) paint(col color.RGBA) EmitFunc {
	img := c.img
	return func(y, xMin int, coverage []float32) {
		row := img.Pix[y*img.Stride+4*xMin:]
		for i, cov := range coverage {
			px := row[4*i : 4*i+4 : 4*i+4]
			a := float32(col.A) / 255 * cov
			px[0] = blend(col.R, px[0], cov, a)
			px[1] = blend(col.G, px[1], cov, a)
			px[2] = blend(col.B, px[2], cov, a)
			px[3] = blend(col.A, px[3], cov, a)
		}
	}
}

// blend composites a premultiplied source channel over dst.
func blend(src, dst uint8, cov, alpha float32) uint8 {
	v := float32(src)*cov + float32(dst)*(1-alpha)
	return uint8(min(255, max(0, v+0.5)))
}

func (c *Canvas) text(t scene.Text, ratio float64) {
	if t.Text == "" || t.Color.A == 0 {
		return
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(t.Color),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(t.Pos.X*ratio)), int(math.Round(t.Pos.Y*ratio))),
	}
	d.DrawString(t.Text)
}

// EncodePNG writes the most recently rendered image in PNG format.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if c.img == nil {
		return ErrEmptySurface
	}
	return png.Encode(w, c.img)
}

// WritePNG writes the most recently rendered image to a PNG file.
func (c *Canvas) WritePNG(fname string) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return c.EncodePNG(f)
}

// circlePath approximates a circle by four cubic Bézier curves.
func circlePath(center vec.Vec2, radius float64) path.Path {
	const k = 0.5522847498
	cx, cy, r := center.X, center.Y, radius
	kr := k * r
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		buf[0] = vec.Vec2{X: cx + r, Y: cy}
		if !yield(path.CmdMoveTo, buf[:1]) {
			return
		}
		quarters := [4][3]vec.Vec2{
			{{X: cx + r, Y: cy + kr}, {X: cx + kr, Y: cy + r}, {X: cx, Y: cy + r}},
			{{X: cx - kr, Y: cy + r}, {X: cx - r, Y: cy + kr}, {X: cx - r, Y: cy}},
			{{X: cx - r, Y: cy - kr}, {X: cx - kr, Y: cy - r}, {X: cx, Y: cy - r}},
			{{X: cx + kr, Y: cy - r}, {X: cx + r, Y: cy - kr}, {X: cx + r, Y: cy}},
		}
		for _, q := range quarters {
			buf = q
			if !yield(path.CmdCubeTo, buf[:]) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}

// circlePolygon returns a closed polyline around a circle, for outlines.
func circlePolygon(center vec.Vec2, radius float64) []vec.Vec2 {
	const n = 32
	pts := make([]vec.Vec2, n+1)
	for i := range n {
		phi := 2 * math.Pi * float64(i) / n
		pts[i] = vec.Vec2{X: center.X + radius*math.Cos(phi), Y: center.Y + radius*math.Sin(phi)}
	}
	pts[n] = pts[0]
	return pts
}
