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

// Package pdfout writes a scene model as a single-page vector PDF.
//
// One logical pixel becomes one PDF point. Text commands are not rendered;
// the readouts are meant for interactive views.
package pdfout

import (
	"errors"
	"fmt"
	stdcolor "image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/cncview/scene"
)

// ErrEmptyPage is returned for models without a positive page size.
var ErrEmptyPage = errors.New("pdfout: empty page")

// Renderer writes every model it is given to the same file.
// It implements [scene.Renderer].
type Renderer struct {
	Path string
}

// Render writes m to r.Path.
func (r *Renderer) Render(m *scene.Model) error {
	return Write(r.Path, m)
}

// Write creates a PDF file showing m.
func Write(fname string, m *scene.Model) error {
	if !(m.Width > 0) || !(m.Height > 0) {
		return fmt.Errorf("%w: %gx%g", ErrEmptyPage, m.Width, m.Height)
	}

	paper := &pdf.Rectangle{URx: m.Width, URy: m.Height}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(rgb(m.Background))
	page.Rectangle(0, 0, m.Width, m.Height)
	page.Fill()

	// PDF origin is bottom-left, the model uses top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, m.Height})
	page.SetLineJoin(graphics.LineJoinRound)

	for _, cmd := range m.Commands {
		switch cmd := cmd.(type) {
		case scene.Line:
			if setStroke(page, cmd.Stroke) {
				page.MoveTo(cmd.A.X, cmd.A.Y)
				page.LineTo(cmd.B.X, cmd.B.Y)
				page.Stroke()
			}
		case scene.Polyline:
			if len(cmd.Points) >= 2 && setStroke(page, cmd.Stroke) {
				page.MoveTo(cmd.Points[0].X, cmd.Points[0].Y)
				for _, p := range cmd.Points[1:] {
					page.LineTo(p.X, p.Y)
				}
				page.Stroke()
			}
		case scene.Circle:
			if cmd.Fill.A != 0 {
				page.SetFillColor(rgb(cmd.Fill))
				circle(page, cmd.Center, cmd.Radius)
				page.Fill()
			}
			if setStroke(page, cmd.Stroke) {
				circle(page, cmd.Center, cmd.Radius)
				page.Stroke()
			}
		}
	}

	return page.Close()
}

// pathBuilder is the part of the page API used for path construction.
type pathBuilder interface {
	MoveTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

// circle appends a closed circle made of four Bézier curves.
func circle(page pathBuilder, c vec.Vec2, r float64) {
	const k = 0.5522847498
	kr := k * r
	page.MoveTo(c.X+r, c.Y)
	page.CurveTo(c.X+r, c.Y+kr, c.X+kr, c.Y+r, c.X, c.Y+r)
	page.CurveTo(c.X-kr, c.Y+r, c.X-r, c.Y+kr, c.X-r, c.Y)
	page.CurveTo(c.X-r, c.Y-kr, c.X-kr, c.Y-r, c.X, c.Y-r)
	page.CurveTo(c.X+kr, c.Y-r, c.X+r, c.Y-kr, c.X+r, c.Y)
	page.ClosePath()
}

// setStroke applies st to the page. It reports false if nothing would be
// visible.
func setStroke(page *document.Page, st scene.Stroke) bool {
	if st.Color.A == 0 || !(st.Width > 0) {
		return false
	}
	page.SetStrokeColor(rgb(st.Color))
	page.SetLineWidth(st.Width)
	page.SetLineCap(st.Cap)
	if len(st.Dash) > 0 {
		page.SetLineDash(st.Dash, 0)
	} else {
		page.SetLineDash(nil, 0)
	}
	return true
}

func rgb(c stdcolor.RGBA) color.Color {
	return color.DeviceRGB{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}
