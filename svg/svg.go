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

// Package svg writes a scene model as an SVG document.
//
// Each layer becomes a <g> element whose id is the layer name, so that
// the output can be styled or inspected in a browser.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/cncview/scene"
)

// Renderer writes every model to W.
// It implements [scene.Renderer].
type Renderer struct {
	W io.Writer
}

// Render writes m as a complete SVG document.
func (r *Renderer) Render(m *scene.Model) error {
	return Encode(r.W, m)
}

// Encode writes m as a complete SVG document to w.
func Encode(w io.Writer, m *scene.Model) error {
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		num(m.Width), num(m.Height), num(m.Width), num(m.Height))
	buf.WriteString("\n")
	fmt.Fprintf(buf, `<rect width="%s" height="%s" fill="%s"/>`,
		num(m.Width), num(m.Height), hex(m.Background))
	buf.WriteString("\n")

	open := false
	var cur scene.Layer
	for _, c := range m.Commands {
		l := scene.LayerOf(c)
		if !open || l != cur {
			if open {
				buf.WriteString("</g>\n")
			}
			fmt.Fprintf(buf, "<g id=%q>\n", l.String())
			open = true
			cur = l
		}
		writeCommand(buf, c)
	}
	if open {
		buf.WriteString("</g>\n")
	}
	buf.WriteString("</svg>\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func writeCommand(buf *bytes.Buffer, c scene.Command) {
	switch c := c.(type) {
	case scene.Line:
		if c.Stroke.IsZero() {
			return
		}
		fmt.Fprintf(buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`,
			num(c.A.X), num(c.A.Y), num(c.B.X), num(c.B.Y), strokeAttrs(c.Stroke))
	case scene.Polyline:
		if c.Stroke.IsZero() || len(c.Points) < 2 {
			return
		}
		fmt.Fprintf(buf, `  <polyline points="%s" fill="none" stroke-linejoin="round"%s/>`,
			points(c.Points), strokeAttrs(c.Stroke))
	case scene.Circle:
		fill := "none"
		if c.Fill.A != 0 {
			fill = hex(c.Fill)
		}
		stroke := ""
		if !c.Stroke.IsZero() {
			stroke = strokeAttrs(c.Stroke)
		}
		fmt.Fprintf(buf, `  <circle cx="%s" cy="%s" r="%s" fill="%s"%s/>`,
			num(c.Center.X), num(c.Center.Y), num(c.Radius), fill, stroke)
	case scene.Text:
		if c.Text == "" {
			return
		}
		fmt.Fprintf(buf, `  <text x="%s" y="%s" font-family="monospace" font-size="%s" fill="%s">`,
			num(c.Pos.X), num(c.Pos.Y), num(c.Size), hex(c.Color))
		xml.EscapeText(buf, []byte(c.Text))
		buf.WriteString("</text>")
	default:
		return
	}
	buf.WriteString("\n")
}

func strokeAttrs(s scene.Stroke) string {
	var b strings.Builder
	fmt.Fprintf(&b, ` stroke="%s" stroke-width="%s"`, hex(s.Color), num(s.Width))
	if s.Color.A != 0xff {
		fmt.Fprintf(&b, ` stroke-opacity="%s"`, num(float64(s.Color.A)/255))
	}
	switch s.Cap {
	case graphics.LineCapRound:
		b.WriteString(` stroke-linecap="round"`)
	case graphics.LineCapSquare:
		b.WriteString(` stroke-linecap="square"`)
	}
	if len(s.Dash) > 0 {
		parts := make([]string, len(s.Dash))
		for i, d := range s.Dash {
			parts[i] = num(d)
		}
		fmt.Fprintf(&b, ` stroke-dasharray="%s"`, strings.Join(parts, " "))
	}
	return b.String()
}

func points(pts []vec.Vec2) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

// num formats a coordinate with at most two decimals.
func num(x float64) string {
	s := strconv.FormatFloat(x, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
