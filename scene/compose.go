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

package scene

import (
	"image/color"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/cncview/coord"
	"seehuhn.de/go/cncview/grid"
	"seehuhn.de/go/cncview/toolpath"
	"seehuhn.de/go/cncview/trail"
)

// Flags are the caller-controlled visibility toggles.
type Flags struct {
	ShowGrid  bool
	ShowTrail bool
	ShowRapid bool
	ShowFeed  bool
}

// DefaultFlags shows everything.
var DefaultFlags = Flags{ShowGrid: true, ShowTrail: true, ShowRapid: true, ShowFeed: true}

// Visibility returns the move type toggles.
func (f Flags) Visibility() toolpath.Visibility {
	return toolpath.Visibility{ShowRapid: f.ShowRapid, ShowFeed: f.ShowFeed}
}

// GridSpacing holds the world-space grid intervals.
// Zero values select [grid.MinorSpacing] and [grid.MajorSpacing].
type GridSpacing struct {
	Minor float64
	Major float64
}

// Theme holds the colours of the fixed parts of the view.
type Theme struct {
	Background color.RGBA
	MinorGrid  color.RGBA
	MajorGrid  color.RGBA
	Boundary   color.RGBA
	Axes       color.RGBA
	Origin     color.RGBA
	Trail      color.RGBA
	Position   color.RGBA
	Outline    color.RGBA
	Label      color.RGBA
	JobStart   color.RGBA
	JobEnd     color.RGBA
}

// DefaultTheme is a dark theme.
var DefaultTheme = Theme{
	Background: color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff},
	MinorGrid:  color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff},
	MajorGrid:  color.RGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xff},
	Boundary:   color.RGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff},
	Axes:       color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff},
	Origin:     color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff},
	Trail:      color.RGBA{R: 0xa7, G: 0x8b, B: 0xfa, A: 0xff},
	Position:   color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff},
	Outline:    color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	Label:      color.RGBA{R: 0xf3, G: 0xf4, B: 0xf6, A: 0xff},
	JobStart:   color.RGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff},
	JobEnd:     color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff},
}

// Sizes of the fixed decorations, in surface pixels.
const (
	minorGridWidth  = 0.5
	majorGridWidth  = 1
	boundaryWidth   = 1.5
	axisWidth       = 1
	trailWidth      = 1.5
	originRadius    = 3
	jobMarkerRadius = 4
	markerRadius    = 5
	crosshairLength = 10
	labelSize       = 11
	labelOffset     = 8
)

// Input is everything a frame depends on.
type Input struct {
	Position coord.Position
	WorkArea coord.WorkArea
	Viewport coord.Viewport
	Trail    trail.Trail
	Segments []toolpath.Segment
	Flags    Flags
	Grid     GridSpacing
	Unit     string
	Theme    *Theme // nil selects DefaultTheme
}

// Compose builds the draw commands for one frame.
//
// The result depends only on the input. Commands appear in layer order:
// minor grid, major grid, boundary, axes, origin, trail, tool path, job
// markers, position marker, labels. Grid lines and the boundary are only
// present if ShowGrid is set, the trail only if ShowTrail is set.
// A non-finite position suppresses the marker and its label.
func Compose(in *Input) *Model {
	th := in.Theme
	if th == nil {
		th = &DefaultTheme
	}
	v := in.Viewport
	wa := in.WorkArea

	scale, ok := coord.Fit(v, wa)
	m := &Model{
		Width:      v.Width,
		Height:     v.Height,
		Background: th.Background,
		Scale:      scale,
		Degraded:   !ok,
	}
	toSurface := func(p vec.Vec2) vec.Vec2 {
		return coord.ToSurface(p, scale, v)
	}

	if in.Flags.ShowGrid {
		minor, major := in.Grid.Minor, in.Grid.Major
		if minor <= 0 {
			minor = grid.MinorSpacing
		}
		if major <= 0 {
			major = grid.MajorSpacing
		}
		for _, l := range grid.MinorLines(wa, minor) {
			m.add(Line{
				A:      toSurface(l.A),
				B:      toSurface(l.B),
				Stroke: Stroke{Color: th.MinorGrid, Width: minorGridWidth},
				Layer:  LayerMinorGrid,
			})
		}
		for _, l := range grid.MajorLines(wa, major) {
			m.add(Line{
				A:      toSurface(l.A),
				B:      toSurface(l.B),
				Stroke: Stroke{Color: th.MajorGrid, Width: majorGridWidth},
				Layer:  LayerMajorGrid,
			})
		}
		if wa.IsValid() {
			corners := grid.Corners(grid.Boundary(wa))
			pts := make([]vec.Vec2, 0, 5)
			for _, c := range corners {
				pts = append(pts, toSurface(c))
			}
			pts = append(pts, pts[0])
			m.add(Polyline{
				Points: pts,
				Stroke: Stroke{Color: th.Boundary, Width: boundaryWidth, Cap: graphics.LineCapSquare},
				Layer:  LayerBoundary,
			})
		}
	}

	if xAxis, yAxis, ok := grid.Axes(wa); ok {
		for _, l := range []grid.Line{xAxis, yAxis} {
			m.add(Line{
				A:      toSurface(l.A),
				B:      toSurface(l.B),
				Stroke: Stroke{Color: th.Axes, Width: axisWidth},
				Layer:  LayerAxes,
			})
		}
	}
	m.add(Circle{
		Center: toSurface(vec.Vec2{}),
		Radius: originRadius,
		Fill:   th.Origin,
		Layer:  LayerOrigin,
	})

	if in.Flags.ShowTrail {
		if pts := in.Trail.Polyline(scale, v); pts != nil {
			m.add(Polyline{
				Points: pts,
				Stroke: Stroke{Color: th.Trail, Width: trailWidth, Cap: graphics.LineCapRound},
				Layer:  LayerTrail,
			})
		}
	}

	for _, s := range toolpath.Visible(in.Segments, in.Flags.Visibility()) {
		if !s.IsFinite() {
			continue
		}
		st := toolpath.StyleFor(s.Type)
		m.add(Line{
			A:      toSurface(s.Start.XY()),
			B:      toSurface(s.End.XY()),
			Stroke: Stroke{Color: st.Color, Width: st.Width, Dash: st.Dash, Cap: st.Cap},
			Layer:  LayerPath,
		})
	}

	if mk, ok := toolpath.JobMarkers(in.Segments); ok {
		if mk.Start.IsFinite() {
			m.add(Circle{
				Center: toSurface(mk.Start.XY()),
				Radius: jobMarkerRadius,
				Fill:   th.JobStart,
				Layer:  LayerJobMarkers,
			})
		}
		if mk.End.IsFinite() {
			m.add(Circle{
				Center: toSurface(mk.End.XY()),
				Radius: jobMarkerRadius,
				Fill:   th.JobEnd,
				Layer:  LayerJobMarkers,
			})
		}
	}

	pos := in.Position
	var c vec.Vec2
	if pos.IsFinite() {
		c = toSurface(pos.XY())
		hair := Stroke{Color: th.Position, Width: 1}
		m.add(Line{
			A:      vec.Vec2{X: c.X - crosshairLength, Y: c.Y},
			B:      vec.Vec2{X: c.X + crosshairLength, Y: c.Y},
			Stroke: hair,
			Layer:  LayerPosition,
		})
		m.add(Line{
			A:      vec.Vec2{X: c.X, Y: c.Y - crosshairLength},
			B:      vec.Vec2{X: c.X, Y: c.Y + crosshairLength},
			Stroke: hair,
			Layer:  LayerPosition,
		})
		m.add(Circle{
			Center: c,
			Radius: markerRadius,
			Fill:   th.Position,
			Stroke: Stroke{Color: th.Outline, Width: 1},
			Layer:  LayerPosition,
		})
	}

	m.Readouts = FormatReadouts(pos, scale, in.Unit)
	if pos.IsFinite() {
		m.add(Text{
			Pos:   vec.Vec2{X: c.X + labelOffset, Y: c.Y - labelOffset},
			Text:  positionLabel(pos),
			Color: th.Label,
			Size:  labelSize,
			Layer: LayerLabels,
		})
	}
	m.add(Text{
		Pos:   vec.Vec2{X: labelOffset / 2, Y: v.Height - labelOffset/2},
		Text:  m.Readouts.Scale,
		Color: th.Label,
		Size:  labelSize,
		Layer: LayerLabels,
	})

	return m
}

func (m *Model) add(c Command) {
	m.Commands = append(m.Commands, c)
}
