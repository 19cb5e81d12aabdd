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

// Package grid generates the background geometry of the working-area view:
// grid lines, the work-area boundary and the coordinate axes.
//
// All geometry is in world space. Conversion to pixels happens at render
// time, so the grid density does not depend on the zoom level.
package grid

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/cncview/coord"
)

// Default grid spacings in world units.
const (
	MinorSpacing = 10.0
	MajorSpacing = 50.0
)

// maxLinesPerAxis bounds the output for absurd spacing/work-area ratios.
const maxLinesPerAxis = 10000

// Line is a straight line segment in world coordinates.
type Line struct {
	A, B vec.Vec2
}

// MinorLines returns grid lines at every multiple of spacing which falls
// inside the work area, both vertical and horizontal. Each line spans the
// full extent of the work area. Vertical lines come first, ordered by x,
// followed by horizontal lines ordered by y.
func MinorLines(wa coord.WorkArea, spacing float64) []Line {
	return lines(wa, spacing, false)
}

// MajorLines is like [MinorLines] but omits the lines at world coordinate
// zero. These coincide with the coordinate axes, which are drawn
// separately.
func MajorLines(wa coord.WorkArea, spacing float64) []Line {
	return lines(wa, spacing, true)
}

func lines(wa coord.WorkArea, spacing float64, skipZero bool) []Line {
	if !wa.IsValid() || !(spacing > 0) || math.IsInf(spacing, 0) {
		return nil
	}
	hx, hy := wa.X/2, wa.Y/2

	// Multiples k*spacing with |k*spacing| <= half extent.
	kx := int(math.Floor(hx / spacing))
	ky := int(math.Floor(hy / spacing))
	if kx > maxLinesPerAxis || ky > maxLinesPerAxis {
		return nil
	}

	res := make([]Line, 0, 2*(kx+ky+1))
	for k := -kx; k <= kx; k++ {
		if skipZero && k == 0 {
			continue
		}
		x := float64(k) * spacing
		res = append(res, Line{A: vec.Vec2{X: x, Y: -hy}, B: vec.Vec2{X: x, Y: hy}})
	}
	for k := -ky; k <= ky; k++ {
		if skipZero && k == 0 {
			continue
		}
		y := float64(k) * spacing
		res = append(res, Line{A: vec.Vec2{X: -hx, Y: y}, B: vec.Vec2{X: hx, Y: y}})
	}
	return res
}

// Boundary returns the work-area rectangle centred on the world origin.
// For a degenerate work area the result is the zero rectangle.
func Boundary(wa coord.WorkArea) rect.Rect {
	if !wa.IsValid() {
		return rect.Rect{}
	}
	return rect.Rect{
		LLx: -wa.X / 2,
		LLy: -wa.Y / 2,
		URx: wa.X / 2,
		URy: wa.Y / 2,
	}
}

// Corners returns the four corners of r, counter-clockwise from the
// lower-left corner.
func Corners(r rect.Rect) [4]vec.Vec2 {
	return [4]vec.Vec2{
		{X: r.LLx, Y: r.LLy},
		{X: r.URx, Y: r.LLy},
		{X: r.URx, Y: r.URy},
		{X: r.LLx, Y: r.URy},
	}
}

// Axes returns the x-axis and the y-axis, each spanning the work area.
func Axes(wa coord.WorkArea) (xAxis, yAxis Line, ok bool) {
	if !wa.IsValid() {
		return Line{}, Line{}, false
	}
	hx, hy := wa.X/2, wa.Y/2
	xAxis = Line{A: vec.Vec2{X: -hx}, B: vec.Vec2{X: hx}}
	yAxis = Line{A: vec.Vec2{Y: -hy}, B: vec.Vec2{Y: hy}}
	return xAxis, yAxis, true
}
