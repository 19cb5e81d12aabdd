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

// Package testcases holds fixture views shared by the backend tests, the
// benchmarks and the reference generators.
package testcases

import (
	"math"

	"seehuhn.de/go/cncview/coord"
	"seehuhn.de/go/cncview/scene"
	"seehuhn.de/go/cncview/toolpath"
	"seehuhn.de/go/cncview/trail"
)

// Case is one fixture view.
type Case struct {
	Name     string // lowercase a-z, 0-9 and _ only
	WorkArea coord.WorkArea
	Viewport coord.Viewport
	Position coord.Position
	Trail    []coord.Position // pushed in order, subject to trail capacity
	Segments []toolpath.Segment
	Flags    scene.Flags
	Unit     string // empty means mm
}

// Input returns the compose input of the case.
func (c *Case) Input() *scene.Input {
	return &scene.Input{
		Position: c.Position,
		WorkArea: c.WorkArea,
		Viewport: c.Viewport,
		Trail:    trail.FromPoints(c.Trail),
		Segments: c.Segments,
		Flags:    c.Flags,
		Unit:     c.Unit,
	}
}

// Model composes the frame of the case.
func (c *Case) Model() *scene.Model {
	return scene.Compose(c.Input())
}

// Job returns the tool path of the case as a job.
func (c *Case) Job() *toolpath.Job {
	return &toolpath.Job{Name: c.Name, Segments: c.Segments}
}

// IsFinite reports whether all coordinates of the tool path are finite.
// Only such jobs can be written as JSON.
func (c *Case) IsFinite() bool {
	for _, s := range c.Segments {
		if !s.IsFinite() {
			return false
		}
	}
	return true
}

// Each calls yield for every case, in a fixed order.
func Each(yield func(category string, c *Case) bool) {
	for _, category := range Categories {
		for i := range All[category] {
			if !yield(category, &All[category][i]) {
				return
			}
		}
	}
}

// standard viewport and work area used by most cases
var (
	viewport = coord.Viewport{Width: 400, Height: 300, Padding: 20}
	workArea = coord.WorkArea{X: 300, Y: 200, Z: 100}

	nan = math.NaN()
	inf = math.Inf(1)
)

func pos(x, y float64) coord.Position {
	return coord.Position{X: x, Y: y}
}

func seg(t toolpath.MoveType, x0, y0, x1, y1 float64) toolpath.Segment {
	return toolpath.Segment{Start: pos(x0, y0), End: pos(x1, y1), Type: t}
}

// chain joins the points by segments of the given type.
func chain(t toolpath.MoveType, feed float64, pts ...coord.Position) []toolpath.Segment {
	var res []toolpath.Segment
	for i := 1; i < len(pts); i++ {
		res = append(res, toolpath.Segment{Start: pts[i-1], End: pts[i], Type: t, FeedRate: feed})
	}
	return res
}

// pocket clears a rectangle centred on (cx, cy) by concentric passes,
// starting at the outside. Each pass is entered by a feed move from the
// previous one; the tool arrives and leaves by rapid moves.
func pocket(cx, cy, w, h, step, feed float64) []toolpath.Segment {
	var pts []coord.Position
	for d := 0.0; 2*d < min(w, h); d += step {
		x0, y0 := cx-w/2+d, cy-h/2+d
		x1, y1 := cx+w/2-d, cy+h/2-d
		pts = append(pts, pos(x0, y0), pos(x1, y0), pos(x1, y1), pos(x0, y1), pos(x0, y0))
	}
	if len(pts) == 0 {
		return nil
	}
	res := []toolpath.Segment{{Start: coord.Position{}, End: pts[0], Type: toolpath.Rapid}}
	res = append(res, chain(toolpath.Feed, feed, pts...)...)
	res = append(res, toolpath.Segment{Start: pts[len(pts)-1], End: coord.Position{}, Type: toolpath.Rapid})
	return res
}

// circle approximates a full circle by n arc chords, starting and ending
// at angle 0.
func circle(cx, cy, r float64, n int, feed float64) []toolpath.Segment {
	pts := make([]coord.Position, n+1)
	for i := range pts {
		phi := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = pos(cx+r*math.Cos(phi), cy+r*math.Sin(phi))
	}
	pts[n] = pts[0]
	return chain(toolpath.Arc, feed, pts...)
}

// zigzag covers a rectangle by horizontal feed rows, linked by short rapid
// moves.
func zigzag(x0, y0, x1, y1, step, feed float64) []toolpath.Segment {
	var res []toolpath.Segment
	left := true
	for y := y0; y <= y1; y += step {
		a, b := x0, x1
		if !left {
			a, b = x1, x0
		}
		if len(res) > 0 {
			prev := res[len(res)-1].End
			res = append(res, toolpath.Segment{Start: prev, End: pos(a, y), Type: toolpath.Rapid})
		}
		res = append(res, toolpath.Segment{Start: pos(a, y), End: pos(b, y), Type: toolpath.Feed, FeedRate: feed})
		left = !left
	}
	return res
}

// spiral returns n points on an Archimedean spiral around the origin.
func spiral(n int, turns, r float64) []coord.Position {
	res := make([]coord.Position, n)
	for i := range res {
		t := float64(i) / float64(max(n-1, 1))
		phi := 2 * math.Pi * turns * t
		res[i] = pos(r*t*math.Cos(phi), r*t*math.Sin(phi))
	}
	return res
}
