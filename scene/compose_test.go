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
	"math"
	"reflect"
	"strings"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/cncview/coord"
	"seehuhn.de/go/cncview/toolpath"
	"seehuhn.de/go/cncview/trail"
)

func p(x, y float64) coord.Position {
	return coord.Position{X: x, Y: y}
}

func testInput() *Input {
	return &Input{
		Position: p(25, -40),
		WorkArea: coord.WorkArea{X: 300, Y: 200, Z: 100},
		Viewport: coord.Viewport{Width: 400, Height: 300, Padding: 20},
		Trail:    trail.FromPoints([]coord.Position{p(0, 0), p(10, -10), p(25, -40)}),
		Segments: []toolpath.Segment{
			{Start: p(-100, 80), End: p(-50, 50), Type: toolpath.Rapid},
			{Start: p(-50, 50), End: p(50, 50), Type: toolpath.Feed, FeedRate: 500},
			{Start: p(50, 50), End: p(50, -50), Type: toolpath.Arc},
			{Start: p(50, -50), End: p(100, -80), Type: toolpath.Rapid},
		},
		Flags: DefaultFlags,
	}
}

func TestComposeLayerOrder(t *testing.T) {
	m := Compose(testInput())

	prev := LayerMinorGrid
	for i, c := range m.Commands {
		l := LayerOf(c)
		if l < prev {
			t.Fatalf("command %d on layer %v after layer %v", i, l, prev)
		}
		prev = l
	}

	for l := LayerMinorGrid; l <= LayerLabels; l++ {
		if m.Count(l) == 0 {
			t.Errorf("no commands on layer %v", l)
		}
	}
}

func TestComposeCounts(t *testing.T) {
	m := Compose(testInput())

	checks := []struct {
		layer Layer
		want  int
	}{
		{LayerMinorGrid, 31 + 21},
		{LayerMajorGrid, 6 + 4},
		{LayerBoundary, 1},
		{LayerAxes, 2},
		{LayerOrigin, 1},
		{LayerTrail, 1},
		{LayerPath, 4},
		{LayerJobMarkers, 2},
		{LayerPosition, 3},
		{LayerLabels, 2},
	}
	for _, c := range checks {
		if got := m.Count(c.layer); got != c.want {
			t.Errorf("layer %v: %d commands, want %d", c.layer, got, c.want)
		}
	}
}

func TestComposeGridOff(t *testing.T) {
	in := testInput()
	in.Flags.ShowGrid = false
	m := Compose(in)

	for _, l := range []Layer{LayerMinorGrid, LayerMajorGrid, LayerBoundary} {
		if n := m.Count(l); n != 0 {
			t.Errorf("layer %v has %d commands with the grid off", l, n)
		}
	}
	if m.Count(LayerAxes) != 2 {
		t.Error("axes must be drawn independently of the grid")
	}
}

func TestComposeTrail(t *testing.T) {
	in := testInput()
	m := Compose(in)

	var pl Polyline
	for _, c := range m.Commands {
		if c, ok := c.(Polyline); ok && c.Layer == LayerTrail {
			pl = c
		}
	}
	want := in.Trail.Polyline(m.Scale, in.Viewport)
	if !reflect.DeepEqual(pl.Points, want) {
		t.Errorf("trail polyline = %v, want %v", pl.Points, want)
	}

	in.Flags.ShowTrail = false
	if n := Compose(in).Count(LayerTrail); n != 0 {
		t.Errorf("trail drawn while hidden")
	}

	in.Flags.ShowTrail = true
	in.Trail = trail.FromPoints([]coord.Position{p(1, 1)})
	if n := Compose(in).Count(LayerTrail); n != 0 {
		t.Errorf("single-point trail produced %d commands", n)
	}
}

func TestComposeFilteredPathKeepsJobMarkers(t *testing.T) {
	in := testInput()
	in.Flags.ShowRapid = false
	m := Compose(in)

	if n := m.Count(LayerPath); n != 2 {
		t.Errorf("%d path segments visible, want 2", n)
	}

	var centers []vec.Vec2
	for _, c := range m.Commands {
		if c, ok := c.(Circle); ok && c.Layer == LayerJobMarkers {
			centers = append(centers, c.Center)
		}
	}
	wantStart := coord.ToSurface(in.Segments[0].Start.XY(), m.Scale, in.Viewport)
	wantEnd := coord.ToSurface(in.Segments[3].End.XY(), m.Scale, in.Viewport)
	if len(centers) != 2 || centers[0] != wantStart || centers[1] != wantEnd {
		t.Errorf("job markers at %v, want %v and %v", centers, wantStart, wantEnd)
	}
}

func TestComposePathStyles(t *testing.T) {
	m := Compose(testInput())
	var lines []Line
	for _, c := range m.Commands {
		if c, ok := c.(Line); ok && c.Layer == LayerPath {
			lines = append(lines, c)
		}
	}
	if len(lines) != 4 {
		t.Fatalf("got %d path lines", len(lines))
	}
	if lines[0].Stroke.Dash == nil || lines[1].Stroke.Dash != nil {
		t.Error("rapid must be dashed and feed solid")
	}
	if lines[2].Stroke.Color != toolpath.ArcColor {
		t.Errorf("arc colour = %v", lines[2].Stroke.Color)
	}
}

func TestComposeNonFinitePosition(t *testing.T) {
	in := testInput()
	in.Position = coord.Position{X: math.NaN(), Y: 1}
	m := Compose(in)

	if n := m.Count(LayerPosition); n != 0 {
		t.Errorf("%d position commands for a NaN position", n)
	}
	if n := m.Count(LayerLabels); n != 1 {
		t.Errorf("%d labels, want only the scale label", n)
	}
	if m.Readouts.X != "X: --- mm" {
		t.Errorf("readout = %q", m.Readouts.X)
	}
	for _, c := range m.Commands {
		if !finite(c) {
			t.Errorf("non-finite command %#v", c)
		}
	}
}

func TestComposeDegenerateWorkArea(t *testing.T) {
	in := testInput()
	in.WorkArea = coord.WorkArea{X: 0, Y: 200}
	m := Compose(in)

	if !m.Degraded || m.Scale != coord.FallbackScale {
		t.Errorf("degraded=%v scale=%v", m.Degraded, m.Scale)
	}
	for _, l := range []Layer{LayerMinorGrid, LayerMajorGrid, LayerBoundary, LayerAxes} {
		if n := m.Count(l); n != 0 {
			t.Errorf("layer %v has %d commands", l, n)
		}
	}
	if m.Count(LayerOrigin) != 1 || m.Count(LayerPosition) != 3 {
		t.Error("origin and position must still be drawn")
	}
}

func TestComposeMalformedSegments(t *testing.T) {
	in := testInput()
	in.Segments = []toolpath.Segment{
		{Start: p(0, 0), End: p(10, 10), Type: toolpath.MoveType(99)},
		{Start: p(10, 10), End: p(math.Inf(1), 0), Type: toolpath.Feed},
	}
	m := Compose(in)

	if n := m.Count(LayerPath); n != 1 {
		t.Fatalf("%d path commands, want 1", n)
	}
	for _, c := range m.Commands {
		if l, ok := c.(Line); ok && l.Layer == LayerPath {
			if l.Stroke.Color != toolpath.FeedColor {
				t.Errorf("unknown move type drawn in %v", l.Stroke.Color)
			}
		}
	}
	// the start marker is still drawn, the end marker is not
	if n := m.Count(LayerJobMarkers); n != 1 {
		t.Errorf("%d job markers, want 1", n)
	}
}

func TestComposeDeterministic(t *testing.T) {
	a := Compose(testInput())
	b := Compose(testInput())
	if !reflect.DeepEqual(a, b) {
		t.Error("Compose is not deterministic")
	}
}

func TestComposePositionMarker(t *testing.T) {
	in := testInput()
	m := Compose(in)
	c := coord.ToSurface(in.Position.XY(), m.Scale, in.Viewport)

	for _, cmd := range m.Commands {
		switch cmd := cmd.(type) {
		case Circle:
			if cmd.Layer == LayerPosition && cmd.Center != c {
				t.Errorf("marker at %v, want %v", cmd.Center, c)
			}
		case Text:
			if cmd.Layer == LayerLabels && strings.HasPrefix(cmd.Text, "(") && cmd.Text != "(25.0, -40.0)" {
				t.Errorf("label = %q", cmd.Text)
			}
		}
	}
}

func TestFormatReadouts(t *testing.T) {
	r := FormatReadouts(coord.Position{X: 12.3456, Y: -0.001, Z: 5}, 1.2, "")
	want := Readouts{
		X:     "X: 12.35 mm",
		Y:     "Y: 0.00 mm",
		Z:     "Z: 5.00 mm",
		Scale: "Scale: 120%",
	}
	if r != want {
		t.Errorf("got %+v, want %+v", r, want)
	}

	r = FormatReadouts(coord.Position{X: -1.5}, 0.256, "in")
	if r.X != "X: -1.50 in" || r.Scale != "Scale: 26%" {
		t.Errorf("got %+v", r)
	}
	if len(r.Lines()) != 4 {
		t.Errorf("Lines() = %v", r.Lines())
	}
}

func TestDashLine(t *testing.T) {
	a := vec.Vec2{X: 0, Y: 0}
	b := vec.Vec2{X: 22, Y: 0}

	got := DashLine(a, b, []float64{5, 5})
	want := [][2]vec.Vec2{
		{{X: 0}, {X: 5}},
		{{X: 10}, {X: 15}},
		{{X: 20}, {X: 22}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// odd-length patterns alternate on the second repetition
	got = DashLine(a, vec.Vec2{X: 9}, []float64{3})
	want = [][2]vec.Vec2{{{X: 0}, {X: 3}}, {{X: 6}, {X: 9}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("odd pattern: got %v, want %v", got, want)
	}

	if got := DashLine(a, b, nil); len(got) != 1 {
		t.Errorf("solid line split into %d pieces", len(got))
	}
}

func TestClipLine(t *testing.T) {
	box := rect.Rect{URx: 10, URy: 10}
	v := func(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }
	near := func(a, b vec.Vec2) bool {
		return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
	}

	cases := []struct {
		a, b   vec.Vec2
		ok     bool
		ca, cb vec.Vec2
	}{
		{v(2, 3), v(7, 8), true, v(2, 3), v(7, 8)},
		{v(-5, -5), v(15, 15), true, v(0, 0), v(10, 10)},
		{v(-1e9, 5), v(5, 5), true, v(0, 5), v(5, 5)},
		{v(5, 1e12), v(5, -1e12), true, v(5, 10), v(5, 0)},
		{v(20, 20), v(30, 0), false, vec.Vec2{}, vec.Vec2{}},
		{v(-1, -1), v(11, -1), false, vec.Vec2{}, vec.Vec2{}},
		{v(-1e9, 25), v(5, 25), false, vec.Vec2{}, vec.Vec2{}},
		{v(math.NaN(), 5), v(5, 5), false, vec.Vec2{}, vec.Vec2{}},
		{v(math.Inf(-1), 5), v(5, 5), false, vec.Vec2{}, vec.Vec2{}},
	}
	for i, c := range cases {
		ca, cb, ok := ClipLine(c.a, c.b, box)
		if ok != c.ok {
			t.Errorf("%d: ok = %t, want %t", i, ok, c.ok)
			continue
		}
		if ok && (!near(ca, c.ca) || !near(cb, c.cb)) {
			t.Errorf("%d: got %v-%v, want %v-%v", i, ca, cb, c.ca, c.cb)
		}
	}
}

func finite(c Command) bool {
	ok := func(vs ...vec.Vec2) bool {
		for _, v := range vs {
			if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
				return false
			}
		}
		return true
	}
	switch c := c.(type) {
	case Line:
		return ok(c.A, c.B)
	case Polyline:
		return ok(c.Points...)
	case Circle:
		return ok(c.Center)
	case Text:
		return ok(c.Pos)
	}
	return false
}
