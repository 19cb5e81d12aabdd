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

package trail

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/cncview/coord"
)

func TestPushBounded(t *testing.T) {
	var tr Trail
	for i := range 3 * Capacity {
		tr = tr.Push(coord.Position{X: float64(i)})
		if tr.Len() > Capacity {
			t.Fatalf("after %d pushes: len = %d", i+1, tr.Len())
		}
	}
}

func TestPushKeepsLastInOrder(t *testing.T) {
	var tr Trail
	for i := range 150 {
		tr = tr.Push(coord.Position{X: float64(i), Y: float64(-i)})
	}

	pts := tr.Points()
	if len(pts) != 100 {
		t.Fatalf("len = %d, want 100", len(pts))
	}
	for i, p := range pts {
		want := float64(50 + i)
		if p.X != want || p.Y != -want {
			t.Errorf("pts[%d] = %v, want x=%v", i, p, want)
		}
	}
}

func TestPushIsPersistent(t *testing.T) {
	a := Trail{}.Push(coord.Position{X: 1})
	b := a.Push(coord.Position{X: 2})

	if a.Len() != 1 || b.Len() != 2 {
		t.Fatalf("lengths %d, %d", a.Len(), b.Len())
	}

	// Modifying a copy must not leak into the trail.
	pts := b.Points()
	pts[0].X = 99
	if p := b.Points()[0]; p.X != 1 {
		t.Errorf("Points returned shared storage: %v", p)
	}

	// Push on a full trail must not disturb the original.
	full := FromPoints(seq(Capacity))
	next := full.Push(coord.Position{X: 1000})
	if first := full.Points()[0]; first.X != 0 {
		t.Errorf("original trail changed: first = %v", first)
	}
	if first := next.Points()[0]; first.X != 1 {
		t.Errorf("new trail: first = %v, want x=1", first)
	}
}

func TestPushRejectsNonFinite(t *testing.T) {
	tr := Trail{}.Push(coord.Position{X: 1, Y: 1})
	for _, p := range []coord.Position{
		{X: math.NaN()},
		{Y: math.Inf(1)},
		{Z: math.Inf(-1)},
	} {
		tr = tr.Push(p)
	}
	if tr.Len() != 1 {
		t.Errorf("len = %d, want 1", tr.Len())
	}
}

func TestClear(t *testing.T) {
	tr := FromPoints(seq(10)).Clear()
	if tr.Len() != 0 {
		t.Errorf("len after Clear = %d", tr.Len())
	}
	if _, ok := tr.Last(); ok {
		t.Error("Last succeeded on an empty trail")
	}
}

func TestPolyline(t *testing.T) {
	v := coord.Viewport{Width: 400, Height: 300, Padding: 20}

	if got := (Trail{}).Polyline(1, v); got != nil {
		t.Errorf("empty trail: %v", got)
	}
	if got := FromPoints(seq(1)).Polyline(1, v); got != nil {
		t.Errorf("single point: %v", got)
	}

	tr := FromPoints([]coord.Position{{X: 0, Y: 0}, {X: 10, Y: 10}})
	got := tr.Polyline(2, v)
	want := []vec.Vec2{{X: 200, Y: 150}, {X: 220, Y: 130}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func seq(n int) []coord.Position {
	res := make([]coord.Position, n)
	for i := range res {
		res[i] = coord.Position{X: float64(i)}
	}
	return res
}
