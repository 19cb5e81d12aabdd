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

// Package trail keeps a bounded history of recently visited positions.
package trail

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/cncview/coord"
)

// Capacity is the maximum number of positions kept in a Trail.
const Capacity = 100

// Trail is an immutable, insertion-ordered sequence of at most [Capacity]
// positions. The zero value is an empty trail.
//
// Operations never modify the receiver; they return a new Trail. This makes
// it safe to keep old trails around, for example as part of a previous
// frame's state.
type Trail struct {
	pts []coord.Position
}

// Push returns the trail with p appended. If the trail is full, the oldest
// position is dropped. Non-finite positions are ignored and the receiver is
// returned unchanged.
func (t Trail) Push(p coord.Position) Trail {
	if !p.IsFinite() {
		return t
	}

	n := len(t.pts)
	var pts []coord.Position
	if n < Capacity {
		pts = make([]coord.Position, n+1)
		copy(pts, t.pts)
	} else {
		pts = make([]coord.Position, Capacity)
		copy(pts, t.pts[n-Capacity+1:])
	}
	pts[len(pts)-1] = p
	return Trail{pts: pts}
}

// Clear returns the empty trail.
func (t Trail) Clear() Trail {
	return Trail{}
}

// Len returns the number of positions in the trail.
func (t Trail) Len() int {
	return len(t.pts)
}

// Points returns a copy of the positions, oldest first.
func (t Trail) Points() []coord.Position {
	if len(t.pts) == 0 {
		return nil
	}
	res := make([]coord.Position, len(t.pts))
	copy(res, t.pts)
	return res
}

// Last returns the most recent position.
func (t Trail) Last() (coord.Position, bool) {
	if len(t.pts) == 0 {
		return coord.Position{}, false
	}
	return t.pts[len(t.pts)-1], true
}

// Polyline maps the trail to surface pixels, oldest point first.
// A trail with fewer than two points has no polyline and the result is nil.
func (t Trail) Polyline(scale float64, v coord.Viewport) []vec.Vec2 {
	if len(t.pts) < 2 {
		return nil
	}
	res := make([]vec.Vec2, len(t.pts))
	for i, p := range t.pts {
		res[i] = coord.ToSurface(p.XY(), scale, v)
	}
	return res
}

// FromPoints builds a trail from a list of positions, as if they had been
// pushed in order.
func FromPoints(pts []coord.Position) Trail {
	var t Trail
	for _, p := range pts {
		t = t.Push(p)
	}
	return t
}
