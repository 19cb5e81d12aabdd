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

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// maxDashRepeats limits the number of pattern repetitions along one line.
// Longer lines are drawn solid.
const maxDashRepeats = 100000

// DashLine splits the line from a to b into the "on" pieces of a dash
// pattern, for backends without native dash support. Even indices of dash
// are on-lengths, odd indices off-lengths; a pattern of odd length is
// repeated twice, as in PDF. An empty or all-zero pattern gives the whole
// line.
func DashLine(a, b vec.Vec2, dash []float64) [][2]vec.Vec2 {
	total := 0.0
	for _, d := range dash {
		if d < 0 {
			return [][2]vec.Vec2{{a, b}}
		}
		total += d
	}
	if total <= 0 {
		return [][2]vec.Vec2{{a, b}}
	}

	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		return nil
	}
	if length/total > maxDashRepeats {
		return [][2]vec.Vec2{{a, b}}
	}
	dir := d.Mul(1 / length)

	var res [][2]vec.Vec2
	pos := 0.0
	for i := 0; pos < length; i++ {
		step := dash[i%len(dash)]
		on := i%2 == 0 // also right for odd-length patterns
		end := min(pos+step, length)
		if on && end > pos {
			res = append(res, [2]vec.Vec2{a.Add(dir.Mul(pos)), a.Add(dir.Mul(end))})
		}
		pos = end
	}
	return res
}

// ClipLine clips the line from a to b to the rectangle box, using the
// Liang-Barsky algorithm. The result is false if no part of the line lies
// inside box, or if an end point is not finite.
func ClipLine(a, b vec.Vec2, box rect.Rect) (vec.Vec2, vec.Vec2, bool) {
	for _, v := range [4]float64{a.X, a.Y, b.X, b.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return a, b, false
		}
	}

	dx := b.X - a.X
	dy := b.Y - a.Y
	t0, t1 := 0.0, 1.0
	for _, e := range [4]struct{ p, q float64 }{
		{-dx, a.X - box.LLx},
		{dx, box.URx - a.X},
		{-dy, a.Y - box.LLy},
		{dy, box.URy - a.Y},
	} {
		if e.p == 0 {
			if e.q < 0 {
				return a, b, false // parallel to this edge and outside
			}
			continue
		}
		t := e.q / e.p
		if e.p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = min(t1, t)
		}
	}

	ca := vec.Vec2{X: a.X + t0*dx, Y: a.Y + t0*dy}
	cb := vec.Vec2{X: a.X + t1*dx, Y: a.Y + t1*dy}
	return ca, cb, true
}
