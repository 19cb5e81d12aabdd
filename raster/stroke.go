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
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// maxDashRepeats limits the number of dash pattern repetitions per
// polyline. Longer polylines are stroked solid.
const maxDashRepeats = 100000

// strokeOpen appends the outline polygons of the open polyline pts to
// r.outline. Every segment becomes a rectangle, every corner and every
// round cap a disc. All polygons are clockwise, so that the nonzero fill of
// their union paints overlapping parts only once.
func (r *Rasterizer) strokeOpen(pts []vec.Vec2) {
	d := r.Width / 2

	// drop repeated points
	clean := make([]vec.Vec2, 0, len(pts))
	for _, p := range pts {
		if len(clean) > 0 && p.Sub(clean[len(clean)-1]).Length() < zeroLengthThreshold {
			continue
		}
		clean = append(clean, p)
	}
	if len(clean) < 2 {
		// no orientation: only a round cap produces output
		if len(clean) == 1 && r.Cap == graphics.LineCapRound {
			r.addDisc(clean[0], d)
		}
		return
	}

	n := len(clean) - 1
	for i := range n {
		a, b := clean[i], clean[i+1]
		t := b.Sub(a)
		t = t.Mul(1 / t.Length())
		if r.Cap == graphics.LineCapSquare {
			if i == 0 {
				a = a.Sub(t.Mul(d))
			}
			if i == n-1 {
				b = b.Add(t.Mul(d))
			}
		}
		nv := vec.Vec2{X: -t.Y, Y: t.X}.Mul(d)
		r.outlineOffsets = append(r.outlineOffsets, len(r.outline))
		r.outline = append(r.outline, a.Add(nv), b.Add(nv), b.Sub(nv), a.Sub(nv))
	}

	for i := 1; i < n; i++ {
		r.addDisc(clean[i], d)
	}
	if r.Cap == graphics.LineCapRound {
		r.addDisc(clean[0], d)
		r.addDisc(clean[n], d)
	}
}

// addDisc appends a clockwise polygon approximating the circle of the given
// radius around center. The number of vertices keeps the deviation from the
// true circle below Flatness device pixels.
func (r *Rasterizer) addDisc(center vec.Vec2, radius float64) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length(),
	)

	// a chord spanning angle θ deviates by radius*(1-cos(θ/2)) from the arc
	steps := 8
	if devRadius > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step > 0 && !math.IsNaN(step) {
			steps = max(steps, int(math.Ceil(2*math.Pi/step)))
		}
	}

	r.outlineOffsets = append(r.outlineOffsets, len(r.outline))
	for i := range steps {
		phi := -2 * math.Pi * float64(i) / float64(steps)
		r.outline = append(r.outline, vec.Vec2{
			X: center.X + radius*math.Cos(phi),
			Y: center.Y + radius*math.Sin(phi),
		})
	}
}

// dashPieces splits pts into the "on" pieces of the dash pattern. Even
// indices of r.Dash are on-lengths, odd indices off-lengths. A pattern of
// odd length is repeated twice, as in PDF. Invalid patterns give the whole
// polyline.
func (r *Rasterizer) dashPieces(pts []vec.Vec2) [][]vec.Vec2 {
	dash := r.Dash
	total := 0.0
	for _, d := range dash {
		if d < 0 {
			return [][]vec.Vec2{pts}
		}
		total += d
	}
	if total <= 0 {
		return [][]vec.Vec2{pts}
	}
	length := 0.0
	for i := 1; i < len(pts); i++ {
		length += pts[i].Sub(pts[i-1]).Length()
	}
	if length/total > maxDashRepeats {
		return [][]vec.Vec2{pts}
	}

	r.pieces = r.pieces[:0]
	var cur []vec.Vec2
	idx := 0
	remaining := dash[0]
	on := true
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := b.Sub(a).Length()
		if segLen < zeroLengthThreshold {
			continue
		}
		dir := b.Sub(a).Mul(1 / segLen)

		pos := 0.0
		for pos < segLen {
			step := min(remaining, segLen-pos)
			if on {
				if len(cur) == 0 {
					cur = append(cur, a.Add(dir.Mul(pos)))
				}
				cur = append(cur, a.Add(dir.Mul(pos+step)))
			}
			pos += step
			remaining -= step
			if remaining <= 0 {
				if on && len(cur) >= 2 {
					r.pieces = append(r.pieces, cur)
				}
				cur = nil
				idx++
				remaining = dash[idx%len(dash)]
				on = idx%2 == 0
			}
		}
	}
	if on && len(cur) >= 2 {
		r.pieces = append(r.pieces, cur)
	}
	return r.pieces
}
