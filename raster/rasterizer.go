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

// Package raster draws a scene model into an RGBA image, using an
// anti-aliasing scanline rasterizer with exact area coverage.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// EmitFunc receives the coverage of one pixel row, starting at pixel xMin.
// The coverage slice is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// Rasterizer converts polygons, paths and polylines into per-pixel coverage
// values between 0 and 1. All shapes are filled with the nonzero winding
// rule. Create one instance and reuse it: internal buffers grow as needed
// but never shrink.
type Rasterizer struct {
	// CTM maps user space to device space. It must be non-singular.
	CTM matrix.Matrix

	// Clip is the output region in device pixels, with integer coordinates.
	Clip rect.Rect

	// Flatness is the curve flattening tolerance in device pixels.
	Flatness float64

	// Width is the stroke width in user-space units.
	Width float64

	// Cap is the line cap style for the ends of stroked polylines.
	// Corners are always joined with round joins.
	Cap graphics.LineCapStyle

	// Dash is the dash pattern in user-space units, nil for solid lines.
	Dash []float64

	cover     []float32
	area      []float32
	edges     []edge
	activeIdx []int
	crossings []float64

	outline        []vec.Vec2 // vertices of all outline polygons
	outlineOffsets []int      // start of each polygon in outline
	pieces         [][]vec.Vec2

	bboxEmpty        bool
	devXMin, devXMax float64
	devYMin, devYMax float64
}

// NewRasterizer returns a rasterizer for the given clip rectangle, with the
// identity CTM and a 1 unit wide solid stroke.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is kept.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Dash = nil
}

// FillPolygon fills the closed polygon through pts.
func (r *Rasterizer) FillPolygon(pts []vec.Vec2, emit EmitFunc) {
	r.beginEdges()
	r.addPolygon(pts)
	r.fillEdges(emit)
}

// FillPath fills a path. Open subpaths are closed implicitly, curves are
// flattened to within Flatness device pixels.
func (r *Rasterizer) FillPath(p path.Path, emit EmitFunc) {
	r.beginEdges()

	var current, start vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if current != start {
				r.addEdge(current, start)
			}
			current = pts[0]
			start = current
		case path.CmdLineTo:
			r.addEdge(current, pts[0])
			current = pts[0]
		case path.CmdQuadTo:
			r.flattenQuadratic(current, pts[0], pts[1], r.addEdge)
			current = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(current, pts[0], pts[1], pts[2], r.addEdge)
			current = pts[2]
		case path.CmdClose:
			if current != start {
				r.addEdge(current, start)
			}
			current = start
		}
	}
	if current != start {
		r.addEdge(current, start)
	}

	r.fillEdges(emit)
}

// StrokePolyline strokes the open polyline through pts using Width, Cap and
// Dash.
func (r *Rasterizer) StrokePolyline(pts []vec.Vec2, emit EmitFunc) {
	if len(pts) < 2 || !(r.Width > 0) {
		return
	}

	r.outline = r.outline[:0]
	r.outlineOffsets = r.outlineOffsets[:0]
	if len(r.Dash) > 0 {
		for _, piece := range r.dashPieces(pts) {
			r.strokeOpen(piece)
		}
	} else {
		r.strokeOpen(pts)
	}

	r.beginEdges()
	for i, start := range r.outlineOffsets {
		end := len(r.outline)
		if i+1 < len(r.outlineOffsets) {
			end = r.outlineOffsets[i+1]
		}
		r.addPolygon(r.outline[start:end])
	}
	r.fillEdges(emit)
}

func (r *Rasterizer) beginEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

func (r *Rasterizer) addPolygon(pts []vec.Vec2) {
	if len(pts) < 3 {
		return
	}
	for i := 1; i < len(pts); i++ {
		r.addEdge(pts[i-1], pts[i])
	}
	r.addEdge(pts[len(pts)-1], pts[0])
}

// addEdge adds the user-space segment p0-p1 to the edge list.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	m := r.CTM
	dx0 := m[0]*p0.X + m[2]*p0.Y + m[4]
	dy0 := m[1]*p0.X + m[3]*p0.Y + m[5]
	dx1 := m[0]*p1.X + m[2]*p1.Y + m[4]
	dy1 := m[1]*p1.X + m[3]*p1.Y + m[5]

	dy := dy1 - dy0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	if math.IsNaN(dx0+dy0+dx1+dy1) || math.IsInf(dx0+dy0+dx1+dy1, 0) {
		return
	}

	r.edges = append(r.edges, edge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
	})

	if r.bboxEmpty {
		r.devXMin, r.devXMax = min(dx0, dx1), max(dx0, dx1)
		r.devYMin, r.devYMax = min(dy0, dy1), max(dy0, dy1)
		r.bboxEmpty = false
	} else {
		r.devXMin = min(r.devXMin, dx0, dx1)
		r.devXMax = max(r.devXMax, dx0, dx1)
		r.devYMin = min(r.devYMin, dy0, dy1)
		r.devYMax = max(r.devYMax, dy0, dy1)
	}
}

// transformLinear applies the linear part of the CTM to v.
func (r *Rasterizer) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	e := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))

	n := 1
	if errDev := e.Length(); errDev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(errDev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))

	// Wang's formula
	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt * omt).
			Add(p1.Mul(3 * omt * omt * t)).
			Add(p2.Mul(3 * omt * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

// Coverage accumulation:
//
// For each pixel of a scanline we track
//   cover: signed vertical extent of the edges crossing the pixel
//   area:  cover weighted by the horizontal position inside the pixel
//
// Integrating from left to right, the coverage of pixel i is
//   accumulated cover of pixels 0..i-1 + area[i]
// which is the signed area of the shape inside the pixel.

// fillEdges rasterizes the current edge list, one scanline at a time, using
// an active edge list.
func (r *Rasterizer) fillEdges(emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}
	xMin := max(int(math.Floor(r.devXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.devXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.devYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.devYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin

	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		yfNext := float64(y + 1)

		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yfNext {
			r.activeIdx = append(r.activeIdx, next)
			next++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)

		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}
			if r.accumulateEdge(e, y, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrateNonZero(r.cover, r.area)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// accumulateEdge adds the contribution of e within scanline y to the cover
// and area buffers, which are indexed by x-xMin. The return value reports
// whether the edge intersects the scanline.
func (r *Rasterizer) accumulateEdge(e *edge, y, xMin, xMax int) bool {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(yTop-e.y0)
	xBot := e.x0 + e.dxdy*(yBot-e.y0)
	pixLeft := int(math.Floor(min(xTop, xBot)))
	pixRight := int(math.Floor(max(xTop, xBot)))

	if pixLeft >= xMax {
		return true
	}
	if pixRight < xMin {
		c := sign * float32(yBot-yTop)
		r.cover[0] += c
		r.area[0] += c
		return true
	}

	// Split the edge where it crosses pixel column boundaries. Only the
	// boundaries xMin..xMax matter: everything left of the clip lands in
	// cover[0], everything right of it is dropped.
	r.crossings = append(r.crossings[:0], yTop, yBot)
	if pixLeft != pixRight {
		dydx := 1 / e.dxdy
		for x := max(pixLeft+1, xMin); x <= min(pixRight, xMax); x++ {
			yAtX := e.y0 + dydx*(float64(x)-e.x0)
			if yAtX > yTop && yAtX < yBot {
				r.crossings = append(r.crossings, yAtX)
			}
		}
		slices.Sort(r.crossings)
	}

	for i := range len(r.crossings) - 1 {
		y0, y1 := r.crossings[i], r.crossings[i+1]
		if y1 <= y0 {
			continue
		}
		c := sign * float32(y1-y0)
		xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
		pix := int(math.Floor(xMid))
		switch {
		case pix < xMin:
			r.cover[0] += c
			r.area[0] += c
		case pix < xMax:
			idx := pix - xMin
			r.cover[idx] += c
			r.area[idx] += c * float32(1-(xMid-float64(pix)))
		}
	}
	return true
}

// integrateNonZero turns accumulated cover and area values into coverage,
// in place.
func integrateNonZero(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the non-zero part of coverage and its offset.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	horizontalEdgeThreshold = 1e-10
	zeroLengthThreshold     = 1e-10
)
