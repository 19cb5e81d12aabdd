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

// Package coord maps machine (world) coordinates onto a fixed-size drawing
// surface.
//
// World space has the origin at the centre of the work area and +y pointing
// up. Surface space has the origin at the top-left corner of the viewport
// and +y pointing down. All functions in this package are pure.
package coord

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Position is a point in machine coordinates, usually in millimetres.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// IsFinite reports whether all three components are finite numbers.
func (p Position) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

// XY returns the plan-view projection of p.
func (p Position) XY() vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}

// ParsePosition decodes a position given either as a JSON object
// {"x":1,"y":2,"z":3} or as three comma or space separated numbers.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		var p Position
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			return Position{}, fmt.Errorf("position %q: %w", s, err)
		}
		return p, nil
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) < 2 || len(fields) > 3 {
		return Position{}, fmt.Errorf("position %q: want 2 or 3 coordinates", s)
	}
	var xyz [3]float64
	for i, f := range fields {
		if _, err := fmt.Sscan(f, &xyz[i]); err != nil {
			return Position{}, fmt.Errorf("position %q: %w", s, err)
		}
	}
	return Position{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// WorkArea is the addressable envelope of the machine in world units.
// The plan-view rectangle is centred on the world origin.
type WorkArea struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// IsValid reports whether both plan-view dimensions are finite and
// strictly positive.
func (wa WorkArea) IsValid() bool {
	return wa.X > 0 && wa.Y > 0 && isFinite(wa.X) && isFinite(wa.Y)
}

// Viewport describes the drawing surface in logical pixels.
// Padding is reserved on all four sides.
type Viewport struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"`
}

// Center returns the geometric centre of the viewport.
func (v Viewport) Center() vec.Vec2 {
	return vec.Vec2{X: v.Width / 2, Y: v.Height / 2}
}

// Drawable returns the width and height left after removing the padding.
// The values can be zero or negative for degenerate viewports.
func (v Viewport) Drawable() (width, height float64) {
	return v.Width - 2*v.Padding, v.Height - 2*v.Padding
}

// FallbackScale is returned by [Fit] when no meaningful scale exists.
const FallbackScale = 1.0

// Fit returns the world-to-pixel scale which fits the work area into the
// drawable part of the viewport, preserving the aspect ratio.
//
// If the work area is degenerate or the drawable area is not positive, Fit
// returns [FallbackScale] and ok=false. The caller can keep rendering with
// the fallback scale; the picture will be wrong but well-defined.
func Fit(v Viewport, wa WorkArea) (scale float64, ok bool) {
	w, h := v.Drawable()
	if !wa.IsValid() || !(w > 0) || !(h > 0) || !isFinite(w) || !isFinite(h) {
		return FallbackScale, false
	}
	scale = min(w/wa.X, h/wa.Y)
	if !(scale > 0) || !isFinite(scale) {
		return FallbackScale, false
	}
	return scale, true
}

// ToSurface maps a world point to surface pixels. The world origin lands on
// the viewport centre and the vertical axis is inverted.
func ToSurface(p vec.Vec2, scale float64, v Viewport) vec.Vec2 {
	c := v.Center()
	return vec.Vec2{
		X: c.X + p.X*scale,
		Y: c.Y - p.Y*scale,
	}
}

// ToWorld is the inverse of [ToSurface]. The scale must be non-zero.
func ToWorld(s vec.Vec2, scale float64, v Viewport) vec.Vec2 {
	c := v.Center()
	return vec.Vec2{
		X: (s.X - c.X) / scale,
		Y: (c.Y - s.Y) / scale,
	}
}

// Transform returns the world-to-surface mapping of [ToSurface] as an
// affine matrix, for backends which apply a CTM themselves.
func Transform(scale float64, v Viewport) matrix.Matrix {
	c := v.Center()
	return matrix.Matrix{scale, 0, 0, -scale, c.X, c.Y}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
