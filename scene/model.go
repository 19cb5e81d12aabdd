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

// Package scene composes the machine-position view into a backend-agnostic
// list of draw commands.
//
// [Compose] is a pure function from the view inputs to a [Model]. The
// [Controller] owns the mutable parts of the view (the trail and the
// current inputs) and recomputes the complete model after every change.
// Backends implement [Renderer] and execute the commands in order.
package scene

import (
	"image/color"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Layer identifies the depth band a command belongs to.
// Commands in a Model are sorted by layer, back to front.
type Layer uint8

// The layers, back to front.
const (
	LayerMinorGrid Layer = iota
	LayerMajorGrid
	LayerBoundary
	LayerAxes
	LayerOrigin
	LayerTrail
	LayerPath
	LayerJobMarkers
	LayerPosition
	LayerLabels
)

func (l Layer) String() string {
	switch l {
	case LayerMinorGrid:
		return "minor-grid"
	case LayerMajorGrid:
		return "major-grid"
	case LayerBoundary:
		return "boundary"
	case LayerAxes:
		return "axes"
	case LayerOrigin:
		return "origin"
	case LayerTrail:
		return "trail"
	case LayerPath:
		return "path"
	case LayerJobMarkers:
		return "job-markers"
	case LayerPosition:
		return "position"
	case LayerLabels:
		return "labels"
	default:
		return "unknown"
	}
}

// Stroke describes how lines and outlines are drawn. All lengths are in
// surface pixels.
type Stroke struct {
	Color color.RGBA
	Width float64
	Dash  []float64 // alternating on/off lengths, nil for solid
	Cap   graphics.LineCapStyle
}

// IsZero reports whether the stroke draws nothing.
func (s Stroke) IsZero() bool {
	return s.Width <= 0 || s.Color.A == 0
}

// Command is a single draw primitive in surface coordinates.
// The concrete types are [Line], [Polyline], [Circle] and [Text].
type Command interface {
	layer() Layer
}

// LayerOf returns the layer of a command.
func LayerOf(c Command) Layer {
	return c.layer()
}

// Line is a straight stroked line.
type Line struct {
	A, B   vec.Vec2
	Stroke Stroke
	Layer  Layer
}

func (c Line) layer() Layer { return c.Layer }

// Polyline is an open path through Points. It has at least two points.
type Polyline struct {
	Points []vec.Vec2
	Stroke Stroke
	Layer  Layer
}

func (c Polyline) layer() Layer { return c.Layer }

// Circle is a disc, optionally filled and optionally outlined.
// A fill colour with zero alpha means no fill.
type Circle struct {
	Center vec.Vec2
	Radius float64
	Fill   color.RGBA
	Stroke Stroke
	Layer  Layer
}

func (c Circle) layer() Layer { return c.Layer }

// Text is a single line of text. Pos is the left end of the baseline.
type Text struct {
	Pos   vec.Vec2
	Text  string
	Color color.RGBA
	Size  float64 // nominal height in pixels
	Layer Layer
}

func (c Text) layer() Layer { return c.Layer }

// Model is everything needed to draw one frame.
type Model struct {
	Width, Height float64
	Background    color.RGBA

	// Scale is the world-to-pixel scale used for this frame.
	// Degraded is set if Scale is a fallback value because the work area
	// or the viewport was degenerate.
	Scale    float64
	Degraded bool

	Commands []Command
	Readouts Readouts
}

// Count returns the number of commands on layer l.
func (m *Model) Count(l Layer) int {
	n := 0
	for _, c := range m.Commands {
		if c.layer() == l {
			n++
		}
	}
	return n
}

// Renderer is implemented by drawing backends.
type Renderer interface {
	// Render draws the model. Backends execute the commands in order, so
	// that later commands cover earlier ones.
	Render(m *Model) error
}
