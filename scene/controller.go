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
	"slices"

	"github.com/rs/zerolog"

	"seehuhn.de/go/cncview/coord"
	"seehuhn.de/go/cncview/toolpath"
)

// State is the complete, immutable state of a view. The With* methods are
// pure state transitions: they return a modified copy and leave the
// receiver unchanged.
type State struct {
	Input
}

// WithPosition records a new machine position. While the trail is shown,
// the position is also appended to the trail. Non-finite positions replace
// the current position (which suppresses the marker) but never enter the
// trail.
func (s State) WithPosition(p coord.Position) State {
	s.Position = p
	if s.Flags.ShowTrail {
		s.Trail = s.Trail.Push(p)
	}
	return s
}

// WithWorkArea sets the machine envelope.
func (s State) WithWorkArea(wa coord.WorkArea) State {
	s.WorkArea = wa
	return s
}

// WithViewport sets the surface size.
func (s State) WithViewport(v coord.Viewport) State {
	s.Viewport = v
	return s
}

// WithTrail switches trail recording on or off. Switching it off discards
// the recorded history, so that recording always restarts from an empty
// trail.
func (s State) WithTrail(on bool) State {
	s.Flags.ShowTrail = on
	if !on {
		s.Trail = s.Trail.Clear()
	}
	return s
}

// WithGrid switches the grid on or off.
func (s State) WithGrid(on bool) State {
	s.Flags.ShowGrid = on
	return s
}

// WithVisibility sets the move type toggles.
func (s State) WithVisibility(v toolpath.Visibility) State {
	s.Flags.ShowRapid = v.ShowRapid
	s.Flags.ShowFeed = v.ShowFeed
	return s
}

// WithSegments replaces the tool path. The slice is copied.
func (s State) WithSegments(segs []toolpath.Segment) State {
	s.Segments = slices.Clone(segs)
	return s
}

// Transition is a pure function from one state to the next.
type Transition func(State) State

// Actions are the outward-facing callbacks of the view. They are forwarded
// unchanged to the machine-control layer; nil entries are ignored.
type Actions struct {
	OnSetOrigin   func()
	OnGoHome      func()
	OnGridToggle  func(on bool)
	OnTrailToggle func(on bool)
}

// Controller owns the state of one view and recomputes the frame after
// every change. There is no incremental update: every command rebuilds
// the complete model.
//
// A Controller is not safe for concurrent use. All updates must come from
// a single goroutine.
type Controller struct {
	state   State
	frame   *Model
	actions Actions
	log     zerolog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithActions installs the action callbacks.
func WithActions(a Actions) Option {
	return func(c *Controller) { c.actions = a }
}

// WithLogger sets the logger for degraded-state diagnostics.
// The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// NewController returns a controller showing the given initial state.
// The trail of the initial state is used as given.
func NewController(initial State, opts ...Option) *Controller {
	c := &Controller{
		state: initial,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.redraw()
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Frame returns the most recent model.
func (c *Controller) Frame() *Model {
	return c.frame
}

// Apply runs the given transitions in order and redraws once.
// This is how several input changes are coalesced into a single frame.
func (c *Controller) Apply(ts ...Transition) *Model {
	for _, t := range ts {
		c.state = t(c.state)
	}
	return c.redraw()
}

// SetPosition records a new machine position and redraws.
func (c *Controller) SetPosition(p coord.Position) *Model {
	if !p.IsFinite() {
		c.log.Debug().
			Float64("x", p.X).Float64("y", p.Y).Float64("z", p.Z).
			Msg("non-finite position, marker and trail update suppressed")
	}
	c.state = c.state.WithPosition(p)
	return c.redraw()
}

// SetWorkArea changes the machine envelope and redraws.
func (c *Controller) SetWorkArea(wa coord.WorkArea) *Model {
	c.state = c.state.WithWorkArea(wa)
	return c.redraw()
}

// Resize changes the viewport and redraws.
func (c *Controller) Resize(v coord.Viewport) *Model {
	c.state = c.state.WithViewport(v)
	return c.redraw()
}

// SetSegments replaces the tool path and redraws.
func (c *Controller) SetSegments(segs []toolpath.Segment) *Model {
	c.state = c.state.WithSegments(segs)
	return c.redraw()
}

// SetVisibility changes the move type toggles and redraws.
func (c *Controller) SetVisibility(v toolpath.Visibility) *Model {
	c.state = c.state.WithVisibility(v)
	return c.redraw()
}

// ToggleTrail switches trail recording, notifies OnTrailToggle and redraws.
func (c *Controller) ToggleTrail(on bool) *Model {
	c.state = c.state.WithTrail(on)
	if c.actions.OnTrailToggle != nil {
		c.actions.OnTrailToggle(on)
	}
	return c.redraw()
}

// ToggleGrid switches the grid, notifies OnGridToggle and redraws.
func (c *Controller) ToggleGrid(on bool) *Model {
	c.state = c.state.WithGrid(on)
	if c.actions.OnGridToggle != nil {
		c.actions.OnGridToggle(on)
	}
	return c.redraw()
}

// SetOrigin forwards a set-origin request. The view itself is unchanged;
// the machine reports the new coordinates through SetPosition.
func (c *Controller) SetOrigin() {
	if c.actions.OnSetOrigin != nil {
		c.actions.OnSetOrigin()
	}
}

// GoHome forwards a homing request.
func (c *Controller) GoHome() {
	if c.actions.OnGoHome != nil {
		c.actions.OnGoHome()
	}
}

func (c *Controller) redraw() *Model {
	c.frame = Compose(&c.state.Input)
	if c.frame.Degraded {
		c.log.Debug().
			Float64("workX", c.state.WorkArea.X).
			Float64("workY", c.state.WorkArea.Y).
			Float64("width", c.state.Viewport.Width).
			Float64("height", c.state.Viewport.Height).
			Float64("padding", c.state.Viewport.Padding).
			Msg("degenerate geometry, using fallback scale")
	}
	return c.frame
}
