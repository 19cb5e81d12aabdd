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

// Package ebitenview shows a live view in a desktop window.
//
// The window follows a [scene.Controller]. Positions arrive on a channel
// and are applied once per tick, so that bursts of updates produce a
// single frame. The keyboard drives the view toggles:
//
//	G  grid on/off
//	T  trail on/off
//	R  rapid moves on/off
//	F  feed moves on/off
//	O  set origin
//	H  go home
//	Esc  close the window
package ebitenview

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/cncview/coord"
	"seehuhn.de/go/cncview/scene"
)

// Game implements [ebiten.Game].
type Game struct {
	ctrl      *scene.Controller
	positions <-chan coord.Position
	closed    bool
}

// New returns a game showing the frames of ctrl. Positions received on
// the channel are passed to the controller; the channel may be nil.
func New(ctrl *scene.Controller, positions <-chan coord.Position) *Game {
	return &Game{ctrl: ctrl, positions: positions}
}

// Run opens a window of the current viewport size and blocks until it is
// closed.
func Run(g *Game, title string) error {
	v := g.ctrl.State().Viewport
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(int(v.Width), int(v.Height))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(g)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

// keys lists the keys handled in Update.
var keys = []ebiten.Key{
	ebiten.KeyG, ebiten.KeyT, ebiten.KeyR, ebiten.KeyF,
	ebiten.KeyO, ebiten.KeyH, ebiten.KeyEscape,
}

// Update applies pending positions and key presses.
func (g *Game) Update() error {
	g.drain()
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			if err := g.press(k); err != nil {
				return err
			}
		}
	}
	return nil
}

// drain applies all positions waiting on the channel with a single redraw.
func (g *Game) drain() {
	if g.positions == nil || g.closed {
		return
	}
	var ts []scene.Transition
loop:
	for {
		select {
		case p, ok := <-g.positions:
			if !ok {
				g.closed = true
				break loop
			}
			ts = append(ts, func(s scene.State) scene.State {
				return s.WithPosition(p)
			})
		default:
			break loop
		}
	}
	if len(ts) > 0 {
		g.ctrl.Apply(ts...)
	}
}

func (g *Game) press(k ebiten.Key) error {
	flags := g.ctrl.State().Flags
	switch k {
	case ebiten.KeyG:
		g.ctrl.ToggleGrid(!flags.ShowGrid)
	case ebiten.KeyT:
		g.ctrl.ToggleTrail(!flags.ShowTrail)
	case ebiten.KeyR:
		vis := flags.Visibility()
		vis.ShowRapid = !vis.ShowRapid
		g.ctrl.SetVisibility(vis)
	case ebiten.KeyF:
		vis := flags.Visibility()
		vis.ShowFeed = !vis.ShowFeed
		g.ctrl.SetVisibility(vis)
	case ebiten.KeyO:
		g.ctrl.SetOrigin()
	case ebiten.KeyH:
		g.ctrl.GoHome()
	case ebiten.KeyEscape:
		return ebiten.Termination
	}
	return nil
}

// Layout resizes the view to the window. The padding is kept.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	v := g.ctrl.State().Viewport
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w > 0 && h > 0 && (w != v.Width || h != v.Height) {
		v.Width, v.Height = w, h
		g.ctrl.Resize(v)
	}
	return outsideWidth, outsideHeight
}

// Draw draws the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	Draw(screen, g.ctrl.Frame())
}

// Draw draws m onto dst, with one model pixel per image pixel.
// Text is drawn with the ebiten debug font, which is always white.
func Draw(dst *ebiten.Image, m *scene.Model) {
	dst.Fill(m.Background)
	for _, cmd := range m.Commands {
		switch cmd := cmd.(type) {
		case scene.Line:
			stroke(dst, []vec.Vec2{cmd.A, cmd.B}, cmd.Stroke)
		case scene.Polyline:
			stroke(dst, cmd.Points, cmd.Stroke)
		case scene.Circle:
			cx, cy, r := float32(cmd.Center.X), float32(cmd.Center.Y), float32(cmd.Radius)
			if cmd.Fill.A != 0 {
				vector.DrawFilledCircle(dst, cx, cy, r, cmd.Fill, true)
			}
			if !cmd.Stroke.IsZero() {
				vector.StrokeCircle(dst, cx, cy, r, float32(cmd.Stroke.Width), cmd.Stroke.Color, true)
			}
		case scene.Text:
			if cmd.Text != "" {
				// DebugPrintAt places the top left corner of the text
				ebitenutil.DebugPrintAt(dst, cmd.Text, int(cmd.Pos.X), int(cmd.Pos.Y)-debugFontHeight)
			}
		}
	}
}

// debugFontHeight is the line height of the ebiten debug font.
const debugFontHeight = 16

func stroke(dst *ebiten.Image, pts []vec.Vec2, st scene.Stroke) {
	if st.IsZero() || len(pts) < 2 {
		return
	}
	w := float32(st.Width)
	for i := 1; i < len(pts); i++ {
		for _, piece := range scene.DashLine(pts[i-1], pts[i], st.Dash) {
			a, b := piece[0], piece[1]
			vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), w, st.Color, true)
		}
	}
	if len(st.Dash) > 0 {
		return
	}

	// round joins, and round caps where requested
	joins := pts[1 : len(pts)-1]
	if st.Cap == graphics.LineCapRound {
		joins = pts
	}
	for _, p := range joins {
		dot(dst, p, w/2, st.Color)
	}
}

func dot(dst *ebiten.Image, p vec.Vec2, r float32, col color.RGBA) {
	vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), r, col, true)
}
