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

package ebitenview

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"seehuhn.de/go/cncview/coord"
	"seehuhn.de/go/cncview/scene"
)

func newTestGame(ch <-chan coord.Position, a scene.Actions) *Game {
	ctrl := scene.NewController(scene.State{Input: scene.Input{
		WorkArea: coord.WorkArea{X: 300, Y: 200},
		Viewport: coord.Viewport{Width: 400, Height: 300, Padding: 20},
		Flags:    scene.DefaultFlags,
	}}, scene.WithActions(a))
	return New(ctrl, ch)
}

func TestDrainKeepsEveryPosition(t *testing.T) {
	ch := make(chan coord.Position, 10)
	g := newTestGame(ch, scene.Actions{})

	for i := range 5 {
		ch <- coord.Position{X: float64(i), Y: 1}
	}
	g.drain()

	st := g.ctrl.State()
	if st.Position.X != 4 {
		t.Errorf("position = %v, want the last one", st.Position)
	}
	if n := st.Trail.Len(); n != 5 {
		t.Errorf("trail has %d points, want 5", n)
	}

	close(ch)
	g.drain()
	g.drain()
	if !g.closed {
		t.Error("closed channel not noticed")
	}
}

func TestDrainNilChannel(t *testing.T) {
	g := newTestGame(nil, scene.Actions{})
	before := g.ctrl.Frame()
	g.drain()
	if g.ctrl.Frame() != before {
		t.Error("frame redrawn without input")
	}
}

func TestPress(t *testing.T) {
	var origin, home int
	var grid []bool
	g := newTestGame(nil, scene.Actions{
		OnSetOrigin:  func() { origin++ },
		OnGoHome:     func() { home++ },
		OnGridToggle: func(on bool) { grid = append(grid, on) },
	})

	for _, k := range []ebiten.Key{ebiten.KeyG, ebiten.KeyG, ebiten.KeyR, ebiten.KeyT, ebiten.KeyO, ebiten.KeyH} {
		if err := g.press(k); err != nil {
			t.Fatal(err)
		}
	}

	f := g.ctrl.State().Flags
	if !f.ShowGrid || f.ShowRapid || f.ShowTrail || !f.ShowFeed {
		t.Errorf("unexpected flags %+v", f)
	}
	if len(grid) != 2 || grid[0] || !grid[1] {
		t.Errorf("grid toggles = %v", grid)
	}
	if origin != 1 || home != 1 {
		t.Errorf("origin=%d home=%d", origin, home)
	}

	if err := g.press(ebiten.KeyEscape); err != ebiten.Termination {
		t.Errorf("escape returned %v", err)
	}
}

func TestLayoutResizes(t *testing.T) {
	g := newTestGame(nil, scene.Actions{})
	w, h := g.Layout(640, 440)
	if w != 640 || h != 440 {
		t.Errorf("Layout = %d×%d", w, h)
	}
	v := g.ctrl.State().Viewport
	if v.Width != 640 || v.Height != 440 || v.Padding != 20 {
		t.Errorf("viewport = %+v", v)
	}
	if m := g.ctrl.Frame(); m.Width != 640 || m.Scale != 2 {
		t.Errorf("frame %v×%v at scale %v", m.Width, m.Height, m.Scale)
	}
}
