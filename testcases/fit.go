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

package testcases

import (
	"seehuhn.de/go/cncview/coord"
	"seehuhn.de/go/cncview/scene"
	"seehuhn.de/go/cncview/toolpath"
)

var fitCases = []Case{
	// ==========================================================================
	// Aspect ratio: the limiting dimension decides the scale
	// ==========================================================================

	// height limits: min(360/300, 260/200) = 1.2
	{
		Name:     "reference",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(50, 50),
		Flags:    scene.DefaultFlags,
	},

	// width limits: min(360/600, 260/100) = 0.6
	{
		Name:     "wide_work_area",
		WorkArea: coord.WorkArea{X: 600, Y: 100},
		Viewport: viewport,
		Position: pos(-250, 40),
		Flags:    scene.DefaultFlags,
	},

	// height limits strongly: min(360/100, 260/600) = 0.4333
	{
		Name:     "tall_work_area",
		WorkArea: coord.WorkArea{X: 100, Y: 600},
		Viewport: viewport,
		Position: pos(0, -280),
		Flags:    scene.DefaultFlags,
	},

	// scale above one, the grid lines are far apart
	{
		Name:     "small_machine",
		WorkArea: coord.WorkArea{X: 60, Y: 40},
		Viewport: viewport,
		Position: pos(12.5, -7.25),
		Flags:    scene.DefaultFlags,
	},

	// scale well below one, minor grid lines are dense
	{
		Name:     "large_machine",
		WorkArea: coord.WorkArea{X: 2500, Y: 1250},
		Viewport: viewport,
		Position: pos(1000, 500),
		Flags:    scene.DefaultFlags,
		Segments: pocket(-600, 200, 800, 500, 50, 3000),
	},

	// ==========================================================================
	// Viewport shapes
	// ==========================================================================

	{
		Name:     "portrait_viewport",
		WorkArea: workArea,
		Viewport: coord.Viewport{Width: 240, Height: 320, Padding: 10},
		Position: pos(-100, 80),
		Flags:    scene.DefaultFlags,
	},
	{
		Name:     "no_padding",
		WorkArea: workArea,
		Viewport: coord.Viewport{Width: 300, Height: 200},
		Position: pos(150, 100),
		Flags:    scene.DefaultFlags,
	},
	{
		Name:     "pendant_display",
		WorkArea: workArea,
		Viewport: coord.Viewport{Width: 160, Height: 128, Padding: 4},
		Position: pos(20, -30),
		Flags:    scene.DefaultFlags,
		Segments: []toolpath.Segment{
			seg(toolpath.Rapid, 0, 0, -50, -50),
			seg(toolpath.Feed, -50, -50, 50, -50),
			seg(toolpath.Feed, 50, -50, 50, 50),
			seg(toolpath.Rapid, 50, 50, 0, 0),
		},
	},

	// inch readouts
	{
		Name:     "inch_units",
		WorkArea: coord.WorkArea{X: 24, Y: 18},
		Viewport: viewport,
		Position: pos(3.125, -2.5),
		Flags:    scene.DefaultFlags,
		Unit:     "in",
	},
}
