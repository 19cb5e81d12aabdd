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

var gridCases = []Case{
	{
		Name:     "grid_only",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(0, 0),
		Flags:    scene.Flags{ShowGrid: true},
	},
	{
		Name:     "grid_off",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(0, 0),
		Flags:    scene.Flags{ShowTrail: true, ShowRapid: true, ShowFeed: true},
	},

	// 250 is not a multiple of 50: the outermost major lines are inside
	{
		Name:     "uneven_size",
		WorkArea: coord.WorkArea{X: 250, Y: 130},
		Viewport: viewport,
		Position: pos(125, 65),
		Flags:    scene.DefaultFlags,
	},

	// the boundary corners touch the padding
	{
		Name:     "position_on_boundary",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(-150, -100),
		Flags:    scene.DefaultFlags,
	},
}

var trailCases = []Case{
	{
		Name:     "trail_short",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(40, 10),
		Trail:    []coord.Position{pos(0, 0), pos(20, 0), pos(40, 10)},
		Flags:    scene.DefaultFlags,
	},

	// a single point draws nothing
	{
		Name:     "trail_single_point",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(40, 10),
		Trail:    []coord.Position{pos(40, 10)},
		Flags:    scene.DefaultFlags,
	},

	// 250 points, only the newest 100 are kept
	{
		Name:     "trail_full",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(0, 0),
		Trail:    spiral(250, 5, 90),
		Flags:    scene.DefaultFlags,
	},

	// recorded but hidden
	{
		Name:     "trail_hidden",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(40, 10),
		Trail:    []coord.Position{pos(0, 0), pos(20, 0), pos(40, 10)},
		Flags:    scene.Flags{ShowGrid: true, ShowRapid: true, ShowFeed: true},
	},

	// the tool went beyond the work area
	{
		Name:     "trail_outside",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(190, 130),
		Trail:    []coord.Position{pos(100, 50), pos(150, 100), pos(190, 130)},
		Flags:    scene.DefaultFlags,
	},
}

var pathCases = []Case{
	{
		Name:     "pocket",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(-40, -20),
		Segments: pocket(0, 0, 160, 100, 10, 800),
		Flags:    scene.DefaultFlags,
	},
	{
		Name:     "pocket_rapid_hidden",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(-40, -20),
		Segments: pocket(0, 0, 160, 100, 10, 800),
		Flags:    scene.Flags{ShowGrid: true, ShowTrail: true, ShowFeed: true},
	},
	{
		Name:     "pocket_feed_hidden",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(-40, -20),
		Segments: pocket(0, 0, 160, 100, 10, 800),
		Flags:    scene.Flags{ShowGrid: true, ShowTrail: true, ShowRapid: true},
	},

	// arcs ignore both toggles
	{
		Name:     "circle_toggles_off",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(60, 0),
		Segments: append([]toolpath.Segment{seg(toolpath.Rapid, 0, 0, 60, 0)}, circle(0, 0, 60, 48, 400)...),
		Flags:    scene.Flags{ShowGrid: true},
	},
	{
		Name:     "zigzag",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(100, 60),
		Segments: zigzag(-100, -60, 100, 60, 8, 1200),
		Flags:    scene.DefaultFlags,
	},

	// all three styles side by side
	{
		Name:     "mixed_styles",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(0, 0),
		Segments: []toolpath.Segment{
			seg(toolpath.Rapid, -120, 60, -40, 60),
			seg(toolpath.Feed, -40, 60, 40, 60),
			seg(toolpath.Arc, 40, 60, 120, 60),
			seg(toolpath.Unknown, 120, 60, 120, -60),
		},
		Flags: scene.DefaultFlags,
	},
}

var degenerateCases = []Case{
	{
		Name:     "zero_work_area",
		WorkArea: coord.WorkArea{},
		Viewport: viewport,
		Position: pos(10, 10),
		Flags:    scene.DefaultFlags,
	},
	{
		Name:     "negative_work_area",
		WorkArea: coord.WorkArea{X: -300, Y: 200},
		Viewport: viewport,
		Position: pos(10, 10),
		Flags:    scene.DefaultFlags,
	},

	// padding larger than the viewport
	{
		Name:     "padding_too_large",
		WorkArea: workArea,
		Viewport: coord.Viewport{Width: 30, Height: 30, Padding: 20},
		Position: pos(0, 0),
		Flags:    scene.DefaultFlags,
	},
	{
		Name:     "position_not_finite",
		WorkArea: workArea,
		Viewport: viewport,
		Position: coord.Position{X: nan, Y: 0},
		Trail:    []coord.Position{pos(0, 0), {X: inf}, pos(20, 20)},
		Flags:    scene.DefaultFlags,
	},
	{
		Name:     "segment_not_finite",
		WorkArea: workArea,
		Viewport: viewport,
		Position: pos(0, 0),
		Segments: []toolpath.Segment{
			seg(toolpath.Rapid, 0, 0, 20, 20),
			{Start: pos(20, 20), End: coord.Position{X: inf}, Type: toolpath.Feed},
			seg(toolpath.Feed, 20, 20, 40, 20),
		},
		Flags: scene.DefaultFlags,
	},
	{
		Name:     "empty_viewport",
		WorkArea: workArea,
		Viewport: coord.Viewport{},
		Position: pos(0, 0),
		Flags:    scene.DefaultFlags,
	},
}

// largeCases stress the backends with many primitives on a big surface.
var largeCases = []Case{
	{
		Name:     "dense_job",
		WorkArea: coord.WorkArea{X: 1200, Y: 800, Z: 200},
		Viewport: coord.Viewport{Width: 1600, Height: 1000, Padding: 40},
		Position: pos(300, -200),
		Trail:    spiral(100, 3, 350),
		Segments: append(zigzag(-550, -350, 550, 350, 5, 2000), pocket(0, 0, 600, 400, 5, 1500)...),
		Flags:    scene.DefaultFlags,
	},
}
