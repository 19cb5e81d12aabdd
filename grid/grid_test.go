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

package grid

import (
	"testing"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/cncview/coord"
)

func TestMinorLinesCount(t *testing.T) {
	// x in [-150, 150] gives 31 vertical lines, y in [-100, 100] gives 21.
	wa := coord.WorkArea{X: 300, Y: 200}
	got := MinorLines(wa, MinorSpacing)
	if len(got) != 31+21 {
		t.Fatalf("got %d lines, want %d", len(got), 31+21)
	}

	first := got[0]
	if first.A.X != -150 || first.A.Y != -100 || first.B.Y != 100 {
		t.Errorf("first vertical line = %v", first)
	}
	last := got[len(got)-1]
	if last.A.Y != 100 || last.A.X != -150 || last.B.X != 150 {
		t.Errorf("last horizontal line = %v", last)
	}
}

func TestMinorLinesSpanWorkArea(t *testing.T) {
	wa := coord.WorkArea{X: 123, Y: 77}
	for _, l := range MinorLines(wa, MinorSpacing) {
		vertical := l.A.X == l.B.X
		if vertical {
			if l.A.Y != -wa.Y/2 || l.B.Y != wa.Y/2 {
				t.Errorf("vertical line %v does not span the work area", l)
			}
			if l.A.X < -wa.X/2 || l.A.X > wa.X/2 {
				t.Errorf("vertical line %v outside the work area", l)
			}
		} else {
			if l.A.X != -wa.X/2 || l.B.X != wa.X/2 {
				t.Errorf("horizontal line %v does not span the work area", l)
			}
		}
	}
}

func TestMajorLinesSkipZero(t *testing.T) {
	for _, wa := range []coord.WorkArea{
		{X: 300, Y: 200},
		{X: 1000, Y: 1000},
		{X: 49, Y: 51},
		{X: 100, Y: 100},
	} {
		for _, l := range MajorLines(wa, MajorSpacing) {
			if l.A.X == l.B.X && l.A.X == 0 {
				t.Errorf("%v: major line at x=0", wa)
			}
			if l.A.Y == l.B.Y && l.A.Y == 0 {
				t.Errorf("%v: major line at y=0", wa)
			}
		}
	}
}

func TestMajorLinesPositions(t *testing.T) {
	wa := coord.WorkArea{X: 300, Y: 200}
	got := MajorLines(wa, MajorSpacing)

	var xs, ys []float64
	for _, l := range got {
		if l.A.X == l.B.X {
			xs = append(xs, l.A.X)
		} else {
			ys = append(ys, l.A.Y)
		}
	}
	wantX := []float64{-150, -100, -50, 50, 100, 150}
	wantY := []float64{-100, -50, 50, 100}
	if !equal(xs, wantX) {
		t.Errorf("vertical major lines at %v, want %v", xs, wantX)
	}
	if !equal(ys, wantY) {
		t.Errorf("horizontal major lines at %v, want %v", ys, wantY)
	}
}

func TestLinesDegenerate(t *testing.T) {
	cases := []struct {
		name    string
		wa      coord.WorkArea
		spacing float64
	}{
		{"zero_area", coord.WorkArea{}, 10},
		{"zero_spacing", coord.WorkArea{X: 100, Y: 100}, 0},
		{"negative_spacing", coord.WorkArea{X: 100, Y: 100}, -5},
		{"too_dense", coord.WorkArea{X: 1e9, Y: 1e9}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MinorLines(c.wa, c.spacing); got != nil {
				t.Errorf("got %d lines, want none", len(got))
			}
		})
	}
}

func TestBoundary(t *testing.T) {
	got := Boundary(coord.WorkArea{X: 300, Y: 200})
	want := rect.Rect{LLx: -150, LLy: -100, URx: 150, URy: 100}
	if got != want {
		t.Errorf("Boundary = %v, want %v", got, want)
	}
	if Boundary(coord.WorkArea{X: -1, Y: 1}) != (rect.Rect{}) {
		t.Error("degenerate work area should give the zero rectangle")
	}
}

func TestAxes(t *testing.T) {
	x, y, ok := Axes(coord.WorkArea{X: 300, Y: 200})
	if !ok {
		t.Fatal("Axes failed")
	}
	if x.A.X != -150 || x.B.X != 150 || x.A.Y != 0 || x.B.Y != 0 {
		t.Errorf("x axis = %v", x)
	}
	if y.A.Y != -100 || y.B.Y != 100 || y.A.X != 0 || y.B.X != 0 {
		t.Errorf("y axis = %v", y)
	}
	if _, _, ok := Axes(coord.WorkArea{}); ok {
		t.Error("Axes succeeded for an empty work area")
	}
}

func equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
