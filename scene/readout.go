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
	"fmt"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/cncview/coord"
)

// DefaultUnit is the unit label used when none is configured.
const DefaultUnit = "mm"

// Readouts are the formatted text lines shown next to the view.
type Readouts struct {
	X, Y, Z string
	Scale   string
}

// Lines returns the readouts in display order.
func (r Readouts) Lines() []string {
	return []string{r.X, r.Y, r.Z, r.Scale}
}

// FormatReadouts formats a position and a scale for display, for example
// "X: 12.35 mm" and "Scale: 120%". Non-finite coordinates are shown as
// "---".
func FormatReadouts(p coord.Position, scale float64, unit string) Readouts {
	if unit == "" {
		unit = DefaultUnit
	}
	return Readouts{
		X:     "X: " + formatCoord(p.X, 2) + " " + unit,
		Y:     "Y: " + formatCoord(p.Y, 2) + " " + unit,
		Z:     "Z: " + formatCoord(p.Z, 2) + " " + unit,
		Scale: fmt.Sprintf("Scale: %d%%", int(math.Round(scale*100))),
	}
}

func formatCoord(x float64, digits int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "---"
	}
	s := strconv.FormatFloat(x, 'f', digits, 64)
	if strings.TrimLeft(s, "-0.") == "" {
		// no "-0.00"
		s = strings.TrimPrefix(s, "-")
	}
	return s
}

// positionLabel is the short label drawn next to the position marker.
func positionLabel(p coord.Position) string {
	return "(" + formatCoord(p.X, 1) + ", " + formatCoord(p.Y, 1) + ")"
}
