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

package toolpath

import (
	"time"

	sf "github.com/peterstace/simplefeatures/geom"
	"seehuhn.de/go/geom/rect"
)

// Summary describes a tool path as a whole.
//
// Lengths are plan-view (XY) lengths, matching what the 2D view shows;
// pure plunges therefore have length zero.
type Summary struct {
	Segments int
	Rapids   int
	Feeds    int
	Arcs     int
	Unknown  int
	Skipped  int // segments with non-finite coordinates

	RapidLength   float64
	CuttingLength float64 // feed, arc and unknown moves

	// CuttingTime is estimated from the programmed feed rates.
	// Segments without a feed rate do not contribute.
	CuttingTime time.Duration

	// Envelope is the plan-view bounding box of all finite segments.
	// HasEnvelope is false if there are no such segments.
	Envelope    rect.Rect
	HasEnvelope bool
}

// Summarize computes statistics for a list of segments.
func Summarize(segments []Segment) Summary {
	s := Summary{Segments: len(segments)}

	var rapid, cutting []sf.LineString
	var plunges []sf.XY
	var minutes float64
	for _, seg := range segments {
		switch seg.Type {
		case Rapid:
			s.Rapids++
		case Feed:
			s.Feeds++
		case Arc:
			s.Arcs++
		default:
			s.Unknown++
		}
		if !seg.IsFinite() {
			s.Skipped++
			continue
		}

		if seg.Start.X == seg.End.X && seg.Start.Y == seg.End.Y {
			// plunge or retract: no plan-view length
			plunges = append(plunges, sf.XY{X: seg.Start.X, Y: seg.Start.Y})
			continue
		}
		ls, err := lineString(seg)
		if err != nil {
			s.Skipped++
			continue
		}
		if seg.Type == Rapid {
			rapid = append(rapid, ls)
			continue
		}
		cutting = append(cutting, ls)
		if seg.FeedRate > 0 {
			minutes += ls.Length() / seg.FeedRate
		}
	}

	rapidML := sf.NewMultiLineString(rapid)
	cuttingML := sf.NewMultiLineString(cutting)
	s.RapidLength = rapidML.Length()
	s.CuttingLength = cuttingML.Length()
	s.CuttingTime = time.Duration(minutes * float64(time.Minute))

	env := rapidML.Envelope().ExpandToIncludeEnvelope(cuttingML.Envelope())
	if penv, err := sf.NewEnvelope(plunges); err == nil {
		env = env.ExpandToIncludeEnvelope(penv)
	}
	if lo, hi, ok := env.MinMaxXYs(); ok {
		s.Envelope = rect.Rect{LLx: lo.X, LLy: lo.Y, URx: hi.X, URy: hi.Y}
		s.HasEnvelope = true
	}
	return s
}

func lineString(seg Segment) (sf.LineString, error) {
	seq := sf.NewSequence([]float64{
		seg.Start.X, seg.Start.Y,
		seg.End.X, seg.End.Y,
	}, sf.DimXY)
	return sf.NewLineString(seq)
}
