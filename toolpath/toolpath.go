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

// Package toolpath classifies the segments of a precomputed tool path,
// decides which of them are shown and how they are styled.
package toolpath

import (
	"bytes"
	"encoding/json"
	"image/color"
	"strings"

	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/cncview/coord"
)

// MoveType classifies a tool-path segment by the kind of motion.
type MoveType uint8

// Known move types. Any other value is treated like [Feed] when rendering.
const (
	Unknown MoveType = iota
	Rapid
	Feed
	Arc
)

func (t MoveType) String() string {
	switch t {
	case Rapid:
		return "rapid"
	case Feed:
		return "feed"
	case Arc:
		return "arc"
	default:
		return "unknown"
	}
}

// ParseMoveType converts a move type name to a MoveType.
// Both the names used by [MoveType.String] and the G-code words G0 to G3
// are accepted, case-insensitively. The second return value is false if
// the name is not recognised, in which case the result is [Unknown].
func ParseMoveType(s string) (MoveType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rapid", "g0", "g00":
		return Rapid, true
	case "feed", "linear", "g1", "g01":
		return Feed, true
	case "arc", "g2", "g02", "g3", "g03":
		return Arc, true
	default:
		return Unknown, false
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (t MoveType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Unrecognised names
// decode to [Unknown] without error, so that a single malformed segment
// does not prevent the rest of a job from being shown.
func (t *MoveType) UnmarshalText(text []byte) error {
	*t, _ = ParseMoveType(string(text))
	return nil
}

// UnmarshalJSON implements [json.Unmarshaler]. Strings are decoded as in
// [MoveType.UnmarshalText]. Numbers are read as G-code motion numbers, so
// 0 is [Rapid], 1 is [Feed], and 2 or 3 is [Arc]. Other values, including
// numbers of any other kind, decode to [Unknown].
func (t *MoveType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return t.UnmarshalText([]byte(s))
	}

	*t = Unknown
	var g float64
	if json.Unmarshal(data, &g) != nil {
		return nil
	}
	switch g {
	case 0:
		*t = Rapid
	case 1:
		*t = Feed
	case 2, 3:
		*t = Arc
	}
	return nil
}

// Segment is one straight piece of a precomputed tool path.
// Arcs are represented by their chord.
type Segment struct {
	Start coord.Position `json:"start"`
	End   coord.Position `json:"end"`
	Type  MoveType       `json:"type"`

	// FeedRate is the programmed feed in units per minute.
	// Zero means not specified.
	FeedRate float64 `json:"feedRate,omitempty"`
}

// IsFinite reports whether both end points have finite coordinates.
func (s Segment) IsFinite() bool {
	return s.Start.IsFinite() && s.End.IsFinite()
}

// Visibility holds the caller-controlled move type toggles.
type Visibility struct {
	ShowRapid bool
	ShowFeed  bool
}

// ShowAll is the visibility setting which hides nothing.
var ShowAll = Visibility{ShowRapid: true, ShowFeed: true}

// Visible returns the segments which are shown under v, in their original
// order. Rapid moves are hidden by ShowRapid=false and feed moves by
// ShowFeed=false. Arc moves have no toggle and are always shown, and so are
// segments of unknown type.
func Visible(segments []Segment, v Visibility) []Segment {
	res := make([]Segment, 0, len(segments))
	for _, s := range segments {
		switch s.Type {
		case Rapid:
			if !v.ShowRapid {
				continue
			}
		case Feed:
			if !v.ShowFeed {
				continue
			}
		}
		res = append(res, s)
	}
	return res
}

// Style describes how a segment is stroked, in surface pixels.
type Style struct {
	Color color.RGBA
	Width float64
	Dash  []float64 // nil for solid lines
	Cap   graphics.LineCapStyle
}

// Colours used for the different move types.
var (
	RapidColor = color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	FeedColor  = color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	ArcColor   = color.RGBA{R: 0x16, G: 0xa3, B: 0x4a, A: 0xff}
)

// StyleFor returns the stroke style for a move type. Rapid moves are thin
// and dashed, feed moves are thicker and solid, arcs are solid in a third
// colour. Unknown types get the feed style.
//
// The returned Dash slice is freshly allocated and may be modified.
func StyleFor(t MoveType) Style {
	switch t {
	case Rapid:
		return Style{
			Color: RapidColor,
			Width: 1,
			Dash:  []float64{5, 5},
			Cap:   graphics.LineCapButt,
		}
	case Arc:
		return Style{
			Color: ArcColor,
			Width: 2,
			Cap:   graphics.LineCapRound,
		}
	default:
		return Style{
			Color: FeedColor,
			Width: 2,
			Cap:   graphics.LineCapRound,
		}
	}
}

// Markers are the start and end points of a whole job.
type Markers struct {
	Start coord.Position
	End   coord.Position
}

// JobMarkers returns the start point of the first segment and the end point
// of the last segment. The visibility toggles play no role here: callers
// pass the complete segment list, so that the markers always describe the
// whole job. The second return value is false for an empty list.
func JobMarkers(segments []Segment) (Markers, bool) {
	if len(segments) == 0 {
		return Markers{}, false
	}
	return Markers{
		Start: segments[0].Start,
		End:   segments[len(segments)-1].End,
	}, true
}
