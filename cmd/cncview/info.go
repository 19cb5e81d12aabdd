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


package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"seehuhn.de/go/cncview/coord"
	"seehuhn.de/go/cncview/grid"
	"seehuhn.de/go/cncview/toolpath"
)

// jobInfo is the structure for -json mode.
type jobInfo struct {
	Name          string      `json:"name,omitempty"`
	Segments      int         `json:"segments"`
	Rapids        int         `json:"rapids"`
	Feeds         int         `json:"feeds"`
	Arcs          int         `json:"arcs"`
	Unknown       int         `json:"unknown"`
	Skipped       int         `json:"skipped"`
	RapidLength   float64     `json:"rapid_length"`
	CuttingLength float64     `json:"cutting_length"`
	CuttingTime   string      `json:"cutting_time"`
	Envelope      *[4]float64 `json:"envelope,omitempty"`
	Fits          bool        `json:"fits_work_area"`
	Unit          string      `json:"unit"`
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	var c common
	c.register(fs)
	jsonMode := fs.Bool("json", false, "print the summary as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.jobPath == "" {
		return errors.New("info: -job is required")
	}

	s, err := c.open(os.Stderr)
	if err != nil {
		return err
	}

	info := summarize(s.job, s.cfg.WorkArea, s.cfg.Unit)
	if *jsonMode {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	return writeInfo(os.Stdout, info)
}

func summarize(job *toolpath.Job, wa coord.WorkArea, unit string) jobInfo {
	sum := toolpath.Summarize(job.Segments)
	info := jobInfo{
		Name:          job.Name,
		Segments:      sum.Segments,
		Rapids:        sum.Rapids,
		Feeds:         sum.Feeds,
		Arcs:          sum.Arcs,
		Unknown:       sum.Unknown,
		Skipped:       sum.Skipped,
		RapidLength:   sum.RapidLength,
		CuttingLength: sum.CuttingLength,
		CuttingTime:   sum.CuttingTime.Round(time.Second).String(),
		Unit:          unit,
	}
	if sum.HasEnvelope {
		env := sum.Envelope
		info.Envelope = &[4]float64{env.LLx, env.LLy, env.URx, env.URy}

		b := grid.Boundary(wa)
		info.Fits = wa.IsValid() &&
			env.LLx >= b.LLx && env.URx <= b.URx &&
			env.LLy >= b.LLy && env.URy <= b.URy
	}
	return info
}

func writeInfo(w io.Writer, info jobInfo) error {
	name := info.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "job:       %s\n", name)
	fmt.Fprintf(w, "segments:  %d (%d rapid, %d feed, %d arc, %d other)\n",
		info.Segments, info.Rapids, info.Feeds, info.Arcs, info.Unknown)
	if info.Skipped > 0 {
		fmt.Fprintf(w, "skipped:   %d non-finite\n", info.Skipped)
	}
	fmt.Fprintf(w, "rapid:     %.2f %s\n", info.RapidLength, info.Unit)
	fmt.Fprintf(w, "cutting:   %.2f %s\n", info.CuttingLength, info.Unit)
	fmt.Fprintf(w, "time:      %s\n", info.CuttingTime)
	if e := info.Envelope; e != nil {
		fmt.Fprintf(w, "envelope:  (%.2f, %.2f) to (%.2f, %.2f)\n", e[0], e[1], e[2], e[3])
		fits := "yes"
		if !info.Fits {
			fits = "no"
		}
		_, err := fmt.Fprintf(w, "fits:      %s\n", fits)
		return err
	}
	_, err := fmt.Fprintln(w, "envelope:  none")
	return err
}
