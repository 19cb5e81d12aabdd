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

// Command export writes the test cases as JSON job files, together with an
// index describing the view of every case.
// Run from the module root directory.
//
// Cases with non-finite coordinates have no JSON form and are skipped.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"seehuhn.de/go/cncview/coord"
	"seehuhn.de/go/cncview/testcases"
)

const outDir = "testdata/jobs"

func main() {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		panic(err)
	}

	var index struct {
		TestCases []jsonCase `json:"testcases"`
	}
	for category, tc := range testcases.Each {
		name := category + "_" + tc.Name
		if !tc.IsFinite() || !tc.Position.IsFinite() || !finite(tc.Trail) {
			fmt.Fprintf(os.Stderr, "%s: skipped, not finite\n", name)
			continue
		}

		job := filepath.Join(outDir, name+".json")
		if err := writeJob(job, tc); err != nil {
			panic(fmt.Errorf("%s: %w", name, err))
		}
		index.TestCases = append(index.TestCases, toJSON(name, job, tc))
	}

	f, err := os.Create(filepath.Join(outDir, "index.json"))
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(index); err != nil {
		panic(err)
	}
}

type jsonCase struct {
	Name      string           `json:"name"`
	Job       string           `json:"job"`
	WorkArea  coord.WorkArea   `json:"work_area"`
	Viewport  coord.Viewport   `json:"viewport"`
	Position  coord.Position   `json:"position"`
	Trail     []coord.Position `json:"trail,omitempty"`
	ShowGrid  bool             `json:"show_grid"`
	ShowTrail bool             `json:"show_trail"`
	ShowRapid bool             `json:"show_rapid"`
	ShowFeed  bool             `json:"show_feed"`
	Unit      string           `json:"unit,omitempty"`
}

func toJSON(name, job string, tc *testcases.Case) jsonCase {
	return jsonCase{
		Name:      name,
		Job:       filepath.Base(job),
		WorkArea:  tc.WorkArea,
		Viewport:  tc.Viewport,
		Position:  tc.Position,
		Trail:     tc.Trail,
		ShowGrid:  tc.Flags.ShowGrid,
		ShowTrail: tc.Flags.ShowTrail,
		ShowRapid: tc.Flags.ShowRapid,
		ShowFeed:  tc.Flags.ShowFeed,
		Unit:      tc.Unit,
	}
}

func writeJob(fname string, tc *testcases.Case) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return tc.Job().Encode(f)
}

func finite(pts []coord.Position) bool {
	for _, p := range pts {
		if !p.IsFinite() {
			return false
		}
	}
	return true
}
