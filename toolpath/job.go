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
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Job is the on-disk form of a tool path.
type Job struct {
	Name     string    `json:"name,omitempty"`
	Segments []Segment `json:"segments"`
}

// Decode reads a JSON job from r.
func Decode(r io.Reader) (*Job, error) {
	var job Job
	dec := json.NewDecoder(r)
	if err := dec.Decode(&job); err != nil {
		return nil, fmt.Errorf("decoding job: %w", err)
	}
	return &job, nil
}

// Load reads a JSON job file.
func Load(fname string) (job *Job, err error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	job, err = Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return job, nil
}

// Encode writes the job to w as indented JSON.
func (j *Job) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(j)
}
