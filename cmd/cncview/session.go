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
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"seehuhn.de/go/cncview/coord"
	"seehuhn.de/go/cncview/internal/config"
	"seehuhn.de/go/cncview/internal/feed"
	"seehuhn.de/go/cncview/internal/logging"
	"seehuhn.de/go/cncview/internal/telemetry"
	"seehuhn.de/go/cncview/scene"
	"seehuhn.de/go/cncview/toolpath"
)

// common holds the flags shared by all commands.
type common struct {
	configPath string
	jobPath    string
	feedPath   string
	position   string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "configuration file (YAML or JSON)")
	fs.StringVar(&c.jobPath, "job", "", "tool path job file (JSON)")
	fs.StringVar(&c.feedPath, "feed", "", "position feed file")
	fs.StringVar(&c.position, "position", "", "machine position, as \"x y [z]\"")
}

// session is the state shared by the commands after start-up.
type session struct {
	cfg  *config.Config
	log  zerolog.Logger
	rec  *telemetry.Recorder
	ctrl *scene.Controller
	job  *toolpath.Job
}

// open loads the configuration and the job, reads the initial position
// and sets up the view controller. Log messages are written to logOut.
func (c *common) open(logOut io.Writer) (*session, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	log := logging.New(logOut, cfg.LogLevel)

	state := cfg.State()
	var job *toolpath.Job
	if c.jobPath != "" {
		job, err = toolpath.Load(c.jobPath)
		if err != nil {
			return nil, err
		}
		state = state.WithSegments(job.Segments)
		log.Info().
			Str("job", job.Name).
			Int("segments", len(job.Segments)).
			Msg("job loaded")
	}

	switch {
	case c.position != "":
		p, err := coord.ParsePosition(c.position)
		if err != nil {
			return nil, fmt.Errorf("-position: %w", err)
		}
		state = state.WithPosition(p)
	case c.feedPath != "":
		p, err := feed.ReadLatest(c.feedPath)
		switch {
		case err == nil:
			state = state.WithPosition(p)
		case errors.Is(err, os.ErrNotExist), errors.Is(err, feed.ErrEmpty):
			// The machine may not have reported yet.
			log.Warn().Err(err).Str("feed", c.feedPath).Msg("no initial position")
		default:
			return nil, err
		}
	}

	rec, err := telemetry.New(cfg.Telemetry.Enabled)
	if err != nil {
		return nil, err
	}

	ctrl := scene.NewController(state,
		scene.WithActions(logging.Actions(log)),
		scene.WithLogger(log))

	return &session{
		cfg:  cfg,
		log:  log,
		rec:  rec,
		ctrl: ctrl,
		job:  job,
	}, nil
}
