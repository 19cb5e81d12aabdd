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

// Package logging sets up the process logger of the command line tool.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"seehuhn.de/go/cncview/scene"
)

// ParseLevel maps a level name to a zerolog level.
// Unknown names select info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a human readable logger writing to w.
func New(w io.Writer, level string) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(out).
		Level(ParseLevel(level)).
		With().Timestamp().
		Logger()
}

// Actions returns view callbacks which log every request at info level.
// Nothing is sent to a machine.
func Actions(log zerolog.Logger) scene.Actions {
	return scene.Actions{
		OnSetOrigin: func() {
			log.Info().Str("action", "set-origin").Msg("action requested")
		},
		OnGoHome: func() {
			log.Info().Str("action", "go-home").Msg("action requested")
		},
		OnGridToggle: func(on bool) {
			log.Info().Str("action", "grid").Bool("on", on).Msg("action requested")
		},
		OnTrailToggle: func(on bool) {
			log.Info().Str("action", "trail").Bool("on", on).Msg("action requested")
		},
	}
}
