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

// Cncview shows the position of a CNC machine inside its work area.
//
// Usage:
//
//	cncview render [-o frame.png] [-format png|svg|pdf|term]   # draw one frame
//	cncview info -job job.json [-json]                         # summarise a job
//	cncview watch -feed pos.txt                                # terminal view
//	cncview live -feed pos.txt                                 # window
//	cncview version
//
// All commands accept -config, -job, -feed and -position. The position
// feed is a text file whose last non-empty line holds the current
// coordinates, either as "x y [z]" or as a JSON object.
package main

import (
	"fmt"
	"os"

	"seehuhn.de/go/cncview/internal/logging"
)

// Version is set via ldflags at build time (e.g. -X main.Version=v0.1.0).
var Version = "dev"

var commands = map[string]func(args []string) error{
	"render": runRender,
	"info":   runInfo,
	"watch":  runWatch,
	"live":   runLive,
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cncview <render|info|watch|live|version> [flags]")
	fmt.Fprintln(os.Stderr, "run \"cncview <command> -h\" for the flags of a command")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	name := os.Args[1]
	switch name {
	case "version":
		fmt.Printf("cncview %s\n", Version)
		return
	case "help", "-h", "-help", "--help":
		usage()
		return
	}

	run, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "cncview: unknown command %q\n", name)
		usage()
		os.Exit(2)
	}
	if err := run(os.Args[2:]); err != nil {
		log := logging.New(os.Stderr, "info")
		log.Error().Err(err).Str("command", name).Msg("cncview failed")
		os.Exit(1)
	}
}
