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
	"context"
	"errors"
	"flag"
	"os"

	"github.com/rs/zerolog"

	"seehuhn.de/go/cncview/coord"
	"seehuhn.de/go/cncview/ebitenview"
	"seehuhn.de/go/cncview/internal/feed"
)

func runLive(args []string) error {
	fs := flag.NewFlagSet("live", flag.ExitOnError)
	var c common
	c.register(fs)
	title := fs.String("title", "cncview", "window title")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := c.open(os.Stderr)
	if err != nil {
		return err
	}

	var positions chan coord.Position
	if c.feedPath != "" {
		w, err := feed.NewWatcher(c.feedPath, s.cfg.Watch.Debounce)
		if err != nil {
			return err
		}
		defer w.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		positions = make(chan coord.Position, 16)
		go forward(ctx, c.feedPath, w.Changes(), positions, s.log)
	}

	return ebitenview.Run(ebitenview.New(s.ctrl, positions), *title)
}

// forward reads the feed after every change and sends the position to
// out. Unreadable feeds are logged and skipped.
func forward(ctx context.Context, fname string, changes <-chan struct{}, out chan<- coord.Position, log zerolog.Logger) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
		}

		pos, err := feed.ReadLatest(fname)
		if errors.Is(err, feed.ErrEmpty) {
			continue
		} else if err != nil {
			log.Warn().Err(err).Str("feed", fname).Msg("feed not readable")
			continue
		}

		select {
		case out <- pos:
		case <-ctx.Done():
			return
		}
	}
}
