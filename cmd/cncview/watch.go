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
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"seehuhn.de/go/cncview/internal/feed"
)

func runWatch(args []string) (err error) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	var c common
	c.register(fs)
	logPath := fs.String("log", "", "append log messages to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.feedPath == "" {
		return errors.New("watch: -feed is required")
	}

	// The terminal belongs to the TUI, so log messages go to a file.
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		var f *os.File
		f, err = os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		logOut = f
	}

	s, err := c.open(logOut)
	if err != nil {
		return err
	}

	w, err := feed.NewWatcher(c.feedPath, s.cfg.Watch.Debounce)
	if err != nil {
		return err
	}
	defer w.Close()

	p := tea.NewProgram(newTUIModel(s, c.feedPath), tea.WithAltScreen())

	// Feed file changes into the TUI.
	go func() {
		for range w.Changes() {
			p.Send(feedChangedMsg{})
		}
	}()

	// Polling fallback, in case fsnotify misses events.
	if refresh := s.cfg.Watch.Refresh; refresh > 0 {
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			ticker := time.NewTicker(refresh)
			defer ticker.Stop()
			for {
				select {
				case <-stop:
					return
				case <-ticker.C:
					p.Send(feedChangedMsg{})
				}
			}
		}()
	}

	_, err = p.Run()
	return err
}
