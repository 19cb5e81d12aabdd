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

// Package feed follows a position feed file.
//
// A feed file is written by the machine-control layer. Every line holds one
// position, either as three numbers or as a JSON object. Only the last
// non-empty line matters.
package feed

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"seehuhn.de/go/cncview/coord"
)

// ErrEmpty is returned by [ReadLatest] for a feed without positions.
var ErrEmpty = errors.New("feed contains no position")

// DefaultDebounce is the quiet time after a write before a change is
// reported.
const DefaultDebounce = 100 * time.Millisecond

// ReadLatest returns the position on the last non-empty line of the file.
func ReadLatest(fname string) (coord.Position, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return coord.Position{}, err
	}
	return Latest(data)
}

// Latest returns the position on the last non-empty line of data.
func Latest(data []byte) (coord.Position, error) {
	var last []byte
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if line := bytes.TrimSpace(sc.Bytes()); len(line) > 0 {
			last = append(last[:0], line...)
		}
	}
	if err := sc.Err(); err != nil {
		return coord.Position{}, fmt.Errorf("reading feed: %w", err)
	}
	if last == nil {
		return coord.Position{}, ErrEmpty
	}
	return coord.ParsePosition(string(last))
}

// Watcher reports changes of a feed file.
//
// The parent directory is watched, so that the file may be created after
// the watcher, or replaced by a rename.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange chan struct{}

	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher creates a watcher for the given feed file.
// A non-positive debounce selects [DefaultDebounce].
func NewWatcher(fname string, debounce time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(fname)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	watcher := &Watcher{
		watcher:  w,
		path:     fname,
		debounce: debounce,
		onChange: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	go watcher.loop()
	return watcher, nil
}

// Changes returns a channel that receives a signal after the feed file
// changed. Signals are coalesced: a burst of writes produces one signal,
// and a signal which has not been consumed absorbs all later ones.
// The channel is closed once the watcher has stopped.
func (w *Watcher) Changes() <-chan struct{} {
	return w.onChange
}

// Close stops the watcher. It is safe to call Close more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) loop() {
	base := filepath.Base(w.path)
	var timer *time.Timer
	var fire <-chan time.Time // nil while no change is pending
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		close(w.onChange)
	}()
	for {
		select {
		case <-w.done:
			return
		case <-fire:
			fire = nil
			w.signal()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) signal() {
	select {
	case w.onChange <- struct{}{}:
	default: // already signalled
	}
}
