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
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"seehuhn.de/go/cncview/coord"
	"seehuhn.de/go/cncview/internal/feed"
	"seehuhn.de/go/cncview/internal/telemetry"
	"seehuhn.de/go/cncview/scene"
	"seehuhn.de/go/cncview/termview"
	"seehuhn.de/go/cncview/toolpath"
)

// pixelsPerDot is the number of logical pixels per braille dot.
// Terminal cells are about twice as high as wide, so a 2×4 dot cell
// has square dots.
const pixelsPerDot = 2

// chromeRows is the number of terminal rows below the drawing.
const chromeRows = 2

// --- Messages ---

type feedChangedMsg struct{}

type positionMsg struct {
	pos coord.Position
	err error
}

// --- Key bindings ---

type keyMap struct {
	Grid   key.Binding
	Trail  key.Binding
	Rapid  key.Binding
	Feed   key.Binding
	Origin key.Binding
	Home   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Grid:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid")),
	Trail:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "trail")),
	Rapid:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rapid moves")),
	Feed:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "feed moves")),
	Origin: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "set origin")),
	Home:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "go home")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grid, k.Trail, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Grid, k.Trail, k.Rapid, k.Feed},
		{k.Origin, k.Home, k.Help, k.Quit},
	}
}

// --- Styles ---

var (
	readoutStyle = lipgloss.NewStyle().Bold(true)
	onStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	offStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)

// --- Model ---

// tuiModel shows the frames of a controller on a terminal.
type tuiModel struct {
	ctrl     *scene.Controller
	rec      *telemetry.Recorder
	canvas   *termview.Canvas
	renderer scene.Renderer
	log      zerolog.Logger

	feedPath string
	padding  float64

	help   help.Model
	width  int
	height int
	notice string
	err    error
}

func newTUIModel(s *session, feedPath string) tuiModel {
	m := tuiModel{
		ctrl:     s.ctrl,
		rec:      s.rec,
		log:      s.log,
		feedPath: feedPath,
		padding:  s.cfg.Viewport.Padding,
		help:     help.New(),
	}
	m.resize(80, 24)
	return m
}

// resize fits the canvas into a terminal of the given size and adjusts
// the viewport to match.
func (m *tuiModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	cols := max(width, 1)
	rows := max(height-chromeRows, 1)
	m.canvas = termview.New(cols, rows)
	m.renderer = m.rec.Wrap("term", m.canvas)
	m.ctrl.Resize(coord.Viewport{
		Width:   float64(2 * cols * pixelsPerDot),
		Height:  float64(4 * rows * pixelsPerDot),
		Padding: m.padding,
	})
}

func (m tuiModel) Init() tea.Cmd {
	return m.readFeed()
}

func (m tuiModel) readFeed() tea.Cmd {
	if m.feedPath == "" {
		return nil
	}
	fname := m.feedPath
	return func() tea.Msg {
		pos, err := feed.ReadLatest(fname)
		return positionMsg{pos: pos, err: err}
	}
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		flags := m.ctrl.State().Flags
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Grid):
			m.ctrl.ToggleGrid(!flags.ShowGrid)
		case key.Matches(msg, keys.Trail):
			m.ctrl.ToggleTrail(!flags.ShowTrail)
		case key.Matches(msg, keys.Rapid):
			m.ctrl.SetVisibility(toolpath.Visibility{ShowRapid: !flags.ShowRapid, ShowFeed: flags.ShowFeed})
		case key.Matches(msg, keys.Feed):
			m.ctrl.SetVisibility(toolpath.Visibility{ShowRapid: flags.ShowRapid, ShowFeed: !flags.ShowFeed})
		case key.Matches(msg, keys.Origin):
			m.ctrl.SetOrigin()
			m.notice = "set origin requested"
		case key.Matches(msg, keys.Home):
			m.ctrl.GoHome()
			m.notice = "homing requested"
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case feedChangedMsg:
		return m, m.readFeed()

	case positionMsg:
		if msg.err != nil {
			m.log.Debug().Err(msg.err).Str("feed", m.feedPath).Msg("feed not readable")
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.ctrl.SetPosition(msg.pos)
	}

	return m, nil
}

func (m tuiModel) View() string {
	frame := m.ctrl.Frame()
	if err := m.renderer.Render(frame); err != nil {
		return errorStyle.Render("render: " + err.Error())
	}

	var b strings.Builder
	b.WriteString(m.canvas.String())
	b.WriteByte('\n')
	if m.help.ShowAll {
		// the full help has two lines and replaces the status line
		b.WriteString(m.help.View(keys))
	} else {
		b.WriteString(m.status(frame))
		b.WriteByte('\n')
		b.WriteString(m.help.View(keys))
	}
	return b.String()
}

// status formats the readouts and the toggles on one line.
func (m tuiModel) status(frame *scene.Model) string {
	parts := []string{readoutStyle.Render(strings.Join(frame.Readouts.Lines(), "  "))}

	flags := m.ctrl.State().Flags
	for _, f := range []struct {
		name string
		on   bool
	}{
		{"grid", flags.ShowGrid},
		{"trail", flags.ShowTrail},
		{"rapid", flags.ShowRapid},
		{"feed", flags.ShowFeed},
	} {
		if f.on {
			parts = append(parts, onStyle.Render(f.name))
		} else {
			parts = append(parts, offStyle.Render(f.name))
		}
	}

	switch {
	case m.err != nil:
		parts = append(parts, errorStyle.Render(m.err.Error()))
	case m.notice != "":
		parts = append(parts, noticeStyle.Render(m.notice))
	}
	return strings.Join(parts, "  ")
}
