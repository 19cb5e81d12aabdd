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

// Package config loads the settings of the command line tool.
//
// Settings come from built-in defaults, an optional YAML or JSON file, and
// CNCVIEW_* environment variables, in increasing order of priority. Nested
// keys use underscores in variable names, for example
// CNCVIEW_VIEWPORT_WIDTH=640.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"seehuhn.de/go/cncview/coord"
	"seehuhn.de/go/cncview/scene"
)

// EnvPrefix is the prefix of environment variables overriding settings.
const EnvPrefix = "CNCVIEW"

// Config holds all settings.
type Config struct {
	LogLevel  string          `mapstructure:"logLevel"`
	Unit      string          `mapstructure:"unit"`
	Viewport  ViewportConfig  `mapstructure:"viewport"`
	WorkArea  coord.WorkArea  `mapstructure:"workArea"`
	Show      ShowConfig      `mapstructure:"show"`
	Grid      GridConfig      `mapstructure:"grid"`
	Output    OutputConfig    `mapstructure:"output"`
	Watch     WatchConfig     `mapstructure:"watch"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ViewportConfig is the drawing surface size in logical pixels.
type ViewportConfig struct {
	Width      float64 `mapstructure:"width"`
	Height     float64 `mapstructure:"height"`
	Padding    float64 `mapstructure:"padding"`
	PixelRatio float64 `mapstructure:"pixelRatio"`
}

// ShowConfig holds the initial visibility toggles.
type ShowConfig struct {
	Grid  bool `mapstructure:"grid"`
	Trail bool `mapstructure:"trail"`
	Rapid bool `mapstructure:"rapid"`
	Feed  bool `mapstructure:"feed"`
}

// GridConfig holds the grid spacing in world units.
type GridConfig struct {
	Minor float64 `mapstructure:"minor"`
	Major float64 `mapstructure:"major"`
}

// OutputConfig selects the output of the render command.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

// WatchConfig controls how the position feed is followed.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
	Refresh  time.Duration `mapstructure:"refresh"`
}

// TelemetryConfig switches frame metrics on or off.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Formats lists the output formats of the render command.
var Formats = []string{"png", "svg", "pdf", "term"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("unit", "mm")

	v.SetDefault("viewport.width", 400)
	v.SetDefault("viewport.height", 300)
	v.SetDefault("viewport.padding", 20)
	v.SetDefault("viewport.pixelRatio", 1)

	v.SetDefault("workArea.x", 300)
	v.SetDefault("workArea.y", 200)
	v.SetDefault("workArea.z", 100)

	v.SetDefault("show.grid", true)
	v.SetDefault("show.trail", true)
	v.SetDefault("show.rapid", true)
	v.SetDefault("show.feed", true)

	v.SetDefault("grid.minor", 10)
	v.SetDefault("grid.major", 50)

	v.SetDefault("output.format", "png")
	v.SetDefault("output.path", "frame.png")

	v.SetDefault("watch.debounce", "100ms")
	v.SetDefault("watch.refresh", "1s")

	v.SetDefault("telemetry.enabled", false)
}

// Load reads the settings. If path is empty, only the defaults and the
// environment are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings which cannot be rendered in degraded form.
// Degenerate work areas and viewports are accepted.
func (c *Config) Validate() error {
	switch c.Unit {
	case "mm", "in":
	default:
		return fmt.Errorf("unit %q: must be mm or in", c.Unit)
	}
	if !(c.Viewport.PixelRatio > 0) {
		return fmt.Errorf("viewport.pixelRatio %g: must be positive", c.Viewport.PixelRatio)
	}
	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("output.format %q: must be one of %s",
			c.Output.Format, strings.Join(Formats, ", "))
	}
	if c.Watch.Debounce < 0 || c.Watch.Refresh < 0 {
		return fmt.Errorf("watch intervals must not be negative")
	}
	return nil
}

// ViewportSize returns the surface size without the pixel ratio.
func (c *Config) ViewportSize() coord.Viewport {
	return coord.Viewport{
		Width:   c.Viewport.Width,
		Height:  c.Viewport.Height,
		Padding: c.Viewport.Padding,
	}
}

// Flags returns the initial visibility toggles.
func (c *Config) Flags() scene.Flags {
	return scene.Flags{
		ShowGrid:  c.Show.Grid,
		ShowTrail: c.Show.Trail,
		ShowRapid: c.Show.Rapid,
		ShowFeed:  c.Show.Feed,
	}
}

// State returns the initial view state, with the position at the origin
// and an empty trail.
func (c *Config) State() scene.State {
	return scene.State{Input: scene.Input{
		WorkArea: c.WorkArea,
		Viewport: c.ViewportSize(),
		Flags:    c.Flags(),
		Grid:     scene.GridSpacing{Minor: c.Grid.Minor, Major: c.Grid.Major},
		Unit:     c.Unit,
	}}
}
