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

// Package telemetry records frame metrics with OpenTelemetry.
//
// The instruments are taken from the global meter provider. Without an
// installed SDK, or with telemetry disabled, all measurements are dropped.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"seehuhn.de/go/cncview/scene"
)

const instrumentationName = "seehuhn.de/go/cncview/internal/telemetry"

// Recorder holds the frame instruments.
type Recorder struct {
	frames     metric.Int64Counter
	duration   metric.Float64Histogram
	primitives metric.Int64Histogram
}

// New returns a recorder using the global meter provider, or a recorder
// which drops everything if enabled is false.
func New(enabled bool) (*Recorder, error) {
	var m metric.Meter = noop.Meter{}
	if enabled {
		m = otel.Meter(instrumentationName)
	}
	return NewWithMeter(m)
}

// NewWithMeter returns a recorder using the given meter.
func NewWithMeter(m metric.Meter) (*Recorder, error) {
	frames, err := m.Int64Counter("cncview.frames",
		metric.WithDescription("Number of rendered frames"),
		metric.WithUnit("{frame}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create frame counter: %w", err)
	}
	duration, err := m.Float64Histogram("cncview.render.duration",
		metric.WithDescription("Time spent in a renderer per frame"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}
	primitives, err := m.Int64Histogram("cncview.frame.primitives",
		metric.WithDescription("Number of draw commands per frame"),
		metric.WithUnit("{command}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create primitive histogram: %w", err)
	}
	return &Recorder{
		frames:     frames,
		duration:   duration,
		primitives: primitives,
	}, nil
}

// Frame records one rendered frame.
func (r *Recorder) Frame(ctx context.Context, backend string, m *scene.Model, d time.Duration, failed bool) {
	attrs := metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.Bool("degraded", m.Degraded),
		attribute.Bool("failed", failed),
	)
	r.frames.Add(ctx, 1, attrs)
	r.duration.Record(ctx, d.Seconds(), attrs)
	r.primitives.Record(ctx, int64(len(m.Commands)), attrs)
}

// Wrap returns a renderer which forwards to next and records every frame.
func (r *Recorder) Wrap(backend string, next scene.Renderer) scene.Renderer {
	return &measured{rec: r, backend: backend, next: next, now: time.Now}
}

type measured struct {
	rec     *Recorder
	backend string
	next    scene.Renderer
	now     func() time.Time
}

func (m *measured) Render(model *scene.Model) error {
	start := m.now()
	err := m.next.Render(model)
	m.rec.Frame(context.Background(), m.backend, model, m.now().Sub(start), err != nil)
	return err
}
