// Package lifecycle drives the sample, build and write loop and relocates the
// report when the run is cancelled.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/tinytelemetry/logsheet/internal/logging"
	"github.com/tinytelemetry/logsheet/internal/model"
	"github.com/tinytelemetry/logsheet/internal/relocate"
	"github.com/tinytelemetry/logsheet/internal/report"
	"github.com/tinytelemetry/logsheet/internal/sampler"
)

// State is the controller's lifecycle phase.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateFinalizing
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinalizing:
		return "finalizing"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ReportWriter persists one report snapshot.
type ReportWriter interface {
	Write(ctx context.Context, rep report.Report) error
	Path() string
}

// Config holds controller settings.
type Config struct {
	Interval time.Duration
	Logger   *slog.Logger
	Out      io.Writer // operator status messages, default stdout
}

// Controller owns the sampler and the report file for the lifetime of a run.
type Controller struct {
	sampler *sampler.Sampler
	writer  ReportWriter
	mover   relocate.Mover
	cfg     Config

	state  atomic.Int32
	latest atomic.Pointer[report.Report]
}

// New wires a controller. All collaborators are required.
func New(s *sampler.Sampler, w ReportWriter, m relocate.Mover, cfg Config) (*Controller, error) {
	if s == nil || w == nil || m == nil {
		return nil, errors.New("lifecycle: sampler, writer and mover are required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = model.DefaultInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	return &Controller{sampler: s, writer: w, mover: m, cfg: cfg}, nil
}

// State returns the current lifecycle phase.
func (c *Controller) State() State { return State(c.state.Load()) }

// Latest returns the most recently written report, or nil before the first cycle.
func (c *Controller) Latest() *report.Report { return c.latest.Load() }

// Run cycles until ctx is cancelled, then moves the report to its destination.
// Cancellation is observed between cycles, never in the middle of one.
// A failed cycle ends the run with that error and the report is left in place.
func (c *Controller) Run(ctx context.Context) error {
	c.state.Store(int32(StateRunning))

	for {
		if ctx.Err() != nil {
			return c.finalize(ctx)
		}
		if err := c.Cycle(ctx); err != nil {
			c.state.Store(int32(StateStopped))
			return err
		}

		timer := time.NewTimer(c.cfg.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return c.finalize(ctx)
		case <-timer.C:
		}
	}
}

// Cycle samples one record, logs it and rewrites the report.
func (c *Controller) Cycle(ctx context.Context) error {
	rec := c.sampler.Step()
	logging.LogRecord(ctx, c.cfg.Logger, rec)

	rep := report.Build(c.sampler.Snapshot())
	if err := c.writer.Write(context.WithoutCancel(ctx), rep); err != nil {
		return err
	}
	c.latest.Store(&rep)
	return nil
}

func (c *Controller) finalize(ctx context.Context) error {
	c.state.Store(int32(StateFinalizing))
	defer c.state.Store(int32(StateStopped))

	fmt.Fprintln(c.cfg.Out, "\nLogging interrupted. Moving the report file.")
	dst, err := c.mover.Move(context.WithoutCancel(ctx), c.writer.Path())
	if err != nil {
		return fmt.Errorf("lifecycle: finalize: %w", err)
	}
	fmt.Fprintf(c.cfg.Out, "Report file moved successfully to %s. Exiting.\n", dst)
	return nil
}
