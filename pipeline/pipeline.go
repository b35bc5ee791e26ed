package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// State is the terminal state of a build.
type State string

const (
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Outcome summarises a finished build. Stage is empty for failures that happen before any
// stage runs, such as an unorderable stage set.
type Outcome struct {
	State   State
	Stage   string
	Err     error
	Context BuildContext
}

// OutcomeOf classifies the result of Run.
func OutcomeOf(bc BuildContext, err error) Outcome {
	if err == nil {
		return Outcome{State: StateCompleted, Context: bc}
	}
	o := Outcome{State: StateFailed, Err: err}
	var se *StageError
	if errors.As(err, &se) {
		o.Stage = se.Stage
	}
	return o
}

// Option configures an Orchestrator.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	buildID string
}

// WithLogger sets the logger for build progress. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithBuildID fixes the build id attached to log lines. By default every Run draws a new one.
func WithBuildID(id string) Option {
	return func(o *options) {
		o.buildID = id
	}
}

// Orchestrator runs a fixed set of stages in dependency order.
type Orchestrator struct {
	stages []Stage
	opts   options
}

// New returns an Orchestrator over stages. Ordering errors surface from Order and Run.
func New(stages []Stage, opts ...Option) *Orchestrator {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Orchestrator{stages: append([]Stage(nil), stages...), opts: o}
}

// Order returns the stages in execution order.
func (o *Orchestrator) Order() ([]Stage, error) {
	return Order(o.stages)
}

// Run executes every stage in order. On failure it returns the input context unchanged
// together with a *StageError (or the ordering error), so callers never see partial output.
func (o *Orchestrator) Run(ctx context.Context, in BuildContext) (BuildContext, error) {
	logger := o.opts.logger.With("build", o.buildID())
	ordered, err := o.Order()
	if err != nil {
		logger.ErrorContext(ctx, "pipeline order", "error", err)
		return in, err
	}
	bc := in
	if bc.Logger == nil {
		bc.Logger = logger
	}
	start := time.Now()
	for _, s := range ordered {
		name := s.Name()
		if err := ctx.Err(); err != nil {
			return in, &StageError{Stage: name, Err: err}
		}
		stageStart := time.Now()
		next, err := runStage(ctx, s, bc)
		if err != nil {
			logger.ErrorContext(ctx, "stage failed", "stage", name, "duration", time.Since(stageStart), "error", err)
			return in, &StageError{Stage: name, Err: err}
		}
		logger.DebugContext(ctx, "stage done", "stage", name, "duration", time.Since(stageStart))
		bc = next
	}
	logger.InfoContext(ctx, "build completed",
		"duration", time.Since(start),
		"units", len(bc.Units),
		"actions", len(bc.Actions),
		"warnings", len(bc.Warnings))
	return bc, nil
}

func (o *Orchestrator) buildID() string {
	if o.opts.buildID != "" {
		return o.opts.buildID
	}
	id, err := NewBuildID()
	if err != nil {
		return buildIDPrefix + "unknown"
	}
	return id
}

func runStage(ctx context.Context, s Stage, bc BuildContext) (next BuildContext, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &panicError{p: p}
		}
	}()
	return s.Run(ctx, bc)
}
