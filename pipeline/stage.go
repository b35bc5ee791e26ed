package pipeline

import (
	"context"
	"slices"
)

// Stage is one named step of a build. Before and After declare ordering constraints
// against other stages: s.Before(o) means s must run before o, s.After(o) means s must run
// after o.
type Stage interface {
	Name() string
	Before(other Stage) bool
	After(other Stage) bool
	Run(ctx context.Context, bc BuildContext) (BuildContext, error)
}

// RunFunc is the body of a stage built with NewStage.
type RunFunc func(ctx context.Context, bc BuildContext) (BuildContext, error)

// StageOption configures a stage built with NewStage.
type StageOption func(*funcStage)

// RunsBefore requires the stage to run before the named stages.
func RunsBefore(names ...string) StageOption {
	return func(s *funcStage) {
		s.before = append(s.before, names...)
	}
}

// RunsAfter requires the stage to run after the named stages.
func RunsAfter(names ...string) StageOption {
	return func(s *funcStage) {
		s.after = append(s.after, names...)
	}
}

type funcStage struct {
	name   string
	run    RunFunc
	before []string
	after  []string
}

// NewStage returns a Stage named name that runs fn.
func NewStage(name string, fn RunFunc, opts ...StageOption) Stage {
	s := &funcStage{name: name, run: fn}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *funcStage) Name() string            { return s.name }
func (s *funcStage) Before(other Stage) bool { return slices.Contains(s.before, other.Name()) }
func (s *funcStage) After(other Stage) bool  { return slices.Contains(s.after, other.Name()) }

func (s *funcStage) Run(ctx context.Context, bc BuildContext) (BuildContext, error) {
	if s.run == nil {
		return bc, nil
	}
	return s.run(ctx, bc)
}
