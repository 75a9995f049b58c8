// Package script runs sequences of list operations against named lists.
// It backs the linkx command line and drives every operation of
// package link from a config file.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"

	"github.com/pmkol/linkx/pkg/link"
	"github.com/pmkol/linkx/pkg/store"
)

// OpConfig is one step of a script. Which fields are used depends on Op.
type OpConfig struct {
	Op    string `yaml:"op"`
	List  string `yaml:"list"`
	Other string `yaml:"other"`
	Into  string `yaml:"into"`
	Index int    `yaml:"index"`
	Count int    `yaml:"count"`
	Value any    `yaml:"value"`
	Expr  string `yaml:"expr"`
	Key   string `yaml:"key"`
}

type RunnerOpts struct {
	// Out receives the output of print-like ops. Default is io.Discard.
	Out io.Writer

	// Store backs save and load. Optional.
	Store store.Backend

	// Metrics is optional.
	Metrics *Metrics

	// Logger is the *zap.Logger for this Runner.
	// A nil Logger will disable logging.
	Logger *zap.Logger
}

var errUnknownOp = errors.New("unknown op")

// Runner owns a set of named lists. A Runner is not safe for
// concurrent use.
type Runner struct {
	opts  RunnerOpts
	lists map[string]*link.Link[any]
}

func NewRunner(opts RunnerOpts) *Runner {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Runner{
		opts:  opts,
		lists: make(map[string]*link.Link[any]),
	}
}

// Define creates or replaces the list name with vs.
func (r *Runner) Define(name string, vs []any) {
	r.lists[name] = link.FromSlice(normalizeAll(vs))
}

// DefineAll defines every list of m in name order.
func (r *Runner) DefineAll(m map[string][]any) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.Define(name, m[name])
		r.observeLen(name)
	}
}

// List returns the list called name.
func (r *Runner) List(name string) (*link.Link[any], bool) {
	l, ok := r.lists[name]
	return l, ok
}

// Run executes ops in order and stops at the first failing op.
func (r *Runner) Run(ctx context.Context, ops []OpConfig) error {
	for i := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Exec(ctx, &ops[i]); err != nil {
			return fmt.Errorf("op #%d: %w", i, err)
		}
	}
	return nil
}

// Exec executes a single op.
func (r *Runner) Exec(ctx context.Context, op *OpConfig) error {
	lg := r.opts.Logger.With(zap.String("op", op.Op), zap.String("list", op.List))

	var err error
	if f, ok := opFuncs[op.Op]; ok {
		err = f(ctx, r, op)
	} else {
		err = errUnknownOp
	}
	if m := r.opts.Metrics; m != nil {
		m.ops.WithLabelValues(op.Op).Inc()
		if err != nil {
			m.errs.WithLabelValues(op.Op).Inc()
		}
	}
	if err != nil {
		lg.Warn("op failed", zap.Error(err))
		return fmt.Errorf("%s: %w", op.Op, err)
	}

	r.observeLen(op.List)
	if len(op.Into) > 0 {
		r.observeLen(op.Into)
	}
	if len(op.Other) > 0 {
		r.observeLen(op.Other)
	}
	lg.Debug("op done")
	return nil
}

func (r *Runner) observeLen(name string) {
	m := r.opts.Metrics
	if m == nil {
		return
	}
	if l, ok := r.lists[name]; ok {
		m.listLen.WithLabelValues(name).Set(float64(l.Len()))
	}
}

// get returns the list called name or an error.
func (r *Runner) get(name string) (*link.Link[any], error) {
	l, ok := r.lists[name]
	if !ok {
		return nil, fmt.Errorf("no such list %q", name)
	}
	return l, nil
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.opts.Out, format, args...)
}

// printOpt prints v, or "none" when ok is false.
func (r *Runner) printOpt(v any, ok bool) {
	if !ok {
		r.printf("none\n")
		return
	}
	r.printf("%v\n", v)
}
