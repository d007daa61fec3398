package massaction

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

var (
	// ErrInvalidTransition is returned when the runner is driven out of order.
	ErrInvalidTransition = errors.New("invalid runner transition")

	// ErrBusy is returned when a step is requested while another is in flight.
	ErrBusy = errors.New("a change is already being applied")
)

// State represents the runner lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// IsTerminal reports whether no more steps can run.
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case StateIdle:
		return to == StateRunning
	case StateRunning:
		return to == StateRunning || to == StateSucceeded || to == StateFailed
	default:
		return false
	}
}

// Item is one change to apply.
type Item[R any] struct {
	ID    string
	Obj   R
	Value string
}

// ApplyFunc applies one change. Timeouts are up to the implementation.
type ApplyFunc[R any] func(ctx context.Context, obj R, value string) error

// Failure is the status reported when an item fails. Items before Index
// stay applied; items after it never run.
type Failure struct {
	Index   int
	ID      string
	Title   string
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s %s: %s", f.Title, f.ID, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Progress is a snapshot of a runner.
type Progress struct {
	State State
	Index int
	Done  int
	Total int
}

// Percent returns the share of items started, the way a progress bar
// shows it while an item is in flight.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 100
	}
	switch p.State {
	case StateIdle:
		return 0
	case StateSucceeded:
		return 100
	case StateFailed:
		return 100 * p.Done / p.Total
	default:
		return 100 * min(p.Index+1, p.Total) / p.Total
	}
}

// RunnerOption configures a runner.
type RunnerOption func(*runnerOpts)

type runnerOpts struct {
	title      string
	onProgress func(Progress)
	message    func(error) string
}

// WithTitle sets the failure title.
func WithTitle(title string) RunnerOption {
	return func(o *runnerOpts) { o.title = title }
}

// WithProgress registers a hook fired after every applied item.
func WithProgress(f func(Progress)) RunnerOption {
	return func(o *runnerOpts) { o.onProgress = f }
}

// WithMessage sets how an apply error is turned into a failure message.
func WithMessage(f func(error) string) RunnerOption {
	return func(o *runnerOpts) { o.message = f }
}

// Runner applies items one at a time, in order, and stops at the first
// failure. Nothing is rolled back.
type Runner[R any] struct {
	items    []Item[R]
	apply    ApplyFunc[R]
	opts     runnerOpts
	state    State
	index    int
	inFlight bool
	failure  *Failure
	mx       sync.Mutex
}

// NewRunner returns an idle runner.
func NewRunner[R any](items []Item[R], apply ApplyFunc[R], oo ...RunnerOption) *Runner[R] {
	opts := runnerOpts{
		title:   "Failed to apply change",
		message: func(err error) string { return err.Error() },
	}
	for _, o := range oo {
		o(&opts)
	}

	return &Runner[R]{
		items: items,
		apply: apply,
		opts:  opts,
	}
}

func (r *Runner[R]) transition(to State) error {
	if !isAllowedTransition(r.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.state, to)
	}
	r.state = to
	return nil
}

// State returns the current state.
func (r *Runner[R]) State() State {
	r.mx.Lock()
	defer r.mx.Unlock()
	return r.state
}

// Failure returns the failure status, if any.
func (r *Runner[R]) Failure() *Failure {
	r.mx.Lock()
	defer r.mx.Unlock()
	return r.failure
}

// Progress returns the index being applied and the total.
func (r *Runner[R]) Progress() Progress {
	r.mx.Lock()
	defer r.mx.Unlock()
	return r.progress()
}

func (r *Runner[R]) progress() Progress {
	return Progress{State: r.state, Index: r.index, Done: r.index, Total: len(r.items)}
}

// Step applies the next item and returns the resulting state. The first
// step moves the runner out of Idle. A failing item moves it to Failed and
// returns the *Failure.
func (r *Runner[R]) Step(ctx context.Context) (State, error) {
	r.mx.Lock()
	if r.inFlight {
		r.mx.Unlock()
		return StateRunning, ErrBusy
	}
	if err := r.transition(StateRunning); err != nil {
		s := r.state
		r.mx.Unlock()
		return s, err
	}
	if r.index >= len(r.items) {
		err := r.transition(StateSucceeded)
		r.mx.Unlock()
		return StateSucceeded, err
	}
	it, idx := r.items[r.index], r.index
	r.inFlight = true
	r.mx.Unlock()

	log.Debugf("applying %d/%d on %s", idx+1, len(r.items), it.ID)
	err := r.apply(ctx, it.Obj, it.Value)

	r.mx.Lock()
	r.inFlight = false
	if err != nil {
		r.failure = &Failure{
			Index:   idx,
			ID:      it.ID,
			Title:   r.opts.title,
			Message: r.opts.message(err),
			Err:     err,
		}
		_ = r.transition(StateFailed)
		f := r.failure
		r.mx.Unlock()
		log.Warnf("mass action stopped at %d/%d: %v", idx+1, len(r.items), err)
		return StateFailed, f
	}
	r.index++
	if r.index == len(r.items) {
		_ = r.transition(StateSucceeded)
	}
	s, p, hook := r.state, r.progress(), r.opts.onProgress
	r.mx.Unlock()

	if hook != nil {
		hook(p)
	}

	return s, nil
}

// Run steps until the runner succeeds or fails.
func (r *Runner[R]) Run(ctx context.Context) error {
	for {
		s, err := r.Step(ctx)
		if err != nil {
			return err
		}
		if s.IsTerminal() {
			return nil
		}
	}
}
