package model

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aic/aic/internal/dao"
	"github.com/aic/aic/internal/model1"
	log "github.com/sirupsen/logrus"
)

// DefaultRefreshRate is used when no refresh rate is configured.
const DefaultRefreshRate = 5 * time.Second

// ListFunc fetches the full domain list.
type ListFunc[R any] func(context.Context) ([]R, error)

// FilterFunc keeps the objects it returns true for.
type FilterFunc[R any] func(R) bool

// Watcher fetches a domain list periodically and feeds it to a table.
// Every fetch is a full replacement of the list.
type Watcher[R any] struct {
	name        string
	list        ListFunc[R]
	table       *model1.Table[R]
	refreshRate time.Duration
	listeners   []Listener[R]
	filter      FilterFunc[R]
	last        []R
	cancelFn    context.CancelFunc
	mx          sync.RWMutex
}

var _ TableModel[any] = (*Watcher[any])(nil)

// NewWatcher creates a watcher feeding table with list.
func NewWatcher[R any](name string, list ListFunc[R], table *model1.Table[R], refreshRate time.Duration) *Watcher[R] {
	if refreshRate <= 0 {
		refreshRate = DefaultRefreshRate
	}
	return &Watcher[R]{
		name:        name,
		list:        list,
		table:       table,
		refreshRate: refreshRate,
		listeners:   make([]Listener[R], 0, 2),
	}
}

// AccessorList lists scope through a dao lister and keeps the objects of
// type R.
func AccessorList[R dao.Object](l dao.Lister, scope string) ListFunc[R] {
	return func(ctx context.Context) ([]R, error) {
		oo, err := l.List(ctx, scope)
		if err != nil {
			return nil, err
		}
		out := make([]R, 0, len(oo))
		for _, o := range oo {
			r, ok := o.(R)
			if !ok {
				return nil, fmt.Errorf("unexpected object %T", o)
			}
			out = append(out, r)
		}
		return out, nil
	}
}

// Name returns the watcher name.
func (w *Watcher[R]) Name() string {
	return w.name
}

// Table returns the table fed by the watcher.
func (w *Watcher[R]) Table() *model1.Table[R] {
	return w.table
}

// SetRefreshRate changes the polling interval. It applies on the next Watch.
func (w *Watcher[R]) SetRefreshRate(d time.Duration) {
	w.mx.Lock()
	defer w.mx.Unlock()
	if d > 0 {
		w.refreshRate = d
	}
}

// AddListener registers a listener.
func (w *Watcher[R]) AddListener(l Listener[R]) {
	w.mx.Lock()
	defer w.mx.Unlock()
	w.listeners = append(w.listeners, l)
}

// RemoveListener unregisters a listener.
func (w *Watcher[R]) RemoveListener(l Listener[R]) {
	w.mx.Lock()
	defer w.mx.Unlock()

	for i, listener := range w.listeners {
		if listener == l {
			w.listeners = slices.Delete(w.listeners, i, i+1)
			return
		}
	}
}

// Watch fetches once then refreshes periodically until Stop is called or
// ctx is done. A previous watch is cancelled.
func (w *Watcher[R]) Watch(ctx context.Context) error {
	w.mx.Lock()
	if w.cancelFn != nil {
		w.cancelFn()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	w.cancelFn = cancel
	rate := w.refreshRate
	w.mx.Unlock()

	if err := w.Refresh(watchCtx); err != nil {
		return err
	}
	go w.watchLoop(watchCtx, rate)

	return nil
}

func (w *Watcher[R]) watchLoop(ctx context.Context, rate time.Duration) {
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debugf("watcher %s stopped", w.name)
			return
		case <-ticker.C:
			if err := w.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warnf("watcher %s: %v", w.name, err)
			}
		}
	}
}

// Refresh fetches the list once. On failure the table keeps its data and
// listeners are told the load failed.
func (w *Watcher[R]) Refresh(ctx context.Context) error {
	if w.list == nil {
		return errors.New("no list function configured")
	}

	data, err := w.list(ctx)
	if err != nil {
		err = fmt.Errorf("failed to list %s: %w", w.name, err)
		w.notifyLoadFailed(err)
		return err
	}
	w.mx.Lock()
	w.last = data
	w.mx.Unlock()

	return w.publish(data)
}

// SetFilter narrows the rows fed to the table and re-applies it to the
// last fetched list. A nil filter shows everything. Rows filtered out
// leave the selection.
func (w *Watcher[R]) SetFilter(f FilterFunc[R]) error {
	w.mx.Lock()
	w.filter = f
	data := w.last
	w.mx.Unlock()

	if data == nil {
		return nil
	}
	return w.publish(data)
}

// Last returns the last fetched list, unfiltered.
func (w *Watcher[R]) Last() []R {
	w.mx.RLock()
	defer w.mx.RUnlock()
	return slices.Clone(w.last)
}

func (w *Watcher[R]) publish(data []R) error {
	w.mx.RLock()
	f := w.filter
	w.mx.RUnlock()
	if f != nil {
		kept := make([]R, 0, len(data))
		for _, o := range data {
			if f(o) {
				kept = append(kept, o)
			}
		}
		data = kept
	}

	if w.table != nil {
		if err := w.table.SetData(data); err != nil {
			w.notifyLoadFailed(err)
			return err
		}
	}
	w.notifyDataChanged(data)

	return nil
}

// TextFilter matches objects having a cell whose display text contains q,
// ignoring case. An empty q returns nil.
func TextFilter[R any](q string, cols model1.Columns[R]) FilterFunc[R] {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}

	return func(o R) bool {
		for _, c := range cols {
			if c.Cell == nil {
				continue
			}
			cell, ok := model1.EvalCell(c, o, "")
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(cell.Display), q) {
				return true
			}
		}
		return false
	}
}

// Stop stops the watch loop.
func (w *Watcher[R]) Stop() {
	w.mx.Lock()
	defer w.mx.Unlock()

	if w.cancelFn != nil {
		w.cancelFn()
		w.cancelFn = nil
	}
}

func (w *Watcher[R]) snapshot() []Listener[R] {
	w.mx.RLock()
	defer w.mx.RUnlock()
	return slices.Clone(w.listeners)
}

func (w *Watcher[R]) notifyDataChanged(data []R) {
	for _, l := range w.snapshot() {
		l.DataChanged(data)
	}
}

func (w *Watcher[R]) notifyLoadFailed(err error) {
	for _, l := range w.snapshot() {
		l.LoadFailed(err)
	}
}
