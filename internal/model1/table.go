package model1

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	log "github.com/sirupsen/logrus"
)

// ErrUnknownRow is returned when an id does not match any current row.
var ErrUnknownRow = errors.New("unknown row")

// Options configures a table.
type Options struct {
	PageSize        int
	PageSizeOptions []int
	ShowPagination  bool

	// DefaultSort is the initial sort. A negative column picks the first
	// sortable column.
	DefaultSort SortState
}

// DefaultOptions returns paged options sorted by the first sortable column.
func DefaultOptions() Options {
	return Options{
		PageSize:        DefaultPageSize,
		PageSizeOptions: DefaultPageSizeOptions,
		ShowPagination:  true,
		DefaultSort:     SortState{Column: -1},
	}
}

// Hooks are fired after the matching state change, outside the table lock.
type Hooks[R any] struct {
	OnSort         func(SortState)
	OnSelect       func(obj R, selected bool)
	OnToggleExpand func(id string, open bool)
	OnPageChange   func(PageState)
}

// ViewRow represents a visible row decorated with its UI state.
type ViewRow[R any] struct {
	Row[R]
	Selected bool
	Event    RowEvent
}

// Snapshot is what a renderer needs to draw one frame of the table.
type Snapshot[R any] struct {
	Header          Header
	Rows            []ViewRow[R]
	Sort            SortState
	Page            PageState
	PageCount       int
	Total           int
	Selected        int
	PageSizeOptions []int
	ShowPagination  bool
}

// Table composes the row projector, the sort/page engine and the
// expansion/selection store over one column set. Every SetData call is a
// full replacement of the domain list.
type Table[R any] struct {
	cols    Columns[R]
	header  Header
	getID   IDFunc[R]
	opts    Options
	hooks   Hooks[R]
	store   *Store
	engine  *Engine
	rows    Rows[R]
	index   map[string]int
	events  *RowEvents
	removed []string
	mx      sync.RWMutex
}

// NewTable returns an empty table. getID must return the same id for the
// same logical object across refreshes, otherwise selection and expansion
// reset on every refresh.
func NewTable[R any](cols Columns[R], getID IDFunc[R], opts Options) *Table[R] {
	if len(opts.PageSizeOptions) == 0 {
		opts.PageSizeOptions = DefaultPageSizeOptions
	}
	h := cols.Header()
	store := NewStore()

	return &Table[R]{
		cols:   cols,
		header: h,
		getID:  getID,
		opts:   opts,
		store:  store,
		engine: NewEngine(h, store, opts.DefaultSort, opts.PageSize),
		index:  make(map[string]int),
	}
}

// SetHooks registers the table callbacks.
func (t *Table[R]) SetHooks(h Hooks[R]) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.hooks = h
}

// Header returns the table header.
func (t *Table[R]) Header() Header {
	return t.header
}

// Columns returns the column descriptors of the table.
func (t *Table[R]) Columns() Columns[R] {
	return t.cols
}

// Options returns the table options.
func (t *Table[R]) Options() Options {
	return t.opts
}

// SetData replaces the domain list. Selection is pruned of ids that are no
// longer present and the page is clamped to the new size. On a projection
// error the previous data is kept.
func (t *Table[R]) SetData(data []R) error {
	rows, err := Project(data, t.cols, t.getID)
	if err != nil {
		return fmt.Errorf("table refresh: %w", err)
	}

	t.mx.Lock()
	present := make(IDSet, len(rows))
	index := make(map[string]int, len(rows))
	for i, r := range rows {
		present[r.ID] = struct{}{}
		index[r.ID] = i
	}
	if gone := t.store.Prune(present); len(gone) > 0 {
		log.Debugf("selection pruned %d stale rows: %v", len(gone), gone)
	}
	t.events, t.removed = DiffRows(t.events, rows)
	t.rows, t.index = rows, index
	moved := t.engine.Observe(len(rows))
	page, onPage := t.engine.Page(), t.hooks.OnPageChange
	t.mx.Unlock()

	if moved && onPage != nil {
		onPage(page)
	}

	return nil
}

// Len returns the number of rows.
func (t *Table[R]) Len() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return len(t.rows)
}

// Empty returns true if no data is available.
func (t *Table[R]) Empty() bool {
	return t.Len() == 0
}

// Removed returns the ids that disappeared on the last refresh.
func (t *Table[R]) Removed() []string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return slices.Clone(t.removed)
}

// Get returns the domain object with the given id.
func (t *Table[R]) Get(id string) (R, bool) {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.get(id)
}

func (t *Table[R]) get(id string) (R, bool) {
	i, ok := t.index[id]
	if !ok {
		var zero R
		return zero, false
	}
	return t.rows[i].Source, true
}

// Data returns the domain objects in their current sort order.
func (t *Table[R]) Data() []R {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return sources(SortRows(t.rows, t.header, t.engine.Sort()))
}

// View returns the rows of the current page.
func (t *Table[R]) View() Snapshot[R] {
	t.mx.Lock()
	defer t.mx.Unlock()

	visible := VisibleRows(t.engine, t.rows)
	rr := make([]ViewRow[R], 0, len(visible))
	for _, r := range visible {
		re, ok := t.events.Get(r.ID)
		if !ok {
			re = NewRowEvent(EventUnchanged, r.ID, r.Fields())
		}
		rr = append(rr, ViewRow[R]{
			Row:      r,
			Selected: t.store.IsSelected(r.ID),
			Event:    re,
		})
	}

	return Snapshot[R]{
		Header:          t.header,
		Rows:            rr,
		Sort:            t.engine.Sort(),
		Page:            t.engine.Page(),
		PageCount:       t.engine.PageCount(),
		Total:           len(t.rows),
		Selected:        len(t.store.Selected()),
		PageSizeOptions: t.opts.PageSizeOptions,
		ShowPagination:  t.opts.ShowPagination,
	}
}

// SortState returns the active sort.
func (t *Table[R]) SortState() SortState {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.engine.Sort()
}

// Sort sorts by col in the given direction. All expanded rows collapse.
func (t *Table[R]) Sort(col int, dir Direction) error {
	t.mx.Lock()
	if err := t.engine.SetSort(col, dir); err != nil {
		t.mx.Unlock()
		return err
	}
	s, hook := t.engine.Sort(), t.hooks.OnSort
	t.mx.Unlock()

	if hook != nil {
		hook(s)
	}

	return nil
}

// ToggleSort sorts by col, flipping the direction if col is already active.
func (t *Table[R]) ToggleSort(col int) error {
	t.mx.RLock()
	dir := Ascending
	if s := t.engine.Sort(); s.Column == col {
		dir = s.Direction.Flip()
	}
	t.mx.RUnlock()

	return t.Sort(col, dir)
}

// ToggleExpand flips the detail panel of row id and returns its new state.
func (t *Table[R]) ToggleExpand(id string) bool {
	t.mx.Lock()
	open := t.store.ToggleExpand(id)
	hook := t.hooks.OnToggleExpand
	t.mx.Unlock()

	if hook != nil {
		hook(id, open)
	}

	return open
}

// IsExpanded returns true if row id shows its detail panel.
func (t *Table[R]) IsExpanded(id string) bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.store.IsExpanded(id)
}

// Select marks row id as selected or not.
func (t *Table[R]) Select(id string, selected bool) error {
	t.mx.Lock()
	obj, ok := t.get(id)
	if !ok {
		t.mx.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownRow, id)
	}
	t.store.Select(id, selected)
	hook := t.hooks.OnSelect
	t.mx.Unlock()

	if hook != nil {
		hook(obj, selected)
	}

	return nil
}

// ToggleSelect flips the selection of row id.
func (t *Table[R]) ToggleSelect(id string) (bool, error) {
	selected := !t.IsSelected(id)
	return selected, t.Select(id, selected)
}

// SelectAll selects or deselects every row.
func (t *Table[R]) SelectAll(selected bool) {
	t.mx.RLock()
	ids := t.rows.IDs()
	t.mx.RUnlock()

	for _, id := range ids {
		if err := t.Select(id, selected); err != nil {
			log.Debugf("select all: %v", err)
		}
	}
}

// IsSelected returns true if row id is selected.
func (t *Table[R]) IsSelected(id string) bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.store.IsSelected(id)
}

// Selected returns a copy of the selected ids.
func (t *Table[R]) Selected() IDSet {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.store.Selected()
}

// SetSelected replaces the selection. Ids missing from the data are dropped.
func (t *Table[R]) SetSelected(ids IDSet) {
	t.mx.Lock()
	defer t.mx.Unlock()

	present := make(IDSet, len(t.index))
	for id := range t.index {
		present[id] = struct{}{}
	}
	t.store.SetSelected(ids.Intersect(present))
}

// ClearSelection deselects every row.
func (t *Table[R]) ClearSelection() {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.store.ClearSelection()
}

// SelectedObjects returns the selected domain objects in sort order.
func (t *Table[R]) SelectedObjects() []R {
	t.mx.RLock()
	defer t.mx.RUnlock()

	var out []R
	for _, r := range SortRows(t.rows, t.header, t.engine.Sort()) {
		if t.store.IsSelected(r.ID) {
			out = append(out, r.Source)
		}
	}
	return out
}

// SetPage moves to page p, clamped to the available pages.
func (t *Table[R]) SetPage(p int) PageState {
	t.mx.Lock()
	before := t.engine.Page()
	page := t.engine.SetPage(p)
	hook := t.hooks.OnPageChange
	t.mx.Unlock()

	if hook != nil && page != before {
		hook(page)
	}

	return page
}

// NextPage moves one page forward.
func (t *Table[R]) NextPage() PageState {
	return t.SetPage(t.Page().Page + 1)
}

// PrevPage moves one page back.
func (t *Table[R]) PrevPage() PageState {
	return t.SetPage(t.Page().Page - 1)
}

// Page returns the current page state.
func (t *Table[R]) Page() PageState {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.engine.Page()
}

// SetPageSize changes the number of rows per page.
func (t *Table[R]) SetPageSize(size int) error {
	t.mx.Lock()
	if err := t.engine.SetPageSize(size); err != nil {
		t.mx.Unlock()
		return err
	}
	page, hook := t.engine.Page(), t.hooks.OnPageChange
	t.mx.Unlock()

	if hook != nil {
		hook(page)
	}

	return nil
}

// CyclePageSize switches to the next configured page size.
func (t *Table[R]) CyclePageSize() int {
	size := t.Page().PageSize
	next := t.opts.PageSizeOptions[0]
	for i, s := range t.opts.PageSizeOptions {
		if s == size && i+1 < len(t.opts.PageSizeOptions) {
			next = t.opts.PageSizeOptions[i+1]
			break
		}
	}
	if err := t.SetPageSize(next); err != nil {
		log.Warnf("page size %d: %v", next, err)
	}

	return t.Page().PageSize
}

func sources[R any](rows Rows[R]) []R {
	out := make([]R, len(rows))
	for i, r := range rows {
		out[i] = r.Source
	}
	return out
}
