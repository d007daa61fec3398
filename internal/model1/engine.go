package model1

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSortable is returned when sorting by a column that does not sort.
	ErrNotSortable = errors.New("column is not sortable")

	// ErrInvalidPageSize is returned for page sizes below 1.
	ErrInvalidPageSize = errors.New("page size must be positive")
)

// Engine derives the visible rows from (rows, sort, page). It only owns the
// sort and page state; expansion lives in the Store, which the engine
// collapses whenever the sort changes.
type Engine struct {
	header Header
	sort   SortState
	page   PageState
	store  *Store
	total  int
}

// NewEngine returns an engine sorting by s. A negative s.Column picks the
// first sortable column, ascending.
func NewEngine(h Header, store *Store, s SortState, pageSize int) *Engine {
	if s.Column < 0 || !h.IsSortable(s.Column) {
		s = SortState{Column: firstSortable(h), Direction: s.Direction}
	}
	if store == nil {
		store = NewStore()
	}

	return &Engine{
		header: h,
		sort:   s,
		page:   NewPageState(pageSize),
		store:  store,
	}
}

func firstSortable(h Header) int {
	for i := range h {
		if h.IsSortable(i) {
			return i
		}
	}
	return -1
}

// Sort returns the current sort state.
func (e *Engine) Sort() SortState {
	return e.sort
}

// Page returns the current page state.
func (e *Engine) Page() PageState {
	return e.page
}

// PageCount returns the number of pages for the last observed total.
func (e *Engine) PageCount() int {
	return e.page.PageCount(e.total)
}

// Total returns the last observed row count.
func (e *Engine) Total() int {
	return e.total
}

// SetSort changes the sort column and direction and collapses every
// expanded row.
func (e *Engine) SetSort(col int, dir Direction) error {
	if !e.header.IsSortable(col) {
		return fmt.Errorf("%w: %d", ErrNotSortable, col)
	}
	e.sort = SortState{Column: col, Direction: dir}
	e.store.CollapseAll()

	return nil
}

// ToggleSort flips the direction when col is already active, otherwise
// sorts col ascending.
func (e *Engine) ToggleSort(col int) error {
	dir := Ascending
	if col == e.sort.Column {
		dir = e.sort.Direction.Flip()
	}

	return e.SetSort(col, dir)
}

// SetPage moves to page p, clamped to the available pages.
func (e *Engine) SetPage(p int) PageState {
	e.page.Page = p
	e.page = e.page.Clamp(e.total)

	return e.page
}

// SetPageSize changes the page size, keeping the first row of the current
// page visible.
func (e *Engine) SetPageSize(size int) error {
	if size <= 0 {
		return ErrInvalidPageSize
	}
	first, _ := e.page.Bounds(e.total)
	e.page = PageState{Page: first/size + 1, PageSize: size}.Clamp(e.total)

	return nil
}

// Observe records a new data size and clamps the page when the data
// shrank below it. Returns true if the page moved.
func (e *Engine) Observe(total int) bool {
	e.total = total
	before := e.page.Page
	e.page = e.page.Clamp(total)

	return before != e.page.Page
}

// VisibleRows sorts rows with the engine's sort state and returns the
// current page, with each row's expansion taken from the store.
func VisibleRows[R any](e *Engine, rows Rows[R]) Rows[R] {
	e.Observe(len(rows))
	page := Slice(SortRows(rows, e.header, e.sort), e.page)
	out := make(Rows[R], len(page))
	for i, r := range page {
		r.Expanded = e.store.IsExpanded(r.ID)
		out[i] = r
	}

	return out
}
