// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aic/aic/internal/massaction"
	"github.com/aic/aic/internal/model1"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	gtcell "github.com/gdamore/tcell/v2"
)

const (
	markSelected = "✓"
	sortAsc      = "↑"
	sortDesc     = "↓"
	detailPrefix = "  └ "
)

// ErrReadOnly is reported when an edit action is refused in read-only mode.
var ErrReadOnly = errors.New("read-only mode")

// DetailFunc returns the lines shown under an expanded row.
type DetailFunc[R any] func(R) []string

// Table draws a model1.Table: a mark column, the visible rows of the
// current page colored by the renderer, and the detail lines of expanded
// rows.
type Table[R any] struct {
	*tview.Table

	name       string
	model      *model1.Table[R]
	colorer    model1.ColorerFunc
	detail     DetailFunc[R]
	actions    *KeyActions
	queueFn    func(func())
	refusedFn  func(error)
	readOnlyFn func() bool
	filter     string
	wide       bool
	locked     bool
	lastErr    error
	mx         sync.RWMutex
}

// NewTable returns a widget over m.
func NewTable[R any](name string, m *model1.Table[R], colorer model1.ColorerFunc) *Table[R] {
	if colorer == nil {
		colorer = model1.DefaultColorer
	}
	return &Table[R]{
		Table:   tview.NewTable(),
		name:    name,
		model:   m,
		colorer: colorer,
		actions: NewKeyActions(),
	}
}

// Init initializes the table component.
func (t *Table[R]) Init(context.Context) error {
	t.SetFixed(1, 0)
	t.SetBorder(true)
	t.SetBorderAttributes(tcell.AttrBold)
	t.SetBorderPadding(0, 0, 1, 1)
	t.SetSelectable(true, false)
	t.SetBackgroundColor(tcell.ColorDefault)
	t.SetBorderColor(tcell.ColorDodgerBlue)
	t.SetInputCapture(t.keyboard)
	t.bindKeys()
	t.showMessage("Loading...", tcell.ColorGray)
	t.updateTitle(model1.Snapshot[R]{})

	return nil
}

// Name returns the table name.
func (t *Table[R]) Name() string {
	return t.name
}

// Model returns the table state.
func (t *Table[R]) Model() *model1.Table[R] {
	return t.model
}

// Actions returns the key actions.
func (t *Table[R]) Actions() *KeyActions {
	return t.actions
}

// Hints returns menu hints for key bindings.
func (t *Table[R]) Hints() MenuHints {
	return t.actions.Hints(t.IsLocked() || t.isReadOnly())
}

// SetDetailFunc sets what expanded rows show.
func (t *Table[R]) SetDetailFunc(f DetailFunc[R]) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.detail = f
}

// SetQueueFn sets how redraws are scheduled on the UI goroutine.
func (t *Table[R]) SetQueueFn(f func(func())) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.queueFn = f
}

// SetRefusedFn sets the callback told why an edit action was refused.
func (t *Table[R]) SetRefusedFn(f func(error)) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.refusedFn = f
}

// SetReadOnlyFn sets the read-only probe.
func (t *Table[R]) SetReadOnlyFn(f func() bool) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.readOnlyFn = f
}

// SetFilterText records the filter shown in the title.
func (t *Table[R]) SetFilterText(s string) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.filter = s
}

// FilterText returns the active filter.
func (t *Table[R]) FilterText() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.filter
}

// Lock disables edit actions while a mass action runs.
func (t *Table[R]) Lock(locked bool) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.locked = locked
}

// IsLocked returns true while a mass action runs.
func (t *Table[R]) IsLocked() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.locked
}

func (t *Table[R]) isReadOnly() bool {
	t.mx.RLock()
	f := t.readOnlyFn
	t.mx.RUnlock()

	return f != nil && f()
}

// ToggleWide shows or hides the wide columns.
func (t *Table[R]) ToggleWide() bool {
	t.mx.Lock()
	t.wide = !t.wide
	wide := t.wide
	t.mx.Unlock()
	t.Render()

	return wide
}

// SelectedID returns the id of the row under the cursor.
func (t *Table[R]) SelectedID() string {
	row, _ := t.GetSelection()
	if row <= 0 {
		return ""
	}
	cell := t.GetCell(row, 0)
	if cell == nil {
		return ""
	}
	id, _ := cell.GetReference().(string)

	return id
}

// CurrentObject returns the object under the cursor.
func (t *Table[R]) CurrentObject() (R, bool) {
	return t.model.Get(t.SelectedID())
}

// Targets returns the selected objects or, with no selection, the object
// under the cursor.
func (t *Table[R]) Targets() []R {
	if oo := t.model.SelectedObjects(); len(oo) > 0 {
		return oo
	}
	if o, ok := t.CurrentObject(); ok {
		return []R{o}
	}
	return nil
}

// DataChanged implements model.Listener.
func (t *Table[R]) DataChanged([]R) {
	t.mx.Lock()
	t.lastErr = nil
	t.mx.Unlock()
	t.queue(t.Render)
}

// LoadFailed implements model.Listener. The previous rows stay on screen.
func (t *Table[R]) LoadFailed(err error) {
	t.mx.Lock()
	t.lastErr = err
	t.mx.Unlock()
	t.queue(t.Render)
}

func (t *Table[R]) queue(f func()) {
	t.mx.RLock()
	q := t.queueFn
	t.mx.RUnlock()

	if q == nil {
		f()
		return
	}
	q(f)
}

// Render redraws the table from the model. It must run on the UI
// goroutine.
func (t *Table[R]) Render() {
	snap := t.model.View()
	t.mx.RLock()
	wide, detail, lastErr := t.wide, t.detail, t.lastErr
	t.mx.RUnlock()

	current := t.SelectedID()
	t.Clear()
	if snap.Total == 0 {
		if lastErr != nil {
			t.showMessage(lastErr.Error(), tcell.ColorRed)
		} else {
			t.showMessage("No resources found", tcell.ColorGray)
		}
		t.updateTitle(snap)
		return
	}

	cols := t.visibleColumns(wide)
	t.buildHeader(snap, cols)
	row, cursor := 1, 1
	for _, vr := range snap.Rows {
		if vr.ID == current {
			cursor = row
		}
		t.buildRow(snap, vr, cols, row)
		row++
		if !vr.Expanded || detail == nil {
			continue
		}
		for _, line := range detail(vr.Source) {
			c := tview.NewTableCell(detailPrefix + line)
			c.SetTextColor(tcell.ColorGray)
			c.SetSelectable(false)
			t.SetCell(row, 1, c)
			row++
		}
	}
	t.Select(cursor, 0)
	t.updateTitle(snap)
}

// column is a visible column: its header and, for cell columns, the cell
// index in the rows.
type column struct {
	header model1.HeaderColumn
	cell   int
}

func (t *Table[R]) visibleColumns(wide bool) []column {
	var (
		cc  []column
		idx int
	)
	for _, c := range t.model.Columns() {
		cell := -1
		if c.Cell != nil {
			cell = idx
			idx++
		}
		if c.Header.Wide && !wide {
			continue
		}
		cc = append(cc, column{header: c.Header, cell: cell})
	}

	return cc
}

func (t *Table[R]) buildHeader(snap model1.Snapshot[R], cols []column) {
	mark := tview.NewTableCell(" ")
	mark.SetSelectable(false)
	t.SetCell(0, 0, mark)

	for i, c := range cols {
		name := c.header.Name
		if c.cell >= 0 && c.cell == snap.Sort.Column {
			name += sortIndicator(snap.Sort.Direction)
		}
		cell := tview.NewTableCell(name)
		cell.SetTextColor(tcell.ColorYellow)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(c.header.Align)
		cell.SetExpansion(1)
		cell.SetSelectable(false)
		if c.cell >= 0 && c.cell == snap.Sort.Column {
			cell.SetAttributes(tcell.AttrBold)
		}
		t.SetCell(0, i+1, cell)
	}
}

func sortIndicator(d model1.Direction) string {
	if d == model1.Descending {
		return sortDesc
	}
	return sortAsc
}

func (t *Table[R]) buildRow(snap model1.Snapshot[R], vr model1.ViewRow[R], cols []column, row int) {
	color := AsColor(t.colorer(snap.Header, vr.Event))

	mark := tview.NewTableCell(" ")
	if vr.Selected {
		mark.SetText(markSelected)
	}
	mark.SetReference(vr.ID)
	mark.SetTextColor(tcell.ColorFuchsia)
	t.SetCell(row, 0, mark)

	for i, c := range cols {
		var text string
		if c.cell >= 0 {
			text = vr.Cell(c.cell).Display
		}
		cell := tview.NewTableCell(text)
		cell.SetTextColor(color)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(c.header.Align)
		cell.SetExpansion(1)
		if vr.Selected {
			cell.SetAttributes(tcell.AttrBold)
		}
		t.SetCell(row, i+1, cell)
	}
}

// AsColor converts a renderer color into a widget color.
func AsColor(c gtcell.Color) tcell.Color {
	return tcell.Color(c)
}

func (t *Table[R]) showMessage(msg string, color tcell.Color) {
	t.Clear()
	cell := tview.NewTableCell(msg)
	cell.SetTextColor(color)
	cell.SetAlign(tview.AlignCenter)
	cell.SetSelectable(false)
	t.SetCell(0, 0, cell)
}

func (t *Table[R]) updateTitle(snap model1.Snapshot[R]) {
	t.mx.RLock()
	filter, lastErr, locked := t.filter, t.lastErr, t.locked
	t.mx.RUnlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, " [aqua::b]%s[white::-][[fuchsia::b]%d[white::-]]", t.name, snap.Total)
	if snap.ShowPagination && snap.PageCount > 1 {
		fmt.Fprintf(&sb, " <page %d/%d x%d>", snap.Page.Page, snap.PageCount, snap.Page.PageSize)
	}
	if snap.Selected > 0 {
		fmt.Fprintf(&sb, " [fuchsia::]%d selected[white::]", snap.Selected)
	}
	if filter != "" {
		fmt.Fprintf(&sb, " [gray::]/%s[white::]", tview.Escape(filter))
	}
	if locked {
		sb.WriteString(" [orange::b]applying...[white::-]")
	}
	if lastErr != nil && snap.Total > 0 {
		sb.WriteString(" [red::b]refresh failed[white::-]")
	}
	sb.WriteString(" ")

	t.SetTitle(sb.String())
}

func (t *Table[R]) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	a, ok := t.actions.Get(AsKey(evt))
	if !ok {
		return evt
	}
	if a.Opts.Edit {
		if err := t.editRefused(); err != nil {
			t.mx.RLock()
			f := t.refusedFn
			t.mx.RUnlock()
			if f != nil {
				f(err)
			}
			return nil
		}
	}

	return a.Action(evt)
}

func (t *Table[R]) editRefused() error {
	if t.IsLocked() {
		return massaction.ErrBusy
	}
	if t.isReadOnly() {
		return ErrReadOnly
	}
	return nil
}

func (t *Table[R]) bindKeys() {
	t.actions.Bulk(KeyMap{
		KeySpace:               NewKeyAction("Mark", t.markCmd, true),
		tcell.KeyCtrlA:         NewKeyAction("Mark All", t.markAllCmd, true),
		tcell.KeyCtrlBackslash: NewKeyAction("Clear Marks", t.clearMarksCmd, false),
		KeyO:                   NewKeyAction("Expand", t.expandCmd, true),
		KeyGreater:             NewKeyAction("Sort Next", t.sortNextCmd(1), true),
		KeyLess:                NewKeyAction("Sort Prev", t.sortNextCmd(-1), false),
		KeyShiftR:              NewKeyAction("Reverse Sort", t.invertCmd, true),
		KeyRBracket:            NewKeyAction("Next Page", t.pageCmd(1), true),
		KeyLBracket:            NewKeyAction("Prev Page", t.pageCmd(-1), true),
		KeyZ:                   NewKeyAction("Page Size", t.pageSizeCmd, true),
		tcell.KeyCtrlW:         NewKeyAction("Wide", t.wideCmd, false),
	})
}

func (t *Table[R]) markCmd(*tcell.EventKey) *tcell.EventKey {
	id := t.SelectedID()
	if id == "" {
		return nil
	}
	if _, err := t.model.ToggleSelect(id); err != nil {
		return nil
	}
	row, col := t.GetSelection()
	t.Render()
	if row+1 < t.GetRowCount() {
		t.Select(row+1, col)
	}

	return nil
}

func (t *Table[R]) markAllCmd(*tcell.EventKey) *tcell.EventKey {
	all := t.model.Len() > 0 && len(t.model.Selected()) == t.model.Len()
	t.model.SelectAll(!all)
	t.Render()

	return nil
}

func (t *Table[R]) clearMarksCmd(*tcell.EventKey) *tcell.EventKey {
	t.model.ClearSelection()
	t.Render()

	return nil
}

func (t *Table[R]) expandCmd(*tcell.EventKey) *tcell.EventKey {
	if id := t.SelectedID(); id != "" {
		t.model.ToggleExpand(id)
		t.Render()
	}

	return nil
}

// SortNext moves the sort to the next sortable column in step direction.
func (t *Table[R]) SortNext(step int) {
	h := t.model.Header()
	if len(h) == 0 {
		return
	}
	col := t.model.SortState().Column
	for range h {
		col = (col + step + len(h)) % len(h)
		if h.IsSortable(col) {
			break
		}
	}
	if err := t.model.Sort(col, model1.Ascending); err == nil {
		t.Render()
	}
}

func (t *Table[R]) sortNextCmd(step int) ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		t.SortNext(step)
		return nil
	}
}

func (t *Table[R]) invertCmd(*tcell.EventKey) *tcell.EventKey {
	if err := t.model.ToggleSort(t.model.SortState().Column); err == nil {
		t.Render()
	}

	return nil
}

func (t *Table[R]) pageCmd(step int) ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		if step > 0 {
			t.model.NextPage()
		} else {
			t.model.PrevPage()
		}
		t.Render()
		return nil
	}
}

func (t *Table[R]) pageSizeCmd(*tcell.EventKey) *tcell.EventKey {
	t.model.CyclePageSize()
	t.Render()

	return nil
}

func (t *Table[R]) wideCmd(*tcell.EventKey) *tcell.EventKey {
	t.ToggleWide()
	return nil
}
