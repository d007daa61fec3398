package ui_test

import (
	"context"
	"testing"

	"github.com/aic/aic/internal/massaction"
	"github.com/aic/aic/internal/model1"
	"github.com/aic/aic/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	id, name, zone string
}

func nodeColumns() model1.Columns[node] {
	return model1.Columns[node]{
		{
			Header: model1.HeaderColumn{Name: "NAME", Attrs: model1.Attrs{Sortable: true}},
			Cell:   func(n node) (model1.Cell, error) { return model1.Cell{Display: n.name}, nil },
		},
		{
			Header: model1.HeaderColumn{Name: "ZONE", Attrs: model1.Attrs{Sortable: true, Wide: true}},
			Cell:   func(n node) (model1.Cell, error) { return model1.Cell{Display: n.zone}, nil },
		},
		{
			Header: model1.HeaderColumn{Name: "ACTIONS"},
		},
	}
}

func newNodeTable(t *testing.T) *ui.Table[node] {
	t.Helper()
	m := model1.NewTable(nodeColumns(), func(n node) string { return n.id }, model1.DefaultOptions())
	require.NoError(t, m.SetData([]node{
		{id: "1", name: "c", zone: "z1"},
		{id: "2", name: "a", zone: "z2"},
		{id: "3", name: "b", zone: "z3"},
	}))
	tb := ui.NewTable("nodes", m, nil)
	require.NoError(t, tb.Init(context.Background()))
	tb.Render()

	return tb
}

func TestTableRender(t *testing.T) {
	tb := newNodeTable(t)

	assert.Equal(t, 4, tb.GetRowCount())
	assert.Equal(t, 3, tb.GetColumnCount())
	assert.Equal(t, "NAME↑", tb.GetCell(0, 1).Text)
	assert.Equal(t, "ACTIONS", tb.GetCell(0, 2).Text)
	assert.Equal(t, "a", tb.GetCell(1, 1).Text)
	assert.Equal(t, "c", tb.GetCell(3, 1).Text)
	assert.Equal(t, "2", tb.SelectedID())
}

func TestTableHeaderBoldSortColumnOnly(t *testing.T) {
	tb := newNodeTable(t)
	assert.Equal(t, tcell.AttrBold, tb.GetCell(0, 1).Attributes)
	assert.Equal(t, tcell.AttrNone, tb.GetCell(0, 2).Attributes)

	cols := model1.Columns[node]{
		{
			Header: model1.HeaderColumn{Name: "NAME"},
			Cell:   func(n node) (model1.Cell, error) { return model1.Cell{Display: n.name}, nil },
		},
		{
			Header: model1.HeaderColumn{Name: "ACTIONS"},
		},
	}
	m := model1.NewTable(cols, func(n node) string { return n.id }, model1.DefaultOptions())
	require.NoError(t, m.SetData([]node{{id: "1", name: "a"}}))
	unsorted := ui.NewTable("nodes", m, nil)
	require.NoError(t, unsorted.Init(context.Background()))
	unsorted.Render()

	require.Equal(t, -1, m.SortState().Column)
	assert.Equal(t, "NAME", unsorted.GetCell(0, 1).Text)
	assert.Equal(t, tcell.AttrNone, unsorted.GetCell(0, 1).Attributes)
	assert.Equal(t, tcell.AttrNone, unsorted.GetCell(0, 2).Attributes)
}

func TestTableWide(t *testing.T) {
	tb := newNodeTable(t)

	assert.True(t, tb.ToggleWide())
	assert.Equal(t, 4, tb.GetColumnCount())
	assert.Equal(t, "ZONE", tb.GetCell(0, 2).Text)
	assert.Equal(t, "z2", tb.GetCell(1, 2).Text)
}

func TestTableMarksAndTargets(t *testing.T) {
	tb := newNodeTable(t)

	got := tb.Targets()
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].name)

	require.NoError(t, tb.Model().Select("3", true))
	require.NoError(t, tb.Model().Select("1", true))
	tb.Render()

	assert.Equal(t, " ", tb.GetCell(1, 0).Text)
	assert.Equal(t, "✓", tb.GetCell(2, 0).Text)
	got = tb.Targets()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].name)
	assert.Equal(t, "c", got[1].name)
}

func TestTableExpandedDetail(t *testing.T) {
	tb := newNodeTable(t)
	tb.SetDetailFunc(func(n node) []string { return []string{"zone " + n.zone} })

	tb.Model().ToggleExpand("2")
	tb.Render()

	assert.Equal(t, 5, tb.GetRowCount())
	assert.Equal(t, "  └ zone z2", tb.GetCell(2, 1).Text)
	assert.Nil(t, tb.GetCell(2, 0).GetReference())
	assert.Equal(t, "b", tb.GetCell(3, 1).Text)
}

func TestTableSortKeys(t *testing.T) {
	tb := newNodeTable(t)
	capture := tb.GetInputCapture()

	capture(tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModNone))
	assert.Equal(t, model1.Descending, tb.Model().SortState().Direction)
	assert.Equal(t, "NAME↓", tb.GetCell(0, 1).Text)
	assert.Equal(t, "c", tb.GetCell(1, 1).Text)
}

func TestTableMarkKey(t *testing.T) {
	tb := newNodeTable(t)
	capture := tb.GetInputCapture()

	capture(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	assert.True(t, tb.Model().IsSelected("2"))
	assert.Equal(t, "3", tb.SelectedID())

	capture(tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl))
	assert.Len(t, tb.Model().Selected(), 3)
	capture(tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl))
	assert.Empty(t, tb.Model().Selected())
}

func TestTableEditRefusedWhileLocked(t *testing.T) {
	tb := newNodeTable(t)
	var (
		called  bool
		refused error
	)
	tb.Actions().Add(ui.KeyX, ui.NewEditKeyAction("Delete", func(*tcell.EventKey) *tcell.EventKey {
		called = true
		return nil
	}, true))
	tb.SetRefusedFn(func(err error) { refused = err })

	tb.Lock(true)
	tb.GetInputCapture()(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	assert.False(t, called)
	assert.ErrorIs(t, refused, massaction.ErrBusy)

	tb.Lock(false)
	tb.SetReadOnlyFn(func() bool { return true })
	tb.GetInputCapture()(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	assert.False(t, called)
	assert.ErrorIs(t, refused, ui.ErrReadOnly)

	tb.SetReadOnlyFn(nil)
	tb.GetInputCapture()(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	assert.True(t, called)
}

func TestTableHintsHideEditWhenLocked(t *testing.T) {
	tb := newNodeTable(t)
	tb.Actions().Add(ui.KeyX, ui.NewEditKeyAction("Delete", nil, true))

	visible := func() bool {
		for _, h := range tb.Hints() {
			if h.Description == "Delete" {
				return h.Visible
			}
		}
		return false
	}
	assert.True(t, visible())
	tb.Lock(true)
	assert.False(t, visible())
}

func TestTableEmpty(t *testing.T) {
	m := model1.NewTable(nodeColumns(), func(n node) string { return n.id }, model1.DefaultOptions())
	tb := ui.NewTable("nodes", m, nil)
	require.NoError(t, tb.Init(context.Background()))
	tb.Render()

	assert.Equal(t, "No resources found", tb.GetCell(0, 0).Text)
	assert.Empty(t, tb.SelectedID())
}
