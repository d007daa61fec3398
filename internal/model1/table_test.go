package model1_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aic/aic/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachineTable(t *testing.T, n int) *model1.Table[machine] {
	t.Helper()
	opts := model1.DefaultOptions()
	opts.PageSize = 10
	tb := model1.NewTable(machineColumns(), machineID, opts)
	require.NoError(t, tb.SetData(machines(n)))

	return tb
}

func TestTableView(t *testing.T) {
	tb := newMachineTable(t, 25)

	v := tb.View()
	assert.Equal(t, 25, v.Total)
	assert.Equal(t, 3, v.PageCount)
	assert.Equal(t, model1.SortState{Column: 0}, v.Sort)
	assert.Equal(t, model1.DefaultPageSizeOptions, v.PageSizeOptions)
	assert.True(t, v.ShowPagination)
	require.Len(t, v.Rows, 10)
	assert.Equal(t, "host-1", v.Rows[0].Cell(0).Display)
	assert.Equal(t, model1.EventUnchanged, v.Rows[0].Event.Kind)
}

func TestTableSelectionPrunedOnRefresh(t *testing.T) {
	data := []machine{{id: "a", name: "a"}, {id: "b", name: "b"}, {id: "c", name: "c"}}
	tb := model1.NewTable(machineColumns(), machineID, model1.DefaultOptions())
	require.NoError(t, tb.SetData(data))

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, tb.Select(id, true))
	}
	require.NoError(t, tb.SetData([]machine{data[0], data[2]}))

	assert.Equal(t, model1.NewIDSet("a", "c"), tb.Selected())
	assert.Equal(t, []string{"b"}, tb.Removed())
	assert.Equal(t, 2, tb.View().Selected)
}

func TestTableExpansionResetOnSort(t *testing.T) {
	tb := newMachineTable(t, 5)

	assert.True(t, tb.ToggleExpand("id-02"))
	require.True(t, tb.IsExpanded("id-02"))

	require.NoError(t, tb.ToggleSort(0))
	for _, r := range tb.View().Rows {
		assert.False(t, r.Expanded, r.ID)
	}
}

func TestTableExpansionSurvivesRefresh(t *testing.T) {
	tb := newMachineTable(t, 5)
	tb.ToggleExpand("id-02")

	require.NoError(t, tb.SetData(machines(5)))
	assert.True(t, tb.IsExpanded("id-02"))
}

func TestTableUnstableIDResetsState(t *testing.T) {
	refresh := 0
	unstable := func(m machine) string { return fmt.Sprintf("%s@%d", m.id, refresh) }
	tb := model1.NewTable(machineColumns(), unstable, model1.DefaultOptions())
	require.NoError(t, tb.SetData(machines(3)))
	require.NoError(t, tb.Select("id-01@0", true))
	tb.ToggleExpand("id-01@0")

	refresh++
	require.NoError(t, tb.SetData(machines(3)))

	assert.Empty(t, tb.Selected())
	for _, r := range tb.View().Rows {
		assert.False(t, r.Expanded)
	}
}

func TestTableHooks(t *testing.T) {
	var (
		sorts    []model1.SortState
		selected []string
		expanded []bool
		pages    []int
	)
	opts := model1.DefaultOptions()
	opts.PageSize = 10
	tb := model1.NewTable(machineColumns(), machineID, opts)
	tb.SetHooks(model1.Hooks[machine]{
		OnSort:         func(s model1.SortState) { sorts = append(sorts, s) },
		OnSelect:       func(m machine, on bool) { selected = append(selected, fmt.Sprintf("%s:%t", m.id, on)) },
		OnToggleExpand: func(_ string, open bool) { expanded = append(expanded, open) },
		OnPageChange:   func(p model1.PageState) { pages = append(pages, p.Page) },
	})
	require.NoError(t, tb.SetData(machines(30)))

	require.NoError(t, tb.Sort(2, model1.Descending))
	require.NoError(t, tb.Select("id-03", true))
	require.NoError(t, tb.Select("id-03", false))
	tb.ToggleExpand("id-04")
	tb.ToggleExpand("id-04")
	tb.SetPage(3)
	tb.SetPage(3)
	require.NoError(t, tb.SetData(machines(12)))

	assert.Equal(t, []model1.SortState{{Column: 2, Direction: model1.Descending}}, sorts)
	assert.Equal(t, []string{"id-03:true", "id-03:false"}, selected)
	assert.Equal(t, []bool{true, false}, expanded)
	assert.Equal(t, []int{3, 2}, pages)
}

func TestTableSelectUnknown(t *testing.T) {
	tb := newMachineTable(t, 2)

	err := tb.Select("nope", true)
	assert.True(t, errors.Is(err, model1.ErrUnknownRow))
	assert.Empty(t, tb.Selected())
}

func TestTableSelectedObjectsInSortOrder(t *testing.T) {
	tb := newMachineTable(t, 5)
	tb.SelectAll(true)
	require.NoError(t, tb.Select("id-00", false))

	oo := tb.SelectedObjects()
	names := make([]string, 0, len(oo))
	for _, o := range oo {
		names = append(names, o.name)
	}
	assert.Equal(t, []string{"host-1", "host-2", "host-3", "host-4"}, names)

	tb.SetSelected(model1.NewIDSet("id-01", "ghost"))
	assert.Equal(t, model1.NewIDSet("id-01"), tb.Selected())
}

func TestTableDuplicateIDKeepsPreviousData(t *testing.T) {
	tb := newMachineTable(t, 3)
	dup := machines(3)
	dup[1].id = dup[0].id

	var e *model1.DuplicateIDError
	assert.True(t, errors.As(tb.SetData(dup), &e))
	assert.Equal(t, 3, tb.Len())
}

func TestTableRowEvents(t *testing.T) {
	tb := newMachineTable(t, 3)

	next := machines(3)
	next[0].cpu = 3
	next = append(next[:2], machine{id: "id-new", name: "host-0"})
	require.NoError(t, tb.SetData(next))

	kinds := make(map[string]model1.ResEvent)
	for _, r := range tb.View().Rows {
		kinds[r.ID] = r.Event.Kind
		if r.ID == "id-00" {
			assert.True(t, r.Event.Deltas.Changed(1))
			assert.Equal(t, "0", r.Event.Deltas[1])
		}
	}
	assert.Equal(t, map[string]model1.ResEvent{
		"id-00":  model1.EventUpdate,
		"id-01":  model1.EventUnchanged,
		"id-new": model1.EventAdd,
	}, kinds)
	assert.Equal(t, []string{"id-02"}, tb.Removed())
}

func TestTableCyclePageSize(t *testing.T) {
	tb := newMachineTable(t, 5)

	assert.Equal(t, 20, tb.CyclePageSize())
	assert.Equal(t, 50, tb.CyclePageSize())
	assert.Equal(t, 100, tb.CyclePageSize())
	assert.Equal(t, 10, tb.CyclePageSize())
	assert.ErrorIs(t, tb.SetPageSize(-1), model1.ErrInvalidPageSize)
}
