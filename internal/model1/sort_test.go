package model1_test

import (
	"slices"
	"testing"

	"github.com/aic/aic/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortRowsIdempotent(t *testing.T) {
	cols := machineColumns()
	rows, err := model1.Project(machines(12), cols, machineID)
	require.NoError(t, err)
	h := cols.Header()

	for col := range h {
		for _, dir := range []model1.Direction{model1.Ascending, model1.Descending} {
			s := model1.SortState{Column: col, Direction: dir}
			once := model1.SortRows(rows, h, s)
			twice := model1.SortRows(once, h, s)
			assert.Equal(t, once.IDs(), twice.IDs(), "column %d %s", col, dir)
		}
	}
}

func TestSortRowsReverse(t *testing.T) {
	cols := machineColumns()
	rows, err := model1.Project(machines(12), cols, machineID)
	require.NoError(t, err)
	h := cols.Header()

	for _, col := range []int{0, 2} {
		asc := model1.SortRows(rows, h, model1.SortState{Column: col})
		desc := model1.SortRows(asc, h, model1.SortState{Column: col, Direction: model1.Descending})
		ids := asc.IDs()
		slices.Reverse(ids)
		assert.Equal(t, ids, desc.IDs(), "column %d", col)
	}
}

func TestSortRowsNatural(t *testing.T) {
	cols := machineColumns()
	rows, err := model1.Project(machines(11), cols, machineID)
	require.NoError(t, err)

	sorted := model1.SortRows(rows, cols.Header(), model1.SortState{Column: 0})
	names := make([]string, 0, len(sorted))
	for _, r := range sorted[:3] {
		names = append(names, r.Cell(0).Display)
	}
	assert.Equal(t, []string{"host-1", "host-2", "host-3"}, names)
	assert.Equal(t, "host-11", sorted[10].Cell(0).Display)
}

func TestSortRowsStableTies(t *testing.T) {
	cols := machineColumns()
	rows, err := model1.Project(machines(10), cols, machineID)
	require.NoError(t, err)
	h := cols.Header()

	// cpu values cycle 0,2,4,1,3 so every key appears twice, in id order.
	asc := model1.SortRows(rows, h, model1.SortState{Column: 1})
	assert.Equal(t, []string{"id-00", "id-05", "id-03", "id-08", "id-01", "id-06", "id-04", "id-09", "id-02", "id-07"}, asc.IDs())

	desc := model1.SortRows(rows, h, model1.SortState{Column: 1, Direction: model1.Descending})
	assert.Equal(t, []string{"id-02", "id-07", "id-04", "id-09", "id-01", "id-06", "id-03", "id-08", "id-00", "id-05"}, desc.IDs())
}

func TestSortRowsOutOfRange(t *testing.T) {
	cols := machineColumns()
	rows, err := model1.Project(machines(4), cols, machineID)
	require.NoError(t, err)

	out := model1.SortRows(rows, cols.Header(), model1.SortState{Column: 42})
	assert.Equal(t, rows.IDs(), out.IDs())
}

func TestSortRowsDoesNotMutate(t *testing.T) {
	cols := machineColumns()
	rows, err := model1.Project(machines(5), cols, machineID)
	require.NoError(t, err)
	before := rows.IDs()

	model1.SortRows(rows, cols.Header(), model1.SortState{Column: 0})
	assert.Equal(t, before, rows.IDs())
}
