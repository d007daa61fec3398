package model1_test

import (
	"errors"
	"testing"

	"github.com/aic/aic/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	cols := machineColumns()
	data := machines(3)

	rows, err := model1.Project(data, cols, machineID)
	require.NoError(t, err)

	assert.Equal(t, []string{"id-00", "id-01", "id-02"}, rows.IDs())
	assert.Equal(t, 4, cols.CellCount())
	assert.Len(t, cols.Header(), 4)
	for _, r := range rows {
		assert.Equal(t, cols.CellCount(), r.Len())
		assert.False(t, r.Expanded)
	}
	assert.Equal(t, model1.Fields{"host-3", "0", "2024-03-01T10:00:00Z", "..."}, rows[0].Fields())
	assert.Equal(t, data[1], rows[1].Source)
}

func TestProjectCellFailure(t *testing.T) {
	cols := machineColumns()
	cols = append(cols, model1.Column[machine]{
		Header: model1.HeaderColumn{Name: "BOOM"},
		Cell: func(m machine) (model1.Cell, error) {
			if m.id == "id-01" {
				panic("boom")
			}
			return model1.Cell{Display: "ok"}, nil
		},
	})
	data := machines(2)
	data[0].cpu = -1

	rows, err := model1.Project(data, cols, machineID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, model1.Cell{}, rows[0].Cell(1))
	assert.Equal(t, "ok", rows[0].Cell(4).Display)
	assert.Equal(t, model1.Cell{}, rows[1].Cell(4))
	assert.Equal(t, "1", rows[1].Cell(0).Display)
}

func TestEvalCell(t *testing.T) {
	uu := map[string]struct {
		cell func(machine) (model1.Cell, error)
		e    model1.Cell
		ok   bool
	}{
		"ok": {
			cell: func(m machine) (model1.Cell, error) { return model1.Cell{Display: m.name}, nil },
			e:    model1.Cell{Display: "host-1"},
			ok:   true,
		},
		"error": {
			cell: func(machine) (model1.Cell, error) { return model1.Cell{Display: "x"}, errors.New("nope") },
		},
		"panic": {
			cell: func(machine) (model1.Cell, error) { panic("boom") },
		},
		"spacer": {},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			c := model1.Column[machine]{Header: model1.HeaderColumn{Name: "X"}, Cell: u.cell}
			var (
				cell model1.Cell
				ok   bool
			)
			assert.NotPanics(t, func() { cell, ok = model1.EvalCell(c, machines(1)[0], "id-00") })
			assert.Equal(t, u.ok, ok)
			assert.Equal(t, u.e, cell)
		})
	}
}

func TestProjectDecorator(t *testing.T) {
	cols := model1.Columns[machine]{
		{
			Header: model1.HeaderColumn{
				Name:  "NAME",
				Attrs: model1.Attrs{Decorator: func(s string) string { return "[" + s + "]" }},
			},
			Cell: func(m machine) (model1.Cell, error) {
				return model1.Cell{Display: m.name}, nil
			},
		},
	}

	rows, err := model1.Project(machines(1), cols, machineID)
	require.NoError(t, err)
	assert.Equal(t, "[host-1]", rows[0].Cell(0).Display)
}

func TestProjectDuplicateID(t *testing.T) {
	data := machines(3)
	data[2].id = data[0].id

	rows, err := model1.Project(data, machineColumns(), machineID)
	assert.Nil(t, rows)

	var dup *model1.DuplicateIDError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "id-00", dup.ID)
	assert.Equal(t, 0, dup.First)
	assert.Equal(t, 2, dup.Dup)
}

func TestProjectEmpty(t *testing.T) {
	rows, err := model1.Project(nil, machineColumns(), machineID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
