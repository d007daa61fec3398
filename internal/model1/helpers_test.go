package model1_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aic/aic/internal/model1"
	"github.com/stretchr/testify/assert"
)

type machine struct {
	id      string
	name    string
	cpu     int
	created time.Time
}

var epoch = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func machineColumns() model1.Columns[machine] {
	return model1.Columns[machine]{
		{
			Header: model1.HeaderColumn{Name: "NAME", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindNatural}},
			Cell: func(m machine) (model1.Cell, error) {
				return model1.Cell{Display: m.name}, nil
			},
		},
		{Header: model1.HeaderColumn{Name: ""}},
		{
			Header: model1.HeaderColumn{Name: "CPU", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindNumber}},
			Cell: func(m machine) (model1.Cell, error) {
				if m.cpu < 0 {
					return model1.Cell{}, errors.New("no inventory")
				}
				return model1.Cell{Display: fmt.Sprintf("%d", m.cpu), Key: m.cpu}, nil
			},
		},
		{
			Header: model1.HeaderColumn{Name: "CREATED", Attrs: model1.Attrs{Sortable: true, Kind: model1.KindTime}},
			Cell: func(m machine) (model1.Cell, error) {
				return model1.Cell{Display: m.created.Format(time.RFC3339), Key: m.created}, nil
			},
		},
		{
			Header: model1.HeaderColumn{Name: "ACTIONS"},
			Cell: func(machine) (model1.Cell, error) {
				return model1.Cell{Display: "..."}, nil
			},
		},
	}
}

func machineID(m machine) string { return m.id }

func machines(n int) []machine {
	mm := make([]machine, n)
	for i := range mm {
		mm[i] = machine{
			id:      fmt.Sprintf("id-%02d", i),
			name:    fmt.Sprintf("host-%d", n-i),
			cpu:     (i * 7) % 5,
			created: epoch.Add(time.Duration(i) * time.Minute),
		}
	}
	return mm
}

func TestCompare(t *testing.T) {
	uu := map[string]struct {
		a, b model1.Cell
		kind model1.SortKind
		e    int
	}{
		"natural": {
			a:    model1.Cell{Display: "host-2"},
			b:    model1.Cell{Display: "host-10"},
			kind: model1.KindNatural,
			e:    -1,
		},
		"string-case-sensitive": {
			a:    model1.Cell{Display: "Zeta"},
			b:    model1.Cell{Display: "alpha"},
			kind: model1.KindString,
			e:    -1,
		},
		"string-lexical": {
			a:    model1.Cell{Display: "host-2"},
			b:    model1.Cell{Display: "host-10"},
			kind: model1.KindString,
			e:    1,
		},
		"number-key": {
			a:    model1.Cell{Display: "9", Key: 9},
			b:    model1.Cell{Display: "10", Key: 10},
			kind: model1.KindNumber,
			e:    -1,
		},
		"number-display": {
			a:    model1.Cell{Display: "1,024"},
			b:    model1.Cell{Display: "512"},
			kind: model1.KindNumber,
			e:    1,
		},
		"number-equal": {
			a:    model1.Cell{Display: "4", Key: int64(4)},
			b:    model1.Cell{Display: "4.0", Key: 4.0},
			kind: model1.KindNumber,
			e:    0,
		},
		"time": {
			a:    model1.Cell{Key: epoch.Add(time.Hour)},
			b:    model1.Cell{Key: epoch},
			kind: model1.KindTime,
			e:    1,
		},
		"time-display": {
			a:    model1.Cell{Display: "2024-03-01T10:00:00Z"},
			b:    model1.Cell{Display: "2024-03-01T11:00:00Z"},
			kind: model1.KindTime,
			e:    -1,
		},
		"duration": {
			a:    model1.Cell{Display: "2d"},
			b:    model1.Cell{Display: "3h"},
			kind: model1.KindDuration,
			e:    1,
		},
		"auto-number": {
			a:    model1.Cell{Display: "b", Key: 1},
			b:    model1.Cell{Display: "a", Key: 2},
			kind: model1.KindAuto,
			e:    -1,
		},
		"auto-mismatch": {
			a:    model1.Cell{Display: "b", Key: 1},
			b:    model1.Cell{Display: "a", Key: "x"},
			kind: model1.KindAuto,
			e:    1,
		},
		"number-fallback": {
			a:    model1.Cell{Display: "n/a"},
			b:    model1.Cell{Display: "3"},
			kind: model1.KindNumber,
			e:    1,
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, model1.Compare(u.a, u.b, u.kind))
			assert.Equal(t, -u.e, model1.Compare(u.b, u.a, u.kind))
		})
	}
}

func TestLess(t *testing.T) {
	a, b := model1.Cell{Display: "a"}, model1.Cell{Display: "b"}

	assert.True(t, model1.Less(a, b, model1.KindString, model1.Ascending))
	assert.False(t, model1.Less(a, b, model1.KindString, model1.Descending))
	assert.False(t, model1.Less(a, a, model1.KindString, model1.Descending))
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, model1.Descending, model1.ParseDirection("desc"))
	assert.Equal(t, model1.Ascending, model1.ParseDirection("asc"))
	assert.Equal(t, model1.Ascending, model1.ParseDirection(""))
	assert.Equal(t, model1.Ascending, model1.Descending.Flip())
	assert.Equal(t, "desc", model1.Descending.String())
}
