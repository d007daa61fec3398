package model1_test

import (
	"testing"

	"github.com/aic/aic/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCount(t *testing.T) {
	uu := map[string]struct {
		total, size, e int
	}{
		"empty":   {total: 0, size: 10, e: 0},
		"partial": {total: 5, size: 10, e: 1},
		"exact":   {total: 20, size: 10, e: 2},
		"ceil":    {total: 21, size: 10, e: 3},
		"one":     {total: 7, size: 1, e: 7},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, model1.PageState{Page: 1, PageSize: u.size}.PageCount(u.total))
		})
	}
}

func TestPageClamp(t *testing.T) {
	assert.Equal(t, 1, model1.PageState{Page: 0, PageSize: 10}.Clamp(50).Page)
	assert.Equal(t, 5, model1.PageState{Page: 9, PageSize: 10}.Clamp(50).Page)
	assert.Equal(t, 1, model1.PageState{Page: 3, PageSize: 10}.Clamp(0).Page)
	assert.Equal(t, 3, model1.PageState{Page: 3, PageSize: 10}.Clamp(21).Page)
}

func TestPaginationCompleteness(t *testing.T) {
	cols := machineColumns()
	rows, err := model1.Project(machines(23), cols, machineID)
	require.NoError(t, err)
	sorted := model1.SortRows(rows, cols.Header(), model1.SortState{Column: 0})

	for size := 1; size <= 25; size++ {
		p := model1.NewPageState(size)
		var all []string
		for page := 1; page <= p.PageCount(len(sorted)); page++ {
			p.Page = page
			chunk := model1.Slice(sorted, p)
			assert.NotEmpty(t, chunk)
			assert.LessOrEqual(t, len(chunk), size)
			all = append(all, chunk.IDs()...)
		}
		assert.Equal(t, sorted.IDs(), all, "page size %d", size)
	}
}

func TestNewPageStateDefault(t *testing.T) {
	p := model1.NewPageState(0)
	assert.Equal(t, model1.PageState{Page: 1, PageSize: model1.DefaultPageSize}, p)
}
