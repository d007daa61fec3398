package model1_test

import (
	"testing"

	"github.com/aic/aic/internal/model1"
	"github.com/stretchr/testify/assert"
)

func TestReconcileSelection(t *testing.T) {
	current := model1.NewIDSet("a", "b", "c")
	data := []machine{{id: "a"}, {id: "c"}, {id: "d"}}

	out := model1.ReconcileSelection(current, data, machineID)

	assert.Equal(t, model1.NewIDSet("a", "c"), out)
	assert.Equal(t, []string{"a", "b", "c"}, current.Sorted())
}

func TestReconcileSelectionEmptyData(t *testing.T) {
	out := model1.ReconcileSelection(model1.NewIDSet("a"), nil, machineID)
	assert.Empty(t, out)
}

func TestStoreToggleExpand(t *testing.T) {
	s := model1.NewStore()

	assert.False(t, s.IsExpanded("x"))
	assert.True(t, s.ToggleExpand("x"))
	assert.True(t, s.IsExpanded("x"))
	assert.False(t, s.ToggleExpand("x"))
	assert.False(t, s.IsExpanded("x"))

	s.ToggleExpand("y")
	s.ToggleExpand("x")
	assert.Equal(t, []string{"x", "y"}, s.Expanded())

	s.CollapseAll()
	assert.Empty(t, s.Expanded())
}

func TestStoreSelection(t *testing.T) {
	s := model1.NewStore()
	s.Select("a", true)
	s.Select("b", true)
	s.Select("c", true)
	s.Select("c", false)

	assert.True(t, s.IsSelected("a"))
	assert.False(t, s.IsSelected("c"))

	sel := s.Selected()
	sel["z"] = struct{}{}
	assert.False(t, s.IsSelected("z"))

	gone := s.Prune(model1.NewIDSet("a", "x"))
	assert.Equal(t, []string{"b"}, gone)
	assert.Equal(t, []string{"a"}, s.Selected().Sorted())

	s.ClearSelection()
	assert.Empty(t, s.Selected())
}
