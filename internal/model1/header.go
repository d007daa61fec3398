package model1

import (
	"fmt"
	"reflect"
)

// SortKind tells the comparator how to order a column's sort keys.
type SortKind int

const (
	// KindAuto infers the ordering from the key's Go type.
	KindAuto SortKind = iota
	// KindString orders keys lexicographically, case-sensitive.
	KindString
	// KindNumber orders keys numerically.
	KindNumber
	// KindTime orders keys chronologically.
	KindTime
	// KindDuration orders keys by length.
	KindDuration
	// KindNatural orders keys the way humans read them (host-2 < host-10).
	KindNatural
)

// Attrs represents column attributes
type Attrs struct {
	Align     int      // tview alignment
	Wide      bool     // Hidden in narrow view
	Sortable  bool     // Header can be clicked/keyed for sorting
	Kind      SortKind // Sort key ordering
	Decorator DecoratorFunc
}

func (a Attrs) Merge(b Attrs) Attrs {
	if a.Align == 0 {
		a.Align = b.Align
	}
	if !a.Wide {
		a.Wide = b.Wide
	}
	if !a.Sortable {
		a.Sortable = b.Sortable
	}
	if a.Kind == KindAuto {
		a.Kind = b.Kind
	}
	if a.Decorator == nil {
		a.Decorator = b.Decorator
	}
	return a
}

// HeaderColumn represents a table header column
type HeaderColumn struct {
	Name string
	Attrs
}

func (h HeaderColumn) String() string {
	return fmt.Sprintf("%s [%d::%t::%t]", h.Name, h.Align, h.Wide, h.Sortable)
}

// Header represents the cell-producing columns of a table, in cell order.
type Header []HeaderColumn

func (h Header) Clone() Header {
	he := make(Header, len(h))
	copy(he, h)
	return he
}

func (h Header) Diff(header Header) bool {
	if len(h) != len(header) {
		return true
	}
	return !reflect.DeepEqual(h, header)
}

func (h Header) IndexOf(colName string, includeWide bool) (int, bool) {
	for i, c := range h {
		if c.Wide && !includeWide {
			continue
		}
		if c.Name == colName {
			return i, true
		}
	}
	return -1, false
}

// IsSortable returns true if the column at col accepts sorting.
func (h Header) IsSortable(col int) bool {
	if col < 0 || col >= len(h) {
		return false
	}
	return h[col].Sortable
}

func (h Header) ColumnNames(wide bool) []string {
	if len(h) == 0 {
		return nil
	}
	cc := make([]string, 0, len(h))
	for _, c := range h {
		if !wide && c.Wide {
			continue
		}
		cc = append(cc, c.Name)
	}
	return cc
}

// CellFunc projects a domain object into one cell.
type CellFunc[R any] func(R) (Cell, error)

// Column is a declarative column descriptor. A column without a Cell
// function is a header-only spacer and produces no cell.
type Column[R any] struct {
	Header HeaderColumn
	Cell   CellFunc[R]
}

// Columns is an ordered list of column descriptors. Order defines both the
// header order and the sort index addressing.
type Columns[R any] []Column[R]

// Header returns the header of the cell-producing columns, so that header
// index i addresses cell i of every row.
func (cc Columns[R]) Header() Header {
	h := make(Header, 0, len(cc))
	for _, c := range cc {
		if c.Cell == nil {
			continue
		}
		h = append(h, c.Header)
	}
	return h
}

// CellCount returns the number of cells produced per row.
func (cc Columns[R]) CellCount() int {
	var n int
	for _, c := range cc {
		if c.Cell != nil {
			n++
		}
	}
	return n
}

// FirstSortable returns the cell index of the first sortable column.
func (cc Columns[R]) FirstSortable() (int, bool) {
	for i, c := range cc.Header() {
		if c.Sortable {
			return i, true
		}
	}
	return -1, false
}
