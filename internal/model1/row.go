package model1

// Cell represents a rendered value and the key it sorts by.
type Cell struct {
	Display string
	Key     any
}

// SortKey returns the explicit key or falls back to the display value.
func (c Cell) SortKey() any {
	if c.Key == nil {
		return c.Display
	}
	return c.Key
}

// Fields represents the display values of a row.
type Fields []string

func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	copy(out, f)
	return out
}

// Row represents one table entry derived from one domain object.
type Row[R any] struct {
	ID       string
	Cells    []Cell
	Expanded bool
	Source   R
}

// Fields returns the row display values.
func (r Row[R]) Fields() Fields {
	ff := make(Fields, len(r.Cells))
	for i, c := range r.Cells {
		ff[i] = c.Display
	}
	return ff
}

// Cell returns the cell at col or an empty cell when out of range.
func (r Row[R]) Cell(col int) Cell {
	if col < 0 || col >= len(r.Cells) {
		return Cell{}
	}
	return r.Cells[col]
}

func (r Row[R]) Len() int {
	return len(r.Cells)
}

// Rows represents a collection of rows
type Rows[R any] []Row[R]

// IDs returns the row ids in order.
func (rr Rows[R]) IDs() []string {
	ids := make([]string, len(rr))
	for i, r := range rr {
		ids[i] = r.ID
	}
	return ids
}

func (rr Rows[R]) Clone() Rows[R] {
	out := make(Rows[R], len(rr))
	for i, r := range rr {
		cells := make([]Cell, len(r.Cells))
		copy(cells, r.Cells)
		r.Cells = cells
		out[i] = r
	}
	return out
}
