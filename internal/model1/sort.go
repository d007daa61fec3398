package model1

import "slices"

// SortState tracks the single active sort column and its direction.
type SortState struct {
	Column    int
	Direction Direction
}

// SortRows returns a stably sorted copy of rows. Ties keep their input
// order in both directions. An out of range column leaves the order as is.
func SortRows[R any](rows Rows[R], h Header, s SortState) Rows[R] {
	out := make(Rows[R], len(rows))
	copy(out, rows)
	if s.Column < 0 || s.Column >= len(h) {
		return out
	}

	kind := h[s.Column].Kind
	slices.SortStableFunc(out, func(a, b Row[R]) int {
		c := Compare(a.Cell(s.Column), b.Cell(s.Column), kind)
		if s.Direction == Descending {
			return -c
		}
		return c
	})

	return out
}
